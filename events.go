/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tryx

import "sync"

// Listener observes every error the factories create. Listeners run
// synchronously on the creating goroutine, so they must be fast and must not
// block; panics inside a listener are swallowed.
type Listener func(*Error)

// listenerSet is the process-wide creation-event registry. The core has no
// logger dependency on purpose: this is the hook where telemetry and logging
// sinks attach.
var listenerSet = struct {
	mu     sync.Mutex
	fns    map[int]Listener
	nextID int
}{fns: make(map[int]Listener)}

// Subscribe registers a creation-event listener and returns a cancel
// function that removes it. Calling cancel more than once is safe.
func Subscribe(fn Listener) (cancel func()) {
	listenerSet.mu.Lock()
	id := listenerSet.nextID
	listenerSet.nextID++
	listenerSet.fns[id] = fn
	listenerSet.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			listenerSet.mu.Lock()
			delete(listenerSet.fns, id)
			listenerSet.mu.Unlock()
		})
	}
}

// emit delivers a freshly created error to the configured OnError hook and
// the subscribed listeners. Event suppression is decided per capture plan,
// so it follows the factory's configuration version.
func emit(e *Error, plan *capturePlan) {
	if plan.suppressEvents {
		return
	}
	if plan.onError != nil {
		safeHook(plan.onError, e)
	}

	listenerSet.mu.Lock()
	fns := make([]Listener, 0, len(listenerSet.fns))
	for _, fn := range listenerSet.fns {
		fns = append(fns, fn)
	}
	listenerSet.mu.Unlock()

	for _, fn := range fns {
		safeListener(fn, e)
	}
}

func safeHook(fn func(error), e *Error) {
	defer func() { _ = recover() }()
	fn(e)
}

func safeListener(fn Listener, e *Error) {
	defer func() { _ = recover() }()
	fn(e)
}
