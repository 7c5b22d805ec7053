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

package config

import (
	"sync"
	"sync/atomic"
)

// snapshot couples one immutable Config with the version it was installed
// under. Load reads both through a single pointer, so a reader can never see
// a version from one update paired with fields from another.
type snapshot struct {
	cfg     Config
	version uint64
}

// Store is a versioned configuration holder.
//
// Reads are lock-free (atomic pointer load). Writes are serialized by a
// mutex and always replace the whole snapshot — never mutate it — so
// concurrent readers either see the old configuration or the new one,
// complete in both cases. Every successful write strictly increments the
// version counter and synchronously notifies change listeners.
type Store struct {
	mu  sync.Mutex // serializes writers and listener notification order
	cur atomic.Pointer[snapshot]

	lmu       sync.Mutex
	listeners map[int]func(Config, uint64)
	nextID    int
}

// NewStore creates a Store seeded with Defaults() at version 1.
func NewStore() *Store {
	s := &Store{listeners: make(map[int]func(Config, uint64))}
	s.cur.Store(&snapshot{cfg: Defaults(), version: 1})
	return s
}

// Load returns the current configuration together with its version.
// The returned Config is a value copy; mutating it has no effect on the
// store. Use the version to key caches of derived data.
func (s *Store) Load() (Config, uint64) {
	sn := s.cur.Load()
	return sn.cfg, sn.version
}

// Get returns the current configuration snapshot.
func (s *Store) Get() Config {
	return s.cur.Load().cfg
}

// Version returns the current configuration version. The counter starts at 1
// and strictly increases on every Apply, UsePreset and Reset.
func (s *Store) Version() uint64 {
	return s.cur.Load().version
}

// Apply merges the overlay onto the current configuration, installs the
// result as the new snapshot, bumps the version, and synchronously notifies
// change listeners. It returns the new version.
//
// Apply never fails: invalid field values degrade to defaults (see
// Config.Normalize).
func (s *Store) Apply(p Partial) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.cur.Load()
	next := &snapshot{cfg: merge(old.cfg, p), version: old.version + 1}
	s.cur.Store(next)
	s.notify(next)
	return next.version
}

// UsePreset resolves a named preset and applies it like Apply. Unknown
// preset names fail with ErrUnknownPreset — this is the one loud failure of
// the configuration API.
func (s *Store) UsePreset(name string) (uint64, error) {
	p, err := Preset(name)
	if err != nil {
		return s.Version(), err
	}
	return s.Apply(p), nil
}

// Reset restores the documented defaults. Unlike Apply it does not merge:
// the whole snapshot is replaced by Defaults(). The version still increases,
// so caches keyed on it are invalidated.
func (s *Store) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.cur.Load()
	next := &snapshot{cfg: Defaults(), version: old.version + 1}
	s.cur.Store(next)
	s.notify(next)
	return next.version
}

// OnChange registers a listener invoked synchronously after every
// configuration change, with the new snapshot and version. The returned
// cancel function removes the listener; calling it more than once is safe.
//
// Listener panics are swallowed so a misbehaving observer cannot break the
// writer.
func (s *Store) OnChange(fn func(Config, uint64)) (cancel func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

// notify runs under s.mu so listeners observe changes in version order.
func (s *Store) notify(sn *snapshot) {
	s.lmu.Lock()
	fns := make([]func(Config, uint64), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() { _ = recover() }()
			fn(sn.cfg, sn.version)
		}()
	}
}

// defaultStore is the process-wide store used by the package-level helpers
// and by the root factory unless a caller binds its own Store.
var defaultStore = NewStore()

// Default returns the process-wide configuration store.
func Default() *Store { return defaultStore }

// Configure merges the overlay into the process-wide store. See Store.Apply.
func Configure(p Partial) uint64 { return defaultStore.Apply(p) }

// ConfigurePreset applies a named preset to the process-wide store.
// See Store.UsePreset.
func ConfigurePreset(name string) (uint64, error) { return defaultStore.UsePreset(name) }

// Get returns the process-wide configuration snapshot.
func Get() Config { return defaultStore.Get() }

// Reset restores the process-wide store to the documented defaults.
func Reset() uint64 { return defaultStore.Reset() }
