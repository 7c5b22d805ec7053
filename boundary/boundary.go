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

// Package boundary provides an explicit failure-reporting channel for the
// edge of an application.
//
// Instead of letting a failure escape to some implicit top-level handler,
// components Report it to a Supervisor together with a recovery action. The
// supervisor tracks one failure state machine (idle, failed, recovering) and
// publishes each report as a Notification that an operator loop consumes:
// run the recovery action, show the error, or give up deliberately.
package boundary

import (
	"context"
	"sync"

	"dirpx.dev/tryx"
)

// State is the supervisor's position in the failure lifecycle.
type State int

const (
	// StateIdle means no unresolved failure is known.
	StateIdle State = iota

	// StateFailed means a failure was reported and not yet recovered.
	StateFailed

	// StateRecovering means a recovery action is currently running.
	StateRecovering
)

// String returns the lowercase state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFailed:
		return "failed"
	case StateRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// Notification is one reported failure together with its recovery action.
type Notification struct {
	// Err is the structured failure that was reported.
	Err *tryx.Error

	// Recover runs the recovery action supplied with the report. It returns
	// nil and moves the supervisor back to idle on success; on failure the
	// supervisor stays failed with the new error. Recover is nil when the
	// reporter supplied no action.
	Recover func(ctx context.Context) *tryx.Error
}

// Supervisor is a small failure state machine for one subsystem.
//
// Reports are serialized by an internal mutex; notifications are delivered
// through a buffered channel. When no consumer keeps up, the oldest pending
// notification is dropped in favor of the newest, so the channel always
// tends toward the most recent failure.
type Supervisor struct {
	mu    sync.Mutex
	state State
	last  *tryx.Error

	notif chan Notification
}

// NewSupervisor creates a Supervisor in the idle state with room for buffer
// pending notifications. Non-positive buffers get a single slot.
func NewSupervisor(buffer int) *Supervisor {
	if buffer <= 0 {
		buffer = 1
	}
	return &Supervisor{notif: make(chan Notification, buffer)}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the last reported failure, or nil while idle.
func (s *Supervisor) Err() *tryx.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Notifications returns the channel the consumer loop receives on.
func (s *Supervisor) Notifications() <-chan Notification {
	return s.notif
}

// Report records a failure and publishes a Notification for it. Arbitrary
// error values are classified through the default factory, so callers can
// hand over plain errors or recovered panic conversions alike.
//
// retry, when non-nil, becomes the notification's recovery action. Reporting
// nil is a no-op.
func (s *Supervisor) Report(err error, retry func(ctx context.Context) error) {
	e := tryx.From(err)
	if e == nil {
		return
	}

	s.mu.Lock()
	s.state = StateFailed
	s.last = e
	s.mu.Unlock()

	n := Notification{Err: e}
	if retry != nil {
		n.Recover = s.recoverAction(retry)
	}
	s.publish(n)
}

// Resolve clears the failure state without running a recovery action. Used
// when the operator decides the failure is stale or handled out of band.
func (s *Supervisor) Resolve() {
	s.mu.Lock()
	s.state = StateIdle
	s.last = nil
	s.mu.Unlock()
}

// recoverAction wraps the caller's retry so that running it drives the state
// machine: recovering while in flight, idle on success, failed again (with
// the new error) otherwise.
func (s *Supervisor) recoverAction(retry func(ctx context.Context) error) func(ctx context.Context) *tryx.Error {
	return func(ctx context.Context) *tryx.Error {
		s.mu.Lock()
		s.state = StateRecovering
		s.mu.Unlock()

		if err := tryx.Do(func() error { return retry(ctx) }); err != nil {
			s.mu.Lock()
			s.state = StateFailed
			s.last = err
			s.mu.Unlock()
			return err
		}

		s.Resolve()
		return nil
	}
}

// publish delivers n, evicting the oldest pending notification when the
// buffer is full.
func (s *Supervisor) publish(n Notification) {
	for {
		select {
		case s.notif <- n:
			return
		default:
		}
		select {
		case <-s.notif:
		default:
		}
	}
}
