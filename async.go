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

import (
	"context"
	"time"

	"dirpx.dev/tryx/kind"
)

// Async runs op on its own goroutine and waits for the first of three
// outcomes:
//
//   - op completes: its (value, error) pair settles the result, with errors
//     and panics converted exactly as Sync does;
//   - the caller's ctx is done: the result settles as an AbortError wrapping
//     ctx.Err();
//   - the WithTimeout duration elapses on the call's clock: the result
//     settles as a TimeoutError.
//
// Exactly one outcome wins. On abort and timeout the operation's derived
// context is canceled, so a cooperative op stops promptly; a non-cooperative
// op keeps its goroutine until it returns, but its late outcome is dropped
// into a buffered channel and never observed.
//
// A completed result that is already available is preferred over a
// simultaneously ready abort or timeout, and an abort is preferred over a
// timeout, so deadlines lost by a hair do not mask real outcomes.
func Async[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...CallOption) Result[T] {
	o := newCallOptions(opts)
	if ctx == nil {
		ctx = context.Background()
	}
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan Result[T], 1)
	go func() {
		v, failure := run(func() (T, error) { return op(opCtx) }, o)
		if failure != nil {
			done <- Fail[T](failure)
			return
		}
		done <- Ok(v)
	}()

	var timerC <-chan time.Time
	if o.timeout > 0 {
		t := o.theClock().Timer(o.timeout)
		defer t.Stop()
		timerC = t.C
	}

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		select {
		case res := <-done:
			return res
		default:
		}
		return Fail[T](o.abortFailure(ctx.Err()))
	case <-timerC:
		select {
		case res := <-done:
			return res
		case <-ctx.Done():
			return Fail[T](o.abortFailure(ctx.Err()))
		default:
		}
		return Fail[T](o.timeoutFailure())
	}
}

// Go is the channel-returning variant of Async for callers that want to fan
// out several bounded operations and collect results later. The returned
// channel is buffered and receives exactly one Result.
func Go[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...CallOption) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		out <- Async(ctx, op, opts...)
	}()
	return out
}

// abortFailure builds the AbortError for a canceled call. cause is ctx.Err(),
// preserved for errors.Is interop with context.Canceled.
func (o *callOptions) abortFailure(cause error) *Error {
	msg := "operation aborted"
	if cause != nil {
		msg = cause.Error()
	}
	e := o.theFactory().build(kind.AbortError, msg, cause, 2, nil)
	return o.decorate(e)
}

// timeoutFailure builds the TimeoutError for an expired call. The configured
// timeout rides along as context so telemetry can tell a 50ms budget from a
// 5s one.
func (o *callOptions) timeoutFailure() *Error {
	e := o.theFactory().build(kind.TimeoutError, "operation timed out", context.DeadlineExceeded, 2,
		[]Option{WithContextValueOption("timeout", o.timeout.String())})
	return o.decorate(e)
}
