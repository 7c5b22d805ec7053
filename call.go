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
	"time"

	"github.com/benbjohnson/clock"

	"dirpx.dev/tryx/kind"
	"dirpx.dev/tryx/scope"
)

// CallOption configures a single Sync/Async/Go/Do invocation: which factory
// converts failures, how the resulting error is tagged, and (for Async) how
// long the operation may run.
type CallOption func(*callOptions)

type callOptions struct {
	factory *Factory
	kind    kind.Kind
	scope   scope.Scope
	message string
	context map[string]any
	timeout time.Duration
	clock   clock.Clock
}

func newCallOptions(opts []CallOption) *callOptions {
	o := &callOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithKind forces the kind of any error produced by the call, overriding
// classification. Invalid kinds are ignored.
func WithKind(k kind.Kind) CallOption {
	return func(o *callOptions) {
		if kind.Validate(k) == nil {
			o.kind = k
		}
	}
}

// WithScope tags errors produced by the call with an operation scope.
func WithScope(s scope.Scope) CallOption {
	return func(o *callOptions) { o.scope = s }
}

// WithMessage overrides the message of any error produced by the call.
func WithMessage(msg string) CallOption {
	return func(o *callOptions) { o.message = msg }
}

// WithContext merges extra key/values into any error produced by the call.
// Multiple WithContext options accumulate; later keys win.
func WithContext(kv map[string]any) CallOption {
	return func(o *callOptions) {
		if len(kv) == 0 {
			return
		}
		if o.context == nil {
			o.context = make(map[string]any, len(kv))
		}
		for k, v := range kv {
			o.context[k] = v
		}
	}
}

// WithContextValue adds one context key/value to any error produced by the
// call.
func WithContextValue(k string, v any) CallOption {
	return func(o *callOptions) {
		if o.context == nil {
			o.context = make(map[string]any, 1)
		}
		o.context[k] = v
	}
}

// WithTimeout bounds an Async/Go call. The operation races a timer: if the
// timer fires first, the call settles as a TimeoutError and the operation's
// context is canceled. Non-positive values mean no timeout. Sync ignores
// this option.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// WithClock substitutes the clock used for Async timeouts. Tests pass a
// clock.Mock to drive timers deterministically.
func WithClock(c clock.Clock) CallOption {
	return func(o *callOptions) { o.clock = c }
}

// WithFactory routes failure conversion through a specific factory instead
// of the default one, binding the call to that factory's configuration
// store.
func WithFactory(f *Factory) CallOption {
	return func(o *callOptions) { o.factory = f }
}

func (o *callOptions) theFactory() *Factory {
	if o.factory != nil {
		return o.factory
	}
	return defaultFactory
}

func (o *callOptions) theClock() clock.Clock {
	if o.clock != nil {
		return o.clock
	}
	return clock.New()
}

// fail converts a raw failure (an error, a recovered panic value, anything)
// into a structured error and applies the per-call overrides.
func (o *callOptions) fail(v any) *Error {
	e := o.theFactory().from(v, 2, nil)
	if e == nil {
		return nil
	}
	return o.decorate(e)
}

// decorate applies the per-call overrides to an already structured error.
func (o *callOptions) decorate(e *Error) *Error {
	if o.kind != "" {
		cp := *e
		cp.Kind = o.kind
		e = &cp
	}
	if o.scope != "" {
		e = e.WithScope(o.scope)
	}
	if o.message != "" {
		e = e.WithMessage(o.message)
	}
	if len(o.context) > 0 {
		e = e.WithContext(o.context)
	}
	return e
}
