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
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/scope"
)

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithScopeOption sets the Scope on the error being constructed.
// Intended to be used with New/Wrap/From.
func WithScopeOption(s scope.Scope) Option {
	return func(e *Error) *Error {
		return e.WithScope(s)
	}
}

// WithMessageOption replaces the message on the error being constructed.
// For Wrap this overrides the default message taken from the cause.
func WithMessageOption(msg string) Option {
	return func(e *Error) *Error {
		return e.WithMessage(msg)
	}
}

// WithContextValueOption adds a single context key/value on construction.
// Intended to be used with New/Wrap/From.
func WithContextValueOption(k string, v any) Option {
	return func(e *Error) *Error {
		return e.WithContextValue(k, v)
	}
}

// WithContextOption merges multiple context key/values on construction.
// Intended to be used with New/Wrap/From.
func WithContextOption(kv map[string]any) Option {
	return func(e *Error) *Error {
		return e.WithContext(kv)
	}
}

// WithDetailOption appends one structured detail on construction.
func WithDetailOption(d apis.Detail) Option {
	return func(e *Error) *Error {
		return e.WithDetail(d)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with New (Wrap and From set the cause themselves).
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}
