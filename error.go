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
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/kind"
	"dirpx.dev/tryx/scope"
)

// Error is the canonical structured failure value of tryx.
//
// It carries:
//   - Kind: high-level, normalized classification tag (required);
//   - Scope: optional operation path refining the Kind;
//   - Message: human-oriented description (what went wrong);
//   - Context: arbitrary key/value payload merged from wrapper options;
//   - Cause: the original failure, preserved verbatim for unwrapping;
//   - Source/Stack/Timestamp: capture-mode dependent diagnostics.
//
// Error values are immutable after creation. All mutation helpers (WithX)
// return a shallow copy, so instances can be safely shared across goroutines
// and modified in a functional style. The factory is the only producer;
// IsError relies on this nominal type as its discriminator.
type Error struct {
	// Kind is the primary classification of the error, e.g. "TimeoutError",
	// "ValidationError". Must be a normalized kind from tryx/kind.
	Kind kind.Kind

	// Scope names the operation the error came from, e.g.
	// "storage.pg.connect" or "auth.jwt.verify".
	// May be empty when the Kind is descriptive enough.
	Scope scope.Scope

	// Message is a human-readable explanation. For wrapped errors it
	// defaults to the cause's own message.
	Message string

	// Context is an optional, shallow map of extra fields supplied by the
	// caller at the failure site. The map is treated as immutable:
	// WithContextValue/WithContext always copy it. Omitted entirely when
	// the configuration skips context capture.
	Context map[string]any

	// Details is an optional list of structured sub-failures, e.g. one
	// entry per invalid field from the validation adapter.
	Details []apis.Detail

	// Cause holds the original failure (if any), preserved unmodified so
	// that errors.Is / errors.As and multi-level chains keep working.
	Cause error

	// Source is the creation site of the error. Nil in minimal mode or when
	// source capture is disabled.
	Source *Frame

	// Stack is the captured call stack. Nil in minimal mode or when stack
	// capture is disabled.
	Stack Stack

	// Timestamp is the creation time. Zero when the configuration skips
	// timestamps or in minimal mode.
	Timestamp time.Time
}

// Compile-time checks: Error satisfies the apis contracts the adapters
// consume.
var (
	_ error                = (*Error)(nil)
	_ apis.KindedError     = (*Error)(nil)
	_ apis.ScopedError     = (*Error)(nil)
	_ apis.ContextualError = (*Error)(nil)
	_ apis.DetailedError   = (*Error)(nil)
	_ apis.ViewProvider    = (*Error)(nil)
)

// Error implements the built-in error interface.
//
// The format is:
//
//	<kind>: <message>
//
// or, when Scope is present:
//
//	<kind>:<scope>: <message>
//
// This makes the error both human- and machine-scannable in logs.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Scope != "" {
		return fmt.Sprintf("%s:%s: %s", e.Kind, e.Scope, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// ErrorScope implements apis.ScopedError.
func (e *Error) ErrorScope() string { return string(e.Scope) }

// ErrorContext implements apis.ContextualError. The returned map is a copy;
// callers may mutate it freely.
func (e *Error) ErrorContext() map[string]any {
	if len(e.Context) == 0 {
		return nil
	}
	m := make(map[string]any, len(e.Context))
	for k, v := range e.Context {
		m[k] = v
	}
	return m
}

// ErrorDetails implements apis.DetailedError. May return nil.
func (e *Error) ErrorDetails() []apis.Detail { return e.Details }

// ErrorView implements apis.ViewProvider: a transport-friendly snapshot
// containing everything that is safe to marshal. No redaction happens here;
// API layers decide what to expose.
func (e *Error) ErrorView() apis.ErrorView {
	return apis.ErrorView{
		Kind:    string(e.Kind),
		Scope:   string(e.Scope),
		Message: e.Message,
		Context: e.ErrorContext(),
		Details: e.Details,
	}
}

// Fingerprint returns a stable hash of (kind, scope, source) that telemetry
// sinks can use to group repeated occurrences of the same failure. Errors
// created at the same site with the same classification share a fingerprint
// regardless of message or context.
func (e *Error) Fingerprint() uint64 {
	var b []byte
	b = append(b, e.Kind...)
	b = append(b, '|')
	b = append(b, e.Scope...)
	if e.Source != nil {
		b = append(b, '|')
		b = append(b, e.Source.Function...)
		b = append(b, '|')
		b = fmt.Appendf(b, "%s:%d", e.Source.File, e.Source.Line)
	}
	return xxh3.Hash(b)
}

// WithScope returns a shallow copy of e with the given Scope set.
// The original error is not modified.
func (e *Error) WithScope(s scope.Scope) *Error {
	cp := *e
	cp.Scope = s
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced human message.
// Useful when you want to keep the Kind/Scope but present the message in a
// different language or context.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithContextValue returns a shallow copy of e with one extra key/value in
// Context.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across goroutines or shared error values.
func (e *Error) WithContextValue(k string, v any) *Error {
	cp := *e
	// No context yet — create a new single-entry map.
	if len(cp.Context) == 0 {
		cp.Context = map[string]any{k: v}
		return &cp
	}
	// Copy existing context and add one more.
	m := make(map[string]any, len(cp.Context)+1)
	for k0, v0 := range cp.Context {
		m[k0] = v0
	}
	m[k] = v
	cp.Context = m
	return &cp
}

// WithContext returns a shallow copy of e with all provided kv merged into
// Context.
//
// If the Error already has Context, both maps are copied and merged, with kv
// taking precedence on key conflicts.
func (e *Error) WithContext(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	// No existing context — just copy kv.
	if len(cp.Context) == 0 {
		m := make(map[string]any, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		cp.Context = m
		return &cp
	}
	// Merge existing + new.
	m := make(map[string]any, len(cp.Context)+len(kv))
	for k0, v0 := range cp.Context {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Context = m
	return &cp
}

// WithDetail returns a shallow copy of e with one structured detail
// appended. The details slice is copied, never appended in place.
func (e *Error) WithDetail(d apis.Detail) *Error {
	cp := *e
	ds := make([]apis.Detail, len(cp.Details), len(cp.Details)+1)
	copy(ds, cp.Details)
	cp.Details = append(ds, d)
	return &cp
}

// WithDetails returns a shallow copy of e with all provided details
// appended, in order.
func (e *Error) WithDetails(ds []apis.Detail) *Error {
	if len(ds) == 0 {
		return e
	}
	cp := *e
	merged := make([]apis.Detail, len(cp.Details), len(cp.Details)+len(ds))
	copy(merged, cp.Details)
	cp.Details = append(merged, ds...)
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause
// attached. If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
