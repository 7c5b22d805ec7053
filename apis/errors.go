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

package apis

// KindedError represents an error that is classified into a well-defined,
// machine-readable error *kind*.
//
// A kind usually denotes a broad category, such as:
//   - "ValidationError" — an input violates an invariant,
//   - "TimeoutError"    — an operation exceeded its time budget,
//   - "AbortError"      — the caller canceled the operation,
//   - "UnknownError"    — unexpected, unclassified failure.
//
// Kinds are intended to be stable string tags, not a class hierarchy. They
// are the primary value that higher-level adapters (HTTP, gRPC) will use to
// decide which status code to return to the client.
//
// Implementations are expected to return a *canonicalized* kind string —
// i.e., normalized to the format enforced by the tryx/kind package (ASCII
// CamelCase, length limits, etc.). Adapters should treat unknown or empty
// kinds as internal/server errors.
type KindedError interface {
	error

	// ErrorKind returns the machine-readable error kind.
	//
	// The returned value MUST be non-empty and MUST already be normalized
	// according to the rules of the tryx subsystem. Callers should not try
	// to "fix" or "guess" the value here — if it's invalid, it should be
	// handled as an internal error at the boundary.
	ErrorKind() string
}

// ScopedError represents an error that provides a more specific, contextual
// *scope* in addition to the high-level kind.
//
// While the kind answers the question "what class of failure is this?", the
// scope answers "which operation failed?".
//
// Examples:
//
//	kind:  "NetworkError"
//	scope: "storage.pg.connect" -> connecting to Postgres failed
//
//	kind:  "ValidationError"
//	scope: "auth.signup.email" -> the signup email failed validation
//
// Scopes are hierarchical, dot-separated strings, validated/normalized by
// the tryx/scope package.
//
// Having a separate interface for scopes allows code to gracefully degrade:
// if an error does not provide a scope, the caller can still act on the kind.
type ScopedError interface {
	error

	// ErrorScope returns the operation scope of the error.
	//
	// The returned value MAY be empty if the error does not name the
	// operation it came from. Callers should be prepared to handle the
	// empty case.
	ErrorScope() string
}

// ContextualError represents an error that carries a caller-supplied context
// map — arbitrary key/value pairs merged from wrapper options at the moment
// the error was created.
//
// Implementations MUST return a copy that is safe for the caller to mutate
// without affecting the stored context (copy-on-read). Returning nil is
// allowed and simply means "no context captured".
type ContextualError interface {
	error

	// ErrorContext returns a copy of the captured context. May return nil.
	ErrorContext() map[string]any
}

// DetailedError represents an error that exposes zero or more structured
// details. This is especially useful for validation scenarios where multiple
// fields may fail at once and the caller needs to show *all* of them.
//
// Implementations SHOULD return a slice that is safe to iterate over and that
// will not be modified by the callee. Returning nil is allowed and simply
// means "no extra details".
type DetailedError interface {
	error

	// ErrorDetails returns structured details of the error. May return nil.
	ErrorDetails() []Detail
}

// CausedError represents an error that exposes its underlying cause.
//
// While Go 1.13 introduced errors.Unwrap, having this interface in apis lets
// us work with wrapped errors even in places where we don't want to depend on
// errors.As / errors.Is directly, or where we want to keep the contract
// explicit. The cause is preserved verbatim by the factory, so multi-level
// chains survive without collapsing information.
//
// Implementations SHOULD return the direct, immediate cause of the error. If
// there is no underlying cause, they SHOULD return nil.
type CausedError interface {
	error

	// Cause returns the underlying error that triggered this error, if any.
	// May return nil.
	Cause() error
}
