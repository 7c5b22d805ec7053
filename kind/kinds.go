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

package kind

// Core / generic error kinds
//
// These kinds describe high-level, transport-agnostic error classes that the
// factory assigns when classifying arbitrary recovered values.
const (
	// Error is the classification for a plain, otherwise unremarkable error
	// value. The factory assigns it when a recovered value implements the
	// error interface but matches no more specific rule.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 500.
	Error Kind = "Error"

	// UnknownError is the terminal fallback classification. The factory
	// assigns it when a recovered value is neither an error nor a string
	// and matches no registered rule. It is also the library default kind
	// used when a caller passes an empty kind to the factory.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 500.
	UnknownError Kind = "UnknownError"

	// StringError is assigned when the recovered value is a bare string
	// (e.g. a string panic). The string becomes the error message.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 500.
	StringError Kind = "StringError"

	// PanicError is assigned when the recovered value is a runtime error
	// (nil dereference, index out of range, integer divide by zero).
	// The original runtime error is preserved as the cause.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 500.
	PanicError Kind = "PanicError"

	// ValidationError indicates that an input value, entity, or payload
	// violates a structural or semantic invariant. The validatex adapter
	// produces this kind with per-field details.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 400.
	ValidationError Kind = "ValidationError"
)

// Runtime / operation control error kinds
//
// These kinds describe transient, operational conditions raised by the
// execution wrappers or classified from well-known platform errors.
const (
	// NetworkError indicates that a network-level operation failed: DNS
	// resolution, dial, broken connection. The factory assigns it when the
	// recovered value implements net.Error.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 502.
	NetworkError Kind = "NetworkError"

	// TimeoutError indicates that the operation could not complete within
	// the allotted time budget. Produced by the Async wrapper when a
	// per-call timeout elapses, and by classification of
	// context.DeadlineExceeded.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 504.
	TimeoutError Kind = "TimeoutError"

	// AbortError indicates that the operation was canceled by the caller
	// before it settled. Produced by the Async wrapper when the caller
	// context is done, and by classification of context.Canceled.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 499 (client closed request) or 408
	// depending on policy.
	AbortError Kind = "AbortError"

	// IOError indicates a filesystem or stream-level failure that is not
	// a simple missing file (permission problems aside).
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 500.
	IOError Kind = "IOError"
)

// Resource / policy error kinds
const (
	// NotFoundError indicates that a referenced object does not exist.
	// The factory assigns it when the recovered value wraps fs.ErrNotExist.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 404.
	NotFoundError Kind = "NotFoundError"

	// PermissionError indicates that the caller is not allowed to perform
	// the operation. The factory assigns it when the recovered value wraps
	// fs.ErrPermission.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 403.
	PermissionError Kind = "PermissionError"

	// ConflictError indicates a concurrent modification or a uniqueness
	// violation. Never assigned automatically; reserved for callers.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 409.
	ConflictError Kind = "ConflictError"

	// RateLimitError indicates that the caller exceeded a rate or quota
	// limit. Never assigned automatically; reserved for callers. The httpx
	// writer emits a Retry-After header for this kind.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 429.
	RateLimitError Kind = "RateLimitError"

	// ConfigError indicates an invalid library or application
	// configuration, e.g. an unknown preset name passed to the
	// configuration store.
	//
	// Transport mapper is framework-specific.
	// Can be mapped to an HTTP 500.
	ConfigError Kind = "ConfigError"
)

// Builtin returns the list of kinds the library itself may assign or that
// the default status mapper knows about. The slice is freshly allocated on
// every call, so callers may reorder or extend it freely.
func Builtin() []Kind {
	return []Kind{
		Error,
		UnknownError,
		StringError,
		PanicError,
		ValidationError,
		NetworkError,
		TimeoutError,
		AbortError,
		IOError,
		NotFoundError,
		PermissionError,
		ConflictError,
		RateLimitError,
		ConfigError,
	}
}
