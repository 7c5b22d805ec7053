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

package mapper

import (
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/tryx/kind"
)

// defaultHTTP defines the library's built-in HTTP mappings for the built-in
// error kinds. These are only defaults: callers are expected to override them
// at the boundary where HTTP is actually produced (REST gateway, HTTP
// handler, etc.), typically with per-scope prefix rules.
var defaultHTTP = map[kind.Kind]int{
	// 5xx — server-side, classification, or dependency failures.
	kind.Error:        http.StatusInternalServerError, // Plain classified error with no sharper category.
	kind.UnknownError: http.StatusInternalServerError, // Non-error value surfaced as a failure; nothing safer to say.
	kind.StringError:  http.StatusInternalServerError, // A bare string was used as a failure.
	kind.PanicError:   http.StatusInternalServerError, // Recovered panic; never expose internals.
	kind.ConfigError:  http.StatusInternalServerError, // Misconfiguration is an operator problem, not the client's.
	kind.IOError:      http.StatusInternalServerError, // Local I/O failed underneath the request.
	kind.NetworkError: http.StatusBadGateway,          // A dependency was unreachable in a way visible to the client.
	kind.TimeoutError: http.StatusGatewayTimeout,      // Operation exceeded its time budget.
	// Note: 499 is a non-standard but widely used status (nginx) for
	// "client closed request". We stay standard and use 408 for aborts;
	// integrators may override.
	kind.AbortError: http.StatusRequestTimeout,

	// 4xx — client/input/resource issues.
	kind.ValidationError: http.StatusBadRequest,      // Malformed input, contract violation.
	kind.NotFoundError:   http.StatusNotFound,        // Target resource does not exist (or is not visible).
	kind.PermissionError: http.StatusForbidden,       // Caller is known but not allowed.
	kind.ConflictError:   http.StatusConflict,        // Conflicting update or concurrent modification.
	kind.RateLimitError:  http.StatusTooManyRequests, // Caller hit a rate limit or quota.
}

// defaultGRPC defines the library's built-in gRPC mappings for the built-in
// error kinds. Values are chosen to align with canonical gRPC status codes
// while preserving tryx failure semantics. As with HTTP, callers may override
// these at the transport edge.
var defaultGRPC = map[kind.Kind]codes.Code{
	// Unclassifiable failures map to Unknown rather than Internal: the
	// library genuinely does not know what happened.
	kind.Error:        codes.Unknown,
	kind.UnknownError: codes.Unknown,
	kind.StringError:  codes.Unknown,

	// Server-side failures.
	kind.PanicError:  codes.Internal, // A bug, by definition.
	kind.ConfigError: codes.Internal, // Deployment problem; client cannot fix it.
	kind.IOError:     codes.Internal,

	// Dependencies, time, cancellation.
	kind.NetworkError: codes.Unavailable,      // Dependency temporarily unreachable; retryable.
	kind.TimeoutError: codes.DeadlineExceeded, // Time budget exceeded.
	kind.AbortError:   codes.Canceled,         // Caller canceled or context expired upstream.

	// Client/input/resource issues.
	kind.ValidationError: codes.InvalidArgument,
	kind.NotFoundError:   codes.NotFound,
	kind.PermissionError: codes.PermissionDenied,
	kind.ConflictError:   codes.Aborted,           // Concurrent-modification style conflicts.
	kind.RateLimitError:  codes.ResourceExhausted, // Rate limit or quota hit.
}
