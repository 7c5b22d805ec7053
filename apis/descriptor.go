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

// ErrorDescriptor is a flat, transport-friendly description of a known
// (kind, scope) pair together with its resolved transport statuses.
//
// This type intentionally uses strings (not the internal Kind / Scope value
// types) so that it can live in the public "apis" layer and be used by
// adapters (HTTP, gRPC), structured logging, and user-defined registries.
//
// Implementations may choose to store a richer descriptor internally, but
// this shape is what the rest of the system can rely on.
type ErrorDescriptor struct {
	// Kind is the canonical error kind, e.g. "ValidationError",
	// "TimeoutError", "UnknownError".
	//
	// Implementations SHOULD store only normalized, validated kinds here.
	Kind string `json:"kind"`

	// Scope is the operation the error came from, e.g. "storage.pg.connect".
	//
	// It MAY be empty when the descriptor applies to the whole kind.
	// Implementations SHOULD store only normalized, validated scopes here.
	Scope string `json:"scope,omitempty"`

	// HTTPStatus is an optional HTTP status that should be used when this
	// (kind, scope) is exposed over HTTP. A value of 0 means "not specified".
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is an optional gRPC status code (as integer) that should be
	// used when this (kind, scope) is exposed over gRPC. A value of 0 means
	// "not specified".
	GRPCCode int `json:"grpc_code,omitempty"`

	// Message is an optional human-friendly default message or template that
	// can be used when the error instance itself did not provide one.
	Message string `json:"message,omitempty"`

	// Fingerprint is an optional stable hash of (kind, scope, source) that
	// telemetry sinks can use to group repeated occurrences of the same
	// failure. A value of 0 means "not computed".
	Fingerprint uint64 `json:"fingerprint,omitempty"`
}
