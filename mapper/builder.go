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

type prefixRule struct {
	// prefix is the raw, dot-separated scope prefix (may contain "*").
	// It is validated/normalized when we build the per-kind trie.
	prefix string
	// val is the numeric transport status to apply when this prefix matches.
	// For HTTP this is the final value; for gRPC we store ints in the builder
	// and convert to codes.Code later.
	val int
}

type builder struct {
	// user-provided adjustments (applied on top of library defaults)

	// httpDefaults holds per-kind HTTP defaults that override library defaults.
	httpDefaults map[kind.Kind]int
	// grpcDefaults holds per-kind gRPC defaults as ints; converted to codes.Code in New().
	grpcDefaults map[kind.Kind]int

	// httpOverride holds exact per-kind HTTP overrides (higher than defaults).
	httpOverride map[kind.Kind]int
	// grpcOverride holds exact per-kind gRPC overrides as ints; converted in New().
	grpcOverride map[kind.Kind]int

	// httpPrefixes holds per-kind LPM rules for HTTP, defined as raw prefixRule
	// and later compiled into a segment trie.
	httpPrefixes map[kind.Kind][]prefixRule
	// grpcPrefixes holds per-kind LPM rules for gRPC.
	grpcPrefixes map[kind.Kind][]prefixRule

	// global fallbacks used when a kind has no default at all.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		// we size the maps roughly to the number of built-in defaults
		httpDefaults: make(map[kind.Kind]int, len(defaultHTTP)),
		grpcDefaults: make(map[kind.Kind]int, len(defaultGRPC)),

		// overrides and prefixes are usually few
		httpOverride: make(map[kind.Kind]int),
		grpcOverride: make(map[kind.Kind]int),
		httpPrefixes: make(map[kind.Kind][]prefixRule),
		grpcPrefixes: make(map[kind.Kind][]prefixRule),

		// hard fallbacks if the kind was never seen
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
