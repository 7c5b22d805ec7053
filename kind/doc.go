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

// Package kind provides parsing, normalization and validation for tryx error kinds.
//
// A "kind" is the top-level, machine-readable classification of an error,
// such as "ValidationError", "NetworkError" or "TimeoutError". Kinds are
// string tags, not a class hierarchy. They are meant to be:
//
//   - short and stable;
//   - CamelCase, ASCII-only;
//   - suitable for use in JSON payloads and for lookup in status mappers.
//
// The namespace is open: callers may define their own kinds as long as they
// pass Validate. The built-in kinds in kinds.go are the ones the rest of the
// library knows how to classify and map by default.
//
// IMPORTANT: Empty kinds ("") are NOT allowed on a finished error. Factory
// constructors substitute the configured default kind when given an empty or
// invalid one.
package kind
