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

// Package scope provides parsing, normalization and validation for tryx
// operation scopes.
//
// A "scope" names the operation an error came from, as a dot-separated,
// hierarchical identifier: "storage.pg.connect", "auth.jwt.verify",
// "payments.charge.capture". Scopes refine the error kind: while the kind
// answers "what class of failure is this?", the scope answers "which
// operation failed?".
//
// Scopes are optional — the empty scope means "not provided" and is valid
// everywhere. When present they feed the status mapper's longest-prefix
// matching and give telemetry a stable grouping key.
package scope
