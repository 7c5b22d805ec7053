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

// Package tryx turns failures into values.
//
// The core contract is "never throw, always return": the execution wrappers
// Sync and Async run a caller-supplied operation and convert every failure —
// returned errors and recovered panics alike — into a structured *Error
// inside a Result. Application code checks results with IsErr/IsError
// instead of catching anything.
//
// # Building blocks
//
//   - Result[T]: a value that is either the success payload T or an *Error.
//     Success values are stored inline; no wrapper allocation happens on the
//     happy path.
//   - Error: the structured failure value. Classified by a validated Kind
//     (tryx/kind), optionally refined by an operation Scope (tryx/scope),
//     carrying message, caller context, preserved cause, and — depending on
//     configuration — source location, stack and timestamp. Immutable after
//     creation: all WithX helpers return shallow copies.
//   - Factory: New (explicit construction), Wrap (preserve a cause), and
//     From (classify an arbitrary recovered value). Classification runs
//     registered rules in priority order and caches type-determined
//     outcomes in a bounded LRU.
//   - Configuration (tryx/config): a versioned, atomically replaced snapshot
//     controlling how much detail the factory captures. The factory keys its
//     derived capture plan on the config version, so changes are visible on
//     the very next error.
//
// # Discrimination
//
// IsError reports whether a value is a tryx error. Discrimination is
// nominal: only the concrete *Error type of this package qualifies, so a
// success payload can never be mistaken for an error no matter how
// error-shaped it looks.
//
// # Telemetry
//
// Every created error is announced to a process-wide listener set
// (Subscribe) and to the configured OnError hook. Delivery is synchronous,
// fire-and-forget: listener panics are swallowed and never reach the code
// that produced the error.
package tryx
