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

// Package config holds the process-wide, versioned configuration that
// controls how tryx errors are constructed.
//
// # Model
//
// Configuration lives in a Store. A Store holds an immutable snapshot
// (Config) plus a monotonically increasing version counter. Updates never
// mutate the current snapshot: they build a new Config by merging a Partial
// overlay (or a named preset) onto the current one, then atomically replace
// the snapshot pointer and bump the version. Readers therefore never observe
// a partially-merged configuration, and no reader lock is needed.
//
// Consumers that derive data from the configuration (the factory's capture
// plan, for instance) must key their caches on the version returned by Load
// and rebuild on mismatch.
//
// # Presets
//
// Presets are named Partial bundles: "development" favors full capture,
// "production" and "minimal" favor cheap errors, "test" is deterministic
// (no timestamps). UsePreset with an unknown name is the single operation
// in this package that fails loudly, with ErrUnknownPreset.
//
// # Sources
//
// Besides programmatic Partial values, overlays can come from a YAML file
// (LoadFile), from TRYX_* environment variables (LoadEnv, optionally seeded
// from a .env file via LoadDotenv), or continuously from a watched file
// (Store.Watch).
//
// A process-wide default Store is exposed via Default() for ergonomic parity
// with ambient-configuration APIs; libraries that want isolation can create
// their own Store and bind a factory to it.
package config
