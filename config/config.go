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

package config

import (
	gojson "github.com/goccy/go-json"

	"dirpx.dev/tryx/kind"
)

// Config is one immutable snapshot of error-construction behavior.
//
// Callers receive Config by value from Store.Get / Store.Load and MUST NOT
// assume changes to the returned value affect the store — they don't. All
// updates go through Store.Apply / Store.UsePreset.
type Config struct {
	// CaptureStackTrace enables call-stack capture on error creation.
	// Ignored (treated as false) when MinimalErrors is set.
	CaptureStackTrace bool

	// StackTraceLimit bounds the number of captured frames. Values <= 0
	// fall back to the library default depth.
	StackTraceLimit int

	// IncludeSource enables recording of the creation site (file, line,
	// function) on the error. Ignored when MinimalErrors is set.
	IncludeSource bool

	// MinimalErrors switches the factory into its cheapest mode: only kind,
	// message and cause are populated; stack, source, timestamp and context
	// capture are all skipped. Intended for hot paths.
	MinimalErrors bool

	// SkipTimestamp omits the creation timestamp even outside minimal mode.
	// Useful for deterministic tests and for callers that stamp errors
	// themselves.
	SkipTimestamp bool

	// SkipContext drops caller-supplied context maps instead of copying
	// them onto the error.
	SkipContext bool

	// SuppressEvents disables creation-event delivery to the process-wide
	// listener set and the OnError hook.
	SuppressEvents bool

	// DefaultKind is substituted when the factory is given an empty or
	// invalid kind. Must be a valid kind; Normalize() repairs invalid
	// values back to kind.UnknownError.
	DefaultKind kind.Kind

	// OnError, when non-nil, is invoked synchronously with every error the
	// factory creates (unless SuppressEvents is set). Panics inside the
	// hook are swallowed; the hook must not block.
	OnError func(err error)

	// Serializer converts error views to bytes for transport adapters.
	// When nil, the library default (goccy/go-json) is used.
	Serializer func(v any) ([]byte, error)
}

// defaultStackDepth is the frame bound used when StackTraceLimit <= 0.
const defaultStackDepth = 32

// Defaults returns the documented default configuration: full capture mode
// with stacks, source locations and timestamps enabled.
func Defaults() Config {
	return Config{
		CaptureStackTrace: true,
		StackTraceLimit:   defaultStackDepth,
		IncludeSource:     true,
		DefaultKind:       kind.UnknownError,
		Serializer:        gojson.Marshal,
	}
}

// Normalize repairs a Config in place after merging arbitrary overlays:
// an invalid or empty DefaultKind falls back to kind.UnknownError, a
// non-positive StackTraceLimit falls back to the default depth, and a nil
// Serializer falls back to the library default.
//
// Bad configuration input never fails loudly — it degrades to defaults.
func (c *Config) Normalize() {
	if kind.Validate(c.DefaultKind) != nil {
		c.DefaultKind = kind.UnknownError
	}
	if c.StackTraceLimit <= 0 {
		c.StackTraceLimit = defaultStackDepth
	}
	if c.Serializer == nil {
		c.Serializer = gojson.Marshal
	}
}

// Partial is a merge overlay for Config. Nil fields keep the current value;
// non-nil fields overwrite it. Function fields use nil as "keep" as well, so
// a hook can be replaced but not removed via Partial — use a preset or Reset
// to clear hooks.
type Partial struct {
	CaptureStackTrace *bool
	StackTraceLimit   *int
	IncludeSource     *bool
	MinimalErrors     *bool
	SkipTimestamp     *bool
	SkipContext       *bool
	SuppressEvents    *bool
	DefaultKind       *kind.Kind
	OnError           func(err error)
	Serializer        func(v any) ([]byte, error)
}

// merge applies the overlay onto a copy of base and returns the result.
// Scalars overwrite field-by-field; the result is normalized before use.
func merge(base Config, p Partial) Config {
	out := base
	if p.CaptureStackTrace != nil {
		out.CaptureStackTrace = *p.CaptureStackTrace
	}
	if p.StackTraceLimit != nil {
		out.StackTraceLimit = *p.StackTraceLimit
	}
	if p.IncludeSource != nil {
		out.IncludeSource = *p.IncludeSource
	}
	if p.MinimalErrors != nil {
		out.MinimalErrors = *p.MinimalErrors
	}
	if p.SkipTimestamp != nil {
		out.SkipTimestamp = *p.SkipTimestamp
	}
	if p.SkipContext != nil {
		out.SkipContext = *p.SkipContext
	}
	if p.SuppressEvents != nil {
		out.SuppressEvents = *p.SuppressEvents
	}
	if p.DefaultKind != nil {
		out.DefaultKind = *p.DefaultKind
	}
	if p.OnError != nil {
		out.OnError = p.OnError
	}
	if p.Serializer != nil {
		out.Serializer = p.Serializer
	}
	out.Normalize()
	return out
}

// Bool, Int and KindOf are tiny helpers for building Partial literals
// without intermediate variables.
func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }

func KindOf(k kind.Kind) *kind.Kind { return &k }
