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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/tryx/kind"
)

// fileConfig is the YAML shape of a tryx configuration file. All fields are
// optional; absent fields keep whatever the store currently holds. A file
// may name a preset, which is resolved first with the file's explicit fields
// merged on top.
//
// Example:
//
//	preset: production
//	capture_stack_trace: true
//	stack_trace_limit: 16
//	default_kind: ServiceError
type fileConfig struct {
	Preset            *string `yaml:"preset"`
	CaptureStackTrace *bool   `yaml:"capture_stack_trace"`
	StackTraceLimit   *int    `yaml:"stack_trace_limit"`
	IncludeSource     *bool   `yaml:"include_source"`
	MinimalErrors     *bool   `yaml:"minimal_errors"`
	SkipTimestamp     *bool   `yaml:"skip_timestamp"`
	SkipContext       *bool   `yaml:"skip_context"`
	SuppressEvents    *bool   `yaml:"suppress_events"`
	DefaultKind       *string `yaml:"default_kind"`
}

// ParseFile parses YAML bytes into a Partial overlay.
//
// A malformed document, an unknown preset name, or an invalid default kind
// all fail here — file input is untrusted and should be rejected up front
// rather than silently degraded.
func ParseFile(data []byte) (Partial, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Partial{}, fmt.Errorf("tryx: parse config: %w", err)
	}

	var p Partial
	if fc.Preset != nil {
		base, err := Preset(*fc.Preset)
		if err != nil {
			return Partial{}, err
		}
		p = base
	}
	if fc.CaptureStackTrace != nil {
		p.CaptureStackTrace = fc.CaptureStackTrace
	}
	if fc.StackTraceLimit != nil {
		p.StackTraceLimit = fc.StackTraceLimit
	}
	if fc.IncludeSource != nil {
		p.IncludeSource = fc.IncludeSource
	}
	if fc.MinimalErrors != nil {
		p.MinimalErrors = fc.MinimalErrors
	}
	if fc.SkipTimestamp != nil {
		p.SkipTimestamp = fc.SkipTimestamp
	}
	if fc.SkipContext != nil {
		p.SkipContext = fc.SkipContext
	}
	if fc.SuppressEvents != nil {
		p.SuppressEvents = fc.SuppressEvents
	}
	if fc.DefaultKind != nil {
		k, err := kind.Parse(*fc.DefaultKind)
		if err != nil {
			return Partial{}, fmt.Errorf("tryx: config default_kind %q: %w", *fc.DefaultKind, err)
		}
		p.DefaultKind = &k
	}
	return p, nil
}

// LoadFile reads and parses a YAML configuration file into a Partial
// overlay. The overlay is not applied; pass it to Store.Apply (or Configure)
// to install it.
func LoadFile(path string) (Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Partial{}, fmt.Errorf("tryx: read config file: %w", err)
	}
	return ParseFile(data)
}
