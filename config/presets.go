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
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned by Preset / Store.UsePreset when the given
// name does not resolve to a registered preset. This is deliberately the only
// loud failure in the configuration API: a typo in a preset name is a
// programming error, not a condition to degrade around.
var ErrUnknownPreset = errors.New("tryx: unknown config preset")

// Preset names understood by UsePreset. Kept as constants so call sites can
// reference them without magic strings.
const (
	// PresetDevelopment favors full capture: stacks, source locations and
	// timestamps on every error. Expensive but maximally debuggable.
	PresetDevelopment = "development"

	// PresetProduction keeps source locations and timestamps but skips
	// stack capture, trading debuggability for allocation rate.
	PresetProduction = "production"

	// PresetMinimal produces the cheapest possible errors: kind, message
	// and cause only. For hot paths where error construction cost matters.
	PresetMinimal = "minimal"

	// PresetTest is PresetDevelopment without timestamps, so error values
	// compare deterministically across test runs.
	PresetTest = "test"
)

// presets maps names to their overlay bundles. The bundles set every
// capture-related field explicitly so that switching presets is not order
// dependent — applying "minimal" after "development" fully undoes it.
var presets = map[string]Partial{
	PresetDevelopment: {
		CaptureStackTrace: Bool(true),
		IncludeSource:     Bool(true),
		MinimalErrors:     Bool(false),
		SkipTimestamp:     Bool(false),
		SkipContext:       Bool(false),
	},
	PresetProduction: {
		CaptureStackTrace: Bool(false),
		IncludeSource:     Bool(true),
		MinimalErrors:     Bool(false),
		SkipTimestamp:     Bool(false),
		SkipContext:       Bool(false),
	},
	PresetMinimal: {
		CaptureStackTrace: Bool(false),
		IncludeSource:     Bool(false),
		MinimalErrors:     Bool(true),
		SkipTimestamp:     Bool(true),
		SkipContext:       Bool(true),
	},
	PresetTest: {
		CaptureStackTrace: Bool(true),
		IncludeSource:     Bool(true),
		MinimalErrors:     Bool(false),
		SkipTimestamp:     Bool(true),
		SkipContext:       Bool(false),
	},
}

// Preset resolves a preset name to its Partial overlay.
// Unknown names fail with an error wrapping ErrUnknownPreset.
func Preset(name string) (Partial, error) {
	p, ok := presets[name]
	if !ok {
		return Partial{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return p, nil
}

// PresetNames returns the sorted list of registered preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
