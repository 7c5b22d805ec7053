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
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"dirpx.dev/tryx/kind"
)

// Environment variable names recognized by LoadEnv. Boolean variables accept
// anything strconv.ParseBool does ("1", "t", "true", ...).
const (
	EnvCaptureStackTrace = "TRYX_CAPTURE_STACK_TRACE"
	EnvStackTraceLimit   = "TRYX_STACK_TRACE_LIMIT"
	EnvIncludeSource     = "TRYX_INCLUDE_SOURCE"
	EnvMinimalErrors     = "TRYX_MINIMAL_ERRORS"
	EnvSkipTimestamp     = "TRYX_SKIP_TIMESTAMP"
	EnvSkipContext       = "TRYX_SKIP_CONTEXT"
	EnvSuppressEvents    = "TRYX_SUPPRESS_EVENTS"
	EnvDefaultKind       = "TRYX_DEFAULT_KIND"
	EnvPreset            = "TRYX_PRESET"
)

// LoadEnv builds a Partial overlay from TRYX_* environment variables.
//
// Unset variables leave the corresponding field untouched. Malformed values
// (unparsable booleans or integers, invalid kinds, unknown presets) are
// skipped rather than failing: environment input follows the same
// degrade-to-defaults policy as programmatic configuration, since there is
// no good failure channel at ambient-init time.
func LoadEnv() Partial {
	var p Partial
	if name, ok := os.LookupEnv(EnvPreset); ok {
		if base, err := Preset(name); err == nil {
			p = base
		}
	}
	if v, ok := envBool(EnvCaptureStackTrace); ok {
		p.CaptureStackTrace = &v
	}
	if raw, ok := os.LookupEnv(EnvStackTraceLimit); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			p.StackTraceLimit = &n
		}
	}
	if v, ok := envBool(EnvIncludeSource); ok {
		p.IncludeSource = &v
	}
	if v, ok := envBool(EnvMinimalErrors); ok {
		p.MinimalErrors = &v
	}
	if v, ok := envBool(EnvSkipTimestamp); ok {
		p.SkipTimestamp = &v
	}
	if v, ok := envBool(EnvSkipContext); ok {
		p.SkipContext = &v
	}
	if v, ok := envBool(EnvSuppressEvents); ok {
		p.SuppressEvents = &v
	}
	if raw, ok := os.LookupEnv(EnvDefaultKind); ok {
		if k, err := kind.Parse(raw); err == nil {
			p.DefaultKind = &k
		}
	}
	return p
}

// LoadDotenv loads one or more .env files into the process environment
// (existing variables win, as with godotenv) and then builds an overlay from
// the result. Passing no filenames loads "./.env".
//
// The returned error reports only file-level problems; variable parsing
// follows LoadEnv's skip-on-malformed policy.
func LoadDotenv(filenames ...string) (Partial, error) {
	if err := godotenv.Load(filenames...); err != nil {
		return Partial{}, err
	}
	return LoadEnv(), nil
}

func envBool(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
