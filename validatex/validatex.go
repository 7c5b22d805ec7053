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

// Package validatex adapts go-playground/validator failures into structured
// ValidationError values with one detail per failing field.
package validatex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/kind"
)

// detailType tags field-level entries so API consumers can discriminate them
// from other detail shapes.
const detailType = "field_violation"

// Validator wraps a configured validator instance and converts its failures
// into structured errors. The zero value is not usable; construct with New.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator backed by a fresh validator.Validate with
// required-struct semantics enabled.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Underlying exposes the wrapped validator.Validate for callers that need to
// register custom tags or translations.
func (x *Validator) Underlying() *validator.Validate { return x.v }

// Struct validates s and converts any failure into a structured error.
// Returns nil when s is valid.
func (x *Validator) Struct(s any) *tryx.Error {
	return Convert(x.v.Struct(s))
}

// Var validates a single value against a tag expression, e.g. "required,email".
func (x *Validator) Var(field any, tag string) *tryx.Error {
	return Convert(x.v.Var(field, tag))
}

// Convert turns a validator error into a structured error:
//
//   - validator.ValidationErrors becomes a ValidationError with one
//     field_violation detail per failing field;
//   - *validator.InvalidValidationError (a non-struct was validated) becomes
//     a ValidationError wrapping the original;
//   - anything else goes through the default factory's classification.
//
// Nil stays nil.
func Convert(err error) *tryx.Error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		e := tryx.Wrap(kind.ValidationError, err,
			tryx.WithMessageOption(summarize(ves)),
		)
		return e.WithDetails(toDetails(ves))
	}

	var ive *validator.InvalidValidationError
	if errors.As(err, &ive) {
		return tryx.Wrap(kind.ValidationError, err)
	}

	return tryx.From(err)
}

// toDetails converts each field error into an apis.Detail. Field names use
// the namespace below the struct root ("Address.City" rather than
// "User.Address.City"), which matches what clients see in request payloads.
func toDetails(ves validator.ValidationErrors) []apis.Detail {
	ds := make([]apis.Detail, 0, len(ves))
	for _, fe := range ves {
		d := apis.Detail{
			Type:   detailType,
			Field:  trimRootNamespace(fe.Namespace()),
			Reason: fe.Tag(),
		}
		if fe.Param() != "" {
			d.Info = map[string]string{"param": fe.Param()}
		}
		ds = append(ds, d)
	}
	return ds
}

func summarize(ves validator.ValidationErrors) string {
	if len(ves) == 1 {
		return "validation failed on 1 field"
	}
	return fmt.Sprintf("validation failed on %d fields", len(ves))
}

// trimRootNamespace drops the leading struct name from a namespace path.
func trimRootNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
