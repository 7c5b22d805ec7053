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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Kind is the canonical, validated representation of an error kind.
//
// It is defined as a separate type (not just string) so that other packages
// can explicitly declare which values they expect and to avoid accidental
// mixing of raw user input with normalized values.
//
// IMPORTANT: Empty kinds ("") are NOT allowed. Every finished error MUST
// carry a non-empty kind; the factory substitutes the configured default
// kind for empty or invalid input instead of failing.
type Kind string

// MinLength and MaxLength define the allowed length range for a canonical
// tryx kind.
//
// We keep these values as separate constants so they can be referenced in
// validation errors, tests, or in other packages that want to mirror the same
// constraints.
const (
	// MinLength is the minimum length for a valid kind.
	// We require at least 3 characters so that ultra-short and ambiguous
	// identifiers like "E" or "X1" are not accepted.
	MinLength = 3

	// MaxLength is the maximum length for a valid kind.
	// 64 characters is enough for descriptive kinds like
	// "PaymentDeclinedError" while still preventing unbounded strings.
	MaxLength = 64
)

const (
	// kindFmt is the canonical regular expression used to validate error kinds.
	//
	// The pattern is intentionally kept in a separate constant so that:
	//   - it can be referenced from tests;
	//   - it is obvious that the regexp below is derived from this exact pattern;
	//   - it is easy to keep the regexp and the length constraints in sync.
	//
	// Pattern breakdown:
	//
	//	^ - start of string;
	//	[A-Z] - first character must be an uppercase ASCII letter;
	//	[A-Za-z0-9]{2,63} - the remaining characters may be ASCII letters or
	//	                    digits; the quantifier {2,63} makes the total
	//	                    length 3..64 characters (1 + 2..63);
	//	$ - end of string;
	//
	// IMPORTANT: the numeric range {2,63} is tied to MinLength / MaxLength above.
	// If you change MinLength / MaxLength, make sure to adjust this pattern as well.
	kindFmt = `^[A-Z][A-Za-z0-9]{2,63}$`
)

var (
	// kindRe is the compiled regular expression used at runtime to validate
	// that a string is a canonical tryx kind.
	//
	// We precompile it so that repeated validations (e.g. in the factory or
	// in classification hot paths) do not pay the compilation cost over and
	// over again.
	//
	// Examples of valid kinds:
	//   - "ValidationError"
	//   - "TimeoutError"
	//   - "UnknownError"
	//   - "Error"
	//
	// Examples of invalid kinds:
	//   - "validationError" (lowercase first letter)
	//   - "Validation-Error" (dash)
	//   - "E"               (too short)
	//   - "1Error"          (does not start with a letter)
	kindRe = regexp.MustCompile(kindFmt)
)

var (
	// ErrKindInvalid is returned when a value cannot be parsed or validated
	// as a tryx kind.
	//
	// Having a dedicated sentinel error makes it easier for callers and tests
	// to detect "this is about kind format" vs "this is some other error".
	ErrKindInvalid = errors.New("tryx: invalid kind")
)

// Ensure Kind implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into larger config or API structs.
var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Empty is the zero-value kind. It is considered "not provided". The factory
// replaces it with the configured default kind; callers that require a valid
// kind should explicitly call Validate.
var Empty Kind = ""

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Kind value.
func Parse(s string) (Kind, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Kind(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring package-level constants in init() or var blocks.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical kind form.
//
// This function is intentionally conservative: it only performs obvious,
// non-lossy transformations:
//
//   - trims surrounding spaces;
//   - removes '-' and '_' separators (so "timeout-error" becomes "timeouterror"
//     only when the pieces are already capitalized correctly; see below);
//   - upper-cases the first letter;
//
// Separator removal capitalizes the letter following each removed separator,
// so "network-error" normalizes to "NetworkError". It does NOT guarantee that
// the result is valid — callers should still call Validate/Parse afterwards.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upNext := true
	for _, r := range s {
		if r == '-' || r == '_' || r == ' ' {
			upNext = true
			continue
		}
		if upNext {
			r = unicode.ToUpper(r)
			upNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Validate checks whether the provided Kind is valid.
// The empty kind ("") is considered invalid.
func Validate(k Kind) error {
	return validate(string(k))
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
//
// It always returns the canonical string representation.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (k *Kind) UnmarshalText(text []byte) error {
	// We copy into a buffer to avoid changing the input slice.
	s := string(bytes.TrimSpace(text))
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// validate is a helper that checks whether the provided string is a valid kind.
func validate(s string) error {
	if !kindRe.MatchString(s) {
		return ErrKindInvalid
	}
	return nil
}
