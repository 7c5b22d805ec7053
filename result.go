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

package tryx

// Result is a discriminated success-or-error value.
//
// A Result either holds a success payload T or a structured *Error, never
// both. The payload is stored inline: constructing a successful Result does
// not allocate and does not wrap the value in any way, so the success path
// of the wrappers stays zero-overhead.
//
// The zero value of Result[T] is a successful result holding T's zero value.
// That makes "declare and fill in" usage safe, but prefer Ok/Fail for
// clarity.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok returns a successful Result holding v. The value is stored unmodified;
// Value returns the very same v back.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result carrying e. Passing a nil error produces a
// successful Result holding T's zero value — a nil *Error means "no error"
// everywhere in this package.
func Fail[T any](e *Error) Result[T] {
	return Result[T]{err: e}
}

// Of converts a conventional (value, error) return pair into a Result,
// classifying a non-nil error through the default factory. It is the bridge
// from stdlib-style APIs into result-style code:
//
//	res := tryx.Of(os.Open(path))
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](From(err))
	}
	return Ok(v)
}

// IsErr reports whether the result carries an error.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Value returns the success payload. For failed results it returns T's zero
// value; check IsErr (or use Unpack) first.
func (r Result[T]) Value() T { return r.value }

// Err returns the structured error, or nil for successful results.
func (r Result[T]) Err() *Error { return r.err }

// Unpack splits the result back into a conventional (value, error) pair.
func (r Result[T]) Unpack() (T, *Error) { return r.value, r.err }

// ValueOr returns the payload for successful results and fallback otherwise.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// IsError reports whether v is a structured tryx error.
//
// Discrimination is nominal, not structural: only the concrete *Error type
// produced by this package qualifies. Hand-crafted values that imitate the
// error shape, plain errors, nil, and typed-nil *Error all report false, so
// a legitimate success payload can never be mistaken for an error.
func IsError(v any) bool {
	e, ok := v.(*Error)
	return ok && e != nil
}
