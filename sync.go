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

// Sync runs op on the caller's goroutine and converts its outcome into a
// Result. It never panics and never returns a raw error:
//
//   - a (v, nil) return becomes Ok(v) with v untouched;
//   - a non-nil error is classified through the factory and decorated with
//     the per-call options;
//   - a panic inside op is recovered and converted the same way (runtime
//     panics classify as PanicError).
//
// WithTimeout has no effect here: a synchronous call cannot be abandoned
// without leaking the goroutine. Use Async for deadline-bound work.
func Sync[T any](op func() (T, error), opts ...CallOption) Result[T] {
	o := newCallOptions(opts)
	v, err := run(op, o)
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// Do is the value-less variant of Sync for operations that only produce an
// error. It returns nil on success.
func Do(op func() error, opts ...CallOption) *Error {
	o := newCallOptions(opts)
	_, err := run(func() (struct{}, error) {
		return struct{}{}, op()
	}, o)
	return err
}

// run executes op with panic containment. The deferred recover converts a
// panic value into the call's failure unless op already failed normally;
// a re-panic during unwinding after an error return keeps the error.
func run[T any](op func() (T, error), o *callOptions) (v T, failure *Error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			failure = o.fail(r)
		}
	}()
	v, err := op()
	if err != nil {
		var zero T
		return zero, o.fail(err)
	}
	return v, nil
}
