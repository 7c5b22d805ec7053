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

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame represents a single call site in a captured stack.
type Frame struct {
	// File is the absolute file path as reported by the runtime.
	File string `json:"file"`
	// Line is the line number of the call.
	Line int `json:"line"`
	// Function is the fully-qualified function name (pkg.Func or method).
	Function string `json:"function"`
}

// String renders the frame as "pkg.Func (file:line)".
func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// Stack is a captured call stack, most recent call first.
type Stack []Frame

// String renders the stack one frame per line, for logs and debugging.
func (s Stack) String() string {
	var b strings.Builder
	for i, f := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.String())
	}
	return b.String()
}

// captureStack captures up to limit frames, skipping 'skip' frames on top of
// the internal ones. Frames are resolved via runtime.CallersFrames so that
// inlined calls are expanded correctly.
//
// Skip accounting: +3 covers runtime.Callers itself, captureStack, and the
// factory helper that called us, so the first recorded frame lands at (or
// very near) the user-visible call site.
func captureStack(skip, limit int) Stack {
	pc := make([]uintptr, limit)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// callerFrame resolves just the creation site, for configurations that want
// source locations without paying for a full stack capture.
func callerFrame(skip int) *Frame {
	var pc [1]uintptr
	if runtime.Callers(skip+3, pc[:]) == 0 {
		return nil
	}
	fr, _ := runtime.CallersFrames(pc[:]).Next()
	return &Frame{File: fr.File, Line: fr.Line, Function: fr.Function}
}
