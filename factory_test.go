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
	"errors"
	"strings"
	"testing"

	"dirpx.dev/tryx/config"
	"dirpx.dev/tryx/kind"
)

func TestFactory_New_FullCapture(t *testing.T) {
	f := NewFactory(config.NewStore())

	e := f.New(kind.IOError, "disk gone")
	if e.Kind != kind.IOError || e.Message != "disk gone" {
		t.Fatalf("unexpected error: %+v", e)
	}
	if e.Source == nil {
		t.Fatal("full mode must record the creation site")
	}
	if !strings.Contains(e.Source.Function, "TestFactory_New_FullCapture") {
		t.Fatalf("source points at %q, want this test", e.Source.Function)
	}
	if len(e.Stack) == 0 {
		t.Fatal("full mode must capture a stack")
	}
	if e.Timestamp.IsZero() {
		t.Fatal("full mode must stamp creation time")
	}
}

func TestFactory_New_InvalidKindFallsBack(t *testing.T) {
	store := config.NewStore()
	store.Apply(config.Partial{DefaultKind: config.KindOf(kind.ConfigError)})
	f := NewFactory(store)

	tests := []struct {
		name string
		k    kind.Kind
	}{
		{"empty", ""},
		{"lowercase", kind.Kind("timeout")},
		{"too short", kind.Kind("Er")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e := f.New(tt.k, "x"); e.Kind != kind.ConfigError {
				t.Fatalf("kind = %s, want configured default", e.Kind)
			}
		})
	}
}

func TestFactory_Wrap_PreservesCause(t *testing.T) {
	f := NewFactory(config.NewStore())
	root := errors.New("root cause")

	e := f.Wrap(kind.NetworkError, root)
	if e.Message != "root cause" {
		t.Fatal("message must default to the cause's")
	}
	if !errors.Is(e, root) {
		t.Fatal("cause must survive wrapping verbatim")
	}

	e2 := f.Wrap(kind.NetworkError, root, WithMessageOption("custom"))
	if e2.Message != "custom" {
		t.Fatal("option must override the default message")
	}
	if !errors.Is(e2, root) {
		t.Fatal("cause lost after message override")
	}
}

func TestFactory_Wrap_NilCause(t *testing.T) {
	f := NewFactory(config.NewStore())
	if f.Wrap(kind.IOError, nil) != nil {
		t.Fatal("wrapping nil must yield nil")
	}
}

func TestFactory_PanickingErrorMethod(t *testing.T) {
	f := NewFactory(config.NewStore())
	cause := (*selfDerefError)(nil)

	e := f.Wrap(kind.IOError, cause)
	if e == nil {
		t.Fatal("Wrap must not rethrow a cause's Error panic")
	}
	if e.Message != "*tryx.selfDerefError" {
		t.Fatalf("message = %q, want the dynamic type name", e.Message)
	}
	if e.Cause != error(cause) {
		t.Fatal("cause must still be preserved verbatim")
	}

	e2 := f.From(error(cause))
	if e2 == nil || e2.Message != "*tryx.selfDerefError" {
		t.Fatalf("From: %+v", e2)
	}

	if Wrap(kind.IOError, cause) == nil {
		t.Fatal("package-level Wrap must not rethrow either")
	}
}

func TestFactory_From(t *testing.T) {
	f := NewFactory(config.NewStore())

	t.Run("nil", func(t *testing.T) {
		if f.From(nil) != nil {
			t.Fatal("nil must stay nil")
		}
	})

	t.Run("existing error passes through", func(t *testing.T) {
		orig := f.New(kind.IOError, "x")
		if got := f.From(orig); got != orig {
			t.Fatal("existing *Error must pass through unchanged")
		}
	})

	t.Run("string", func(t *testing.T) {
		e := f.From("boom")
		if e.Kind != kind.StringError || e.Message != "boom" {
			t.Fatalf("unexpected: %+v", e)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		e := f.From(errors.New("plain"))
		if e.Kind != kind.Error {
			t.Fatalf("kind = %s, want %s", e.Kind, kind.Error)
		}
		if e.Cause == nil {
			t.Fatal("original error must become the cause")
		}
	})

	t.Run("arbitrary value", func(t *testing.T) {
		e := f.From(struct{ N int }{N: 3})
		if e.Kind != kind.UnknownError {
			t.Fatalf("kind = %s, want %s", e.Kind, kind.UnknownError)
		}
		if !strings.Contains(e.Message, "3") {
			t.Fatalf("message %q must render the value", e.Message)
		}
	})
}

func TestFactory_MinimalMode(t *testing.T) {
	store := config.NewStore()
	if _, err := store.UsePreset(config.PresetMinimal); err != nil {
		t.Fatalf("preset: %v", err)
	}
	f := NewFactory(store)

	root := errors.New("root")
	e := f.Wrap(kind.IOError, root, WithContextValueOption("k", "v"))

	if e.Kind != kind.IOError || e.Message != "root" {
		t.Fatalf("minimal mode must keep kind and message: %+v", e)
	}
	if !errors.Is(e, root) {
		t.Fatal("minimal mode must keep the cause")
	}
	if e.Stack != nil || e.Source != nil {
		t.Fatal("minimal mode must not capture stacks or sources")
	}
	if !e.Timestamp.IsZero() {
		t.Fatal("minimal mode must not stamp time")
	}
	if e.Context != nil {
		t.Fatal("minimal mode must drop context")
	}
}

func TestFactory_NoStaleCapturePlan(t *testing.T) {
	store := config.NewStore()
	f := NewFactory(store)

	before := f.New(kind.IOError, "before")
	if len(before.Stack) == 0 {
		t.Fatal("defaults must capture a stack")
	}

	v1 := store.Version()
	v2 := store.Apply(config.Partial{CaptureStackTrace: config.Bool(false)})
	if v2 <= v1 {
		t.Fatal("version must strictly increase")
	}

	after := f.New(kind.IOError, "after")
	if after.Stack != nil {
		t.Fatal("factory acted on a stale capture plan")
	}

	store.Reset()
	again := f.New(kind.IOError, "again")
	if len(again.Stack) == 0 {
		t.Fatal("reset must restore stack capture on the next creation")
	}
}

func TestPackageLevelConstructors_UseDefaultStore(t *testing.T) {
	t.Cleanup(func() { config.Reset() })

	config.Configure(config.Partial{SkipTimestamp: config.Bool(true)})
	e := New(kind.IOError, "x")
	if !e.Timestamp.IsZero() {
		t.Fatal("package-level New must follow the process-wide store")
	}
}

func BenchmarkFactory_New_Minimal(b *testing.B) {
	store := config.NewStore()
	if _, err := store.UsePreset(config.PresetMinimal); err != nil {
		b.Fatal(err)
	}
	f := NewFactory(store)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.New(kind.IOError, "bench")
	}
}
