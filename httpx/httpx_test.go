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

package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	gojson "github.com/goccy/go-json"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/config"
	"dirpx.dev/tryx/kind"
	"dirpx.dev/tryx/mapper"
	"dirpx.dev/tryx/scope"
)

func newWriter(t *testing.T) Writer {
	t.Helper()
	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	return Writer{Mapper: m, Store: config.NewStore()}
}

func TestWriter_Write(t *testing.T) {
	w := newWriter(t)

	e := tryx.New(kind.ValidationError, "email is malformed",
		tryx.WithScopeOption(scope.MustParse("api.signup")),
		tryx.WithContextValueOption("field", "email"),
	)

	rec := httptest.NewRecorder()
	w.Write(rec, e, Meta{Correlation: "req-42", TraceID: "abc123"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if ra := rec.Header().Get("Retry-After"); ra != "" {
		t.Fatalf("unexpected Retry-After %q", ra)
	}

	var body struct {
		apis.ErrorView
		Correlation string `json:"correlation"`
		TraceID     string `json:"trace_id"`
	}
	if err := gojson.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Kind != "ValidationError" {
		t.Fatalf("kind = %q, want ValidationError", body.Kind)
	}
	if body.Scope != "api.signup" {
		t.Fatalf("scope = %q, want api.signup", body.Scope)
	}
	if body.Message != "email is malformed" {
		t.Fatalf("message = %q", body.Message)
	}
	if body.Context["field"] != "email" {
		t.Fatalf("context = %v", body.Context)
	}
	if body.Correlation != "req-42" || body.TraceID != "abc123" {
		t.Fatalf("meta = %q/%q", body.Correlation, body.TraceID)
	}
}

func TestWriter_ZeroValueIsUsable(t *testing.T) {
	var w Writer

	rec := httptest.NewRecorder()
	w.Write(rec, tryx.New(kind.NotFoundError, "no such user"), Meta{})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body apis.ErrorView
	if err := gojson.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Kind != "NotFoundError" {
		t.Fatalf("kind = %q, want NotFoundError", body.Kind)
	}
}

func TestWriter_Write_NilError(t *testing.T) {
	w := newWriter(t)
	rec := httptest.NewRecorder()
	w.Write(rec, nil, Meta{})

	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rec.Body.String())
	}
}

func TestWriter_RetryAfter(t *testing.T) {
	w := newWriter(t)

	t.Run("rate limit defaults to one second", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w.Write(rec, tryx.New(kind.RateLimitError, "slow down"), Meta{})

		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want 429", rec.Code)
		}
		if ra := rec.Header().Get("Retry-After"); ra != "1" {
			t.Fatalf("Retry-After = %q, want 1", ra)
		}
	})

	t.Run("meta hint wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w.Write(rec, tryx.New(kind.RateLimitError, "slow down"), Meta{RetryAfterSeconds: 30})

		if ra := rec.Header().Get("Retry-After"); ra != "30" {
			t.Fatalf("Retry-After = %q, want 30", ra)
		}
	})
}

func TestWriter_WriteAny_ClassifiesPlainErrors(t *testing.T) {
	w := newWriter(t)

	rec := httptest.NewRecorder()
	w.WriteAny(rec, errors.New("disk on fire"), Meta{})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body apis.ErrorView
	if err := gojson.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Kind != "Error" {
		t.Fatalf("kind = %q, want Error", body.Kind)
	}
}

func TestWriter_SerializerFailure(t *testing.T) {
	store := config.NewStore()
	store.Apply(config.Partial{
		Serializer: func(any) ([]byte, error) { return nil, errors.New("broken serializer") },
	})

	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	w := Writer{Mapper: m, Store: store}

	rec := httptest.NewRecorder()
	w.Write(rec, tryx.New(kind.ValidationError, "bad input"), Meta{})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rec.Body.String())
	}
}
