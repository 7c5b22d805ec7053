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

// Package httpx writes structured tryx errors as HTTP JSON responses,
// resolving the status through an apis.Mapper and serializing the error view
// with the configured serializer.
package httpx

import (
	"net/http"
	"strconv"
	"sync"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/config"
	"dirpx.dev/tryx/kind"
	"dirpx.dev/tryx/mapper"
)

// Meta carries extra context that the HTTP layer can add on top of tryx.Error.
// All fields are optional and typically come from request context, headers,
// rate-limiter output, or router-level logic.
type Meta struct {
	Correlation       string
	TraceID           string
	SpanID            string
	RetryAfterSeconds int
}

// errorResponse is the wire shape of one error: the public error view plus
// the HTTP-layer metadata. Embedding keeps the view's fields at the top level
// of the JSON object.
type errorResponse struct {
	apis.ErrorView
	Correlation       string `json:"correlation,omitempty"`
	TraceID           string `json:"trace_id,omitempty"`
	SpanID            string `json:"span_id,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// Writer is a thin adapter that knows how to turn a tryx.Error into an HTTP
// response using the provided status mapper.
//
// Both fields are optional: a nil Mapper falls back to a mapper with only the
// built-in kind defaults, and a nil Store falls back to the process-wide
// configuration store. The zero Writer is usable.
type Writer struct {
	Mapper apis.Mapper
	Store  *config.Store
}

// defaultMapper serves Writers with no Mapper set. mapper.New without options
// only installs the built-in defaults and cannot fail.
var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, _ := mapper.New()
	return m
})

// Write resolves the HTTP status via the Mapper, serializes the error view
// with the configured serializer, and writes both to the response.
//
// A Retry-After header is set when Meta carries a positive hint, or — for
// rate-limit failures without a hint — a conservative one second.
//
// No automatic redaction or filtering is performed here: whatever is present
// in the error and Meta is exposed as-is. Higher-level handlers should apply
// policies if needed.
func (w Writer) Write(rw http.ResponseWriter, err *tryx.Error, meta Meta) {
	if err == nil {
		return
	}

	m := w.Mapper
	if m == nil {
		m = defaultMapper()
	}
	st := m.Status(err.Kind, err.Scope)

	resp := errorResponse{
		ErrorView:         err.ErrorView(),
		Correlation:       meta.Correlation,
		TraceID:           meta.TraceID,
		SpanID:            meta.SpanID,
		RetryAfterSeconds: meta.RetryAfterSeconds,
	}

	store := w.Store
	if store == nil {
		store = config.Default()
	}
	b, merr := store.Get().Serializer(resp)
	if merr != nil {
		// The serializer is caller-configured; a failure here must not
		// turn into a panic at the transport edge.
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	if s := retryAfter(err.Kind, meta); s > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(s))
	}
	rw.WriteHeader(st.HTTP)
	_, _ = rw.Write(b)
}

// WriteAny converts an arbitrary failure through the default factory first,
// so handlers can pass plain errors without classifying them by hand.
func (w Writer) WriteAny(rw http.ResponseWriter, err error, meta Meta) {
	if err == nil {
		return
	}
	w.Write(rw, tryx.From(err), meta)
}

// retryAfter decides the Retry-After value in seconds; 0 means "no header".
func retryAfter(k kind.Kind, meta Meta) int {
	if meta.RetryAfterSeconds > 0 {
		return meta.RetryAfterSeconds
	}
	if k == kind.RateLimitError {
		return 1
	}
	return 0
}
