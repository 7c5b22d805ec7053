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

// Package grpcx maps structured tryx errors onto gRPC statuses with
// google.rpc error details, so clients receive the kind, scope and context
// of a failure in a standard, language-neutral shape.
package grpcx

import (
	"context"
	"errors"
	"strconv"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/kind"
)

// errorDomain identifies this library in google.rpc.ErrorInfo details.
const errorDomain = "tryx.dirpx.dev"

// Extras holds optional correlation metadata embedded into the ErrorInfo
// detail. All fields are optional.
type Extras struct {
	// CorrelationID is a client/server correlation token (request ID,
	// idempotency key).
	CorrelationID string

	// TraceID is the distributed trace identifier (W3C traceparent /
	// OpenTelemetry).
	TraceID string

	// SpanID is the span identifier within the trace.
	SpanID string
}

// MetaFn extracts Extras from context and the structured error.
// It can return an empty Extras if nothing is available.
type MetaFn func(ctx context.Context, e *tryx.Error) Extras

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// tryx errors into gRPC statuses carrying google.rpc details:
//
//   - ErrorInfo with the kind (as reason), scope, fingerprint and Extras;
//   - a Struct with the error's context, when it has one;
//   - BadRequest field violations, when the error carries details;
//   - RetryInfo with a backoff hint for rate-limit failures.
//
// The provided apis.Mapper resolves the transport status. Errors that are
// not structured tryx errors pass through untouched. The optional MetaFn can
// extract correlation metadata from context; nil means no extra metadata.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	if metaFn == nil {
		metaFn = func(context.Context, *tryx.Error) Extras { return Extras{} }
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var de *tryx.Error
		if !errors.As(err, &de) {
			// Not ours — return as-is.
			return nil, err
		}

		st := m.Status(de.Kind, de.Scope)
		base := gstatus.New(st.GRPC, de.Message)

		details := buildDetails(de, metaFn(ctx, de))
		if with, derr := base.WithDetails(details...); derr == nil {
			return nil, with.Err()
		}

		// Detail attachment is best-effort; the status itself must go out.
		return nil, base.Err()
	}
}

// buildDetails assembles the google.rpc detail messages for one error.
func buildDetails(de *tryx.Error, ex Extras) []protoadapt.MessageV1 {
	meta := map[string]string{}
	if de.Scope != "" {
		meta["scope"] = string(de.Scope)
	}
	if fp := de.Fingerprint(); fp != 0 {
		meta["fingerprint"] = strconv.FormatUint(fp, 16)
	}
	if ex.CorrelationID != "" {
		meta["correlation_id"] = ex.CorrelationID
	}
	if ex.TraceID != "" {
		meta["trace_id"] = ex.TraceID
	}
	if ex.SpanID != "" {
		meta["span_id"] = ex.SpanID
	}

	details := []protoadapt.MessageV1{
		&errdetails.ErrorInfo{
			Reason:   string(de.Kind),
			Domain:   errorDomain,
			Metadata: meta,
		},
	}

	if ctxMap := de.ErrorContext(); len(ctxMap) > 0 {
		// Context values are arbitrary; anything structpb cannot express
		// is simply left out of the wire detail.
		if s, err := structpb.NewStruct(ctxMap); err == nil {
			details = append(details, s)
		}
	}

	if ds := de.ErrorDetails(); len(ds) > 0 {
		br := &errdetails.BadRequest{}
		for _, d := range ds {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       d.Field,
				Description: d.Reason,
			})
		}
		details = append(details, br)
	}

	if de.Kind == kind.RateLimitError {
		details = append(details, &errdetails.RetryInfo{
			RetryDelay: durationpb.New(time.Second),
		})
	}

	return details
}

// ExtractErrorInfo pulls the google.rpc.ErrorInfo detail out of a gRPC
// error, if present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}
