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

// Package adapter converts structured tryx errors into the flat apis shapes
// consumed by transport adapters, structured logging, and telemetry.
package adapter

import (
	"dirpx.dev/tryx"
	"dirpx.dev/tryx/apis"
)

// ToDescriptor converts a structured error together with its resolved
// transport status into a portable ErrorDescriptor.
//
// The descriptor is intended for structured logging, tracing, or message bus
// propagation. It carries the logical kind/scope, the concrete transport
// statuses (HTTP and gRPC), and the grouping fingerprint.
func ToDescriptor(e *tryx.Error, st apis.Status) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Kind:        string(e.Kind),
		Scope:       string(e.Scope),
		HTTPStatus:  st.HTTP,
		GRPCCode:    int(st.GRPC),
		Message:     e.Message,
		Fingerprint: e.Fingerprint(),
	}
}

// ToView converts a structured error into a public ErrorView. This function
// performs no automatic redaction or filtering; it exposes exactly what the
// error instance contains, including context and details. It is up to the
// caller or API layer to decide whether to redact sensitive fields.
func ToView(e *tryx.Error) apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	return e.ErrorView()
}
