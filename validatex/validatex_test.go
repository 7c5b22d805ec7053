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

package validatex

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"dirpx.dev/tryx/apis"
	"dirpx.dev/tryx/kind"
)

type signupRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Address  struct {
		City string `validate:"required"`
	}
}

func TestValidator_Struct_Invalid(t *testing.T) {
	v := New()

	var req signupRequest
	req.Email = "not-an-email"
	req.Password = "short"

	e := v.Struct(req)
	if e == nil {
		t.Fatal("Struct() = nil, want error")
	}
	if e.Kind != kind.ValidationError {
		t.Fatalf("Kind = %q, want %q", e.Kind, kind.ValidationError)
	}
	if got, want := e.Message, "validation failed on 3 fields"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
	if e.Cause == nil {
		t.Fatal("Cause = nil, want original validator error")
	}

	ds := e.ErrorDetails()
	if len(ds) != 3 {
		t.Fatalf("len(details) = %d, want 3", len(ds))
	}
	byField := map[string]apis.Detail{}
	for _, d := range ds {
		if d.Type != "field_violation" {
			t.Fatalf("detail type = %q, want field_violation", d.Type)
		}
		byField[d.Field] = d
	}

	if d, ok := byField["Email"]; !ok || d.Reason != "email" {
		t.Fatalf("Email detail = %+v, want reason %q", d, "email")
	}
	if d, ok := byField["Password"]; !ok || d.Reason != "min" {
		t.Fatalf("Password detail = %+v, want reason %q", d, "min")
	} else if d.Info["param"] != "8" {
		t.Fatalf("Password param = %q, want %q", d.Info["param"], "8")
	}
	// Nested fields keep their path below the root struct.
	if d, ok := byField["Address.City"]; !ok || d.Reason != "required" {
		t.Fatalf("Address.City detail = %+v, want reason %q", d, "required")
	}
}

func TestValidator_Struct_Valid(t *testing.T) {
	v := New()

	var req signupRequest
	req.Email = "user@example.com"
	req.Password = "correcthorse"
	req.Address.City = "Berlin"

	if e := v.Struct(req); e != nil {
		t.Fatalf("Struct() = %v, want nil", e)
	}
}

func TestValidator_Var(t *testing.T) {
	v := New()

	if e := v.Var("user@example.com", "required,email"); e != nil {
		t.Fatalf("Var(valid) = %v, want nil", e)
	}

	e := v.Var("", "required,email")
	if e == nil {
		t.Fatal("Var(invalid) = nil, want error")
	}
	if e.Kind != kind.ValidationError {
		t.Fatalf("Kind = %q, want %q", e.Kind, kind.ValidationError)
	}
	if got, want := e.Message, "validation failed on 1 field"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestValidator_NonStructInput(t *testing.T) {
	v := New()

	e := v.Struct(42)
	if e == nil {
		t.Fatal("Struct(42) = nil, want error")
	}
	if e.Kind != kind.ValidationError {
		t.Fatalf("Kind = %q, want %q", e.Kind, kind.ValidationError)
	}
	if len(e.ErrorDetails()) != 0 {
		t.Fatalf("details = %v, want none", e.ErrorDetails())
	}
}

func TestConvert(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if e := Convert(nil); e != nil {
			t.Fatalf("Convert(nil) = %v, want nil", e)
		}
	})

	t.Run("plain error is classified", func(t *testing.T) {
		cause := errors.New("disk on fire")
		e := Convert(cause)
		if e == nil {
			t.Fatal("Convert() = nil, want error")
		}
		if e.Kind != kind.Error {
			t.Fatalf("Kind = %q, want %q", e.Kind, kind.Error)
		}
		if !errors.Is(e, cause) {
			t.Fatal("errors.Is(e, cause) = false, want true")
		}
	})
}

func TestUnderlying_CustomTag(t *testing.T) {
	v := New()
	err := v.Underlying().RegisterValidation("even", func(fl validator.FieldLevel) bool {
		n, ok := fl.Field().Interface().(int)
		return ok && n%2 == 0
	})
	if err != nil {
		t.Fatalf("RegisterValidation: %v", err)
	}

	if e := v.Var(4, "even"); e != nil {
		t.Fatalf("Var(4, even) = %v, want nil", e)
	}
	e := v.Var(3, "even")
	if e == nil {
		t.Fatal("Var(3, even) = nil, want error")
	}
	if e.ErrorDetails()[0].Reason != "even" {
		t.Fatalf("reason = %q, want %q", e.ErrorDetails()[0].Reason, "even")
	}
}
