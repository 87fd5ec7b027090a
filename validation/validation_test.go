package validation

import (
	"strings"
	"testing"

	"github.com/kdemir/pipekit/errors"
)

func TestValidator_NoErrors(t *testing.T) {
	v := New()
	if v.HasErrors() {
		t.Fatal("fresh validator should have no errors")
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidator_Required(t *testing.T) {
	v := New().Required("name", "").Required("kind", "Pipeline")
	if !v.HasErrors() {
		t.Fatal("expected error for empty name")
	}
	if len(v.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(v.Errors()))
	}
	if v.Errors()[0].Field != "name" {
		t.Errorf("expected field 'name', got %q", v.Errors()[0].Field)
	}
}

func TestValidator_Name(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"cd-pipeline", true},
		{"init", true},
		{"a", true},
		{"task-2", true},
		{"", false},
		{"Init", false},
		{"-init", false},
		{"init-", false},
		{"run after", false},
		{strings.Repeat("a", 64), false},
	}
	for _, tc := range cases {
		v := New().Name("name", tc.value)
		if tc.valid && v.HasErrors() {
			t.Errorf("%q: expected valid, got %v", tc.value, v.Errors())
		}
		if !tc.valid && !v.HasErrors() {
			t.Errorf("%q: expected invalid", tc.value)
		}
	}
}

func TestValidator_Unique(t *testing.T) {
	seen := make(map[string]bool)
	v := New()
	v.Unique("tasks", "clone", seen)
	v.Unique("tasks", "lint", seen)
	v.Unique("tasks", "clone", seen)
	if len(v.Errors()) != 1 {
		t.Fatalf("expected 1 duplicate error, got %d", len(v.Errors()))
	}
	if !strings.Contains(v.Errors()[0].Message, "clone") {
		t.Errorf("expected message to name the duplicate, got %q", v.Errors()[0].Message)
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New().OneOf("type", "array", "string", "array")
	if v.HasErrors() {
		t.Fatalf("expected valid, got %v", v.Errors())
	}

	v = New().OneOf("type", "object", "string", "array")
	if !v.HasErrors() {
		t.Fatal("expected error for disallowed value")
	}

	// empty passes; Required is the mandatory check
	v = New().OneOf("type", "", "string", "array")
	if v.HasErrors() {
		t.Fatal("expected empty value to pass OneOf")
	}
}

func TestValidator_Validate_AggregatesFields(t *testing.T) {
	v := New().Required("name", "").Name("task", "BAD")
	err := v.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	fields, ok := err.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", err.Details["fields"])
	}
}

func TestStruct_TagValidation(t *testing.T) {
	type params struct {
		Name string `json:"name" validate:"required"`
		Type string `json:"type" validate:"omitempty,oneof=string array"`
	}

	if err := Struct(&params{Name: "branch", Type: "string"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Struct(&params{Type: "object"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if !strings.Contains(appErr.Message, "name") {
		t.Errorf("expected message to mention name, got %q", appErr.Message)
	}
	if !strings.Contains(appErr.Message, "type") {
		t.Errorf("expected message to mention type, got %q", appErr.Message)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("RunAfter"); got != "run_after" {
		t.Errorf("expected run_after, got %q", got)
	}
	if got := toSnakeCase("name"); got != "name" {
		t.Errorf("expected name, got %q", got)
	}
}
