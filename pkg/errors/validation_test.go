package errors

import (
	"math"
	"testing"
)

func TestRangeValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"positive ok", Positive("depth", 10000), false},
		{"positive zero", Positive("depth", 0), true},
		{"positive nan", Positive("depth", math.NaN()), true},
		{"non-negative zero", NonNegative("water_depth", 0), false},
		{"non-negative negative", NonNegative("water_depth", -1), true},
		{"open inside", Open("poisson_ratio", 0.25, 0, 0.5), false},
		{"open at bound", Open("poisson_ratio", 0.5, 0, 0.5), true},
		{"closed at bound", Closed("tectonic_factor", 1, 0, 1), false},
		{"closed outside", Closed("tectonic_factor", 1.1, 0, 1), true},
		{"half-open upper", HalfOpen("biot_coefficient", 1, 0, 1), false},
		{"half-open lower", HalfOpen("biot_coefficient", 0, 0, 1), true},
		{"inf", Closed("x", math.Inf(1), 0, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err != nil && !Is(tt.err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(tt.err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	if err := OneOf("method", "sonic", "sonic", "resistivity"); err != nil {
		t.Errorf("OneOf(sonic) error = %v", err)
	}
	err := OneOf("method", "density", "sonic", "resistivity")
	if err == nil {
		t.Fatal("OneOf(density) should fail")
	}
	want := `method must be one of [sonic, resistivity], got "density"`
	if UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}

func TestFirst(t *testing.T) {
	if err := First(nil, nil); err != nil {
		t.Errorf("First(nil, nil) = %v", err)
	}
	e1 := New(ErrCodeInvalidInput, "a")
	e2 := New(ErrCodeInvalidInput, "b")
	if err := First(nil, e1, e2); err != e1 {
		t.Errorf("First() = %v, want %v", err, e1)
	}
}
