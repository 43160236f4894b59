package errors

import (
	"math"
	"slices"
	"strings"
)

// The validators below implement the range checks of the request layer.
// Each returns an ErrCodeInvalidInput error naming the offending field.

// Finite rejects NaN and infinite values.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	return nil
}

// Positive requires v > 0.
func Positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be > 0, got %g", field, v)
	}
	return nil
}

// NonNegative requires v >= 0.
func NonNegative(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must be >= 0, got %g", field, v)
	}
	return nil
}

// Open requires lo < v < hi.
func Open(field string, v, lo, hi float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= lo || v >= hi {
		return New(ErrCodeInvalidInput, "%s must be in (%g, %g), got %g", field, lo, hi, v)
	}
	return nil
}

// Closed requires lo <= v <= hi.
func Closed(field string, v, lo, hi float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be in [%g, %g], got %g", field, lo, hi, v)
	}
	return nil
}

// HalfOpen requires lo < v <= hi.
func HalfOpen(field string, v, lo, hi float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be in (%g, %g], got %g", field, lo, hi, v)
	}
	return nil
}

// OneOf requires v to be one of the allowed values.
func OneOf(field, v string, allowed ...string) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	return New(ErrCodeInvalidInput, "%s must be one of [%s], got %q", field, strings.Join(allowed, ", "), v)
}

// First returns the first non-nil error, so request validators can list their
// checks in one expression.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
