package porepressure

import (
	"math"
	"testing"

	"github.com/matzehuels/geomech/pkg/errors"
)

func TestEaton(t *testing.T) {
	tests := []struct {
		name     string
		observed float64
		normal   float64
		exponent float64
		mode     Mode
		want     float64
	}{
		{"sonic on trend", 70, 70, 3, Sonic, 4650},
		{"sonic slow", 100, 70, 3, Sonic, 10400 - (10400-4650)*math.Pow(0.7, 3)},
		{"resistivity low", 0.5, 1.0, 1.2, Resistivity, 10400 - (10400-4650)*math.Pow(0.5, 1.2)},
		{"default exponent", 100, 70, 0, Sonic, 10400 - (10400-4650)*math.Pow(0.7, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eaton(10000, tt.observed, tt.normal, 10400, tt.exponent, tt.mode)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got.Pressure-tt.want) > 1e-6 {
				t.Errorf("Pressure = %v, want %v", got.Pressure, tt.want)
			}
			if math.Abs(got.Overpressure-(got.Pressure-4650)) > 1e-6 {
				t.Errorf("Overpressure = %v", got.Overpressure)
			}
		})
	}
}

func TestEatonOverpressured(t *testing.T) {
	got, err := Eaton(10000, 100, 70, 10400, 3, Sonic)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pressure <= 4650 || got.Gradient <= 0.465 {
		t.Errorf("slow sonic should be overpressured, got %+v", got)
	}
}

func TestDefaultExponent(t *testing.T) {
	if DefaultExponent(Sonic) != 3.0 || DefaultExponent(Resistivity) != 1.2 {
		t.Error("unexpected default exponents")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("resistivity"); err != nil || m != Resistivity {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("density"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseMode(density) error = %v", err)
	}
}
