package units

import (
	"math"
	"testing"
)

func TestEMWRoundTrip(t *testing.T) {
	p := PressureFromEMW(9.5, 10000)
	if math.Abs(p-4940) > 1e-9 {
		t.Fatalf("PressureFromEMW = %v, want 4940", p)
	}
	if got := EMW(p, 10000); math.Abs(got-9.5) > 1e-12 {
		t.Errorf("EMW = %v, want 9.5", got)
	}
}

func TestDepthFromPorePressure(t *testing.T) {
	if got := DepthFromPorePressure(Hydrostatic(8000)); math.Abs(got-8000) > 1e-9 {
		t.Errorf("DepthFromPorePressure = %v, want 8000", got)
	}
}

func TestAngles(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("Radians(180) = %v", got)
	}
	if got := Degrees(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("Degrees(pi/2) = %v", got)
	}
}

func TestPpgFromLbPerFt3(t *testing.T) {
	if got := PpgFromLbPerFt3(74.8); math.Abs(got-10) > 1e-12 {
		t.Errorf("PpgFromLbPerFt3(74.8) = %v, want 10", got)
	}
}
