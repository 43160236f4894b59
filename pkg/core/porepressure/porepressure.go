// Package porepressure estimates formation pore pressure from well logs.
//
// [Eaton] compares an observed sonic transit time or resistivity against its
// normal compaction trend:
//
//	Pp = S - (S - Ph)·ratio^n
//
// where S is the overburden, Ph = 0.465·depth is the hydrostatic pressure and
// the ratio is normal/observed for sonic and observed/normal for resistivity.
// Slower sonic or lower resistivity than the trend indicates overpressure.
package porepressure

import (
	"math"
	"strings"

	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/units"
)

// Mode is the log type used for the Eaton ratio.
type Mode int

const (
	Sonic Mode = iota
	Resistivity
)

func (m Mode) String() string {
	if m == Resistivity {
		return "resistivity"
	}
	return "sonic"
}

// ParseMode accepts "sonic" or "resistivity".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "sonic":
		return Sonic, nil
	case "resistivity":
		return Resistivity, nil
	}
	return Sonic, errors.New(errors.ErrCodeInvalidInput, "method must be one of [sonic, resistivity], got %q", s)
}

// DefaultExponent returns the customary Eaton exponent for a log type.
func DefaultExponent(m Mode) float64 {
	if m == Resistivity {
		return 1.2
	}
	return 3.0
}

// Result is an Eaton pore pressure estimate.
type Result struct {
	Pressure     float64 `json:"value"`
	Gradient     float64 `json:"gradient"`
	Overpressure float64 `json:"overpressure"`
	Hydrostatic  float64 `json:"hydrostatic"`
	Exponent     float64 `json:"eaton_exponent"`
}

// Eaton estimates pore pressure at depth. A zero exponent selects
// [DefaultExponent] for the mode.
func Eaton(depth, observed, normal, overburden, exponent float64, mode Mode) (Result, error) {
	if observed <= 0 || normal <= 0 {
		return Result{}, errors.New(errors.ErrCodeDomain, "log values must be positive")
	}
	if exponent == 0 {
		exponent = DefaultExponent(mode)
	}
	ph := units.Hydrostatic(depth)

	ratio := normal / observed
	if mode == Resistivity {
		ratio = observed / normal
	}
	pp := overburden - (overburden-ph)*math.Pow(ratio, exponent)

	return Result{
		Pressure:     pp,
		Gradient:     pp / depth,
		Overpressure: pp - ph,
		Hydrostatic:  ph,
		Exponent:     exponent,
	}, nil
}
