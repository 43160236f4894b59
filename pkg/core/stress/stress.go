package stress

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/units"
)

// Regime is an Anderson faulting regime.
type Regime int

const (
	RegimeUndefined Regime = iota
	RegimeNormal
	RegimeStrikeSlip
	RegimeReverse
)

// String returns the polygon label, e.g. "strike_slip".
func (r Regime) String() string {
	switch r {
	case RegimeNormal:
		return "normal_faulting"
	case RegimeStrikeSlip:
		return "strike_slip"
	case RegimeReverse:
		return "reverse_faulting"
	}
	return "undefined"
}

// Short returns the compact label used by the horizontal stress model.
func (r Regime) Short() string {
	switch r {
	case RegimeNormal:
		return "normal"
	case RegimeStrikeSlip:
		return "strike-slip"
	case RegimeReverse:
		return "reverse"
	}
	return "undefined"
}

// Principal is an in-situ stress state. SHmax >= Shmin is the caller's
// responsibility. AzimuthSH is in degrees from north.
type Principal struct {
	Sv        float64 `json:"sigma_v"`
	SHmax     float64 `json:"sigma_h_max"`
	Shmin     float64 `json:"sigma_h_min"`
	Pp        float64 `json:"pore_pressure"`
	AzimuthSH float64 `json:"sigma_h_max_azimuth"`
}

// Regime classifies the state by ordering Sv against the horizontal stresses.
func (p Principal) Regime() Regime {
	return classify(p.Sv, p.SHmax, p.Shmin)
}

func classify(sv, sH, sh float64) Regime {
	switch {
	case sv >= sH && sH >= sh:
		return RegimeNormal
	case sH >= sv && sv >= sh:
		return RegimeStrikeSlip
	case sH >= sh && sh >= sv:
		return RegimeReverse
	}
	return RegimeUndefined
}

// VerticalResult is the overburden at a depth.
type VerticalResult struct {
	Stress   float64 `json:"value"`
	Gradient float64 `json:"gradient"`
}

// Vertical returns the overburden stress. Densities are in lb/ft³. A positive
// waterDepth adds a water column of waterDensity above the mudline.
func Vertical(depth, waterDepth, overburdenDensity, waterDensity float64) VerticalResult {
	rhoB := units.PpgFromLbPerFt3(overburdenDensity)
	rhoW := units.PpgFromLbPerFt3(waterDensity)

	var sv float64
	if waterDepth > 0 {
		sv = units.PsiPerFtPerPpg*rhoW*waterDepth + units.PsiPerFtPerPpg*rhoB*(depth-waterDepth)
	} else {
		sv = units.PsiPerFtPerPpg * rhoB * depth
	}
	return VerticalResult{Stress: sv, Gradient: sv / depth}
}

// Effective returns σ - α·Pp.
func Effective(total, pp, biot float64) float64 {
	return total - biot*pp
}

// EffectiveSeries applies [Effective] elementwise. A slice of length one is
// broadcast against the other; any other length mismatch is an error.
func EffectiveSeries(total, pp []float64, biot float64) ([]float64, error) {
	n := len(total)
	switch {
	case len(total) == len(pp):
	case len(total) == 1:
		n = len(pp)
		total = broadcast(total[0], n)
	case len(pp) == 1:
		pp = broadcast(pp[0], n)
	default:
		return nil, errors.New(errors.ErrCodeShapeMismatch,
			"total_stress has %d values but pore_pressure has %d", len(total), len(pp))
	}
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}
	floats.AddScaledTo(out, total, -biot, pp)
	return out, nil
}

func broadcast(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// HorizontalResult holds the two horizontal stresses.
type HorizontalResult struct {
	Shmin  float64 `json:"sigma_h_min"`
	SHmax  float64 `json:"sigma_h_max"`
	Regime Regime  `json:"-"`
}

// Horizontal estimates σh from uniaxial strain and interpolates σH toward σv
// with the tectonic factor. The regime follows the factor: below 0.3 normal,
// below 0.7 strike-slip, otherwise reverse.
func Horizontal(sv, pp, nu, tectonic, biot float64) HorizontalResult {
	svEff := sv - biot*pp
	sh := nu/(1-nu)*svEff + biot*pp
	sH := sh + tectonic*(sv-sh)

	regime := RegimeReverse
	switch {
	case tectonic < 0.3:
		regime = RegimeNormal
	case tectonic < 0.7:
		regime = RegimeStrikeSlip
	}
	return HorizontalResult{Shmin: sh, SHmax: sH, Regime: regime}
}
