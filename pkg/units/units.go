// Package units holds the oilfield unit conventions shared by every geomech
// calculation.
//
// All pressures and stresses are psi, depths and lengths are feet, densities
// are lb/ft³ on input and ppg (pounds per gallon) when reported as mud weight,
// and angles are degrees at every public boundary.
package units

import "math"

const (
	// PsiPerFtPerPpg is the hydrostatic gradient of a 1 ppg fluid column.
	PsiPerFtPerPpg = 0.052

	// LbPerFt3PerPpg converts a density in lb/ft³ to ppg.
	LbPerFt3PerPpg = 7.48

	// HydrostaticGradient is the normal (seawater) pore-pressure gradient in psi/ft.
	HydrostaticGradient = 0.465

	// DefaultReferenceDepth is the depth used to express stress changes as
	// equivalent mud weight when no depth is supplied.
	DefaultReferenceDepth = 10000.0
)

// PpgFromLbPerFt3 converts a density in lb/ft³ to ppg.
func PpgFromLbPerFt3(density float64) float64 {
	return density / LbPerFt3PerPpg
}

// Gradient returns pressure per foot of depth.
func Gradient(pressure, depth float64) float64 {
	return pressure / depth
}

// EMW converts a pressure at depth into an equivalent mud weight in ppg.
func EMW(pressure, depth float64) float64 {
	return pressure / depth / PsiPerFtPerPpg
}

// PressureFromEMW returns the bottomhole pressure of a mud column of weight
// mw (ppg) at the given depth.
func PressureFromEMW(mw, depth float64) float64 {
	return PsiPerFtPerPpg * mw * depth
}

// Hydrostatic returns the normal pore pressure at depth.
func Hydrostatic(depth float64) float64 {
	return HydrostaticGradient * depth
}

// DepthFromPorePressure back-calculates a true vertical depth from a pore
// pressure assumed to be hydrostatic. It is used when a caller omits depth.
func DepthFromPorePressure(pp float64) float64 {
	return pp / HydrostaticGradient
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// System describes the unit system for catalogue and API output.
var System = map[string]string{
	"system":      "Field Units (US Oilfield)",
	"pressure":    "psi",
	"stress":      "psi",
	"depth":       "ft",
	"length":      "ft",
	"temperature": "degF",
	"density":     "lb/ft3 (input), ppg (mud weight)",
	"mud_weight":  "ppg",
	"gradient":    "psi/ft",
	"angle":       "degrees",
	"modulus":     "psi",
	"ratio":       "dimensionless",
}
