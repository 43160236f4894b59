package elastic

import (
	"strings"

	"github.com/matzehuels/geomech/pkg/errors"
)

// Lithology is a coarse rock class used to select empirical factors.
type Lithology string

const (
	Sandstone Lithology = "sandstone"
	Shale     Lithology = "shale"
	Carbonate Lithology = "carbonate"
	General   Lithology = "general"
)

// ParseLithology accepts the lowercase rock class names.
func ParseLithology(s string) (Lithology, error) {
	switch l := Lithology(strings.ToLower(s)); l {
	case Sandstone, Shale, Carbonate, General:
		return l, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"lithology must be one of [sandstone, shale, carbonate, general], got %q", s)
}

// Correlation selects a dynamic-to-static conversion.
type Correlation string

const (
	EissaKazi Correlation = "eissa_kazi"
	PlonaCook Correlation = "plona_cook"
	Linear    Correlation = "linear"
)

// ParseCorrelation accepts the dynamic-to-static correlation names.
func ParseCorrelation(s string) (Correlation, error) {
	switch c := Correlation(strings.ToLower(s)); c {
	case EissaKazi, PlonaCook, Linear:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"correlation must be one of [eissa_kazi, plona_cook, linear], got %q", s)
}

// StaticModuli is the result of [DynamicToStatic]. A nil field means the
// corresponding dynamic value was not supplied.
type StaticModuli struct {
	E        *float64 `json:"static_youngs"`
	Nu       *float64 `json:"static_poisson"`
	EFactor  float64  `json:"correction_factor"`
	NuFactor float64  `json:"poisson_factor"`
}

// conversionFactors returns the E and ν multipliers. Sandstone and carbonate
// lithologies pick their factor set regardless of the correlation.
func conversionFactors(c Correlation, l Lithology) (eFactor, nuFactor float64) {
	switch {
	case c == EissaKazi || l == Sandstone:
		return 0.541, 0.87
	case c == PlonaCook || l == Carbonate:
		return 0.7, 0.9
	default:
		return 0.6, 0.85
	}
}

// DynamicToStatic scales log-derived moduli to their static equivalents.
// Either input may be nil.
func DynamicToStatic(dynE, dynNu *float64, c Correlation, l Lithology) StaticModuli {
	ef, nf := conversionFactors(c, l)
	out := StaticModuli{EFactor: ef, NuFactor: nf}
	if dynE != nil {
		v := *dynE * ef
		out.E = &v
	}
	if dynNu != nil {
		v := *dynNu * nf
		out.Nu = &v
	}
	return out
}

// BulkCompressibility returns the drained bulk compressibility (1-2ν)/E.
func BulkCompressibility(E, nu float64) float64 {
	return (1 - 2*nu) / E
}

// PoreCompressibility returns (Cb - Cgr)/φ.
func PoreCompressibility(bulk, grain, porosity float64) (float64, error) {
	if porosity <= 0 || porosity >= 1 {
		return 0, errors.New(errors.ErrCodeDomain, "porosity must be in (0, 1), got %g", porosity)
	}
	return (bulk - grain) / porosity, nil
}
