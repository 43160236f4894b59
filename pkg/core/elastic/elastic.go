package elastic

import (
	"github.com/matzehuels/geomech/pkg/errors"
)

// Moduli holds the five isotropic elastic constants. All values are in psi
// except Nu, which is dimensionless.
type Moduli struct {
	E      float64 `json:"youngs_modulus"`
	K      float64 `json:"bulk_modulus"`
	G      float64 `json:"shear_modulus"`
	Nu     float64 `json:"poisson_ratio"`
	Lambda float64 `json:"lame_parameter"`
}

// Pair identifies which two moduli are known.
type Pair int

const (
	PairENu     Pair = iota // Young's modulus and Poisson's ratio
	PairEG                  // Young's and shear modulus
	PairEK                  // Young's and bulk modulus
	PairGNu                 // shear modulus and Poisson's ratio
	PairKNu                 // bulk modulus and Poisson's ratio
	PairKG                  // bulk and shear modulus
	PairLambdaG             // Lamé's first parameter and shear modulus
)

var pairNames = [...]string{"E-nu", "E-G", "E-K", "G-nu", "K-nu", "K-G", "lambda-G"}

func (p Pair) String() string {
	if p < 0 || int(p) >= len(pairNames) {
		return "unknown"
	}
	return pairNames[p]
}

// Convert derives the full set of moduli from a known pair. The order of a
// and b follows the pair name, so Convert(PairEG, E, G).
func Convert(pair Pair, a, b float64) (Moduli, error) {
	var m Moduli
	switch pair {
	case PairENu:
		E, nu := a, b
		m = Moduli{
			E:      E,
			Nu:     nu,
			G:      E / (2 * (1 + nu)),
			K:      E / (3 * (1 - 2*nu)),
			Lambda: E * nu / ((1 + nu) * (1 - 2*nu)),
		}
	case PairEG:
		E, G := a, b
		m = Moduli{
			E:      E,
			G:      G,
			Nu:     E/(2*G) - 1,
			K:      E * G / (3 * (3*G - E)),
			Lambda: G * (E - 2*G) / (3*G - E),
		}
	case PairEK:
		E, K := a, b
		G := 3 * K * E / (9*K - E)
		m = Moduli{
			E:      E,
			K:      K,
			G:      G,
			Nu:     (3*K - E) / (6 * K),
			Lambda: K - 2*G/3,
		}
	case PairGNu:
		G, nu := a, b
		m = Moduli{
			G:      G,
			Nu:     nu,
			E:      2 * G * (1 + nu),
			K:      2 * G * (1 + nu) / (3 * (1 - 2*nu)),
			Lambda: 2 * G * nu / (1 - 2*nu),
		}
	case PairKNu:
		K, nu := a, b
		m = Moduli{
			K:      K,
			Nu:     nu,
			E:      3 * K * (1 - 2*nu),
			G:      3 * K * (1 - 2*nu) / (2 * (1 + nu)),
			Lambda: 3 * K * nu / (1 + nu),
		}
	case PairKG:
		K, G := a, b
		m = Moduli{
			K:      K,
			G:      G,
			Nu:     (3*K - 2*G) / (6*K + 2*G),
			E:      9 * K * G / (3*K + G),
			Lambda: K - 2*G/3,
		}
	case PairLambdaG:
		lam, G := a, b
		m = Moduli{
			Lambda: lam,
			G:      G,
			K:      lam + 2*G/3,
			Nu:     lam / (2 * (lam + G)),
			E:      G * (3*lam + 2*G) / (lam + G),
		}
	default:
		return Moduli{}, errors.New(errors.ErrCodeInvalidInput, "unknown moduli pair %d", int(pair))
	}
	if err := m.check(); err != nil {
		return Moduli{}, err
	}
	return m, nil
}

// check rejects results that are not finite, which happens when a pair
// sits on a singularity such as E = 3G or ν = 0.5.
func (m Moduli) check() error {
	return errors.First(
		finite("youngs_modulus", m.E),
		finite("bulk_modulus", m.K),
		finite("shear_modulus", m.G),
		finite("poisson_ratio", m.Nu),
		finite("lame_parameter", m.Lambda),
	)
}

func finite(field string, v float64) error {
	if errors.Finite(field, v) != nil {
		return errors.New(errors.ErrCodeDomain, "%s is undefined for the supplied moduli", field)
	}
	return nil
}

// Partial holds optionally known moduli. Nil fields are unknown.
type Partial struct {
	E      *float64 `json:"youngs_modulus,omitempty"`
	K      *float64 `json:"bulk_modulus,omitempty"`
	G      *float64 `json:"shear_modulus,omitempty"`
	Nu     *float64 `json:"poisson_ratio,omitempty"`
	Lambda *float64 `json:"lame_parameter,omitempty"`
}

// Count returns the number of known moduli.
func (p Partial) Count() int {
	n := 0
	for _, v := range []*float64{p.E, p.K, p.G, p.Nu, p.Lambda} {
		if v != nil {
			n++
		}
	}
	return n
}

// Pair returns the first supported pair present in p.
func (p Partial) Pair() (Pair, float64, float64, bool) {
	switch {
	case p.E != nil && p.Nu != nil:
		return PairENu, *p.E, *p.Nu, true
	case p.E != nil && p.G != nil:
		return PairEG, *p.E, *p.G, true
	case p.E != nil && p.K != nil:
		return PairEK, *p.E, *p.K, true
	case p.G != nil && p.Nu != nil:
		return PairGNu, *p.G, *p.Nu, true
	case p.K != nil && p.Nu != nil:
		return PairKNu, *p.K, *p.Nu, true
	case p.K != nil && p.G != nil:
		return PairKG, *p.K, *p.G, true
	case p.Lambda != nil && p.G != nil:
		return PairLambdaG, *p.Lambda, *p.G, true
	}
	return 0, 0, 0, false
}

// FromPartial converts whichever moduli are known into the full set.
func FromPartial(p Partial) (Moduli, error) {
	if n := p.Count(); n < 2 {
		return Moduli{}, errors.New(errors.ErrCodeInsufficientInput,
			"must provide at least 2 elastic parameters, got %d", n)
	}
	pair, a, b, ok := p.Pair()
	if !ok {
		return Moduli{}, errors.New(errors.ErrCodeInsufficientInput,
			"unable to calculate moduli from provided parameters")
	}
	return Convert(pair, a, b)
}
