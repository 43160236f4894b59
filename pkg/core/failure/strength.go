package failure

import (
	"math"

	"github.com/matzehuels/geomech/pkg/units"
)

// Strength describes rock shear strength. FrictionAngle is in degrees.
type Strength struct {
	Cohesion      float64 `json:"cohesion"`
	FrictionAngle float64 `json:"friction_angle"`
	UCS           float64 `json:"ucs"`
}

// ResolvedUCS returns UCS when it is positive and the Mohr-Coulomb value
// derived from cohesion and friction angle otherwise.
func (s Strength) ResolvedUCS() float64 {
	if s.UCS > 0 {
		return s.UCS
	}
	return UCS(s.Cohesion, s.FrictionAngle)
}

// Q returns the passive stress factor for the friction angle.
func (s Strength) Q() float64 {
	return QFactor(s.FrictionAngle)
}

// UCS returns 2C·cosφ/(1-sinφ).
func UCS(cohesion, phiDeg float64) float64 {
	sin, cos := math.Sincos(units.Radians(phiDeg))
	return 2 * cohesion * cos / (1 - sin)
}

// QFactor returns (1+sinφ)/(1-sinφ).
func QFactor(phiDeg float64) float64 {
	sin := math.Sin(units.Radians(phiDeg))
	return (1 + sin) / (1 - sin)
}

// MCResult is the Mohr-Coulomb strength at a confining stress.
type MCResult struct {
	UCS                float64 `json:"unconfined_strength"`
	QFactor            float64 `json:"q_factor"`
	MaxPrincipalStress float64 `json:"max_principal_stress"`
	ShearStrength      float64 `json:"shear_strength"`
}

// MohrCoulomb returns the effective σ1 at failure for a confining effective
// stress sigma3Eff, and the shear strength on the failure plane using the
// mean of σ1 and σ3 as normal stress.
func MohrCoulomb(cohesion, phiDeg, sigma3Eff float64) MCResult {
	ucs := UCS(cohesion, phiDeg)
	q := QFactor(phiDeg)
	s1 := ucs + q*sigma3Eff
	sn := (s1 + sigma3Eff) / 2
	return MCResult{
		UCS:                ucs,
		QFactor:            q,
		MaxPrincipalStress: s1,
		ShearStrength:      cohesion + sn*math.Tan(units.Radians(phiDeg)),
	}
}
