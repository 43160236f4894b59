package stability

import (
	"math"

	"github.com/matzehuels/geomech/pkg/units"
)

// FaultInput describes a fault plane in a two-dimensional stress field.
// Dip is measured from the σ1 direction in the σ1-σ3 plane. Strike and
// S1Azimuth are reported only.
type FaultInput struct {
	S1        float64
	S3        float64
	Pp        float64
	Strike    float64
	Dip       float64
	S1Azimuth float64
	Friction  float64
	Cohesion  float64
}

// FaultResult is the slip assessment of a fault.
type FaultResult struct {
	SlipTendency     float64 `json:"slip_tendency"`
	DilationTendency float64 `json:"dilation_tendency"`
	CoulombStress    float64 `json:"coulomb_stress"`
	CriticalPp       float64 `json:"critical_pore_pressure"`
	PpIncreaseToSlip float64 `json:"pp_increase_to_slip"`
	NormalStress     float64 `json:"normal_stress_on_fault"`
	ShearStress      float64 `json:"shear_stress_on_fault"`
	Status           string  `json:"stability_status"`
}

// FaultStability resolves the effective stresses onto the fault plane and
// evaluates the Coulomb failure stress τ - μσn' - C.
func FaultStability(in FaultInput) FaultResult {
	s1 := in.S1 - in.Pp
	s3 := in.S3 - in.Pp
	s2t, c2t := math.Sincos(2 * units.Radians(in.Dip))

	sn := (s1+s3)/2 + (s1-s3)/2*c2t
	tau := math.Abs((s1 - s3) / 2 * s2t)

	var st, dt float64
	if sn > 0 {
		st = tau / sn
	}
	if s1-s3 > 0 {
		dt = (s1 - sn) / (s1 - s3)
	}
	cfs := tau - in.Friction*sn - in.Cohesion

	snTotal := sn + in.Pp
	critical := in.Pp
	if in.Friction > 0 {
		critical = snTotal - (tau-in.Cohesion)/in.Friction
	}

	status := "stable"
	switch {
	case cfs >= 0:
		status = "unstable - slip expected"
	case st > 0.8*in.Friction:
		status = "critically_stressed"
	}

	return FaultResult{
		SlipTendency:     st,
		DilationTendency: dt,
		CoulombStress:    cfs,
		CriticalPp:       critical,
		PpIncreaseToSlip: math.Max(0, critical-in.Pp),
		NormalStress:     snTotal,
		ShearStress:      tau,
		Status:           status,
	}
}
