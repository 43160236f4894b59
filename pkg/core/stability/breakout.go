package stability

import (
	"math"

	"github.com/matzehuels/geomech/pkg/core/failure"
	"github.com/matzehuels/geomech/pkg/core/wellbore"
	"github.com/matzehuels/geomech/pkg/units"
)

// BreakoutInput describes a vertical well section. Depth is optional and
// estimated from a hydrostatic Pp when zero.
type BreakoutInput struct {
	SHmax         float64
	Shmin         float64
	Pp            float64
	MudWeight     float64
	UCS           float64
	FrictionAngle float64
	Depth         float64
	Azimuth       float64
}

// BreakoutResult is the predicted breakout state.
type BreakoutResult struct {
	Width               float64 `json:"breakout_width"`
	Status              string  `json:"failure_status"`
	MaxTangentialStress float64 `json:"max_tangential_stress"`
	EffectiveTangential float64 `json:"effective_tangential_stress"`
	FailureStress       float64 `json:"failure_stress"`
	StressRatio         float64 `json:"stress_ratio"`
	MudPressure         float64 `json:"mud_pressure"`
	CriticalMudPressure float64 `json:"critical_mud_pressure"`
	CriticalMudWeight   float64 `json:"critical_mud_weight"`
	Depth               float64 `json:"depth"`
	DepthEstimated      bool    `json:"depth_estimated"`
}

// breakoutWidthPerRatio converts strength ratio excess into degrees of
// breakout.
const breakoutWidthPerRatio = 60.0

// Breakout predicts the breakout width of a vertical well.
func Breakout(in BreakoutInput) BreakoutResult {
	depth, estimated := resolveDepth(in.Depth, in.Pp)
	pw := units.PressureFromEMW(in.MudWeight, depth)
	q := failure.QFactor(in.FrictionAngle)

	hoop := wellbore.VerticalWall(in.SHmax, in.Shmin, pw).AtShmin
	hoopEff := hoop - in.Pp
	fail := in.UCS + q*math.Max(pw-in.Pp, 0)
	ratio := hoopEff / fail

	r := BreakoutResult{
		Status:              "stable",
		MaxTangentialStress: hoop,
		EffectiveTangential: hoopEff,
		FailureStress:       fail,
		StressRatio:         ratio,
		MudPressure:         pw,
		Depth:               depth,
		DepthEstimated:      estimated,
	}
	if ratio > 1 {
		r.Width = math.Min(180, breakoutWidthPerRatio*(ratio-1))
		switch {
		case r.Width < 30:
			r.Status = "minor_breakout"
		case r.Width < 90:
			r.Status = "moderate_breakout"
		default:
			r.Status = "severe_breakout"
		}
	}

	r.CriticalMudPressure = shearCriticalPressure(in.SHmax, in.Shmin, in.Pp, in.UCS, q)
	r.CriticalMudWeight = units.EMW(r.CriticalMudPressure, depth)
	return r
}

// shearCriticalPressure solves 3σH - σh - Pw - Pp = UCS + q·max(Pw - Pp, 0)
// for Pw. The result is floored at zero.
func shearCriticalPressure(sH, sh, pp, ucs, q float64) float64 {
	pw := (3*sH - sh - ucs + (q-1)*pp) / (1 + q)
	if pw < pp {
		pw = 3*sH - sh - pp - ucs
	}
	return math.Max(pw, 0)
}

func resolveDepth(depth, pp float64) (float64, bool) {
	if depth > 0 {
		return depth, false
	}
	return units.DepthFromPorePressure(pp), true
}

// CollapseInput describes a section for the collapse mud weight. Azimuth
// and Inclination are recorded but the vertical-well solution is used.
type CollapseInput struct {
	SHmax         float64
	Shmin         float64
	Pp            float64
	Cohesion      float64
	FrictionAngle float64
	Depth         float64
	Azimuth       float64
	Inclination   float64
}

// CollapseResult is the minimum mud weight against shear collapse.
type CollapseResult struct {
	CriticalMudWeight float64 `json:"critical_mud_weight"`
	CollapsePressure  float64 `json:"collapse_pressure"`
	SafetyFactor      float64 `json:"safety_factor"`
	UCS               float64 `json:"ucs"`

	// Floored is set when the shear solution fell below Pp + 100 psi.
	Floored bool `json:"floored"`
}

// collapseFloor is the minimum overbalance over pore pressure, psi.
const collapseFloor = 100.0

// CollapseMudWeight returns the mud weight below which the wall fails in
// shear. The safety factor compares a nominal 0.5 ppg overbalance to the
// collapse pressure.
func CollapseMudWeight(in CollapseInput) CollapseResult {
	ucs := failure.UCS(in.Cohesion, in.FrictionAngle)
	q := failure.QFactor(in.FrictionAngle)

	pc := shearCriticalPressure(in.SHmax, in.Shmin, in.Pp, ucs, q)
	r := CollapseResult{UCS: ucs}
	if floor := in.Pp + collapseFloor; pc < floor {
		pc = floor
		r.Floored = true
	}
	r.CollapsePressure = pc
	r.CriticalMudWeight = units.EMW(pc, in.Depth)
	r.SafetyFactor = (in.Pp + units.PressureFromEMW(0.5, in.Depth)) / pc
	return r
}

// InversionInput describes an observed breakout for stress inversion.
type InversionInput struct {
	BreakoutWidth float64
	Sv            float64
	Pp            float64
	MudWeight     float64
	UCS           float64
	FrictionAngle float64
	Depth         float64
}

// InversionResult is the horizontal stress estimate from a breakout.
type InversionResult struct {
	SHmax        float64 `json:"estimated_sigma_h_max"`
	Shmin        float64 `json:"estimated_sigma_h_min"`
	StressRatio  float64 `json:"stress_ratio"`
	Confidence   string  `json:"confidence"`
	BreakoutEdge float64 `json:"breakout_angle_from_shmax"`
	MudPressure  float64 `json:"mud_pressure"`

	// Floored is set when the inversion fell below Shmin and was replaced
	// with 1.2·Shmin.
	Floored bool `json:"floored"`
}

// InvertBreakout estimates σH from the width of an observed breakout. σh is
// taken from a friction-dependent K0 = 0.4 + 0.4·sinφ.
func InvertBreakout(in InversionInput) InversionResult {
	pw := units.PressureFromEMW(in.MudWeight, in.Depth)
	sin := math.Sin(units.Radians(in.FrictionAngle))
	q := failure.QFactor(in.FrictionAngle)

	edge := 90 - in.BreakoutWidth/2
	fail := in.UCS + q*(pw-in.Pp)
	k0 := 0.4 + 0.4*sin
	sh := k0*(in.Sv-in.Pp) + in.Pp

	c2 := math.Cos(2 * units.Radians(edge))
	coefH := 1 - 2*c2
	coefh := 1 + 2*c2
	rhs := fail + in.Pp + pw

	r := InversionResult{Shmin: sh, BreakoutEdge: edge, MudPressure: pw}
	if math.Abs(coefH) > 0.01 {
		r.SHmax = (rhs - coefh*sh) / coefH
	} else {
		r.SHmax = in.Sv
	}
	if r.SHmax < sh {
		r.SHmax = 1.2 * sh
		r.Floored = true
	}

	r.StressRatio = 1
	if sh > 0 {
		r.StressRatio = r.SHmax / sh
	}

	w := in.BreakoutWidth
	switch {
	case w >= 30 && w <= 90:
		r.Confidence = "high"
	case (w >= 15 && w < 30) || (w > 90 && w <= 120):
		r.Confidence = "moderate"
	default:
		r.Confidence = "low"
	}
	return r
}
