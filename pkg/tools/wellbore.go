package tools

import (
	"context"
	"math"

	"github.com/matzehuels/geomech/pkg/core/stability"
	"github.com/matzehuels/geomech/pkg/core/stress"
	"github.com/matzehuels/geomech/pkg/core/wellbore"
	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/units"
)

// horizontalStresses holds the fields shared by the vertical-well requests.
type horizontalStresses struct {
	SigmaHMax    float64 `json:"sigma_h_max" required:"true"`
	SigmaHMin    float64 `json:"sigma_h_min" required:"true"`
	PorePressure float64 `json:"pore_pressure" required:"true"`
}

func (h horizontalStresses) validate() error {
	if err := errors.First(
		errors.Positive("sigma_h_max", h.SigmaHMax),
		errors.Positive("sigma_h_min", h.SigmaHMin),
		errors.Positive("pore_pressure", h.PorePressure),
	); err != nil {
		return err
	}
	if h.SigmaHMax < h.SigmaHMin {
		return errors.New(errors.ErrCodeInvalidInput,
			"sigma_h_max (%g) must be at least sigma_h_min (%g)", h.SigmaHMax, h.SigmaHMin)
	}
	return nil
}

func angle(field string, v float64) error { return errors.Closed(field, v, 0, 360) }

// =============================================================================
// geomech_breakout_width
// =============================================================================

type breakoutRequest struct {
	horizontalStresses
	MudWeight       float64  `json:"mud_weight" required:"true"`
	WellboreAzimuth float64  `json:"wellbore_azimuth" required:"true"`
	UCS             float64  `json:"ucs" required:"true"`
	FrictionAngle   float64  `json:"friction_angle" required:"true"`
	Depth           *float64 `json:"depth"`
}

func (r *breakoutRequest) defaults() {}

func (r *breakoutRequest) validate() error {
	return errors.First(
		r.horizontalStresses.validate(),
		errors.Positive("mud_weight", r.MudWeight),
		angle("wellbore_azimuth", r.WellboreAzimuth),
		errors.Positive("ucs", r.UCS),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
		optional("depth", r.Depth, positive),
	)
}

func breakoutWidth(_ context.Context, r *breakoutRequest) (any, error) {
	res := stability.Breakout(stability.BreakoutInput{
		SHmax:         r.SigmaHMax,
		Shmin:         r.SigmaHMin,
		Pp:            r.PorePressure,
		MudWeight:     r.MudWeight,
		UCS:           r.UCS,
		FrictionAngle: r.FrictionAngle,
		Depth:         deref(r.Depth),
		Azimuth:       r.WellboreAzimuth,
	})
	return Response{Result: res, Units: "degrees (breakout), psi (stress), ppg (MW)", Inputs: r}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// =============================================================================
// geomech_fracture_gradient
// =============================================================================

type fractureGradientRequest struct {
	Depth          float64  `json:"depth" required:"true"`
	SigmaHMin      *float64 `json:"sigma_h_min"`
	VerticalStress float64  `json:"vertical_stress" required:"true"`
	PorePressure   float64  `json:"pore_pressure" required:"true"`
	PoissonRatio   float64  `json:"poisson_ratio"`
	Method         string   `json:"method"`
}

func (r *fractureGradientRequest) defaults() {
	r.PoissonRatio = 0.25
	r.Method = stability.Eaton.String()
}

func (r *fractureGradientRequest) validate() error {
	_, err := stability.ParseFractureMethod(r.Method)
	return errors.First(
		err,
		errors.Positive("depth", r.Depth),
		optional("sigma_h_min", r.SigmaHMin, positive),
		errors.Positive("vertical_stress", r.VerticalStress),
		errors.Positive("pore_pressure", r.PorePressure),
		errors.Open("poisson_ratio", r.PoissonRatio, 0, 0.5),
	)
}

func fractureGradient(_ context.Context, r *fractureGradientRequest) (any, error) {
	m, _ := stability.ParseFractureMethod(r.Method)
	res := stability.FractureGradient(stability.FractureInput{
		Depth:  r.Depth,
		Shmin:  r.SigmaHMin,
		Sv:     r.VerticalStress,
		Pp:     r.PorePressure,
		Nu:     r.PoissonRatio,
		Method: m,
	})
	return Response{Result: res, Units: "psi (pressure), psi/ft (gradient), ppg (MW)", Inputs: r}, nil
}

// =============================================================================
// geomech_safe_mud_weight_window
// =============================================================================

type mudWindowRequest struct {
	PorePressure            float64  `json:"pore_pressure" required:"true"`
	FracturePressure        float64  `json:"fracture_pressure" required:"true"`
	Depth                   float64  `json:"depth" required:"true"`
	CollapsePressure        *float64 `json:"collapse_pressure"`
	SafetyMarginOverbalance float64  `json:"safety_margin_overbalance"`
	SafetyMarginFracture    float64  `json:"safety_margin_fracture"`
}

func (r *mudWindowRequest) defaults() {
	r.SafetyMarginOverbalance = 0.5
	r.SafetyMarginFracture = 0.5
}

func (r *mudWindowRequest) validate() error {
	return errors.First(
		errors.Positive("pore_pressure", r.PorePressure),
		errors.Positive("fracture_pressure", r.FracturePressure),
		errors.Positive("depth", r.Depth),
		optional("collapse_pressure", r.CollapsePressure, positive),
		errors.NonNegative("safety_margin_overbalance", r.SafetyMarginOverbalance),
		errors.NonNegative("safety_margin_fracture", r.SafetyMarginFracture),
	)
}

func mudWindow(_ context.Context, r *mudWindowRequest) (any, error) {
	res := stability.MudWeightWindow(r.PorePressure, r.FracturePressure, r.Depth,
		r.SafetyMarginOverbalance, r.SafetyMarginFracture, r.CollapsePressure)
	return Response{Result: res, Units: "ppg", Inputs: r}, nil
}

// =============================================================================
// geomech_critical_mud_weight_collapse
// =============================================================================

type collapseRequest struct {
	horizontalStresses
	Cohesion            float64 `json:"cohesion" required:"true"`
	FrictionAngle       float64 `json:"friction_angle" required:"true"`
	WellboreAzimuth     float64 `json:"wellbore_azimuth" required:"true"`
	WellboreInclination float64 `json:"wellbore_inclination"`
	Depth               float64 `json:"depth" required:"true"`
}

func (r *collapseRequest) defaults() {}

func (r *collapseRequest) validate() error {
	return errors.First(
		r.horizontalStresses.validate(),
		errors.NonNegative("cohesion", r.Cohesion),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
		angle("wellbore_azimuth", r.WellboreAzimuth),
		errors.Closed("wellbore_inclination", r.WellboreInclination, 0, 90),
		errors.Positive("depth", r.Depth),
	)
}

func collapseMudWeight(_ context.Context, r *collapseRequest) (any, error) {
	res := stability.CollapseMudWeight(stability.CollapseInput{
		SHmax:         r.SigmaHMax,
		Shmin:         r.SigmaHMin,
		Pp:            r.PorePressure,
		Cohesion:      r.Cohesion,
		FrictionAngle: r.FrictionAngle,
		Depth:         r.Depth,
		Azimuth:       r.WellboreAzimuth,
		Inclination:   r.WellboreInclination,
	})
	return Response{Result: res, Units: "ppg (MW), psi (pressure)", Inputs: r}, nil
}

// =============================================================================
// geomech_deviated_well_stress
// =============================================================================

type deviatedWellRequest struct {
	SigmaV           float64 `json:"sigma_v" required:"true"`
	SigmaHMax        float64 `json:"sigma_h_max" required:"true"`
	SigmaHMin        float64 `json:"sigma_h_min" required:"true"`
	SigmaHMaxAzimuth float64 `json:"sigma_h_max_azimuth" required:"true"`
	WellAzimuth      float64 `json:"well_azimuth" required:"true"`
	WellInclination  float64 `json:"well_inclination" required:"true"`
	PorePressure     float64 `json:"pore_pressure" required:"true"`
	MudWeight        float64 `json:"mud_weight" required:"true"`
	Depth            float64 `json:"depth" required:"true"`
	ProfileStep      float64 `json:"profile_step"`
}

func (r *deviatedWellRequest) defaults() { r.ProfileStep = 15 }

func (r *deviatedWellRequest) validate() error {
	return errors.First(
		errors.Positive("sigma_v", r.SigmaV),
		errors.Positive("sigma_h_max", r.SigmaHMax),
		errors.Positive("sigma_h_min", r.SigmaHMin),
		angle("sigma_h_max_azimuth", r.SigmaHMaxAzimuth),
		angle("well_azimuth", r.WellAzimuth),
		errors.Closed("well_inclination", r.WellInclination, 0, 90),
		errors.Positive("pore_pressure", r.PorePressure),
		errors.Positive("mud_weight", r.MudWeight),
		errors.Positive("depth", r.Depth),
		errors.HalfOpen("profile_step", r.ProfileStep, 0, 90),
	)
}

type wallStresses struct {
	HoopMax float64 `json:"max_hoop_stress"`
	HoopMin float64 `json:"min_hoop_stress"`
	Hoop0   float64 `json:"hoop_stress_0"`
	Hoop90  float64 `json:"hoop_stress_90"`
	Radial  float64 `json:"radial_stress"`
	Axial   float64 `json:"axial_stress"`
}

type deviatedWellResult struct {
	Transformed     wellbore.Tensor `json:"transformed_stresses"`
	Wall            wallStresses    `json:"wellbore_wall_stresses"`
	Principal       [3]float64      `json:"principal_stresses"`
	MudPressure     float64         `json:"mud_pressure"`
	RelativeAzimuth float64         `json:"relative_azimuth"`

	// Profile includes the in-plane shear term that the θ = 0/90 values omit.
	Profile      []wellbore.WallPoint `json:"wall_profile"`
	PeakHoop     wellbore.WallPoint   `json:"peak_hoop"`
	MaxWallShear float64              `json:"max_tau_theta_z"`
}

func deviatedWell(_ context.Context, r *deviatedWellRequest) (any, error) {
	p := stress.Principal{
		Sv:        r.SigmaV,
		SHmax:     r.SigmaHMax,
		Shmin:     r.SigmaHMin,
		Pp:        r.PorePressure,
		AzimuthSH: r.SigmaHMaxAzimuth,
	}
	pw := units.PressureFromEMW(r.MudWeight, r.Depth)
	w := wellbore.Wall(p, wellbore.Geometry{Azimuth: r.WellAzimuth, Inclination: r.WellInclination}, pw)
	principal, ok := w.Tensor.Principal()
	if !ok {
		return nil, errors.New(errors.ErrCodeDomain, "principal stresses did not converge")
	}
	profile := wellbore.Profile(w.Tensor, pw, r.ProfileStep)
	peak, _ := wellbore.Peak(profile)
	var maxShear float64
	for _, pt := range profile {
		maxShear = math.Max(maxShear, math.Abs(pt.Shear))
	}
	return Response{
		Result: deviatedWellResult{
			Transformed: w.Tensor,
			Wall: wallStresses{
				HoopMax: w.HoopMax,
				HoopMin: w.HoopMin,
				Hoop0:   w.Hoop0,
				Hoop90:  w.Hoop90,
				Radial:  w.Radial,
				Axial:   w.Axial,
			},
			Principal:       principal,
			MudPressure:     pw,
			RelativeAzimuth: w.RelativeAzimuth,
			Profile:         profile,
			PeakHoop:        peak,
			MaxWallShear:    maxShear,
		},
		Units:  "psi",
		Inputs: r,
	}, nil
}

// =============================================================================
// geomech_tensile_failure
// =============================================================================

type tensileRequest struct {
	horizontalStresses
	TensileStrength float64  `json:"tensile_strength"`
	ThermalStress   float64  `json:"thermal_stress"`
	Depth           *float64 `json:"depth"`
}

func (r *tensileRequest) defaults() {}

func (r *tensileRequest) validate() error {
	return errors.First(
		r.horizontalStresses.validate(),
		errors.NonNegative("tensile_strength", r.TensileStrength),
		errors.Finite("thermal_stress", r.ThermalStress),
		optional("depth", r.Depth, positive),
	)
}

func tensileFailure(_ context.Context, r *tensileRequest) (any, error) {
	res := stability.TensileFailure(stability.TensileInput{
		SHmax:   r.SigmaHMax,
		Shmin:   r.SigmaHMin,
		Pp:      r.PorePressure,
		Tensile: r.TensileStrength,
		Thermal: r.ThermalStress,
		Depth:   deref(r.Depth),
	})
	return Response{Result: res, Units: "psi (pressure), psi/ft (gradient), ppg (EMW)", Inputs: r}, nil
}

// =============================================================================
// geomech_breakout_stress_inversion
// =============================================================================

type inversionRequest struct {
	BreakoutWidth float64 `json:"breakout_width" required:"true"`
	SigmaV        float64 `json:"sigma_v" required:"true"`
	PorePressure  float64 `json:"pore_pressure" required:"true"`
	MudWeight     float64 `json:"mud_weight" required:"true"`
	UCS           float64 `json:"ucs" required:"true"`
	FrictionAngle float64 `json:"friction_angle" required:"true"`
	Depth         float64 `json:"depth" required:"true"`
}

func (r *inversionRequest) defaults() {}

func (r *inversionRequest) validate() error {
	return errors.First(
		errors.Open("breakout_width", r.BreakoutWidth, 0, 180),
		errors.Positive("sigma_v", r.SigmaV),
		errors.Positive("pore_pressure", r.PorePressure),
		errors.Positive("mud_weight", r.MudWeight),
		errors.Positive("ucs", r.UCS),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
		errors.Positive("depth", r.Depth),
	)
}

func breakoutInversion(_ context.Context, r *inversionRequest) (any, error) {
	res := stability.InvertBreakout(stability.InversionInput{
		BreakoutWidth: r.BreakoutWidth,
		Sv:            r.SigmaV,
		Pp:            r.PorePressure,
		MudWeight:     r.MudWeight,
		UCS:           r.UCS,
		FrictionAngle: r.FrictionAngle,
		Depth:         r.Depth,
	})
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_breakdown_pressure
// =============================================================================

type breakdownRequest struct {
	horizontalStresses
	TensileStrength     float64 `json:"tensile_strength"`
	PoroelasticConstant float64 `json:"poroelastic_constant"`
}

func (r *breakdownRequest) defaults() {}

func (r *breakdownRequest) validate() error {
	return errors.First(
		r.horizontalStresses.validate(),
		errors.NonNegative("tensile_strength", r.TensileStrength),
		errors.Closed("poroelastic_constant", r.PoroelasticConstant, 0, 1),
	)
}

func breakdownPressure(_ context.Context, r *breakdownRequest) (any, error) {
	res := stability.BreakdownPressure(r.SigmaHMax, r.SigmaHMin, r.PorePressure,
		r.TensileStrength, r.PoroelasticConstant)
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_leak_off_pressure
// =============================================================================

type leakOffRequest struct {
	LeakOffPressure float64 `json:"leak_off_pressure" required:"true"`
	MudWeight       float64 `json:"mud_weight" required:"true"`
	TestDepth       float64 `json:"test_depth" required:"true"`
	PorePressure    float64 `json:"pore_pressure" required:"true"`
	TestType        string  `json:"test_type"`
}

func (r *leakOffRequest) defaults() { r.TestType = stability.LOT.String() }

func (r *leakOffRequest) validate() error {
	_, err := stability.ParseTestType(r.TestType)
	return errors.First(
		err,
		errors.Positive("leak_off_pressure", r.LeakOffPressure),
		errors.Positive("mud_weight", r.MudWeight),
		errors.Positive("test_depth", r.TestDepth),
		errors.Positive("pore_pressure", r.PorePressure),
	)
}

func leakOff(_ context.Context, r *leakOffRequest) (any, error) {
	t, _ := stability.ParseTestType(r.TestType)
	res := stability.LeakOff(r.LeakOffPressure, r.MudWeight, r.TestDepth, t)
	return Response{Result: res, Units: "psi (pressure), psi/ft (gradient), ppg (MW)", Inputs: r}, nil
}
