package tools

import (
	"context"

	"github.com/matzehuels/geomech/pkg/core/porepressure"
	"github.com/matzehuels/geomech/pkg/core/stress"
	"github.com/matzehuels/geomech/pkg/errors"
)

// optional applies check to v when it is set.
func optional(field string, v *float64, check func(string, float64) error) error {
	if v == nil {
		return nil
	}
	return check(field, *v)
}

// positive is errors.Positive with the range-validator signature, for use
// with optional.
func positive(field string, v float64) error { return errors.Positive(field, v) }

func openRange(lo, hi float64) func(string, float64) error {
	return func(field string, v float64) error { return errors.Open(field, v, lo, hi) }
}

// =============================================================================
// geomech_vertical_stress
// =============================================================================

type verticalStressRequest struct {
	Depth        float64 `json:"depth" required:"true"`
	WaterDepth   float64 `json:"water_depth"`
	AvgDensity   float64 `json:"avg_density"`
	WaterDensity float64 `json:"water_density"`
}

func (r *verticalStressRequest) defaults() {
	r.AvgDensity = 144
	r.WaterDensity = 64
}

func (r *verticalStressRequest) validate() error {
	if err := errors.First(
		errors.Positive("depth", r.Depth),
		errors.NonNegative("water_depth", r.WaterDepth),
		errors.HalfOpen("avg_density", r.AvgDensity, 0, 300),
		errors.HalfOpen("water_density", r.WaterDensity, 0, 100),
	); err != nil {
		return err
	}
	if r.WaterDepth > r.Depth {
		return errors.New(errors.ErrCodeInvalidInput,
			"water_depth (%g) must not exceed depth (%g)", r.WaterDepth, r.Depth)
	}
	return nil
}

func verticalStress(_ context.Context, r *verticalStressRequest) (any, error) {
	res := stress.Vertical(r.Depth, r.WaterDepth, r.AvgDensity, r.WaterDensity)
	return Response{Result: res, Units: "psi (stress), psi/ft (gradient)", Inputs: r}, nil
}

// =============================================================================
// geomech_pore_pressure_eaton
// =============================================================================

type eatonRequest struct {
	Depth         float64  `json:"depth" required:"true"`
	ObservedValue float64  `json:"observed_value" required:"true"`
	NormalValue   float64  `json:"normal_value" required:"true"`
	OverburdenPsi float64  `json:"overburden_psi" required:"true"`
	EatonExponent *float64 `json:"eaton_exponent"`
	Method        string   `json:"method"`
}

func (r *eatonRequest) defaults() { r.Method = "sonic" }

func (r *eatonRequest) validate() error {
	if _, err := porepressure.ParseMode(r.Method); err != nil {
		return err
	}
	return errors.First(
		errors.Positive("depth", r.Depth),
		errors.Positive("observed_value", r.ObservedValue),
		errors.Positive("normal_value", r.NormalValue),
		errors.Positive("overburden_psi", r.OverburdenPsi),
		optional("eaton_exponent", r.EatonExponent, func(f string, v float64) error {
			return errors.HalfOpen(f, v, 0, 5)
		}),
	)
}

func eaton(_ context.Context, r *eatonRequest) (any, error) {
	mode, _ := porepressure.ParseMode(r.Method)
	n := porepressure.DefaultExponent(mode)
	if r.EatonExponent != nil {
		n = *r.EatonExponent
	}
	res, err := porepressure.Eaton(r.Depth, r.ObservedValue, r.NormalValue, r.OverburdenPsi, n, mode)
	if err != nil {
		return nil, err
	}
	r.EatonExponent = &n
	r.Method = mode.String()
	return Response{Result: res, Units: "psi (pressure), psi/ft (gradient)", Inputs: r}, nil
}

// =============================================================================
// geomech_effective_stress
// =============================================================================

type effectiveStressRequest struct {
	TotalStress     numbers `json:"total_stress" required:"true"`
	PorePressure    numbers `json:"pore_pressure" required:"true"`
	BiotCoefficient float64 `json:"biot_coefficient"`
}

func (r *effectiveStressRequest) defaults() { r.BiotCoefficient = 1 }

func (r *effectiveStressRequest) validate() error {
	if err := errors.HalfOpen("biot_coefficient", r.BiotCoefficient, 0, 1); err != nil {
		return err
	}
	for _, v := range r.TotalStress.values {
		if err := errors.Finite("total_stress", v); err != nil {
			return err
		}
	}
	for _, v := range r.PorePressure.values {
		if err := errors.Finite("pore_pressure", v); err != nil {
			return err
		}
	}
	return nil
}

type effectiveStressResult struct {
	Value numbers `json:"value"`
}

func effectiveStress(_ context.Context, r *effectiveStressRequest) (any, error) {
	var out numbers
	if r.TotalStress.scalar && r.PorePressure.scalar {
		v := stress.Effective(r.TotalStress.values[0], r.PorePressure.values[0], r.BiotCoefficient)
		out = numbers{values: []float64{v}, scalar: true}
	} else {
		vs, err := stress.EffectiveSeries(r.TotalStress.values, r.PorePressure.values, r.BiotCoefficient)
		if err != nil {
			return nil, err
		}
		out = numbers{values: vs}
	}
	return Response{Result: effectiveStressResult{Value: out}, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_horizontal_stress
// =============================================================================

type horizontalStressRequest struct {
	VerticalStress  float64 `json:"vertical_stress" required:"true"`
	PorePressure    float64 `json:"pore_pressure" required:"true"`
	PoissonRatio    float64 `json:"poisson_ratio" required:"true"`
	TectonicFactor  float64 `json:"tectonic_factor"`
	BiotCoefficient float64 `json:"biot_coefficient"`
}

func (r *horizontalStressRequest) defaults() { r.BiotCoefficient = 1 }

func (r *horizontalStressRequest) validate() error {
	return errors.First(
		errors.Positive("vertical_stress", r.VerticalStress),
		errors.Positive("pore_pressure", r.PorePressure),
		errors.Open("poisson_ratio", r.PoissonRatio, 0, 0.5),
		errors.Closed("tectonic_factor", r.TectonicFactor, 0, 1),
		errors.HalfOpen("biot_coefficient", r.BiotCoefficient, 0, 1),
	)
}

type horizontalStressResult struct {
	stress.HorizontalResult
	Regime string `json:"stress_regime"`
}

func horizontalStress(_ context.Context, r *horizontalStressRequest) (any, error) {
	res := stress.Horizontal(r.VerticalStress, r.PorePressure, r.PoissonRatio, r.TectonicFactor, r.BiotCoefficient)
	return Response{
		Result: horizontalStressResult{HorizontalResult: res, Regime: res.Regime.Short()},
		Units:  "psi",
		Inputs: r,
	}, nil
}

// =============================================================================
// geomech_stress_polygon
// =============================================================================

type stressPolygonRequest struct {
	VerticalStress      float64  `json:"vertical_stress" required:"true"`
	PorePressure        float64  `json:"pore_pressure" required:"true"`
	FrictionCoefficient float64  `json:"friction_coefficient"`
	SigmaHMin           *float64 `json:"sigma_h_min"`
	SigmaHMax           *float64 `json:"sigma_h_max"`
}

func (r *stressPolygonRequest) defaults() { r.FrictionCoefficient = 0.6 }

func (r *stressPolygonRequest) validate() error {
	return errors.First(
		errors.Positive("vertical_stress", r.VerticalStress),
		errors.Positive("pore_pressure", r.PorePressure),
		errors.Open("friction_coefficient", r.FrictionCoefficient, 0, 1.5),
		optional("sigma_h_min", r.SigmaHMin, positive),
		optional("sigma_h_max", r.SigmaHMax, positive),
	)
}

type actualStressState struct {
	Regime string `json:"regime"`
	stress.StateClass
}

type stressPolygonResult struct {
	stress.PolygonResult
	Actual *actualStressState `json:"actual_stress_state,omitempty"`
}

func stressPolygon(_ context.Context, r *stressPolygonRequest) (any, error) {
	p := stress.Polygon(r.VerticalStress, r.PorePressure, r.FrictionCoefficient)
	res := stressPolygonResult{PolygonResult: p}
	if r.SigmaHMin != nil && r.SigmaHMax != nil {
		c := p.Classify(*r.SigmaHMin, *r.SigmaHMax)
		res.Actual = &actualStressState{Regime: c.Regime.String(), StateClass: c}
	}
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_stress_path
// =============================================================================

type stressPathRequest struct {
	InitialPorePressure   float64  `json:"initial_pore_pressure" required:"true"`
	FinalPorePressure     float64  `json:"final_pore_pressure" required:"true"`
	VerticalStress        float64  `json:"vertical_stress" required:"true"`
	InitialSigmaH         float64  `json:"initial_sigma_h" required:"true"`
	PoissonRatio          float64  `json:"poisson_ratio" required:"true"`
	BiotCoefficient       float64  `json:"biot_coefficient"`
	StressPathCoefficient *float64 `json:"stress_path_coefficient"`
}

func (r *stressPathRequest) defaults() { r.BiotCoefficient = 1 }

func (r *stressPathRequest) validate() error {
	return errors.First(
		errors.Positive("initial_pore_pressure", r.InitialPorePressure),
		errors.Positive("final_pore_pressure", r.FinalPorePressure),
		errors.Positive("vertical_stress", r.VerticalStress),
		errors.Positive("initial_sigma_h", r.InitialSigmaH),
		errors.Open("poisson_ratio", r.PoissonRatio, 0, 0.5),
		errors.HalfOpen("biot_coefficient", r.BiotCoefficient, 0, 1),
		optional("stress_path_coefficient", r.StressPathCoefficient, openRange(0, 1)),
	)
}

func stressPath(_ context.Context, r *stressPathRequest) (any, error) {
	res := stress.Path(r.InitialPorePressure, r.FinalPorePressure, r.VerticalStress,
		r.InitialSigmaH, r.PoissonRatio, r.BiotCoefficient, r.StressPathCoefficient)
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_thermal_stress
// =============================================================================

type thermalStressRequest struct {
	TemperatureChange           float64  `json:"temperature_change" required:"true"`
	YoungsModulus               float64  `json:"youngs_modulus" required:"true"`
	PoissonRatio                float64  `json:"poisson_ratio" required:"true"`
	ThermalExpansionCoefficient float64  `json:"thermal_expansion_coefficient"`
	BiotCoefficient             float64  `json:"biot_coefficient"`
	Depth                       *float64 `json:"depth"`
}

func (r *thermalStressRequest) defaults() {
	r.ThermalExpansionCoefficient = 6e-6
	r.BiotCoefficient = 1
}

func (r *thermalStressRequest) validate() error {
	return errors.First(
		errors.Finite("temperature_change", r.TemperatureChange),
		errors.Positive("youngs_modulus", r.YoungsModulus),
		errors.Open("poisson_ratio", r.PoissonRatio, 0, 0.5),
		errors.Positive("thermal_expansion_coefficient", r.ThermalExpansionCoefficient),
		errors.HalfOpen("biot_coefficient", r.BiotCoefficient, 0, 1),
		optional("depth", r.Depth, positive),
	)
}

func thermalStress(_ context.Context, r *thermalStressRequest) (any, error) {
	var depth float64
	if r.Depth != nil {
		depth = *r.Depth
	}
	res := stress.Thermal(r.TemperatureChange, r.YoungsModulus, r.PoissonRatio, r.ThermalExpansionCoefficient, depth)
	return Response{Result: res, Units: "psi (stress), ppg (EMW), degF (temperature)", Inputs: r}, nil
}
