package tools

import (
	"context"

	"github.com/matzehuels/geomech/pkg/core/stability"
	"github.com/matzehuels/geomech/pkg/errors"
)

// =============================================================================
// geomech_reservoir_compaction
// =============================================================================

type compactionRequest struct {
	PressureDrop        float64  `json:"pressure_drop" required:"true"`
	ReservoirThickness  float64  `json:"reservoir_thickness" required:"true"`
	PoreCompressibility *float64 `json:"pore_compressibility"`
	BulkCompressibility *float64 `json:"bulk_compressibility"`
	YoungsModulus       float64  `json:"youngs_modulus" required:"true"`
	PoissonRatio        float64  `json:"poisson_ratio" required:"true"`
	BiotCoefficient     float64  `json:"biot_coefficient"`
}

func (r *compactionRequest) defaults() { r.BiotCoefficient = 1 }

func (r *compactionRequest) validate() error {
	return errors.First(
		errors.Positive("pressure_drop", r.PressureDrop),
		errors.Positive("reservoir_thickness", r.ReservoirThickness),
		optional("pore_compressibility", r.PoreCompressibility, positive),
		optional("bulk_compressibility", r.BulkCompressibility, positive),
		errors.Positive("youngs_modulus", r.YoungsModulus),
		errors.Open("poisson_ratio", r.PoissonRatio, 0, 0.5),
		errors.HalfOpen("biot_coefficient", r.BiotCoefficient, 0, 1),
	)
}

func compaction(_ context.Context, r *compactionRequest) (any, error) {
	res := stability.Compaction(stability.CompactionInput{
		PressureDrop:        r.PressureDrop,
		Thickness:           r.ReservoirThickness,
		PoreCompressibility: r.PoreCompressibility,
		BulkCompressibility: r.BulkCompressibility,
		E:                   r.YoungsModulus,
		Nu:                  r.PoissonRatio,
		Biot:                r.BiotCoefficient,
	})
	return Response{
		Result: res,
		Units:  "ft (compaction/subsidence), dimensionless (strain), 1/psi (compressibility)",
		Inputs: r,
	}, nil
}

// =============================================================================
// geomech_hydraulic_fracture_width
// =============================================================================

type fractureWidthRequest struct {
	NetPressure        float64 `json:"net_pressure" required:"true"`
	FractureHeight     float64 `json:"fracture_height" required:"true"`
	FractureHalfLength float64 `json:"fracture_half_length" required:"true"`
	YoungsModulus      float64 `json:"youngs_modulus" required:"true"`
	PoissonRatio       float64 `json:"poisson_ratio" required:"true"`
	Model              string  `json:"model"`
}

func (r *fractureWidthRequest) defaults() { r.Model = stability.PKN.String() }

func (r *fractureWidthRequest) validate() error {
	_, err := stability.ParseFractureModel(r.Model)
	return errors.First(
		err,
		errors.Positive("net_pressure", r.NetPressure),
		errors.Positive("fracture_height", r.FractureHeight),
		errors.Positive("fracture_half_length", r.FractureHalfLength),
		errors.Positive("youngs_modulus", r.YoungsModulus),
		errors.Open("poisson_ratio", r.PoissonRatio, 0, 0.5),
	)
}

func fractureWidth(_ context.Context, r *fractureWidthRequest) (any, error) {
	m, _ := stability.ParseFractureModel(r.Model)
	res := stability.FractureWidth(r.NetPressure, r.FractureHeight, r.FractureHalfLength,
		r.YoungsModulus, r.PoissonRatio, m)
	return Response{Result: res, Units: "inches (width), in/psi (compliance)", Inputs: r}, nil
}

// =============================================================================
// geomech_sand_production
// =============================================================================

type sandProductionRequest struct {
	horizontalStresses
	UCS              float64 `json:"ucs" required:"true"`
	Cohesion         float64 `json:"cohesion" required:"true"`
	FrictionAngle    float64 `json:"friction_angle" required:"true"`
	WellboreRadius   float64 `json:"wellbore_radius"`
	PerforationDepth float64 `json:"perforation_depth"`
	Permeability     float64 `json:"permeability" required:"true"`
	Porosity         float64 `json:"porosity" required:"true"`
}

func (r *sandProductionRequest) defaults() {
	r.WellboreRadius = 0.354
	r.PerforationDepth = 0.5
}

func (r *sandProductionRequest) validate() error {
	return errors.First(
		r.horizontalStresses.validate(),
		errors.Positive("ucs", r.UCS),
		errors.NonNegative("cohesion", r.Cohesion),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
		errors.Positive("wellbore_radius", r.WellboreRadius),
		errors.Positive("perforation_depth", r.PerforationDepth),
		errors.Positive("permeability", r.Permeability),
		errors.Open("porosity", r.Porosity, 0, 1),
	)
}

func sandProduction(_ context.Context, r *sandProductionRequest) (any, error) {
	res := stability.SandProduction(stability.SandInput{
		SHmax:         r.SigmaHMax,
		Shmin:         r.SigmaHMin,
		Pp:            r.PorePressure,
		UCS:           r.UCS,
		Cohesion:      r.Cohesion,
		FrictionAngle: r.FrictionAngle,
	})
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_critical_drawdown
// =============================================================================

type drawdownRequest struct {
	SigmaHMax         float64 `json:"sigma_h_max" required:"true"`
	SigmaHMin         float64 `json:"sigma_h_min" required:"true"`
	ReservoirPressure float64 `json:"reservoir_pressure" required:"true"`
	UCS               float64 `json:"ucs" required:"true"`
	Cohesion          float64 `json:"cohesion" required:"true"`
	FrictionAngle     float64 `json:"friction_angle" required:"true"`
	WellboreRadius    float64 `json:"wellbore_radius"`
}

func (r *drawdownRequest) defaults() { r.WellboreRadius = 0.354 }

func (r *drawdownRequest) validate() error {
	return errors.First(
		errors.Positive("sigma_h_max", r.SigmaHMax),
		errors.Positive("sigma_h_min", r.SigmaHMin),
		errors.Positive("reservoir_pressure", r.ReservoirPressure),
		errors.Positive("ucs", r.UCS),
		errors.NonNegative("cohesion", r.Cohesion),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
		errors.Positive("wellbore_radius", r.WellboreRadius),
	)
}

func criticalDrawdown(_ context.Context, r *drawdownRequest) (any, error) {
	res := stability.CriticalDrawdown(stability.DrawdownInput{
		SHmax:             r.SigmaHMax,
		Shmin:             r.SigmaHMin,
		ReservoirPressure: r.ReservoirPressure,
		UCS:               r.UCS,
		FrictionAngle:     r.FrictionAngle,
	})
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_fault_stability
// =============================================================================

type faultRequest struct {
	Sigma1              float64 `json:"sigma_1" required:"true"`
	Sigma3              float64 `json:"sigma_3" required:"true"`
	PorePressure        float64 `json:"pore_pressure" required:"true"`
	FaultStrike         float64 `json:"fault_strike" required:"true"`
	FaultDip            float64 `json:"fault_dip" required:"true"`
	Sigma1Azimuth       float64 `json:"sigma_1_azimuth"`
	FrictionCoefficient float64 `json:"friction_coefficient"`
	Cohesion            float64 `json:"cohesion"`
}

func (r *faultRequest) defaults() { r.FrictionCoefficient = 0.6 }

func (r *faultRequest) validate() error {
	return errors.First(
		errors.Positive("sigma_1", r.Sigma1),
		errors.Positive("sigma_3", r.Sigma3),
		errors.Positive("pore_pressure", r.PorePressure),
		angle("fault_strike", r.FaultStrike),
		errors.HalfOpen("fault_dip", r.FaultDip, 0, 90),
		angle("sigma_1_azimuth", r.Sigma1Azimuth),
		errors.Open("friction_coefficient", r.FrictionCoefficient, 0, 1.5),
		errors.NonNegative("cohesion", r.Cohesion),
	)
}

func faultStability(_ context.Context, r *faultRequest) (any, error) {
	res := stability.FaultStability(stability.FaultInput{
		S1:        r.Sigma1,
		S3:        r.Sigma3,
		Pp:        r.PorePressure,
		Strike:    r.FaultStrike,
		Dip:       r.FaultDip,
		S1Azimuth: r.Sigma1Azimuth,
		Friction:  r.FrictionCoefficient,
		Cohesion:  r.Cohesion,
	})
	return Response{Result: res, Units: "psi (stress), dimensionless (tendencies)", Inputs: r}, nil
}
