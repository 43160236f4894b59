package tools

import (
	"context"

	"github.com/matzehuels/geomech/pkg/core/elastic"
	"github.com/matzehuels/geomech/pkg/core/failure"
	"github.com/matzehuels/geomech/pkg/errors"
)

const modulusUnits = "psi (except Poisson's ratio is dimensionless)"

// =============================================================================
// geomech_elastic_moduli_conversion
// =============================================================================

type elasticModuliRequest struct {
	YoungsModulus *float64 `json:"youngs_modulus"`
	BulkModulus   *float64 `json:"bulk_modulus"`
	ShearModulus  *float64 `json:"shear_modulus"`
	PoissonRatio  *float64 `json:"poisson_ratio"`
	LameParameter *float64 `json:"lame_parameter"`
}

func (r *elasticModuliRequest) defaults() {}

func (r *elasticModuliRequest) validate() error {
	return errors.First(
		optional("youngs_modulus", r.YoungsModulus, positive),
		optional("bulk_modulus", r.BulkModulus, positive),
		optional("shear_modulus", r.ShearModulus, positive),
		optional("poisson_ratio", r.PoissonRatio, openRange(-1, 0.5)),
		optional("lame_parameter", r.LameParameter, errors.Finite),
	)
}

func elasticModuli(_ context.Context, r *elasticModuliRequest) (any, error) {
	m, err := elastic.FromPartial(elastic.Partial{
		E:      r.YoungsModulus,
		K:      r.BulkModulus,
		G:      r.ShearModulus,
		Nu:     r.PoissonRatio,
		Lambda: r.LameParameter,
	})
	if err != nil {
		return nil, err
	}
	return Response{Result: m, Units: modulusUnits, Inputs: r}, nil
}

// =============================================================================
// geomech_rock_strength_mohr_coulomb
// =============================================================================

type mohrCoulombRequest struct {
	Cohesion           float64 `json:"cohesion" required:"true"`
	FrictionAngle      float64 `json:"friction_angle" required:"true"`
	EffectiveStressMin float64 `json:"effective_stress_min" required:"true"`
}

func (r *mohrCoulombRequest) defaults() {}

func (r *mohrCoulombRequest) validate() error {
	return errors.First(
		errors.NonNegative("cohesion", r.Cohesion),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
		errors.NonNegative("effective_stress_min", r.EffectiveStressMin),
	)
}

func mohrCoulomb(_ context.Context, r *mohrCoulombRequest) (any, error) {
	res := failure.MohrCoulomb(r.Cohesion, r.FrictionAngle, r.EffectiveStressMin)
	return Response{Result: res, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_dynamic_to_static_moduli
// =============================================================================

type dynamicToStaticRequest struct {
	DynamicYoungs  *float64 `json:"dynamic_youngs"`
	DynamicPoisson *float64 `json:"dynamic_poisson"`
	Correlation    string   `json:"correlation"`
	Lithology      string   `json:"lithology"`
}

func (r *dynamicToStaticRequest) defaults() {
	r.Correlation = string(elastic.EissaKazi)
	r.Lithology = string(elastic.Sandstone)
}

func (r *dynamicToStaticRequest) validate() error {
	_, cerr := elastic.ParseCorrelation(r.Correlation)
	_, lerr := elastic.ParseLithology(r.Lithology)
	return errors.First(
		cerr,
		lerr,
		optional("dynamic_youngs", r.DynamicYoungs, positive),
		optional("dynamic_poisson", r.DynamicPoisson, openRange(0, 0.5)),
	)
}

func dynamicToStatic(_ context.Context, r *dynamicToStaticRequest) (any, error) {
	if r.DynamicYoungs == nil && r.DynamicPoisson == nil {
		return nil, errors.New(errors.ErrCodeInsufficientInput,
			"provide dynamic_youngs, dynamic_poisson or both")
	}
	c, _ := elastic.ParseCorrelation(r.Correlation)
	l, _ := elastic.ParseLithology(r.Lithology)
	res := elastic.DynamicToStatic(r.DynamicYoungs, r.DynamicPoisson, c, l)
	return Response{Result: res, Units: modulusUnits, Inputs: r}, nil
}

// =============================================================================
// geomech_pore_compressibility
// =============================================================================

type poreCompressibilityRequest struct {
	BulkCompressibility  *float64 `json:"bulk_compressibility"`
	GrainCompressibility float64  `json:"grain_compressibility"`
	Porosity             float64  `json:"porosity" required:"true"`
	YoungsModulus        *float64 `json:"youngs_modulus"`
	PoissonRatio         *float64 `json:"poisson_ratio"`
}

func (r *poreCompressibilityRequest) defaults() { r.GrainCompressibility = 3e-7 }

func (r *poreCompressibilityRequest) validate() error {
	return errors.First(
		optional("bulk_compressibility", r.BulkCompressibility, positive),
		errors.Positive("grain_compressibility", r.GrainCompressibility),
		errors.Open("porosity", r.Porosity, 0, 1),
		optional("youngs_modulus", r.YoungsModulus, positive),
		optional("poisson_ratio", r.PoissonRatio, openRange(0, 0.5)),
	)
}

type poreCompressibilityResult struct {
	Pore         float64 `json:"pore_compressibility"`
	Bulk         float64 `json:"bulk_compressibility"`
	TypicalRange string  `json:"typical_range"`
}

func poreCompressibility(_ context.Context, r *poreCompressibilityRequest) (any, error) {
	var bulk float64
	switch {
	case r.BulkCompressibility != nil:
		bulk = *r.BulkCompressibility
	case r.YoungsModulus != nil && r.PoissonRatio != nil:
		bulk = elastic.BulkCompressibility(*r.YoungsModulus, *r.PoissonRatio)
	default:
		return nil, errors.New(errors.ErrCodeInsufficientInput,
			"provide bulk_compressibility or both youngs_modulus and poisson_ratio")
	}
	pore, err := elastic.PoreCompressibility(bulk, r.GrainCompressibility, r.Porosity)
	if err != nil {
		return nil, err
	}
	return Response{
		Result: poreCompressibilityResult{
			Pore:         pore,
			Bulk:         bulk,
			TypicalRange: "3-25 × 10⁻⁶ 1/psi depending on consolidation",
		},
		Units:  "1/psi",
		Inputs: r,
	}, nil
}

// =============================================================================
// geomech_ucs_from_logs
// =============================================================================

type ucsFromLogsRequest struct {
	SonicDT       *float64 `json:"sonic_dt"`
	Porosity      *float64 `json:"porosity"`
	YoungsModulus *float64 `json:"youngs_modulus"`
	Lithology     string   `json:"lithology"`
	Correlation   string   `json:"correlation"`
}

func (r *ucsFromLogsRequest) defaults() {
	r.Lithology = string(elastic.Sandstone)
	r.Correlation = string(failure.McNally)
}

func (r *ucsFromLogsRequest) validate() error {
	_, lerr := elastic.ParseLithology(r.Lithology)
	_, cerr := failure.ParseUCSCorrelation(r.Correlation)
	return errors.First(
		lerr,
		cerr,
		optional("sonic_dt", r.SonicDT, positive),
		optional("porosity", r.Porosity, openRange(0, 1)),
		optional("youngs_modulus", r.YoungsModulus, positive),
	)
}

type ucsFromLogsResult struct {
	failure.UCSResult
	Lithology string `json:"lithology"`
}

func ucsFromLogs(_ context.Context, r *ucsFromLogsRequest) (any, error) {
	l, _ := elastic.ParseLithology(r.Lithology)
	c, _ := failure.ParseUCSCorrelation(r.Correlation)
	res, err := failure.UCSFromLogs(failure.LogInput{
		SonicDT:  r.SonicDT,
		Porosity: r.Porosity,
		E:        r.YoungsModulus,
	}, c, l)
	if err != nil {
		return nil, err
	}
	return Response{Result: ucsFromLogsResult{UCSResult: res, Lithology: string(l)}, Units: "psi", Inputs: r}, nil
}

// =============================================================================
// geomech_shear_failure_criteria
// =============================================================================

type shearCriteriaRequest struct {
	Sigma1        float64  `json:"sigma_1" required:"true"`
	Sigma2        float64  `json:"sigma_2" required:"true"`
	Sigma3        float64  `json:"sigma_3" required:"true"`
	UCS           float64  `json:"ucs" required:"true"`
	Cohesion      float64  `json:"cohesion" required:"true"`
	FrictionAngle float64  `json:"friction_angle" required:"true"`
	Criteria      []string `json:"criteria"`
}

func (r *shearCriteriaRequest) defaults() {
	for _, c := range failure.DefaultCriteria {
		r.Criteria = append(r.Criteria, c.String())
	}
}

func (r *shearCriteriaRequest) validate() error {
	if _, err := r.parsed(); err != nil {
		return err
	}
	return errors.First(
		errors.Finite("sigma_1", r.Sigma1),
		errors.Finite("sigma_2", r.Sigma2),
		errors.NonNegative("sigma_3", r.Sigma3),
		errors.Positive("ucs", r.UCS),
		errors.NonNegative("cohesion", r.Cohesion),
		errors.Open("friction_angle", r.FrictionAngle, 0, 90),
	)
}

func (r *shearCriteriaRequest) parsed() ([]failure.Criterion, error) {
	out := make([]failure.Criterion, 0, len(r.Criteria))
	for _, s := range r.Criteria {
		c, err := failure.ParseCriterion(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

type criteriaSummary struct {
	MostConservative  float64 `json:"most_conservative_ratio"`
	LeastConservative float64 `json:"least_conservative_ratio"`
	Sigma2EffectRange float64 `json:"sigma_2_effect_range"`
}

type shearCriteriaResult struct {
	Assessments []failure.Assessment `json:"criteria_results"`
	Summary     criteriaSummary      `json:"summary"`
}

func shearCriteria(_ context.Context, r *shearCriteriaRequest) (any, error) {
	criteria, _ := r.parsed()
	if len(criteria) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "criteria must not be empty")
	}
	st := failure.Strength{Cohesion: r.Cohesion, FrictionAngle: r.FrictionAngle, UCS: r.UCS}
	ev := failure.Evaluate(r.Sigma1, r.Sigma2, r.Sigma3, st, criteria...)
	return Response{
		Result: shearCriteriaResult{
			Assessments: ev.Assessments,
			Summary: criteriaSummary{
				MostConservative:  ev.MostConservative,
				LeastConservative: ev.LeastConservative,
				Sigma2EffectRange: ev.Sigma2EffectRange,
			},
		},
		Units:  "psi (stress), dimensionless (ratios)",
		Inputs: r,
	}, nil
}
