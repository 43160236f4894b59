package stress

import "math"

// Range is a closed interval of stress values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PolygonResult holds the frictional-equilibrium bounds on the horizontal
// stresses for each faulting regime.
type PolygonResult struct {
	Sv       float64 `json:"vertical_stress"`
	Pp       float64 `json:"pore_pressure"`
	Friction float64 `json:"friction_coefficient"`
	// Q is the limiting effective stress ratio ((μ²+1)^½ + μ)².
	Q float64 `json:"stress_ratio_limit"`

	NormalShmin     Range   `json:"normal_faulting_sigma_h_min"`
	ReverseSHmax    Range   `json:"reverse_faulting_sigma_h_max"`
	StrikeSlipShmin float64 `json:"strike_slip_sigma_h_min_min"`
	StrikeSlipSHmax float64 `json:"strike_slip_sigma_h_max_max"`
}

// Polygon computes the stress polygon for a friction coefficient mu.
func Polygon(sv, pp, mu float64) PolygonResult {
	svEff := sv - pp
	q := math.Pow(math.Sqrt(mu*mu+1)+mu, 2)
	lower := svEff/q + pp
	upper := svEff*q + pp

	return PolygonResult{
		Sv:              sv,
		Pp:              pp,
		Friction:        mu,
		Q:               q,
		NormalShmin:     Range{Min: lower, Max: sv},
		ReverseSHmax:    Range{Min: sv, Max: upper},
		StrikeSlipShmin: lower,
		StrikeSlipSHmax: upper,
	}
}

// StateClass places a measured stress state within a polygon.
type StateClass struct {
	Regime Regime `json:"-"`
	// Within reports whether both effective ratios respect the frictional
	// limit. States with a non-positive effective stress count as within.
	Within bool `json:"within_frictional_limits"`
	// SvOverShmin is σ'v/σ'h, nil when σ'h <= 0.
	SvOverShmin *float64 `json:"sigma_v_over_sigma_h_min"`
	// SHmaxOverSv is σ'H/σ'v, nil when σ'v <= 0.
	SHmaxOverSv *float64 `json:"sigma_H_max_over_sigma_v"`
}

// Classify reports the regime of (shmin, sHmax) and whether it lies inside
// the polygon.
func (p PolygonResult) Classify(shmin, sHmax float64) StateClass {
	svEff := p.Sv - p.Pp
	shEff := shmin - p.Pp
	sHEff := sHmax - p.Pp

	c := StateClass{Regime: classify(p.Sv, sHmax, shmin), Within: true}
	if shEff > 0 {
		r := svEff / shEff
		c.SvOverShmin = &r
	}
	if svEff > 0 {
		r := sHEff / svEff
		c.SHmaxOverSv = &r
	}
	if svEff > 0 && shEff > 0 {
		c.Within = *c.SvOverShmin <= p.Q && *c.SHmaxOverSv <= p.Q
	}
	return c
}
