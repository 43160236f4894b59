package stress

import "github.com/matzehuels/geomech/pkg/units"

// PathResult is the horizontal stress response to a pore pressure change.
type PathResult struct {
	Operation         string  `json:"operation"`
	InitialSh         float64 `json:"initial_sigma_h"`
	FinalSh           float64 `json:"final_sigma_h"`
	DeltaSh           float64 `json:"delta_sigma_h"`
	DeltaPp           float64 `json:"delta_pore_pressure"`
	Gamma             float64 `json:"stress_path_coefficient"`
	DeltaEffectiveSh  float64 `json:"delta_effective_stress_h"`
	DeltaEffectiveSv  float64 `json:"delta_effective_stress_v"`
	FinalEffectiveSv  float64 `json:"final_effective_stress_v"`
	EffectiveTrend    string  `json:"effective_stress_trend"`
	FaultImpact       string  `json:"fault_stability_impact"`
	ElevatedFaultRisk bool    `json:"elevated_fault_risk"`
}

// DefaultPathCoefficient returns the uniaxial-strain stress path
// γ = α(1-2ν)/(1-ν).
func DefaultPathCoefficient(nu, biot float64) float64 {
	return biot * (1 - 2*nu) / (1 - nu)
}

// Path computes Δσh = γΔPp for a change from initialPp to finalPp. A nil gamma
// uses [DefaultPathCoefficient]. The total vertical stress sv is assumed
// constant, so only its effective value moves.
func Path(initialPp, finalPp, sv, initialSh, nu, biot float64, gamma *float64) PathResult {
	g := DefaultPathCoefficient(nu, biot)
	if gamma != nil {
		g = *gamma
	}

	dPp := finalPp - initialPp
	dSh := g * dPp
	dShEff := dSh - biot*dPp

	r := PathResult{
		InitialSh:        initialSh,
		FinalSh:          initialSh + dSh,
		DeltaSh:          dSh,
		DeltaPp:          dPp,
		Gamma:            g,
		DeltaEffectiveSh: dShEff,
		DeltaEffectiveSv: -biot * dPp,
		FinalEffectiveSv: Effective(sv, finalPp, biot),
	}

	if dPp < 0 {
		r.Operation = "depletion"
		r.EffectiveTrend = "decreasing"
		if dShEff > 0 {
			r.EffectiveTrend = "increasing (compacting)"
		}
	} else {
		r.Operation = "injection"
		r.EffectiveTrend = "increasing"
		if dShEff < 0 {
			r.EffectiveTrend = "decreasing (potential fault activation)"
		}
	}

	switch {
	case dPp > 0 && dShEff < 0:
		r.FaultImpact = "Increased fault slip risk - effective stress decreasing"
		r.ElevatedFaultRisk = true
	case dPp < 0 && dShEff > 0:
		r.FaultImpact = "Decreased fault slip risk - effective stress increasing"
	default:
		r.FaultImpact = "Moderate impact - monitor stress state"
	}
	return r
}

// ThermalResult is the wall stress change from a temperature change.
type ThermalResult struct {
	Stress          float64 `json:"thermal_stress"`
	HoopChange      float64 `json:"hoop_stress_change"`
	EMWChange       float64 `json:"equivalent_mud_weight_change"`
	TemperatureDiff float64 `json:"temperature_change"`
	Depth           float64 `json:"reference_depth"`
	StabilityEffect string  `json:"stability_effect"`
	FractureEffect  string  `json:"fracture_effect"`
	MudWeightEffect string  `json:"mud_weight_effect"`
}

// Thermal returns σT = -E·αT·ΔT/(1-ν). Cooling (ΔT < 0) is tensile. The EMW
// change is expressed at depth, or at [units.DefaultReferenceDepth] when
// depth <= 0.
func Thermal(dT, E, nu, alphaT, depth float64) ThermalResult {
	if depth <= 0 {
		depth = units.DefaultReferenceDepth
	}
	sigma := -E * alphaT * dT / (1 - nu)

	r := ThermalResult{
		Stress:          sigma,
		HoopChange:      sigma,
		EMWChange:       sigma / (units.PsiPerFtPerPpg * depth),
		TemperatureDiff: dT,
		Depth:           depth,
	}
	switch {
	case dT < 0:
		r.StabilityEffect = "Cooling reduces collapse risk (lower hoop stress) but increases lost circulation risk"
		r.FractureEffect = "Lower fracture initiation pressure - promotes fracturing"
		r.MudWeightEffect = "Can drill with lower mud weight"
	case dT > 0:
		r.StabilityEffect = "Heating increases collapse risk (higher hoop stress) but reduces lost circulation risk"
		r.FractureEffect = "Higher fracture initiation pressure - inhibits fracturing"
		r.MudWeightEffect = "May need higher mud weight for stability"
	default:
		r.StabilityEffect = "No thermal effect"
		r.FractureEffect = "No thermal effect"
		r.MudWeightEffect = "No thermal effect"
	}
	return r
}
