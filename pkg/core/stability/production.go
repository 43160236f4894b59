package stability

import (
	"math"

	"github.com/matzehuels/geomech/pkg/core/elastic"
	"github.com/matzehuels/geomech/pkg/core/failure"
)

// SandInput describes a perforated completion for sanding onset.
type SandInput struct {
	SHmax         float64
	Shmin         float64
	Pp            float64
	UCS           float64
	Cohesion      float64
	FrictionAngle float64
}

// SandResult is a sanding risk assessment.
type SandResult struct {
	CriticalDrawdown    float64 `json:"critical_drawdown"`
	CriticalFlowingBHP  float64 `json:"critical_flowing_bhp"`
	Risk                string  `json:"sanding_risk"`
	Recommendation      string  `json:"recommended_action"`
	UCSUsed             float64 `json:"ucs_used"`
	TWCEstimate         float64 `json:"twc_strength_estimate"`
	StressConcentration float64 `json:"stress_concentration"`
}

const (
	// wallConcentration is the Kirsch concentration factor on σH.
	wallConcentration = 3.0
	// twcFactor converts UCS to thick-walled cylinder strength.
	twcFactor = 2.0
)

// SandProduction estimates the drawdown at which the perforation wall fails.
// The drawdown is clamped to [0, Pp].
func SandProduction(in SandInput) SandResult {
	ucs := failure.Strength{Cohesion: in.Cohesion, FrictionAngle: in.FrictionAngle, UCS: in.UCS}.ResolvedUCS()
	sHEff := in.SHmax - in.Pp
	shEff := in.Shmin - in.Pp
	hoop := wallConcentration*sHEff - shEff

	dd := clamp((ucs-hoop)/(wallConcentration-1), 0, in.Pp)

	r := SandResult{
		CriticalDrawdown:    dd,
		CriticalFlowingBHP:  in.Pp - dd,
		UCSUsed:             ucs,
		TWCEstimate:         ucs * twcFactor,
		StressConcentration: wallConcentration,
	}
	switch {
	case dd > 1000 && ucs > 2000:
		r.Risk = "low"
		r.Recommendation = "Natural completion may be acceptable. Monitor for sand production."
	case dd > 500 || ucs > 1000:
		r.Risk = "moderate"
		r.Recommendation = "Consider gravel pack or frac-pack. Rate-limited production recommended."
	default:
		r.Risk = "high"
		r.Recommendation = "Sand control required. Consider screens, gravel pack, or chemical consolidation."
	}
	return r
}

// DrawdownInput describes a reservoir for critical drawdown.
type DrawdownInput struct {
	SHmax             float64
	Shmin             float64
	ReservoirPressure float64
	UCS               float64
	FrictionAngle     float64
}

// DrawdownResult is the critical drawdown before shear failure of the wall.
type DrawdownResult struct {
	CriticalDrawdown   float64 `json:"critical_drawdown"`
	CriticalFlowingBHP float64 `json:"critical_flowing_bhp"`
	SafeDrawdown       float64 `json:"safe_drawdown_80pct"`
	SafeRateFactor     float64 `json:"safe_rate_factor"`
	Mechanism          string  `json:"failure_mechanism"`
	UCSUsed            float64 `json:"ucs_used"`
	QFactor            float64 `json:"q_factor"`
}

const safeRateFactor = 0.8

// CriticalDrawdown solves the Mohr-Coulomb wall condition for the flowing
// bottomhole pressure. The drawdown is clamped to [0, Pr].
func CriticalDrawdown(in DrawdownInput) DrawdownResult {
	q := failure.QFactor(in.FrictionAngle)
	pr := in.ReservoirPressure
	sHEff := in.SHmax - pr
	shEff := in.Shmin - pr

	pwf := (3*sHEff - shEff + (1+q)*pr - in.UCS) / (1 + q)
	dd := clamp(pr-pwf, 0, pr)

	r := DrawdownResult{
		CriticalDrawdown:   dd,
		CriticalFlowingBHP: pr - dd,
		SafeDrawdown:       safeRateFactor * dd,
		SafeRateFactor:     safeRateFactor,
		UCSUsed:            in.UCS,
		QFactor:            q,
	}
	switch {
	case dd < 500:
		r.Mechanism = "Shear failure - weak rock, sand control needed"
	case dd < 1500:
		r.Mechanism = "Shear failure possible at high rates - rate-restrict or sand control"
	default:
		r.Mechanism = "Rock is strong - natural completion may be acceptable"
	}
	return r
}

// CompactionInput describes a depleting reservoir. The compressibilities are
// optional.
type CompactionInput struct {
	PressureDrop        float64
	Thickness           float64
	PoreCompressibility *float64
	BulkCompressibility *float64
	E                   float64
	Nu                  float64
	Biot                float64
}

// CompactionResult is the uniaxial compaction of a reservoir, in feet.
type CompactionResult struct {
	Compaction          float64 `json:"compaction"`
	Subsidence          float64 `json:"subsidence"`
	Strain              float64 `json:"strain"`
	PoreCompressibility float64 `json:"pore_compressibility_calculated"`
	Coefficient         float64 `json:"compaction_coefficient"`
	// Clamped is set when a negative (expansion) result was reported as zero.
	Clamped bool `json:"clamped"`
}

// subsidenceRatio is the share of reservoir compaction that reaches surface.
const subsidenceRatio = 0.65

// Compaction returns the uniaxial compaction Cm·α·ΔP·h with
// Cm = (1+ν)(1-2ν)/(E(1-ν)).
func Compaction(in CompactionInput) CompactionResult {
	cm := (1 + in.Nu) * (1 - 2*in.Nu) / (in.E * (1 - in.Nu))

	var cp float64
	switch {
	case in.PoreCompressibility != nil:
		cp = *in.PoreCompressibility
	case in.BulkCompressibility != nil:
		cp = *in.BulkCompressibility
	default:
		cp = elastic.BulkCompressibility(in.E, in.Nu)
	}

	c := cm * in.Biot * in.PressureDrop * in.Thickness
	r := CompactionResult{PoreCompressibility: cp, Coefficient: cm}
	if c < 0 {
		c = 0
		r.Clamped = true
	}
	r.Compaction = c
	r.Strain = c / in.Thickness
	r.Subsidence = subsidenceRatio * c
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
