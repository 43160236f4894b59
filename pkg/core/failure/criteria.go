package failure

import (
	"math"
	"strings"

	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/units"
)

// SaturatedRatio is reported when a criterion's strength term is not
// positive and the strength ratio is unbounded.
const SaturatedRatio = 999.0

// Criterion is a shear failure criterion.
type Criterion int

const (
	MohrCoulombCriterion Criterion = iota
	DruckerPrager
	MogiCoulomb
	ModifiedLade
	ModifiedWiebolsCook
)

var criterionNames = [...]string{
	MohrCoulombCriterion: "mohr_coulomb",
	DruckerPrager:        "drucker_prager",
	MogiCoulomb:          "mogi_coulomb",
	ModifiedLade:         "modified_lade",
	ModifiedWiebolsCook:  "modified_wiebols",
}

// String returns the wire name of the criterion.
func (c Criterion) String() string {
	if c < 0 || int(c) >= len(criterionNames) {
		return "unknown"
	}
	return criterionNames[c]
}

// ParseCriterion maps a wire name to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	for i, name := range criterionNames {
		if strings.EqualFold(s, name) {
			return Criterion(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput,
		"criteria must be one of [%s], got %q", strings.Join(criterionNames[:], ", "), s)
}

// DefaultCriteria is evaluated when no criteria are requested.
var DefaultCriteria = []Criterion{MohrCoulombCriterion, DruckerPrager, MogiCoulomb}

// Assessment is the outcome of one criterion.
type Assessment struct {
	Criterion     Criterion          `json:"-"`
	Name          string             `json:"criterion"`
	StrengthRatio float64            `json:"strength_ratio"`
	Status        string             `json:"status"`
	SafetyFactor  float64            `json:"safety_factor"`
	Clamped       bool               `json:"clamped"`
	Diagnostics   map[string]float64 `json:"diagnostics"`
}

// Failed reports whether the criterion predicts failure.
func (a Assessment) Failed() bool { return a.Status == "failed" }

// Evaluation collects assessments for a stress state.
type Evaluation struct {
	Assessments       []Assessment `json:"criteria_results"`
	MostConservative  float64      `json:"most_conservative_ratio"`
	LeastConservative float64      `json:"least_conservative_ratio"`
	Sigma2EffectRange float64      `json:"sigma_2_effect_range"`
}

// Get returns the assessment for c, if it was evaluated.
func (e Evaluation) Get(c Criterion) (Assessment, bool) {
	for _, a := range e.Assessments {
		if a.Criterion == c {
			return a, true
		}
	}
	return Assessment{}, false
}

// Evaluate tests the effective principal stresses s1 >= s2 >= s3 against the
// requested criteria, or [DefaultCriteria] when none are given. Duplicate
// criteria are evaluated once.
func Evaluate(s1, s2, s3 float64, st Strength, criteria ...Criterion) Evaluation {
	if len(criteria) == 0 {
		criteria = DefaultCriteria
	}

	var ev Evaluation
	seen := make(map[Criterion]bool, len(criteria))
	for _, c := range criteria {
		if seen[c] {
			continue
		}
		seen[c] = true
		ev.Assessments = append(ev.Assessments, assess(c, s1, s2, s3, st))
	}

	if len(ev.Assessments) > 0 {
		ev.MostConservative = math.Inf(-1)
		ev.LeastConservative = math.Inf(1)
		for _, a := range ev.Assessments {
			ev.MostConservative = math.Max(ev.MostConservative, a.StrengthRatio)
			ev.LeastConservative = math.Min(ev.LeastConservative, a.StrengthRatio)
		}
		ev.Sigma2EffectRange = ev.MostConservative - ev.LeastConservative
	}
	return ev
}

func assess(c Criterion, s1, s2, s3 float64, st Strength) Assessment {
	phi := units.Radians(st.FrictionAngle)
	sin, cos := math.Sincos(phi)
	tan := math.Tan(phi)
	ucs := st.ResolvedUCS()

	i1 := s1 + s2 + s3
	j2 := (sq(s1-s2) + sq(s2-s3) + sq(s1-s3)) / 6

	a := Assessment{Criterion: c, Name: c.String(), Diagnostics: map[string]float64{}}
	switch c {
	case MohrCoulombCriterion:
		q := (1 + sin) / (1 - sin)
		s1f := ucs + q*s3
		a.ratio(s1, s1f)
		a.Diagnostics["sigma_1_at_failure"] = s1f
		a.Diagnostics["q_factor"] = q

	case DruckerPrager:
		root := math.Sqrt(9 + 12*tan*tan)
		alpha := tan / root
		k := 3 * st.Cohesion / root
		fv := k + alpha*i1
		a.ratio(math.Sqrt(j2), fv)
		a.Diagnostics["I1"] = i1
		a.Diagnostics["sqrt_J2"] = math.Sqrt(j2)
		a.Diagnostics["failure_criterion_value"] = fv

	case MogiCoulomb:
		tauOct := math.Sqrt2 / 3 * math.Sqrt(sq(s1-s2)+sq(s2-s3)+sq(s1-s3))
		sm2 := (s1 + s3) / 2
		am := 2 * math.Sqrt2 / 3 * st.Cohesion * cos
		bm := 2 * math.Sqrt2 / 3 * sin
		fv := am + bm*sm2
		a.ratio(tauOct, fv)
		a.Diagnostics["tau_oct"] = tauOct
		a.Diagnostics["sigma_m2"] = sm2
		a.Diagnostics["failure_criterion_value"] = fv

	case ModifiedLade:
		i3 := s1 * s2 * s3
		if s3 <= 0 {
			i3 = 1e-6
		}
		eta := 4 * tan * tan * (9 - 7*sin) / (1 - sin)
		lhs := i1*i1*i1/i3 - 27
		a.ratio(lhs, eta)
		// Lade fails on lhs >= η even where the ratio is saturated.
		a.Status = status(lhs >= eta)
		a.Diagnostics["I1"] = i1
		a.Diagnostics["I3"] = i3
		a.Diagnostics["lade_criterion"] = lhs
		a.Diagnostics["lade_parameter_eta"] = eta

	case ModifiedWiebolsCook:
		c1 := ucs / 3
		c2 := 0.1
		fv := c1 + c2*(s2-s3)
		a.ratio(math.Sqrt(j2), fv)
		a.Diagnostics["sqrt_J2"] = math.Sqrt(j2)
		a.Diagnostics["failure_criterion"] = fv
	}
	return a
}

// ratio fills the strength ratio, status and safety factor for a load
// measured against a strength value.
func (a *Assessment) ratio(load, strength float64) {
	if strength > 0 {
		a.StrengthRatio = load / strength
	} else {
		a.StrengthRatio = SaturatedRatio
		a.Clamped = true
	}
	a.Status = status(a.StrengthRatio >= 1)
	if a.StrengthRatio > 0 {
		a.SafetyFactor = 1 / a.StrengthRatio
	}
}

func status(failed bool) string {
	if failed {
		return "failed"
	}
	return "stable"
}

func sq(x float64) float64 { return x * x }
