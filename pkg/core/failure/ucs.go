package failure

import (
	"math"
	"strings"

	"github.com/matzehuels/geomech/pkg/core/elastic"
	"github.com/matzehuels/geomech/pkg/errors"
)

// UCSCorrelation is an empirical log-to-strength correlation.
type UCSCorrelation string

const (
	McNally UCSCorrelation = "mcnally"
	Horsrud UCSCorrelation = "horsrud"
	Chang   UCSCorrelation = "chang"
	Lal     UCSCorrelation = "lal"
	Vernik  UCSCorrelation = "vernik"
)

// ParseUCSCorrelation accepts the correlation names.
func ParseUCSCorrelation(s string) (UCSCorrelation, error) {
	switch c := UCSCorrelation(strings.ToLower(s)); c {
	case McNally, Horsrud, Chang, Lal, Vernik:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"correlation must be one of [mcnally, horsrud, chang, lal, vernik], got %q", s)
}

const (
	psiPerMPa = 145.038
	psiPerGPa = 145038.0
	// cohesionFactor relates UCS to cohesion for typical friction angles.
	cohesionFactor = 3.5
)

// LogInput holds the optional log measurements. SonicDT is compressional
// transit time in μs/ft, Porosity is a fraction and E is in psi.
type LogInput struct {
	SonicDT  *float64
	Porosity *float64
	E        *float64
}

// UCSResult is a log-derived strength estimate.
type UCSResult struct {
	UCS             float64    `json:"ucs"`
	Cohesion        float64    `json:"cohesion_estimate"`
	CorrelationUsed string     `json:"correlation_used"`
	Fallback        bool       `json:"fallback"`
	TypicalRange    [2]float64 `json:"typical_range_psi"`
	Confidence      string     `json:"confidence"`
}

type ucsModel struct {
	needs func(LogInput) *float64
	eval  func(float64) float64
	rng   [2]float64
}

func sonic(in LogInput) *float64    { return in.SonicDT }
func porosity(in LogInput) *float64 { return in.Porosity }
func modulus(in LogInput) *float64  { return in.E }

func mcnally(dt float64) float64 { return 1200 * math.Exp(-0.036*dt) }
func vernik(phi float64) float64 { return 254 * math.Pow(1-2.7*phi, 2) * psiPerMPa }
func chang(e float64) float64    { return (2.28 + 4.1089*e/psiPerGPa) * psiPerMPa }

var ucsModels = map[UCSCorrelation]ucsModel{
	McNally: {sonic, mcnally, [2]float64{2000, 15000}},
	Horsrud: {sonic, func(dt float64) float64 {
		vp := 304.8 / dt / 3.281 // km/s
		return 0.77 * math.Pow(vp*1000, 2.93) / psiPerMPa
	}, [2]float64{500, 8000}},
	Chang: {modulus, chang, [2]float64{1000, 20000}},
	Lal: {sonic, func(dt float64) float64 {
		return 10 * (304.8/dt - 1) * psiPerMPa
	}, [2]float64{500, 5000}},
	Vernik: {porosity, vernik, [2]float64{2000, 25000}},
}

// fallbacks are tried in order when the requested correlation lacks input.
var fallbacks = []struct {
	name  string
	needs func(LogInput) *float64
	eval  func(float64) float64
}{
	{"mcnally (default)", sonic, mcnally},
	{"vernik (porosity-based)", porosity, vernik},
	{"chang (E-based)", modulus, chang},
}

// UCSFromLogs estimates UCS with the requested correlation. When its input is
// missing the first correlation with available data is used instead. Negative
// estimates are clamped to zero.
func UCSFromLogs(in LogInput, c UCSCorrelation, l elastic.Lithology) (UCSResult, error) {
	var r UCSResult
	if m, ok := ucsModels[c]; ok && m.needs(in) != nil {
		r.UCS = m.eval(*m.needs(in))
		r.CorrelationUsed = string(c)
		r.TypicalRange = m.rng
	} else {
		found := false
		for _, fb := range fallbacks {
			if v := fb.needs(in); v != nil {
				r.UCS = fb.eval(*v)
				r.CorrelationUsed = fb.name
				found = true
				break
			}
		}
		if !found {
			return UCSResult{}, errors.New(errors.ErrCodeInsufficientInput,
				"insufficient input data: provide sonic_dt, porosity, or youngs_modulus")
		}
		r.Fallback = true
		r.TypicalRange = [2]float64{1000, 15000}
	}

	r.UCS = math.Max(0, r.UCS)
	r.Cohesion = r.UCS / cohesionFactor
	r.Confidence = "moderate - verify with core data"
	if !r.Fallback && suited(c, l) {
		r.Confidence = "high"
	}
	return r, nil
}

// suited reports whether a correlation was calibrated on the lithology.
func suited(c UCSCorrelation, l elastic.Lithology) bool {
	switch l {
	case elastic.Sandstone:
		return c == McNally
	case elastic.Shale:
		return c == Horsrud || c == Lal
	case elastic.Carbonate:
		return c == Vernik
	}
	return false
}
