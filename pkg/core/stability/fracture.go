package stability

import (
	"strings"

	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/units"
)

// FractureMethod selects the fracture gradient correlation.
type FractureMethod int

const (
	Eaton FractureMethod = iota
	HubbertWillis
	MatthewsKelly
)

func (m FractureMethod) String() string {
	switch m {
	case HubbertWillis:
		return "hubbert_willis"
	case MatthewsKelly:
		return "matthews_kelly"
	}
	return "eaton"
}

// ParseFractureMethod accepts the correlation names. An empty string is
// [Eaton].
func ParseFractureMethod(s string) (FractureMethod, error) {
	switch strings.ToLower(s) {
	case "", "eaton":
		return Eaton, nil
	case "hubbert_willis":
		return HubbertWillis, nil
	case "matthews_kelly":
		return MatthewsKelly, nil
	}
	return Eaton, errors.New(errors.ErrCodeInvalidInput,
		"method must be one of [hubbert_willis, eaton, matthews_kelly], got %q", s)
}

// FractureInput holds the inputs for [FractureGradient]. A known Shmin
// overrides the method.
type FractureInput struct {
	Depth  float64
	Shmin  *float64
	Sv     float64
	Pp     float64
	Nu     float64
	Method FractureMethod
}

// FractureResult is a fracture gradient estimate.
type FractureResult struct {
	Pressure   float64 `json:"fracture_pressure"`
	Gradient   float64 `json:"fracture_gradient"`
	EMW        float64 `json:"equivalent_mud_weight"`
	Margin     float64 `json:"margin"`
	MethodUsed string  `json:"method_used"`
}

// matthewsKellyK is the matrix stress coefficient of the Matthews-Kelly
// correlation.
const matthewsKellyK = 0.75

// FractureGradient estimates the fracture pressure at depth.
func FractureGradient(in FractureInput) FractureResult {
	var pf float64
	used := in.Method.String()
	switch {
	case in.Shmin != nil:
		pf = *in.Shmin
		used = "measured_sigma_h_min"
	case in.Method == MatthewsKelly:
		pf = in.Sv/in.Depth*(in.Depth-1000)*matthewsKellyK + in.Pp
	default:
		pf = in.Nu/(1-in.Nu)*(in.Sv-in.Pp) + in.Pp
	}
	return FractureResult{
		Pressure:   pf,
		Gradient:   pf / in.Depth,
		EMW:        units.EMW(pf, in.Depth),
		Margin:     pf - in.Pp,
		MethodUsed: used,
	}
}

// Band classifies the width of a mud weight window.
type Band int

const (
	BandNegative Band = iota
	BandNarrow
	BandModerate
	BandWide
)

// String returns the drilling status label of the band.
func (b Band) String() string {
	switch b {
	case BandNegative:
		return "negative - MPD required"
	case BandNarrow:
		return "narrow - challenging"
	case BandModerate:
		return "moderate - normal drilling"
	}
	return "wide - easy drilling"
}

// BandOf classifies a window width in ppg.
func BandOf(width float64) Band {
	switch {
	case width < 0:
		return BandNegative
	case width < 2:
		return BandNarrow
	case width < 4:
		return BandModerate
	}
	return BandWide
}

// WindowResult is a drilling mud weight window in ppg.
type WindowResult struct {
	Min             float64  `json:"min_mud_weight"`
	Max             float64  `json:"max_mud_weight"`
	Width           float64  `json:"window_width"`
	Status          string   `json:"status"`
	Band            Band     `json:"-"`
	PoreEMW         float64  `json:"pore_pressure_emw"`
	FractureEMW     float64  `json:"fracture_emw"`
	CollapseEMW     *float64 `json:"collapse_emw,omitempty"`
	CollapseGoverns bool     `json:"collapse_governs"`
}

// MudWeightWindow returns the safe mud weight range between pore pressure
// plus overMargin and fracture pressure minus fracMargin. A collapse pressure,
// when known, raises the lower bound.
func MudWeightWindow(pp, frac, depth, overMargin, fracMargin float64, collapse *float64) WindowResult {
	r := WindowResult{
		PoreEMW:     units.EMW(pp, depth),
		FractureEMW: units.EMW(frac, depth),
	}
	r.Min = r.PoreEMW + overMargin
	r.Max = r.FractureEMW - fracMargin
	if collapse != nil {
		c := units.EMW(*collapse, depth)
		r.CollapseEMW = &c
		if c > r.Min {
			r.Min = c
			r.CollapseGoverns = true
		}
	}
	r.Width = r.Max - r.Min
	r.Band = BandOf(r.Width)
	r.Status = r.Band.String()
	return r
}

// TensileInput describes a vertical well for tensile fracture initiation.
// Depth is optional.
type TensileInput struct {
	SHmax   float64
	Shmin   float64
	Pp      float64
	Tensile float64
	Thermal float64
	Depth   float64
}

// TensileResult holds the tensile fracture pressures.
type TensileResult struct {
	Initiation     float64 `json:"fracture_initiation_pressure"`
	Breakdown      float64 `json:"breakdown_pressure"`
	Propagation    float64 `json:"propagation_pressure"`
	Reopening      float64 `json:"reopening_pressure"`
	Gradient       float64 `json:"fracture_gradient"`
	EMW            float64 `json:"equivalent_mud_weight"`
	Anisotropy     float64 `json:"stress_anisotropy"`
	Depth          float64 `json:"depth"`
	DepthEstimated bool    `json:"depth_estimated"`
}

// TensileFailure returns the Hubbert-Willis initiation pressure
// 3σh - σH + T - Pp - σthermal and the related reopening and propagation
// pressures.
func TensileFailure(in TensileInput) TensileResult {
	depth, estimated := resolveDepth(in.Depth, in.Pp)
	initiation := 3*in.Shmin - in.SHmax + in.Tensile - in.Pp - in.Thermal

	r := TensileResult{
		Initiation:     initiation,
		Breakdown:      initiation,
		Propagation:    in.Shmin,
		Reopening:      3*in.Shmin - in.SHmax - in.Pp,
		Anisotropy:     in.SHmax - in.Shmin,
		Depth:          depth,
		DepthEstimated: estimated,
	}
	if depth > 0 {
		r.Gradient = initiation / depth
		r.EMW = r.Gradient / units.PsiPerFtPerPpg
	}
	return r
}

// BreakdownResult holds the breakdown pressure bounds.
type BreakdownResult struct {
	Breakdown   float64 `json:"breakdown_pressure"`
	Impermeable float64 `json:"breakdown_impermeable"`
	Permeable   float64 `json:"breakdown_permeable"`
	ISIP        float64 `json:"isip_estimate"`
	Closure     float64 `json:"closure_pressure"`
	NetPressure float64 `json:"typical_net_pressure"`
	Orientation string  `json:"fracture_orientation"`
}

// typicalNetPressure is the customary net fracturing pressure, psi.
const typicalNetPressure = 500.0

// BreakdownPressure averages the impermeable (Hubbert-Willis) and permeable
// (Haimson-Fairhurst) breakdown pressures. eta is the poroelastic constant
// in [0, 1]; at eta = 1 both bounds coincide.
func BreakdownPressure(sHmax, shmin, pp, tensile, eta float64) BreakdownResult {
	base := 3*shmin - sHmax + tensile
	imperm := base - pp
	perm := imperm
	if eta < 1 {
		perm = (base - eta*pp) / (1 - eta)
	}
	return BreakdownResult{
		Breakdown:   (imperm + perm) / 2,
		Impermeable: imperm,
		Permeable:   perm,
		ISIP:        shmin,
		Closure:     shmin,
		NetPressure: typicalNetPressure,
		Orientation: "perpendicular to σh_min",
	}
}

// TestType is a formation integrity test type.
type TestType int

const (
	LOT TestType = iota // leak-off test, taken to breakdown
	FIT                 // formation integrity test, stopped short of leak-off
)

func (t TestType) String() string {
	if t == FIT {
		return "FIT"
	}
	return "LOT"
}

// ParseTestType accepts "LOT" or "FIT".
func ParseTestType(s string) (TestType, error) {
	switch strings.ToUpper(s) {
	case "", "LOT":
		return LOT, nil
	case "FIT":
		return FIT, nil
	}
	return LOT, errors.New(errors.ErrCodeInvalidInput, "test_type must be one of [LOT, FIT], got %q", s)
}

// LeakOffResult interprets a surface leak-off or integrity test.
type LeakOffResult struct {
	Shmin        float64  `json:"sigma_h_min"`
	Gradient     float64  `json:"fracture_gradient"`
	EMW          float64  `json:"equivalent_mud_weight"`
	Breakdown    *float64 `json:"breakdown_pressure"`
	PressureAtTD float64  `json:"test_pressure_at_depth"`
	Hydrostatic  float64  `json:"hydrostatic"`
}

// LeakOff converts a surface leak-off pressure into downhole values. A FIT
// reports no breakdown pressure because the formation was not broken down.
func LeakOff(surface, mudWeight, depth float64, typ TestType) LeakOffResult {
	hyd := units.PressureFromEMW(mudWeight, depth)
	total := surface + hyd
	r := LeakOffResult{
		Shmin:        total,
		Gradient:     total / depth,
		EMW:          units.EMW(total, depth),
		PressureAtTD: total,
		Hydrostatic:  hyd,
	}
	if typ == LOT {
		b := total
		r.Breakdown = &b
	}
	return r
}

// FractureModel selects a 2-D hydraulic fracture geometry.
type FractureModel int

const (
	PKN FractureModel = iota
	KGD
)

func (m FractureModel) String() string {
	if m == KGD {
		return "KGD"
	}
	return "PKN"
}

// ParseFractureModel accepts "PKN" or "KGD".
func ParseFractureModel(s string) (FractureModel, error) {
	switch strings.ToUpper(s) {
	case "", "PKN":
		return PKN, nil
	case "KGD":
		return KGD, nil
	}
	return PKN, errors.New(errors.ErrCodeInvalidInput, "model must be one of [PKN, KGD], got %q", s)
}

// WidthResult is a hydraulic fracture width in inches.
type WidthResult struct {
	Average    float64 `json:"avg_width"`
	Max        float64 `json:"max_width"`
	Compliance float64 `json:"fracture_compliance"`
	PlaneE     float64 `json:"plane_strain_modulus"`
	Model      string  `json:"model_used"`
}

// FractureWidth returns the average and maximum width of a PKN (height
// controlled) or KGD (length controlled) fracture. Lengths are in feet.
func FractureWidth(netPressure, height, halfLength, E, nu float64, model FractureModel) WidthResult {
	ePrime := E / (1 - nu*nu)

	var avg, peak float64
	if model == KGD {
		avg = 3.5 * netPressure * halfLength / ePrime
		peak = 1.6 * avg
	} else {
		avg = 2.5 * netPressure * height / ePrime
		peak = 2.0 * avg
	}
	avg *= 12
	peak *= 12
	return WidthResult{
		Average:    avg,
		Max:        peak,
		Compliance: avg / netPressure,
		PlaneE:     ePrime,
		Model:      model.String(),
	}
}
