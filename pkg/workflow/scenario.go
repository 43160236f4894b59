package workflow

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/geomech/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultAvgDensity         = 144.0 // lb/ft³
	DefaultWaterDensity       = 64.0  // lb/ft³
	DefaultEatonExponent      = 3.0
	DefaultPoissonRatio       = 0.25
	DefaultBiot               = 1.0
	DefaultMargin             = 0.5 // ppg
	DefaultConfiningStress    = 2000.0
	DefaultWellboreAzimuth    = 45.0
	DefaultYoungsModulus      = 500000.0
	DefaultReservoirThickness = 100.0
)

// RecommendedFraction places the recommended mud weight this far into the
// drilling window, measured from its lower bound.
const RecommendedFraction = 0.6

// =============================================================================
// Scenario
// =============================================================================

// Scenario describes a vertical well section for the pre-drill study.
// Depths are feet, stresses psi, densities lb/ft³, mud weights ppg.
type Scenario struct {
	Name string `toml:"name" json:"name,omitempty"`

	// Overburden
	Depth        float64 `toml:"depth" json:"depth"`
	WaterDepth   float64 `toml:"water_depth" json:"water_depth"`
	AvgDensity   float64 `toml:"avg_density" json:"avg_density"`
	WaterDensity float64 `toml:"water_density" json:"water_density"`

	// Pore pressure from sonic logs, μs/ft
	SonicObserved float64 `toml:"sonic_observed" json:"sonic_observed"`
	SonicNormal   float64 `toml:"sonic_normal" json:"sonic_normal"`
	EatonExponent float64 `toml:"eaton_exponent" json:"eaton_exponent"`

	// Rock
	PoissonRatio    float64 `toml:"poisson_ratio" json:"poisson_ratio"`
	YoungsModulus   float64 `toml:"youngs_modulus" json:"youngs_modulus"`
	Cohesion        float64 `toml:"cohesion" json:"cohesion"`
	FrictionAngle   float64 `toml:"friction_angle" json:"friction_angle"`
	ConfiningStress float64 `toml:"confining_stress" json:"confining_stress"`
	Biot            float64 `toml:"biot_coefficient" json:"biot_coefficient"`
	TectonicFactor  float64 `toml:"tectonic_factor" json:"tectonic_factor"`

	// Drilling
	MudWeight         *float64 `toml:"mud_weight" json:"mud_weight,omitempty"`
	OverbalanceMargin float64  `toml:"overbalance_margin" json:"overbalance_margin"`
	FractureMargin    float64  `toml:"fracture_margin" json:"fracture_margin"`
	WellboreAzimuth   float64  `toml:"wellbore_azimuth" json:"wellbore_azimuth"`

	// Production
	ReservoirThickness float64 `toml:"reservoir_thickness" json:"reservoir_thickness"`
	Depletion          float64 `toml:"depletion" json:"depletion"`
}

// DefaultScenario returns a scenario with every optional field set. Depth,
// the sonic values, cohesion, friction angle and depletion have no default.
func DefaultScenario() Scenario {
	return Scenario{
		AvgDensity:         DefaultAvgDensity,
		WaterDensity:       DefaultWaterDensity,
		EatonExponent:      DefaultEatonExponent,
		PoissonRatio:       DefaultPoissonRatio,
		YoungsModulus:      DefaultYoungsModulus,
		ConfiningStress:    DefaultConfiningStress,
		Biot:               DefaultBiot,
		OverbalanceMargin:  DefaultMargin,
		FractureMargin:     DefaultMargin,
		WellboreAzimuth:    DefaultWellboreAzimuth,
		ReservoirThickness: DefaultReservoirThickness,
	}
}

// LoadScenario decodes a TOML scenario over [DefaultScenario] and validates
// it. Unknown keys are rejected.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return Scenario{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse scenario %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Scenario{}, errors.New(errors.ErrCodeInvalidInput,
			"scenario %s: unknown key(s) %s", path, strings.Join(keys, ", "))
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks every field against its physical range.
func (s Scenario) Validate() error {
	if err := errors.First(
		errors.Positive("depth", s.Depth),
		errors.NonNegative("water_depth", s.WaterDepth),
		errors.Positive("avg_density", s.AvgDensity),
		errors.Positive("water_density", s.WaterDensity),
		errors.Positive("sonic_observed", s.SonicObserved),
		errors.Positive("sonic_normal", s.SonicNormal),
		errors.Positive("eaton_exponent", s.EatonExponent),
		errors.Open("poisson_ratio", s.PoissonRatio, 0, 0.5),
		errors.Positive("youngs_modulus", s.YoungsModulus),
		errors.NonNegative("cohesion", s.Cohesion),
		errors.Open("friction_angle", s.FrictionAngle, 0, 90),
		errors.NonNegative("confining_stress", s.ConfiningStress),
		errors.HalfOpen("biot_coefficient", s.Biot, 0, 1),
		errors.Closed("tectonic_factor", s.TectonicFactor, 0, 1),
		errors.NonNegative("overbalance_margin", s.OverbalanceMargin),
		errors.NonNegative("fracture_margin", s.FractureMargin),
		errors.Closed("wellbore_azimuth", s.WellboreAzimuth, 0, 360),
		errors.Positive("reservoir_thickness", s.ReservoirThickness),
		errors.NonNegative("depletion", s.Depletion),
	); err != nil {
		return err
	}
	if s.WaterDepth >= s.Depth {
		return errors.New(errors.ErrCodeInvalidInput,
			"water_depth (%g) must be less than depth (%g)", s.WaterDepth, s.Depth)
	}
	if s.MudWeight != nil {
		return errors.Positive("mud_weight", *s.MudWeight)
	}
	return nil
}
