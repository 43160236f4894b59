// Package workflow runs the pre-drill geomechanics study for a vertical well.
//
// A [Scenario] is read from TOML and carried through nine steps, each feeding
// the next:
//
//  1. vertical: overburden from bulk density
//  2. pore_pressure: Eaton sonic estimate against the overburden
//  3. horizontal: σh and σH from uniaxial strain and the tectonic factor
//  4. fracture: fracture pressure, taken as the computed σh
//  5. window: drilling mud weight window between pore and fracture pressure
//  6. strength: Mohr-Coulomb UCS from cohesion and friction angle
//  7. breakout: breakout width at the scenario mud weight, or at the
//     recommended min + 0.6·width when none is given
//  8. wall_criteria: every shear criterion at the breakout point of the wall
//  9. compaction: reservoir compaction for the planned depletion
//
// The steps call the core packages directly. A failing step aborts the run
// and its name is wrapped into the error.
//
// # Usage
//
//	sc, err := workflow.LoadScenario("predrill.toml")
//	report, err := workflow.NewRunner(logger).Execute(ctx, sc)
//	for _, step := range report.Steps {
//	    fmt.Println(step.Name, step.Duration)
//	}
package workflow

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geomech/pkg/core/failure"
	"github.com/matzehuels/geomech/pkg/core/porepressure"
	"github.com/matzehuels/geomech/pkg/core/stability"
	"github.com/matzehuels/geomech/pkg/core/stress"
	"github.com/matzehuels/geomech/pkg/core/wellbore"
	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/units"
)

// Step names, in execution order.
const (
	StepVertical     = "vertical"
	StepPorePressure = "pore_pressure"
	StepHorizontal   = "horizontal"
	StepFracture     = "fracture"
	StepWindow       = "window"
	StepStrength     = "strength"
	StepBreakout     = "breakout"
	StepWallCriteria = "wall_criteria"
	StepCompaction   = "compaction"
)

// overpressureGradient separates normal from overpressured formations, psi/ft.
const overpressureGradient = 0.465

// Step is one executed step.
type Step struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration_ns"`
	Result   any           `json:"result"`
}

// WallState is the effective stress state at the breakout point of the wall,
// sorted so that S1 >= S2 >= S3.
type WallState struct {
	Hoop   float64 `json:"effective_hoop"`
	Radial float64 `json:"effective_radial"`
	Axial  float64 `json:"effective_axial"`
	S1     float64 `json:"sigma_1"`
	S2     float64 `json:"sigma_2"`
	S3     float64 `json:"sigma_3"`
}

// WallCriteria is the result of the wall_criteria step.
type WallCriteria struct {
	State WallState          `json:"wall_state"`
	Eval  failure.Evaluation `json:"evaluation"`

	// MohrCoulombFailed is the Mohr-Coulomb verdict, the criterion the
	// breakout step is built on.
	MohrCoulombFailed bool `json:"mohr_coulomb_failed"`
	// Failed lists the criteria predicting failure, in evaluation order.
	Failed []string `json:"failed_criteria"`
}

// Report holds every step result of a run.
type Report struct {
	Scenario Scenario `json:"scenario"`

	Vertical     stress.VerticalResult      `json:"vertical_stress"`
	PorePressure porepressure.Result        `json:"pore_pressure"`
	Horizontal   stress.HorizontalResult    `json:"horizontal_stress"`
	Regime       string                     `json:"stress_regime"`
	Fracture     stability.FractureResult   `json:"fracture"`
	Window       stability.WindowResult     `json:"mud_weight_window"`
	Strength     failure.MCResult           `json:"strength"`
	Breakout     stability.BreakoutResult   `json:"breakout"`
	WallCriteria WallCriteria               `json:"wall_criteria"`
	Compaction   stability.CompactionResult `json:"compaction"`

	// RecommendedMudWeight is min + 0.6·width of the window, ppg.
	RecommendedMudWeight float64 `json:"recommended_mud_weight"`
	// MudWeight is the mud weight the breakout step used, ppg.
	MudWeight float64 `json:"mud_weight"`
	// Overpressured is set when the pore pressure gradient exceeds 0.465 psi/ft.
	Overpressured bool `json:"overpressured"`

	Steps []Step `json:"steps"`
}

// Runner executes scenarios.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Logger: logger}
}

// Execute validates sc and runs every step in order. ctx is checked between
// steps.
func (r *Runner) Execute(ctx context.Context, sc Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	rep := &Report{Scenario: sc}

	steps := []struct {
		name string
		run  func() (any, error)
	}{
		{StepVertical, func() (any, error) {
			rep.Vertical = stress.Vertical(sc.Depth, sc.WaterDepth, sc.AvgDensity, sc.WaterDensity)
			return rep.Vertical, nil
		}},
		{StepPorePressure, func() (any, error) {
			pp, err := porepressure.Eaton(sc.Depth, sc.SonicObserved, sc.SonicNormal,
				rep.Vertical.Stress, sc.EatonExponent, porepressure.Sonic)
			if err != nil {
				return nil, err
			}
			if pp.Pressure <= 0 || pp.Pressure >= rep.Vertical.Stress {
				return nil, errors.New(errors.ErrCodeDomain,
					"pore pressure %.0f psi is outside (0, overburden %.0f psi)", pp.Pressure, rep.Vertical.Stress)
			}
			rep.PorePressure = pp
			rep.Overpressured = pp.Gradient > overpressureGradient
			return pp, nil
		}},
		{StepHorizontal, func() (any, error) {
			rep.Horizontal = stress.Horizontal(rep.Vertical.Stress, rep.PorePressure.Pressure,
				sc.PoissonRatio, sc.TectonicFactor, sc.Biot)
			rep.Regime = rep.Horizontal.Regime.Short()
			return rep.Horizontal, nil
		}},
		{StepFracture, func() (any, error) {
			shmin := rep.Horizontal.Shmin
			rep.Fracture = stability.FractureGradient(stability.FractureInput{
				Depth:  sc.Depth,
				Shmin:  &shmin,
				Sv:     rep.Vertical.Stress,
				Pp:     rep.PorePressure.Pressure,
				Nu:     sc.PoissonRatio,
				Method: stability.HubbertWillis,
			})
			return rep.Fracture, nil
		}},
		{StepWindow, func() (any, error) {
			rep.Window = stability.MudWeightWindow(rep.PorePressure.Pressure, rep.Fracture.Pressure,
				sc.Depth, sc.OverbalanceMargin, sc.FractureMargin, nil)
			rep.RecommendedMudWeight = rep.Window.Min + RecommendedFraction*rep.Window.Width
			return rep.Window, nil
		}},
		{StepStrength, func() (any, error) {
			rep.Strength = failure.MohrCoulomb(sc.Cohesion, sc.FrictionAngle, sc.ConfiningStress)
			return rep.Strength, nil
		}},
		{StepBreakout, func() (any, error) {
			rep.MudWeight = rep.RecommendedMudWeight
			if sc.MudWeight != nil {
				rep.MudWeight = *sc.MudWeight
			}
			if rep.MudWeight <= 0 {
				return nil, errors.New(errors.ErrCodeDomain,
					"recommended mud weight %.2f ppg is not positive", rep.MudWeight)
			}
			rep.Breakout = stability.Breakout(stability.BreakoutInput{
				SHmax:         rep.Horizontal.SHmax,
				Shmin:         rep.Horizontal.Shmin,
				Pp:            rep.PorePressure.Pressure,
				MudWeight:     rep.MudWeight,
				UCS:           rep.Strength.UCS,
				FrictionAngle: sc.FrictionAngle,
				Depth:         sc.Depth,
				Azimuth:       sc.WellboreAzimuth,
			})
			return rep.Breakout, nil
		}},
		{StepWallCriteria, func() (any, error) {
			rep.WallCriteria = wallCriteria(rep, sc)
			return rep.WallCriteria, nil
		}},
		{StepCompaction, func() (any, error) {
			rep.Compaction = stability.Compaction(stability.CompactionInput{
				PressureDrop: sc.Depletion,
				Thickness:    sc.ReservoirThickness,
				E:            sc.YoungsModulus,
				Nu:           sc.PoissonRatio,
				Biot:         sc.Biot,
			})
			return rep.Compaction, nil
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		res, err := st.run()
		if err != nil {
			return nil, stepError(st.name, err)
		}
		d := time.Since(start)
		rep.Steps = append(rep.Steps, Step{Name: st.name, Duration: d, Result: res})
		r.Logger.Debug("step complete", "step", st.name, "duration", d)
	}

	r.Logger.Info("scenario complete",
		"name", sc.Name,
		"regime", rep.Regime,
		"window", rep.Window.Status,
		"mud_weight", rep.MudWeight,
		"breakout", rep.Breakout.Status)
	return rep, nil
}

// wallCriteria evaluates the shear criteria at θ = 90 from σH, where the
// hoop stress of a vertical well peaks. The axial stress carries the plane
// strain term 2ν(σH - σh).
func wallCriteria(rep *Report, sc Scenario) WallCriteria {
	pp := rep.PorePressure.Pressure
	pw := units.PressureFromEMW(rep.MudWeight, sc.Depth)
	sH, sh := rep.Horizontal.SHmax, rep.Horizontal.Shmin

	ws := WallState{
		Hoop:   wellbore.KirschHoop(sH, sh, pw, 90) - pp,
		Radial: pw - pp,
		Axial:  rep.Vertical.Stress + 2*sc.PoissonRatio*(sH-sh) - pp,
	}
	p := []float64{ws.Hoop, ws.Radial, ws.Axial}
	sort.Sort(sort.Reverse(sort.Float64Slice(p)))
	ws.S1, ws.S2, ws.S3 = p[0], p[1], p[2]

	st := failure.Strength{
		Cohesion:      sc.Cohesion,
		FrictionAngle: sc.FrictionAngle,
		UCS:           rep.Strength.UCS,
	}
	wc := WallCriteria{
		State: ws,
		Eval: failure.Evaluate(ws.S1, ws.S2, ws.S3, st,
			failure.MohrCoulombCriterion, failure.DruckerPrager, failure.MogiCoulomb,
			failure.ModifiedLade, failure.ModifiedWiebolsCook),
		Failed: []string{},
	}
	if mc, ok := wc.Eval.Get(failure.MohrCoulombCriterion); ok {
		wc.MohrCoulombFailed = mc.Failed()
	}
	for _, a := range wc.Eval.Assessments {
		if a.Failed() {
			wc.Failed = append(wc.Failed, a.Criterion.String())
		}
	}
	return wc
}

// stepError names the failing step, keeping the underlying code.
func stepError(step string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "step %s", step)
}
