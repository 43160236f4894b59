package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/workflow"
)

// stepTitles are the display headings of the workflow steps.
var stepTitles = map[string]string{
	workflow.StepVertical:     "Vertical stress",
	workflow.StepPorePressure: "Pore pressure (Eaton)",
	workflow.StepHorizontal:   "Horizontal stresses",
	workflow.StepFracture:     "Fracture gradient",
	workflow.StepWindow:       "Mud weight window",
	workflow.StepStrength:     "Rock strength",
	workflow.StepBreakout:     "Breakout",
	workflow.StepWallCriteria: "Failure criteria at the wall",
	workflow.StepCompaction:   "Reservoir compaction",
}

// Compaction thresholds for the casing strain rating, feet.
const (
	compactionHigh     = 1.0
	compactionModerate = 0.5
)

// scenarioCommand runs a pre-drill study from a TOML scenario file.
func (c *CLI) scenarioCommand() *cobra.Command {
	var (
		asJSON    bool
		mudWeight float64
	)

	cmd := &cobra.Command{
		Use:   "scenario <file.toml>",
		Short: "Run a pre-drill geomechanics study",
		Long: `Run a pre-drill geomechanics study described by a TOML scenario.

The study chains overburden, Eaton pore pressure, horizontal stresses,
fracture gradient, the mud weight window, rock strength, breakout and
failure criteria at the wall, and reservoir compaction. Fields left out of
the file take their documented defaults.`,
		Example: `  geomech scenario examples/scenarios/predrill.toml
  geomech scenario predrill.toml --mud-weight 16.3 --json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScenarioFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sc, err := workflow.LoadScenario(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mud-weight") {
				sc.MudWeight = &mudWeight
				if err := sc.Validate(); err != nil {
					return err
				}
			}

			prog := newProgress(loggerFromContext(ctx))
			rep, err := workflow.NewRunner(loggerFromContext(ctx)).Execute(ctx, sc)
			if err != nil {
				return err
			}
			prog.done("scenario finished", "file", args[0], "steps", len(rep.Steps))

			if asJSON {
				return writeJSON(out, rep)
			}
			return printReport(out, rep)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().Float64Var(&mudWeight, "mud-weight", 0, "mud weight for the breakout check, ppg (default: recommended)")

	return cmd
}

// printReport prints every step followed by the drilling summary.
func printReport(w io.Writer, rep *workflow.Report) error {
	name := rep.Scenario.Name
	if name == "" {
		name = "Scenario"
	}
	fmt.Fprintln(w, StyleTitle.Render(name))
	printDetail(w, "%.0f ft vertical well, %d steps", rep.Scenario.Depth, len(rep.Steps))

	for i, step := range rep.Steps {
		data, err := json.Marshal(step.Result)
		if err != nil {
			return fmt.Errorf("encode step %s: %w", step.Name, err)
		}
		rows, err := flattenJSON(data)
		if err != nil {
			return err
		}
		title := stepTitles[step.Name]
		if title == "" {
			title = step.Name
		}
		printTitle(w, fmt.Sprintf("%d. %s", i+1, title))
		printKeyValues(w, rows)
	}

	printTitle(w, "Summary")
	pressure := "normal"
	if rep.Overpressured {
		pressure = "overpressured"
	}
	printKeyValues(w, []kv{
		{"pore pressure", fmt.Sprintf("%s psi (%s psi/ft)", formatNumber(rep.PorePressure.Pressure), formatNumber(rep.PorePressure.Gradient))},
		{"fracture pressure", fmt.Sprintf("%s psi (%s psi/ft)", formatNumber(rep.Fracture.Pressure), formatNumber(rep.Fracture.Gradient))},
		{"pressure regime", pressure},
		{"stress regime", rep.Regime},
		{"mud weight window", fmt.Sprintf("%.1f - %.1f ppg", rep.Window.Min, rep.Window.Max)},
		{"recommended", fmt.Sprintf("%.1f ppg", rep.RecommendedMudWeight)},
		{"UCS", fmt.Sprintf("%s psi", formatNumber(rep.Strength.UCS))},
		{"breakout", rep.Breakout.Status},
		{"critical mud weight", fmt.Sprintf("%.1f ppg", rep.Breakout.CriticalMudWeight)},
		{"compaction", fmt.Sprintf("%.2f ft", rep.Compaction.Compaction)},
		{"casing strain risk", casingRisk(rep.Compaction.Compaction)},
	})

	fmt.Fprintln(w)
	if rep.Overpressured {
		printWarning(w, "Overpressured zone, plan mud weight control carefully")
	}
	if strings.HasPrefix(rep.Window.Status, "narrow") || strings.HasPrefix(rep.Window.Status, "negative") {
		printWarning(w, "Mud weight window is %s", rep.Window.Status)
	}
	if rep.Breakout.Width > 0 {
		printWarning(w, "Breakout of %.0f° expected at %.1f ppg", rep.Breakout.Width, rep.MudWeight)
	}
	if rep.WallCriteria.MohrCoulombFailed {
		printWarning(w, "Wall fails in shear under %s", strings.Join(rep.WallCriteria.Failed, ", "))
	}
	if rep.Compaction.Compaction > compactionHigh {
		printWarning(w, "Significant compaction, monitor casing integrity")
	}
	printSuccess(w, "Recommended mud weight %.1f ppg (window %s)",
		rep.RecommendedMudWeight, statusStyle(rep.Window.Status).Render(rep.Window.Status))
	return nil
}

// casingRisk rates compaction in feet.
func casingRisk(compaction float64) string {
	switch {
	case compaction > compactionHigh:
		return "high"
	case compaction > compactionModerate:
		return "moderate"
	}
	return "low"
}

// completeScenarioFiles offers .toml files for the first argument only.
func completeScenarioFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}
