package failure_test

import (
	"fmt"

	"github.com/matzehuels/geomech/pkg/core/failure"
)

func ExampleMohrCoulomb() {
	r := failure.MohrCoulomb(500, 30, 2000)
	fmt.Printf("UCS = %.2f psi, q = %.1f\n", r.UCS, r.QFactor)
	fmt.Printf("sigma1 at failure = %.0f psi\n", r.MaxPrincipalStress)
	// Output:
	// UCS = 1732.05 psi, q = 3.0
	// sigma1 at failure = 7732 psi
}

func ExampleEvaluate() {
	st := failure.Strength{Cohesion: 500, FrictionAngle: 30, UCS: 1732.05}
	ev := failure.Evaluate(3000, 2500, 2000, st, failure.MohrCoulombCriterion, failure.ModifiedLade)
	for _, a := range ev.Assessments {
		fmt.Printf("%s: %s (%.2f)\n", a.Name, a.Status, a.StrengthRatio)
	}
	// Output:
	// mohr_coulomb: stable (0.39)
	// modified_lade: stable (0.08)
}
