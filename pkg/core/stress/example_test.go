package stress_test

import (
	"fmt"

	"github.com/matzehuels/geomech/pkg/core/stress"
)

func ExampleVertical() {
	sv := stress.Vertical(10000, 0, 144, 64)
	fmt.Printf("Sv = %.0f psi (%.3f psi/ft)\n", sv.Stress, sv.Gradient)
	// Output:
	// Sv = 10011 psi (1.001 psi/ft)
}

func ExampleHorizontal() {
	h := stress.Horizontal(10400, 4680, 0.25, 0.5, 1)
	fmt.Printf("Shmin = %.0f psi\n", h.Shmin)
	fmt.Printf("SHmax = %.0f psi\n", h.SHmax)
	fmt.Println("regime:", h.Regime.Short())
	// Output:
	// Shmin = 6587 psi
	// SHmax = 8493 psi
	// regime: strike-slip
}

func ExampleEffectiveSeries() {
	eff, _ := stress.EffectiveSeries([]float64{10400, 10900}, []float64{4680}, 1)
	fmt.Println(eff)
	// Output:
	// [5720 6220]
}
