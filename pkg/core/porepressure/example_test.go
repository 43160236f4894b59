package porepressure_test

import (
	"fmt"

	"github.com/matzehuels/geomech/pkg/core/porepressure"
)

func ExampleEaton() {
	r, _ := porepressure.Eaton(10000, 100, 70, 10400, 0, porepressure.Sonic)
	fmt.Printf("Pp = %.0f psi, overpressure %.0f psi\n", r.Pressure, r.Overpressure)
	// Output:
	// Pp = 8428 psi, overpressure 3778 psi
}
