// Package pkg provides the libraries behind geomech, a geomechanics
// calculator for well planning.
//
// # Overview
//
// Geomech estimates in-situ stresses and pore pressure, evaluates rock
// failure and wellbore stability, and derives safe mud weight windows. The
// pkg directory is organized into four areas:
//
//  1. [core] - Calculations (stress, pore pressure, elasticity, failure,
//     wellbore stresses, stability limits)
//  2. [tools] - Named JSON tools wrapping the calculations, with a runner
//     that adds caching and run archiving
//  3. [workflow] - A pre-drill study chaining the tools from one scenario
//  4. Infrastructure - [cache], [archive], [config], [observability] and
//     the HTTP [api]
//
// # Architecture
//
// A request flows through geomech like this:
//
//	CLI (cobra) or HTTP API (chi)
//	         ↓
//	    [tools] package (decode, default, validate)
//	         ↓
//	    [core/...] packages (calculation)
//	         ↓
//	    JSON result  →  [cache] (file or redis)
//	                 →  [archive] (sqlite or mongo)
//
// # Quick Start
//
// Run one tool directly:
//
//	reg := tools.Default()
//	out, err := reg.Call(ctx, "geomech_vertical_stress", []byte(`{"depth": 10000}`))
//
// Or run a full pre-drill study:
//
//	sc, _ := workflow.LoadScenario("predrill.toml")
//	rep, err := workflow.NewRunner(logger).Execute(ctx, sc)
//	fmt.Printf("%.1f ppg\n", rep.RecommendedMudWeight)
//
// # Main Packages
//
// ## Calculations
//
// [core/stress] - Overburden, effective stress, horizontal stresses, the
// stress polygon, depletion stress paths and thermal stress.
//
// [core/porepressure] - Eaton pore pressure from sonic or resistivity logs.
//
// [core/elastic] - Elastic moduli conversion, dynamic to static moduli and
// pore compressibility.
//
// [core/failure] - Mohr-Coulomb strength, UCS from logs and the five shear
// failure criteria.
//
// [core/wellbore] - Kirsch wall stresses for vertical and deviated wells.
//
// [core/stability] - Fracture gradient, mud weight window, breakout,
// collapse, sanding, compaction, fracture width and fault stability.
//
// ## Infrastructure
//
// [cache] - Result caching with file and Redis backends.
//
// [archive] - Run archiving with SQLite and MongoDB backends.
//
// [config] - TOML configuration with an XDG search path.
//
// [observability] - Hook interfaces and Prometheus metrics.
//
// [api] - The HTTP API served by "geomech serve".
//
// [errors] - Coded errors and range validators shared by every package.
//
// [units] - Unit constants and conversions for oilfield units.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core
// [core/stress]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core/stress
// [core/porepressure]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core/porepressure
// [core/elastic]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core/elastic
// [core/failure]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core/failure
// [core/wellbore]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core/wellbore
// [core/stability]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/core/stability
// [tools]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/tools
// [workflow]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/workflow
// [cache]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/archive
// [config]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/observability
// [api]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/errors
// [units]: https://pkg.go.dev/github.com/matzehuels/geomech/pkg/units
package pkg
