// Package elastic converts between the isotropic elastic moduli of a rock.
//
// # Overview
//
// An isotropic linear-elastic solid is fully described by any two of its
// five moduli: Young's modulus E, bulk modulus K, shear modulus G, Poisson's
// ratio ν and Lamé's first parameter λ. Laboratory tests and logs report
// different pairs, while stress and compaction models need specific ones.
//
// # Conversions
//
// [Convert] takes an explicit [Pair] and two values:
//
//	m, err := elastic.Convert(elastic.PairENu, 1e6, 0.25)
//	// m.G ≈ 400000, m.K ≈ 666667
//
// [FromPartial] accepts whatever subset of moduli a caller has. It picks the
// first supported pair in the order E-ν, E-G, E-K, G-ν, K-ν, K-G, λ-G and
// reports ErrCodeInsufficientInput when fewer than two values are given or
// when no supported pair can be formed.
//
// # Dynamic and Static Moduli
//
// Moduli derived from sonic logs are dynamic and overstate the static
// stiffness measured in the laboratory. [DynamicToStatic] applies the
// lithology and correlation factors used in field practice.
//
// # Compressibility
//
// [BulkCompressibility] and [PoreCompressibility] derive the rock
// compressibilities used by reservoir compaction models. All moduli are in
// psi and compressibilities in 1/psi.
package elastic
