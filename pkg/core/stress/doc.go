// Package stress models the in-situ stress state of a formation.
//
// # Overview
//
// Every wellbore-stability calculation starts from the three principal
// stresses and the pore pressure at depth. This package estimates them from
// depth and rock properties and tracks how they change with production,
// injection and temperature. All stresses are total stresses in psi unless a
// name says otherwise; depths are true vertical depth in feet.
//
// # Vertical and Horizontal Stress
//
// [Vertical] integrates the overburden (and an optional water column).
// [Horizontal] applies the uniaxial-strain poroelastic relation for σh and a
// linear interpolation toward σv for σH:
//
//	σh = ν/(1-ν)·(σv - αPp) + αPp
//	σH = σh + t·(σv - σh)
//
// The σH relation is a deliberate simplification controlled by the tectonic
// factor t in [0, 1]; it is not a full tectonic strain model.
//
// # Effective Stress
//
// [Effective] and [EffectiveSeries] apply Terzaghi/Biot effective stress
// σ' = σ - αPp. The series form broadcasts a single value against a log.
//
// # Frictional Limits
//
// [Polygon] computes the Zoback stress polygon bounds for a friction
// coefficient and [PolygonResult.Classify] places a measured state in it.
//
// # Stress Changes
//
// [Path] gives the horizontal stress response to depletion or injection and
// [Thermal] the hoop stress change from cooling or heating the wall.
package stress
