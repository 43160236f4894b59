// Package wellbore computes the stress concentration around a borehole.
//
// # Vertical Wells
//
// For a vertical well in an anisotropic horizontal stress field the Kirsch
// solution gives the hoop stress at the wall as a function of the angle θ
// measured from the σH azimuth:
//
//	σθ = σH + σh - 2(σH - σh)cos2θ - Pw
//
// [KirschHoop] evaluates it and [VerticalWall] returns both extremes. The
// compressive maximum 3σH - σh - Pw sits at θ = 90°, in the σh direction, and
// governs breakouts. The minimum 3σh - σH - Pw sits at θ = 0° and governs
// tensile fractures.
//
// # Deviated Wells
//
// [Rotate] expresses the in-situ principal stresses in a borehole frame whose
// z axis follows the well. The transform is R·diag(σH, σh, σv)·Rᵀ, built with
// gonum's mat package, where R depends on the well azimuth relative to σH and
// the inclination. [Wall] applies the Kirsch extremes to the rotated tensor
// and [HoopAt] and [WallShear] give the full angular distribution.
//
// Angles are degrees, stresses psi.
package wellbore
