// Package stability derives drilling and production limits from a stress
// state and rock strength.
//
// # Overview
//
// The functions here combine the stress models of package stress, the wall
// solutions of package wellbore and the strength criteria of package failure
// into operational answers: which mud weights keep a hole open without
// fracturing it, how wide breakouts will be, how far a reservoir can be drawn
// down before sanding, and whether a fault will slip.
//
// # Shear Failure at the Wall
//
// Breakout and collapse use the Mohr-Coulomb condition at the point of
// maximum hoop stress of a vertical well:
//
//	σθ' = 3σH - σh - Pw - Pp
//	σfail = UCS + q·max(Pw - Pp, 0)
//
// [Breakout] reports the ratio σθ'/σfail and an empirical breakout width.
// The critical mud pressure is the closed-form root of σθ' = σfail, so a well
// drilled at exactly the critical mud weight has zero breakout width.
// [CollapseMudWeight] uses the same root with UCS derived from cohesion and
// friction angle.
//
// # Fracture Limits
//
// [FractureGradient], [TensileFailure], [BreakdownPressure] and [LeakOff]
// bound the mud weight from above. [MudWeightWindow] combines both limits
// into a drilling window classified by [Band].
//
// # Production and Faults
//
// [SandProduction] and [CriticalDrawdown] estimate sanding onset,
// [Compaction] reservoir compaction and subsidence, [FractureWidth] PKN and
// KGD hydraulic fracture widths and [FaultStability] slip and dilation
// tendency on a fault plane.
//
// Pressures and stresses are psi, depths feet, mud weights ppg and angles
// degrees. Where a depth is optional it is estimated from a hydrostatic pore
// pressure.
package stability
