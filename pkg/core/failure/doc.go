// Package failure evaluates rock strength and shear failure criteria.
//
// # Strength
//
// A rock's shear strength is given either by its unconfined compressive
// strength (UCS) or by the Mohr-Coulomb pair cohesion C and friction angle φ.
// [Strength.ResolvedUCS] prefers a supplied UCS and otherwise derives
// 2C·cosφ/(1-sinφ). [MohrCoulomb] returns the derived quantities used by the
// wellbore models, in particular the passive stress factor
// q = (1+sinφ)/(1-sinφ).
//
// # Criteria
//
// [Evaluate] tests an effective principal stress state against one or more
// [Criterion] values:
//
//   - [MohrCoulombCriterion]: σ1 at failure = UCS + qσ3, ignores σ2
//   - [DruckerPrager]: inscribed cone in (I1, √J2)
//   - [MogiCoulomb]: octahedral shear against the mean of σ1 and σ3
//   - [ModifiedLade]: I1³/I3 against η
//   - [ModifiedWiebolsCook]: √J2 against a σ2-dependent strength
//
// Each returns a strength ratio (load/strength). A ratio of 1 or more means
// failure. When a criterion's strength term is not positive the ratio
// saturates at [SaturatedRatio] and the assessment is marked Clamped.
//
// # Strength From Logs
//
// [UCSFromLogs] estimates UCS from sonic transit time, porosity or Young's
// modulus with published empirical correlations, falling back to whichever
// input is available.
package failure
