package wellbore

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/geomech/pkg/core/stress"
	"github.com/matzehuels/geomech/pkg/units"
)

// Geometry is a borehole trajectory at one depth. Radius is in feet and only
// informational for the wall solutions, which are radius independent.
type Geometry struct {
	Azimuth     float64 `json:"well_azimuth"`
	Inclination float64 `json:"well_inclination"`
	Radius      float64 `json:"wellbore_radius,omitempty"`
}

// Tensor is a symmetric stress tensor in the borehole frame: x points to the
// high side, y horizontal and z along the axis.
type Tensor struct {
	Sxx float64 `json:"sigma_xx"`
	Syy float64 `json:"sigma_yy"`
	Szz float64 `json:"sigma_zz"`
	Txy float64 `json:"tau_xy"`
	Txz float64 `json:"tau_xz"`
	Tyz float64 `json:"tau_yz"`
}

// Matrix returns t as a gonum symmetric matrix.
func (t Tensor) Matrix() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		t.Sxx, t.Txy, t.Txz,
		t.Txy, t.Syy, t.Tyz,
		t.Txz, t.Tyz, t.Szz,
	})
}

// Principal returns the principal stresses of t in descending order.
func (t Tensor) Principal() ([3]float64, bool) {
	var eig mat.EigenSym
	if !eig.Factorize(t.Matrix(), false) {
		return [3]float64{}, false
	}
	vals := eig.Values(nil)
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	return [3]float64{vals[0], vals[1], vals[2]}, true
}

// rotation returns the matrix whose rows are the borehole axes expressed in
// the (σH, σh, vertical) frame.
func rotation(alpha, inc float64) *mat.Dense {
	sa, ca := math.Sincos(alpha)
	si, ci := math.Sincos(inc)
	return mat.NewDense(3, 3, []float64{
		ca * ci, sa * ci, -si,
		-sa, ca, 0,
		ca * si, sa * si, ci,
	})
}

// Rotate transforms the principal stresses into the borehole frame. The
// relative azimuth is g.Azimuth - p.AzimuthSH.
func Rotate(p stress.Principal, g Geometry) Tensor {
	alpha := units.Radians(g.Azimuth - p.AzimuthSH)
	r := rotation(alpha, units.Radians(g.Inclination))
	d := mat.NewDiagDense(3, []float64{p.SHmax, p.Shmin, p.Sv})

	var rd, out mat.Dense
	rd.Mul(r, d)
	out.Mul(&rd, r.T())

	return Tensor{
		Sxx: out.At(0, 0),
		Syy: out.At(1, 1),
		Szz: out.At(2, 2),
		Txy: out.At(0, 1),
		Txz: out.At(0, 2),
		Tyz: out.At(1, 2),
	}
}

// WallStress summarizes the stresses at the borehole wall.
type WallStress struct {
	Axial   float64 `json:"axial_stress"`
	HoopMax float64 `json:"max_hoop_stress"`
	HoopMin float64 `json:"min_hoop_stress"`
	Hoop0   float64 `json:"hoop_stress_0"`
	Hoop90  float64 `json:"hoop_stress_90"`
	Radial  float64 `json:"radial_stress"`
	TauXY   float64 `json:"tau_xy"`
	TauXZ   float64 `json:"tau_xz"`
	TauYZ   float64 `json:"tau_yz"`
	// RelativeAzimuth is the well azimuth measured from σH, in degrees.
	RelativeAzimuth float64 `json:"relative_azimuth"`
	Tensor          Tensor  `json:"transformed_stresses"`
}

// Wall returns the wall stresses of a deviated well for a mud pressure Pw.
// The hoop stress is evaluated at θ = 0 (3σyy - σxx - Pw) and θ = 90
// (3σxx - σyy - Pw) in the borehole frame.
func Wall(p stress.Principal, g Geometry, mudPressure float64) WallStress {
	t := Rotate(p, g)
	h0 := 3*t.Syy - t.Sxx - mudPressure
	h90 := 3*t.Sxx - t.Syy - mudPressure
	return WallStress{
		Axial:           t.Szz,
		HoopMax:         math.Max(h0, h90),
		HoopMin:         math.Min(h0, h90),
		Hoop0:           h0,
		Hoop90:          h90,
		Radial:          mudPressure,
		TauXY:           t.Txy,
		TauXZ:           t.Txz,
		TauYZ:           t.Tyz,
		RelativeAzimuth: g.Azimuth - p.AzimuthSH,
		Tensor:          t,
	}
}

// HoopAt returns the wall hoop stress at angle theta from the x axis,
// including the in-plane shear term.
func HoopAt(t Tensor, mudPressure, thetaDeg float64) float64 {
	s2, c2 := math.Sincos(2 * units.Radians(thetaDeg))
	return t.Sxx + t.Syy - 2*(t.Sxx-t.Syy)*c2 - 4*t.Txy*s2 - mudPressure
}

// WallShear returns the wall shear stress τθz at angle theta.
func WallShear(t Tensor, thetaDeg float64) float64 {
	s, c := math.Sincos(units.Radians(thetaDeg))
	return 2 * (t.Tyz*c - t.Txz*s)
}

// WallPoint is the wall state at one angle around the hole, measured from
// the high side.
type WallPoint struct {
	Theta float64 `json:"theta"`
	Hoop  float64 `json:"hoop_stress"`
	Shear float64 `json:"tau_theta_z"`
}

// Profile samples [HoopAt] and [WallShear] every step degrees over
// [0, 180). The wall state repeats with a period of 180°. A step outside
// (0, 180] yields nil.
func Profile(t Tensor, mudPressure, step float64) []WallPoint {
	if !(step > 0 && step <= 180) {
		return nil
	}
	n := int(math.Ceil(180/step - 1e-9))
	out := make([]WallPoint, n)
	for i := range out {
		theta := float64(i) * step
		out[i] = WallPoint{
			Theta: theta,
			Hoop:  HoopAt(t, mudPressure, theta),
			Shear: WallShear(t, theta),
		}
	}
	return out
}

// Peak returns the point of pts with the largest hoop stress.
func Peak(pts []WallPoint) (WallPoint, bool) {
	if len(pts) == 0 {
		return WallPoint{}, false
	}
	best := pts[0]
	for _, p := range pts[1:] {
		if p.Hoop > best.Hoop {
			best = p
		}
	}
	return best, true
}

// KirschHoop returns the wall hoop stress of a vertical well at angle theta
// from the σH azimuth.
func KirschHoop(sHmax, shmin, mudPressure, thetaDeg float64) float64 {
	return sHmax + shmin - 2*(sHmax-shmin)*math.Cos(2*units.Radians(thetaDeg)) - mudPressure
}

// VerticalHoop holds the Kirsch extremes of a vertical well.
type VerticalHoop struct {
	// AtSHmax is the minimum hoop stress 3σh - σH - Pw, at θ = 0.
	AtSHmax float64 `json:"hoop_stress_at_sh_max"`
	// AtShmin is the maximum hoop stress 3σH - σh - Pw, at θ = 90.
	AtShmin float64 `json:"hoop_stress_at_sh_min"`
}

// VerticalWall evaluates [KirschHoop] at θ = 0 and θ = 90.
func VerticalWall(sHmax, shmin, mudPressure float64) VerticalHoop {
	return VerticalHoop{
		AtSHmax: 3*shmin - sHmax - mudPressure,
		AtShmin: 3*sHmax - shmin - mudPressure,
	}
}
