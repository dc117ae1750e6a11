package level

import (
	"math"

	"github.com/mastercactapus/autolevel/coord"
)

// Tilt rotates motion targets between the nominal flat frame and the
// measured build-plate frame. Unlike Solver it corrects X and Y as
// well and leaves no residual skew, at a higher per-point cost.
//
// The rotation is the composition of a tilt about Y by Ay=atan2(Nx,Nz)
// and about X by Ax=atan2(Ny,Nz). The eight trigonometric products are
// computed once by Init; Forward and Backward use only those.
//
// A coordinate-origin translation invalidates a Tilt; there is no
// incremental update, only a full re-Init.
type Tilt struct {
	cosAx, cosAy, sinAx, sinAy                     float64
	cosAxCosAy, cosAxSinAy, sinAxSinAy, sinAxCosAy float64

	status Status
	active bool
}

func NewTilt() *Tilt {
	return &Tilt{status: StatusNotActive}
}

// Init derives the rotation from three probe points. It fails when the
// points do not define a plane the nozzle can follow, leaving the
// identity transform.
func (t *Tilt) Init(p1, p2, p3 coord.Point) bool {
	t.Deinit()

	// unscaled; int64 has the headroom
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Z == 0 {
		if n.X == 0 && n.Y == 0 {
			t.status = StatusColinear
		} else {
			t.status = StatusBadLevel
		}
		return false
	}
	if n.Z < 0 {
		n = n.Neg()
	}

	nz := float64(n.Z)
	ax := math.Atan2(float64(n.Y), nz)
	ay := math.Atan2(float64(n.X), nz)

	t.cosAx = math.Cos(ax)
	t.cosAy = math.Cos(ay)
	t.sinAx = math.Sin(ax)
	t.sinAy = math.Sin(ay)
	t.cosAxCosAy = t.cosAx * t.cosAy
	t.cosAxSinAy = t.cosAx * t.sinAy
	t.sinAxSinAy = t.sinAx * t.sinAy
	t.sinAxCosAy = t.sinAx * t.cosAy

	_, dev := CheckDeviation(0, p1, p2, p3)
	t.status = Status(dev)
	t.active = true

	return true
}

// Forward rotates a target from the nominal flat frame into the
// measured plane's frame.
func (t *Tilt) Forward(p coord.Point) coord.Point {
	if !t.active {
		return p
	}
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	return coord.Point{
		X: round(x*t.cosAy + z*t.sinAy),
		Y: round(y*t.cosAx - x*t.sinAxSinAy + z*t.sinAxCosAy),
		Z: round(-y*t.sinAx - x*t.cosAxSinAy + z*t.cosAxCosAy),
	}
}

// Backward is the inverse rotation: Backward(Forward(p)) == p up to
// one step of rounding per axis.
func (t *Tilt) Backward(p coord.Point) coord.Point {
	if !t.active {
		return p
	}
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	return coord.Point{
		X: round(x*t.cosAy - y*t.sinAxSinAy - z*t.cosAxSinAy),
		Y: round(y*t.cosAx - z*t.sinAx),
		Z: round(x*t.sinAy + y*t.sinAxCosAy + z*t.cosAxCosAy),
	}
}

// Apply corrects a motion target; it is the forward rotation.
func (t *Tilt) Apply(p coord.Point) coord.Point {
	return t.Forward(p)
}

// Deinit resets to the identity transform. Idempotent.
func (t *Tilt) Deinit() {
	*t = Tilt{status: StatusNotActive}
}

func (t *Tilt) Status() Status { return t.status }
func (t *Tilt) Active() bool   { return t.active }

func round(f float64) int64 {
	return int64(math.Round(f))
}
