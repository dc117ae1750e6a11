// Package level corrects motion targets for an out-of-level build
// surface. Three probed points define the surface plane; Solver applies
// a cheap Z-only skew correction, Tilt a full rotation.
package level

import (
	"github.com/mastercactapus/autolevel/calibration"
	"github.com/mastercactapus/autolevel/coord"
)

// crossScale divides the solver's cross product down so coefficient
// magnitudes stay within 32-bit planner range for probe coordinates in
// the tens of thousands of steps.
const crossScale = 512

// Solver fits a plane to three probe points and applies the linear skew
// correction: only Z is adjusted, X and Y pass through. Valid while the
// plate is near level; the residual skew is negligible there.
//
// A Solver is confined to a single goroutine. Only the calibration
// store read during Init is guarded against concurrent access, by the
// store itself.
type Solver struct {
	store calibration.Store

	n coord.Point // plane normal, Z > 0 while active
	d int64
	r coord.Point // reference point, used to recompute d

	status Status
	active bool
}

// NewSolver returns an inactive solver holding the identity plane.
// A nil store means zero calibration.
func NewSolver(store calibration.Store) *Solver {
	s := &Solver{store: store}
	s.Deinit()
	return s
}

func crossScaled(v1, v2 coord.Point) coord.Point {
	n := v1.Cross(v2)
	n.X /= crossScale
	n.Y /= crossScale
	n.Z /= crossScale
	return n
}

// CheckDeviation reports whether the Z spread of the probe points,
// measured against p1 and ignoring calibration, is within maxZ. The
// second return is the spread itself.
func CheckDeviation(maxZ int64, p1, p2, p3 coord.Point) (bool, int64) {
	dev := abs64(p2.Z - p1.Z)
	if z := abs64(p3.Z - p1.Z); z > dev {
		dev = z
	}
	return dev <= maxZ, dev
}

// Init fits the plane. maxZ bounds the allowed probe Z deviation and
// zOffset is the probe-tip to nozzle Z distance; both in steps. On
// failure the solver is left inactive at the identity plane and the
// reason is available from Status. A calibration store read failure
// also fails the fit, leaving StatusNotActive.
func (s *Solver) Init(maxZ, zOffset int64, p1, p2, p3 coord.Point) bool {
	s.Deinit()

	ok, dev := CheckDeviation(maxZ, p1, p2, p3)
	if !ok {
		s.status = StatusBadLevel
		return false
	}

	var cal calibration.Data
	if s.store != nil {
		var err error
		cal, err = s.store.Read()
		if err != nil {
			return false
		}
	}

	v1 := p2.Sub(p1)
	v2 := p3.Sub(p1)
	v1.Z += cal.ProbeComp[1] - cal.ProbeComp[0]
	v2.Z += cal.ProbeComp[2] - cal.ProbeComp[0]

	n := crossScaled(v1, v2)
	if n.Z == 0 {
		if n.X == 0 && n.Y == 0 {
			s.status = StatusColinear
		} else {
			// Plane parallel to the Z axis. The deviation gate
			// above should already have rejected this.
			s.status = StatusBadLevel
		}
		return false
	}

	// keep the upward-pointing normal
	if n.Z < 0 {
		n = n.Neg()
	}

	s.n = n
	s.r = coord.Point{
		X: p1.X + cal.OffsetX,
		Y: p1.Y + cal.OffsetY,
		Z: p1.Z - zOffset,
	}
	s.d = -s.r.Dot(s.n)
	s.status = Status(dev)
	s.active = true

	return true
}

// Update shifts the reference point after a coordinate-origin
// translation and recomputes the plane constant. The normal is
// unchanged by a pure translation. No-op while inactive.
func (s *Solver) Update(delta coord.Point) {
	if !s.active {
		return
	}
	s.r = s.r.Add(delta)
	s.d = -s.r.Dot(s.n)
}

// OffsetZ returns the Z adjustment for a target at (x, y), false while
// inactive.
func (s *Solver) OffsetZ(x, y int64) (bool, int64) {
	if !s.active {
		return false, 0
	}
	return true, -(s.d + x*s.n.X + y*s.n.Y) / s.n.Z
}

// Apply corrects a motion target. X and Y pass through unchanged.
func (s *Solver) Apply(p coord.Point) coord.Point {
	ok, dz := s.OffsetZ(p.X, p.Y)
	if !ok {
		return p
	}
	p.Z += dz
	return p
}

// Deinit resets to the identity plane and StatusNotActive. Idempotent.
func (s *Solver) Deinit() {
	s.n = coord.Point{Z: 1}
	s.d = 0
	s.r = coord.Point{}
	s.status = StatusNotActive
	s.active = false
}

func (s *Solver) Status() Status { return s.status }
func (s *Solver) Active() bool   { return s.active }

// Normal returns the fitted plane normal, for diagnostics.
func (s *Solver) Normal() coord.Point { return s.n }

// D returns the fitted plane constant, for diagnostics.
func (s *Solver) D() int64 { return s.d }

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
