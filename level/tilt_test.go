package level

import (
	"testing"

	"github.com/mastercactapus/autolevel/coord"
	"github.com/stretchr/testify/assert"
)

func TestTilt_RoundTrip(t *testing.T) {
	ti := NewTilt()
	assert.True(t, ti.Init(
		coord.Point{X: 0, Y: 0, Z: 20},
		coord.Point{X: 40000, Y: 0, Z: 120},
		coord.Point{X: 0, Y: 40000, Z: -60},
	))
	assert.True(t, ti.Active())

	for _, p := range []coord.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 40000, Y: 40000, Z: 200},
		{X: -35000, Y: 12345, Z: -400},
		{X: 1, Y: 2, Z: 3},
	} {
		rt := ti.Backward(ti.Forward(p))
		assert.InDelta(t, float64(p.X), float64(rt.X), 1)
		assert.InDelta(t, float64(p.Y), float64(rt.Y), 1)
		assert.InDelta(t, float64(p.Z), float64(rt.Z), 1)
	}
}

// Forward must lift targets where the measured plane is higher.
func TestTilt_Direction(t *testing.T) {
	ti := NewTilt()
	assert.True(t, ti.Init(
		coord.Point{X: 0, Y: 0, Z: 0},
		coord.Point{X: 40000, Y: 0, Z: 100},
		coord.Point{X: 0, Y: 40000, Z: 0},
	))

	p := ti.Forward(coord.Point{X: 40000, Y: 0, Z: 0})
	assert.InDelta(t, 100, float64(p.Z), 1)
	assert.InDelta(t, 40000, float64(p.X), 1)
	assert.InDelta(t, 0, float64(p.Y), 1)
}

// Probe order must not matter: the normal is canonicalized upward.
func TestTilt_Canonical(t *testing.T) {
	p1 := coord.Point{X: 0, Y: 0, Z: 20}
	p2 := coord.Point{X: 40000, Y: 0, Z: 120}
	p3 := coord.Point{X: 0, Y: 40000, Z: -60}

	a := NewTilt()
	assert.True(t, a.Init(p1, p2, p3))
	b := NewTilt()
	assert.True(t, b.Init(p1, p3, p2))

	p := coord.Point{X: 12345, Y: -6789, Z: 250}
	assert.Equal(t, a.Forward(p), b.Forward(p))
	assert.Equal(t, a.Backward(p), b.Backward(p))
}

func TestTilt_Colinear(t *testing.T) {
	ti := NewTilt()

	ok := ti.Init(
		coord.Point{X: 0, Y: 0, Z: 0},
		coord.Point{X: 10000, Y: 0, Z: 0},
		coord.Point{X: 20000, Y: 0, Z: 0},
	)
	assert.False(t, ok)
	assert.Equal(t, StatusColinear, ti.Status())
	assert.False(t, ti.Active())

	p := coord.Point{X: 5, Y: 6, Z: 7}
	assert.Equal(t, p, ti.Forward(p))
	assert.Equal(t, p, ti.Backward(p))
}

func TestTilt_VerticalPlane(t *testing.T) {
	ti := NewTilt()

	ok := ti.Init(
		coord.Point{X: 0, Y: 0, Z: 0},
		coord.Point{X: 0, Y: 0, Z: 1000},
		coord.Point{X: 0, Y: 1000, Z: 1000},
	)
	assert.False(t, ok)
	assert.Equal(t, StatusBadLevel, ti.Status())
}

func TestTilt_Status(t *testing.T) {
	ti := NewTilt()
	assert.Equal(t, StatusNotActive, ti.Status())

	assert.True(t, ti.Init(
		coord.Point{X: 0, Y: 0, Z: 20},
		coord.Point{X: 40000, Y: 0, Z: 120},
		coord.Point{X: 0, Y: 40000, Z: -60},
	))
	assert.Equal(t, Status(100), ti.Status())

	ti.Deinit()
	assert.Equal(t, StatusNotActive, ti.Status())
}
