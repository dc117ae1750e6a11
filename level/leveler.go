package level

import (
	"io"

	"github.com/mastercactapus/autolevel/coord"
)

// A TargetReader yields queued motion targets.
type TargetReader interface {
	Read() (coord.Point, error)
}

// PointsReader replays a fixed slice of targets.
type PointsReader struct {
	Points []coord.Point
	n      int
}

func (r *PointsReader) Read() (coord.Point, error) {
	if r.n == len(r.Points) {
		return coord.Point{}, io.EOF
	}

	r.n++
	return r.Points[r.n-1], nil
}

// Leveler applies a corrector to every target read from a source,
// sitting between queuing and step generation.
type Leveler struct {
	c Corrector
	r TargetReader
}

type LevelerConfig struct {
	// Corrector may be nil, in which case targets pass through.
	Corrector Corrector

	Reader TargetReader
}

func NewLeveler(cfg LevelerConfig) *Leveler {
	l := &Leveler{c: cfg.Corrector, r: cfg.Reader}
	if l.c == nil {
		l.c = noCorrector{}
	}
	return l
}

func (l *Leveler) Read() (coord.Point, error) {
	p, err := l.r.Read()
	if err != nil {
		return coord.Point{}, err
	}
	if !l.c.Active() {
		return p, nil
	}
	return l.c.Apply(p), nil
}

type noCorrector struct{}

func (noCorrector) Apply(p coord.Point) coord.Point { return p }
func (noCorrector) Active() bool                    { return false }
