package level

import (
	"errors"
	"fmt"

	"github.com/mastercactapus/autolevel/calibration"
	"github.com/mastercactapus/autolevel/coord"
)

// A Corrector transforms a nominal motion target into its corrected
// position. Both Solver and Tilt satisfy it; call sites pick one
// strategy at configuration time.
type Corrector interface {
	Apply(coord.Point) coord.Point
	Active() bool
}

// A ZOffsetter reports the Z adjustment for a target's XY, for planners
// that only rewrite the Z word of a queued move. Solver satisfies it.
type ZOffsetter interface {
	OffsetZ(x, y int64) (bool, int64)
}

// Correction strategy names.
const (
	ModeSkew = "skew"
	ModeTilt = "tilt"
)

// Config selects and parameterizes a correction strategy.
type Config struct {
	// Mode is ModeSkew (default) or ModeTilt.
	Mode string

	// MaxDeviation is the allowed probe Z spread, in steps. Skew only.
	MaxDeviation int64

	// ZOffset is the probe-tip to nozzle Z distance, in steps. Skew only.
	ZOffset int64

	P1, P2, P3 coord.Point

	// Store supplies probe calibration; nil means none.
	Store calibration.Store
}

// New fits the configured corrector from the three probe points.
func New(cfg Config) (Corrector, error) {
	switch cfg.Mode {
	case "", ModeSkew:
		s := NewSolver(cfg.Store)
		if !s.Init(cfg.MaxDeviation, cfg.ZOffset, cfg.P1, cfg.P2, cfg.P3) {
			return nil, initErr(s.Status())
		}
		return s, nil
	case ModeTilt:
		t := NewTilt()
		if !t.Init(cfg.P1, cfg.P2, cfg.P3) {
			return nil, initErr(t.Status())
		}
		return t, nil
	}
	return nil, fmt.Errorf("level: unknown mode %q", cfg.Mode)
}

func initErr(s Status) error {
	if err := s.Err(); err != nil {
		return err
	}
	return errors.New("level: calibration unavailable")
}
