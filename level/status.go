package level

import (
	"errors"
	"fmt"
)

// Status reports the leveling state. A non-negative value means leveling
// is active and gives the maximum Z deviation observed between the three
// probe points, in steps. Negative values are sentinels.
type Status int64

const (
	// StatusNotActive means no transform is configured; corrections
	// are the identity.
	StatusNotActive Status = -1

	// StatusBadLevel means the probe points deviated in Z beyond the
	// allowed maximum.
	StatusBadLevel Status = -2

	// StatusColinear means the probe points do not define a plane.
	StatusColinear Status = -3
)

var (
	ErrBadLevel = errors.New("level: probe points deviate beyond the allowed maximum")
	ErrColinear = errors.New("level: probe points are colinear")
)

func (s Status) Active() bool {
	return s >= 0
}

// Deviation returns the maximum probe Z deviation, false when leveling
// is not active.
func (s Status) Deviation() (int64, bool) {
	if s < 0 {
		return 0, false
	}
	return int64(s), true
}

// Err maps the failure sentinels to their error values. Both the
// not-active and active states return nil.
func (s Status) Err() error {
	switch s {
	case StatusBadLevel:
		return ErrBadLevel
	case StatusColinear:
		return ErrColinear
	}
	return nil
}

func (s Status) String() string {
	switch s {
	case StatusNotActive:
		return "not active"
	case StatusBadLevel:
		return "bad level"
	case StatusColinear:
		return "colinear"
	}
	return fmt.Sprintf("active, max deviation %d steps", int64(s))
}
