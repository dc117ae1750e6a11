// Package calibration reads the printer's stored leveling calibration:
// per-probe Z compensation values and the probe-tip to nozzle XY offset.
package calibration

// Data is a single calibration snapshot, in machine step units.
type Data struct {
	// ProbeComp holds the Z compensation for each of the three
	// probe points, in probing order.
	ProbeComp [3]int64

	// OffsetX and OffsetY are the probe-tip to nozzle offsets.
	OffsetX, OffsetY int64
}

// A Store returns calibration snapshots.
//
// Read must be atomic with respect to concurrent writers: a caller
// never observes a half-applied multi-value update.
type Store interface {
	Read() (Data, error)
}
