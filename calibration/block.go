package calibration

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// Layout of the auto-level settings inside the firmware's EEPROM image.
// Values are little-endian int32 cells at fixed offsets.
const (
	// ProbeCompAddr is the offset of the three per-probe Z
	// compensation cells.
	ProbeCompAddr = 0x0290
	ProbeCompLen  = 12

	// ProbeOffsetsAddr is the offset of the probe-tip X and Y
	// offset cells.
	ProbeOffsetsAddr = 0x029c
	ProbeOffsetsLen  = 8
)

// BlockStore reads the calibration block out of an EEPROM image, such
// as a dump file or a memory-mapped device.
type BlockStore struct {
	mx sync.Mutex
	r  io.ReaderAt
}

func NewBlockStore(r io.ReaderAt) *BlockStore {
	return &BlockStore{r: r}
}

func (s *BlockStore) Read() (Data, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	var comp [ProbeCompLen]byte
	if _, err := s.r.ReadAt(comp[:], ProbeCompAddr); err != nil {
		return Data{}, fmt.Errorf("read probe compensation block: %w", err)
	}
	var off [ProbeOffsetsLen]byte
	if _, err := s.r.ReadAt(off[:], ProbeOffsetsAddr); err != nil {
		return Data{}, fmt.Errorf("read probe offsets block: %w", err)
	}

	var d Data
	for i := range d.ProbeComp {
		d.ProbeComp[i] = cell(comp[:], i)
	}
	d.OffsetX = cell(off[:], 0)
	d.OffsetY = cell(off[:], 1)

	return d, nil
}

// cell decodes the i-th int32 cell of b.
func cell(b []byte, i int) int64 {
	return int64(int32(binary.LittleEndian.Uint32(b[i*4:])))
}
