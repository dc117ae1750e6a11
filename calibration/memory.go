package calibration

import "sync"

// Memory is an in-process Store. It is the zero-calibration default and
// the store used by tests.
type Memory struct {
	mx   sync.Mutex
	data Data
}

func NewMemory(d Data) *Memory {
	return &Memory{data: d}
}

func (m *Memory) Read() (Data, error) {
	m.mx.Lock()
	defer m.mx.Unlock()

	return m.data, nil
}

// Set replaces the stored calibration as a whole.
func (m *Memory) Set(d Data) {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.data = d
}
