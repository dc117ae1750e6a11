package calibration

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// s3g host-link framing: a start byte, a payload length, the payload,
// and a Dallas/iButton CRC of the payload.
const (
	packetStart   = 0xd5
	respSuccess   = 0x81
	cmdReadEeprom = 12

	// the firmware rejects EEPROM reads longer than this
	maxEepromRead = 31
)

// SerialStore fetches the calibration block from a running printer over
// its s3g host link.
type SerialStore struct {
	mx   sync.Mutex
	port io.ReadWriter
}

// OpenSerialStore opens the printer's serial port. The read timeout
// bounds every Read call on the store.
func OpenSerialStore(name string, baud int, timeout time.Duration) (*SerialStore, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return NewSerialStore(p), nil
}

func NewSerialStore(rw io.ReadWriter) *SerialStore {
	return &SerialStore{port: rw}
}

func (s *SerialStore) Read() (Data, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	comp, err := s.readEeprom(ProbeCompAddr, ProbeCompLen)
	if err != nil {
		return Data{}, err
	}
	off, err := s.readEeprom(ProbeOffsetsAddr, ProbeOffsetsLen)
	if err != nil {
		return Data{}, err
	}

	var d Data
	for i := range d.ProbeComp {
		d.ProbeComp[i] = cell(comp, i)
	}
	d.OffsetX = cell(off, 0)
	d.OffsetY = cell(off, 1)

	return d, nil
}

// Close closes the underlying port, if it can be closed.
func (s *SerialStore) Close() error {
	if c, ok := s.port.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *SerialStore) readEeprom(addr uint16, n int) ([]byte, error) {
	if n > maxEepromRead {
		return nil, errors.New("eeprom read too long")
	}

	payload := []byte{cmdReadEeprom, byte(addr), byte(addr >> 8), byte(n)}
	pkt := make([]byte, 0, len(payload)+3)
	pkt = append(pkt, packetStart, byte(len(payload)))
	pkt = append(pkt, payload...)
	pkt = append(pkt, crc8(payload))

	if _, err := s.port.Write(pkt); err != nil {
		return nil, fmt.Errorf("write eeprom request: %w", err)
	}

	var hdr [2]byte
	if _, err := io.ReadFull(s.port, hdr[:]); err != nil {
		return nil, fmt.Errorf("read response header: %w", err)
	}
	if hdr[0] != packetStart {
		return nil, fmt.Errorf("bad start byte 0x%02x", hdr[0])
	}

	body := make([]byte, int(hdr[1])+1)
	if _, err := io.ReadFull(s.port, body); err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	resp, crc := body[:len(body)-1], body[len(body)-1]
	if crc8(resp) != crc {
		return nil, errors.New("response crc mismatch")
	}
	if len(resp) < 1 || resp[0] != respSuccess {
		return nil, fmt.Errorf("printer rejected eeprom read: %x", resp)
	}
	if len(resp)-1 != n {
		return nil, fmt.Errorf("short eeprom read: want %d bytes, got %d", n, len(resp)-1)
	}

	return resp[1:], nil
}

// crc8 is the Dallas/iButton CRC used by the s3g link.
func crc8(p []byte) byte {
	var c byte
	for _, b := range p {
		for i := 0; i < 8; i++ {
			mix := (c ^ b) & 0x01
			c >>= 1
			if mix != 0 {
				c ^= 0x8c
			}
			b >>= 1
		}
	}
	return c
}
