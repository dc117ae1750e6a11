package config

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/mastercactapus/autolevel/calibration"
	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autolevel.yml")
	err := os.WriteFile(path, []byte(body), 0600)
	assert.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
mode: tilt
max_deviation: 160
z_offset: 40
calibration:
  source: serial
  port: /dev/ttyACM0
`))
	assert.NoError(t, err)
	assert.Equal(t, "tilt", cfg.Mode)
	assert.Equal(t, int64(160), cfg.MaxDeviation)
	assert.Equal(t, int64(40), cfg.ZOffset)
	assert.Equal(t, "serial", cfg.Calibration.Source)
	assert.Equal(t, "/dev/ttyACM0", cfg.Calibration.Port)

	// defaults fill the gaps
	assert.Equal(t, 115200, cfg.Calibration.Baud)
	assert.Equal(t, 2000, cfg.Calibration.TimeoutMs)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{}`))
	assert.NoError(t, err)
	assert.Equal(t, "skew", cfg.Mode)
	assert.Equal(t, int64(200), cfg.MaxDeviation)
	assert.Equal(t, "none", cfg.Calibration.Source)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "mode: bilinear\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "max_deviation: -5\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "calibration: {source: file}\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "calibration: {source: eeprom}\n"))
	assert.Error(t, err)
}

func TestConfig_Store(t *testing.T) {
	cfg := Default()
	s, err := cfg.Store()
	assert.NoError(t, err)
	assert.Nil(t, s)

	img := make([]byte, 0x0400)
	negComp := int32(-9)
	binary.LittleEndian.PutUint32(img[calibration.ProbeCompAddr+4:], uint32(negComp))
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	assert.NoError(t, os.WriteFile(path, img, 0600))

	cfg.Calibration.Source = "file"
	cfg.Calibration.Path = path

	s, err = cfg.Store()
	assert.NoError(t, err)

	d, err := s.Read()
	assert.NoError(t, err)
	assert.Equal(t, int64(-9), d.ProbeComp[1])
}
