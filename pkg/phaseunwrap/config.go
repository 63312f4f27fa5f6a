package phaseunwrap

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// StepsPerSet is the number of phase-shifted captures the three-step formula consumes.
	StepsPerSet = 3
	// SetCount is the number of independent three-step sets averaged together.
	SetCount = 2
	// MaxGrayImages bounds K so that fringe orders fit in 31 bits.
	MaxGrayImages = 31

	maxConfigFileSize = 1 << 20
)

// Config enumerates everything a pipeline run depends on.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Wavelength is the fringe period in pixels.
	Wavelength float64 `json:"wavelength"`
	// PhaseShiftDeg is the per-pattern phase step in degrees.
	PhaseShiftDeg float64 `json:"phase_shift_deg"`
	NumGrayImages int     `json:"num_gray_images"`
	// GrayThreshold binarizes Gray-code captures before decoding. Intensities
	// above it count as 1. Zero keeps the plain nonzero rule.
	GrayThreshold uint16 `json:"gray_threshold,omitempty"`
}

// DefaultConfig matches a 1280x720 projector with 128 periods across the width.
func DefaultConfig() Config {
	return Config{
		Width:         1280,
		Height:        720,
		Wavelength:    1280 / 128.0,
		PhaseShiftDeg: 120,
		NumGrayImages: 7,
	}
}

// FringeCount is the number of fringe patterns one run consumes.
func (c Config) FringeCount() int { return StepsPerSet * SetCount }

// MaxOrder is the largest fringe order K Gray images can encode.
func (c Config) MaxOrder() uint32 { return uint32(1)<<uint(c.NumGrayImages) - 1 }

// ExactStep reports whether the phase step is one the three-step formula
// demodulates without bias (±120° modulo 360°).
func (c Config) ExactStep() bool {
	step := math.Mod(math.Abs(c.PhaseShiftDeg), 360)
	return math.Abs(step-120) < 1e-9 || math.Abs(step-240) < 1e-9
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("grid size must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.Wavelength > 0) || math.IsInf(c.Wavelength, 0) {
		return errors.Errorf("wavelength must be a positive number of pixels, got %v", c.Wavelength)
	}
	if math.IsNaN(c.PhaseShiftDeg) || math.IsInf(c.PhaseShiftDeg, 0) {
		return errors.Errorf("phase shift must be finite, got %v", c.PhaseShiftDeg)
	}
	if c.NumGrayImages < 1 || c.NumGrayImages > MaxGrayImages {
		return errors.Errorf("num_gray_images must be in [1, %d], got %d", MaxGrayImages, c.NumGrayImages)
	}
	return nil
}

// LoadConfig reads a JSON config. Fields the file omits keep DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, errors.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, errors.Wrap(err, "stat config file")
	}
	if info.Size() > maxConfigFileSize {
		return Config{}, errors.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config JSON")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
