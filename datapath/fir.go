package datapath

import (
	"errors"
	"fmt"
)

// FIRMode is the operating mode of one rail (I or Q) of the programmable FIR
type FIRMode int

const (
	// FIRDisabled bypasses the filter
	FIRDisabled FIRMode = iota
	// FIRRealN4 is a real filter of N/4 taps
	FIRRealN4
	// FIRRealN2 is a real filter of N/2 taps
	FIRRealN2
	// FIRMatrix is the 2x2 matrix mode of N/4 taps per element
	FIRMatrix
	// FIRComplexFull is a full complex filter
	FIRComplexFull
	// FIRComplexHalf is a half complex filter
	FIRComplexHalf
	// FIRRealN is a real filter using all taps
	FIRRealN
)

// FIRTaps is the size of the coefficient RAM of one filter
const FIRTaps = 192

// FIRGain is the output gain of a filter stage in dB
type FIRGain int

const (
	FIRGainN12 FIRGain = -12
	FIRGainN6  FIRGain = -6
	FIRGain0   FIRGain = 0
	FIRGain6   FIRGain = 6
	FIRGain12  FIRGain = 12
)

var (
	// ErrFIRLength is generated when the coefficient buffer does not match the filter length
	ErrFIRLength = errors.New("pfir coefficient length mismatch")

	// ErrFIRConfig is generated for any other invalid filter configuration
	ErrFIRConfig = errors.New("invalid pfir configuration")
)

// Taps returns the number of coefficients a mode consumes
func (m FIRMode) Taps() int {
	switch m {
	case FIRDisabled:
		return 0
	case FIRRealN4, FIRMatrix:
		return FIRTaps / 4
	case FIRRealN2, FIRComplexHalf:
		return FIRTaps / 2
	case FIRComplexFull, FIRRealN:
		return FIRTaps
	default:
		return -1
	}
}

// FIRConfig is a programmable FIR upload
type FIRConfig struct {
	// Pairs selects ADC pairs, bit i for pair i
	Pairs uint8 `koanf:"pairs" yaml:"pairs"`

	// Pages selects coefficient pages, bit i for page i
	Pages uint8 `koanf:"pages" yaml:"pages"`

	IMode FIRMode `koanf:"imode" yaml:"imode"`
	QMode FIRMode `koanf:"qmode" yaml:"qmode"`

	// Gains are the IX, IY, QX, QY stage gains
	Gains [4]FIRGain `koanf:"gains" yaml:"gains"`

	// LoadSelect is the coefficient load selection mask
	LoadSelect uint8 `koanf:"loadselect" yaml:"loadselect"`

	Coefficients []uint16 `koanf:"coefficients" yaml:"coefficients"`

	// Length is the configured filter length; the first Length
	// coefficients are uploaded
	Length int `koanf:"length" yaml:"length"`
}

// Validate checks the filter modes, gains and the coefficient buffer length
func (f FIRConfig) Validate() error {
	if f.Pairs == 0 {
		return fmt.Errorf("%w: no adc pair selected", ErrFIRConfig)
	}
	if f.Pages == 0 {
		return fmt.Errorf("%w: no coefficient page selected", ErrFIRConfig)
	}
	ti, tq := f.IMode.Taps(), f.QMode.Taps()
	if ti < 0 || tq < 0 {
		return fmt.Errorf("%w: unknown mode i=%d q=%d", ErrFIRConfig, f.IMode, f.QMode)
	}
	for i, g := range f.Gains {
		switch g {
		case FIRGainN12, FIRGainN6, FIRGain0, FIRGain6, FIRGain12:
		default:
			return fmt.Errorf("%w: gain %d is %d dB", ErrFIRConfig, i, g)
		}
	}
	max := ti
	if tq > max {
		max = tq
	}
	if f.Length < 0 || f.Length > max {
		return fmt.Errorf("%w: length %d exceeds %d taps of mode", ErrFIRLength, f.Length, max)
	}
	if max > 0 && f.Length == 0 {
		return fmt.Errorf("%w: filter enabled with zero length", ErrFIRLength)
	}
	if len(f.Coefficients) < f.Length {
		return fmt.Errorf("%w: %d coefficients for length %d", ErrFIRLength, len(f.Coefficients), f.Length)
	}
	return nil
}

// Upload returns the coefficients that are sent to the device
func (f FIRConfig) Upload() []uint16 {
	if f.Length > len(f.Coefficients) {
		return f.Coefficients
	}
	return f.Coefficients[:f.Length]
}
