package datapath

import (
	"errors"
	"testing"
)

func validFIR() FIRConfig {
	return FIRConfig{
		Pairs: 0x3, Pages: 0xF,
		IMode: FIRRealN2, QMode: FIRRealN4,
		Coefficients: make([]uint16, 96), Length: 96,
	}
}

func TestFIRValid(t *testing.T) {
	if err := validFIR().Validate(); err != nil {
		t.Error(err)
	}
}

func TestFIRLength(t *testing.T) {
	cases := map[string]func(f *FIRConfig){
		"buffer shorter than length": func(f *FIRConfig) { f.Coefficients = f.Coefficients[:95] },
		"length longer than mode":    func(f *FIRConfig) { f.Length = 97; f.Coefficients = make([]uint16, 97) },
		"enabled with zero length":   func(f *FIRConfig) { f.Length = 0 },
	}
	for name, mutate := range cases {
		f := validFIR()
		mutate(&f)
		if err := f.Validate(); !errors.Is(err, ErrFIRLength) {
			t.Errorf("%s: expected ErrFIRLength, got %v", name, err)
		}
	}
}

func TestFIRConfigErrors(t *testing.T) {
	f := validFIR()
	f.Gains[2] = 3
	if err := f.Validate(); !errors.Is(err, ErrFIRConfig) {
		t.Errorf("expected ErrFIRConfig for 3 dB gain, got %v", err)
	}
	f = validFIR()
	f.Pairs = 0
	if err := f.Validate(); !errors.Is(err, ErrFIRConfig) {
		t.Errorf("expected ErrFIRConfig for no pairs, got %v", err)
	}
}

func TestFIRUploadTruncates(t *testing.T) {
	f := validFIR()
	f.Coefficients = make([]uint16, 192)
	if n := len(f.Upload()); n != 96 {
		t.Errorf("expected 96 coefficients uploaded, got %d", n)
	}
}
