// Package bench times datapath reconfiguration through the driver against
// the equivalent raw SPI command sequences.
//
// The timer is a free running 32-bit down counter.  It is owned by the
// Harness; every measurement stops it, reloads it to its maximum and starts
// it again so no sample sees the counter state left by another.
package bench

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// CounterMax is the reload value of the counter
const CounterMax = 0xFFFFFFFF

// ErrCounterSaturation is attached to samples whose end count was larger than
// the start count
var ErrCounterSaturation = errors.New("counter reloaded during measurement")

// Timer is the control interface of the benchmark counter
type Timer interface {
	Start() error
	Stop() error
	SetCounter(v uint32) error

	// Frequency is the counter clock in Hz
	Frequency() (uint32, error)
}

// Register reads a memory mapped 32-bit register
type Register interface {
	Read32(addr uint64) (uint32, error)
}

// Kind tells the driver path from the raw sequence path
type Kind int

const (
	// API is a call through the datapath driver
	API Kind = iota
	// Raw is a raw SPI command sequence
	Raw
)

func (k Kind) String() string {
	if k == Raw {
		return "raw"
	}
	return "api"
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Sample is one timed operation
type Sample struct {
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`

	// Ticks is Start-End, zero when the sample is degraded
	Ticks   uint32        `json:"ticks"`
	Elapsed time.Duration `json:"elapsed"`

	// Degraded marks a sample whose timing cannot be trusted; Diagnostic
	// says why
	Degraded   bool  `json:"degraded"`
	Diagnostic error `json:"-"`

	// Err is the error of the timed operation
	Err error `json:"-"`
}

// Millis formats the elapsed time as milliseconds with five decimals
func (s Sample) Millis() string {
	ms := s.Elapsed / time.Millisecond
	frac := (s.Elapsed % time.Millisecond) / (10 * time.Nanosecond)
	return fmt.Sprintf("%d.%05d ms", ms, frac)
}

func (s Sample) String() string {
	label := s.Label
	if s.Kind == Raw {
		label = "No API: " + label
	}
	str := fmt.Sprintf("%s: %s", label, s.Millis())
	if s.Degraded {
		str += fmt.Sprintf(" (degraded: %v)", s.Diagnostic)
	}
	if s.Err != nil {
		str += fmt.Sprintf(" error: %v", s.Err)
	}
	return str
}

// Harness measures operations with the hardware counter
type Harness struct {
	Timer Timer
	Reg   Register

	// Addr is the address of the counter value register
	Addr uint64

	freq uint32
}

// NewHarness reads the counter frequency once and returns a Harness
func NewHarness(t Timer, reg Register, addr uint64) (*Harness, error) {
	f, err := t.Frequency()
	if err != nil {
		return nil, fmt.Errorf("counter frequency: %w", err)
	}
	if f == 0 {
		return nil, errors.New("counter frequency is zero")
	}
	log.Printf("Timer frequency: %d\n", f)
	return &Harness{Timer: t, Reg: reg, Addr: addr, freq: f}, nil
}

// Frequency returns the counter frequency in Hz
func (h *Harness) Frequency() uint32 {
	return h.freq
}

func (h *Harness) reset() error {
	if err := h.Timer.Stop(); err != nil {
		return err
	}
	if err := h.Timer.SetCounter(CounterMax); err != nil {
		return err
	}
	return h.Timer.Start()
}

// Measure times op.  The sample is always returned; an error from op is
// kept on the sample and does not suppress the timing.
func (h *Harness) Measure(label string, op func() error) Sample {
	s := Sample{Label: label}
	var diag []error
	if err := h.reset(); err != nil {
		diag = append(diag, fmt.Errorf("counter reset: %w", err))
	}
	start, err := h.Reg.Read32(h.Addr)
	if err != nil {
		diag = append(diag, fmt.Errorf("read start: %w", err))
	}
	s.Err = op()
	end, err := h.Reg.Read32(h.Addr)
	if err != nil {
		diag = append(diag, fmt.Errorf("read end: %w", err))
	}
	if err := h.Timer.Stop(); err != nil {
		diag = append(diag, fmt.Errorf("counter stop: %w", err))
	}
	s.Start, s.End = start, end
	if end > start {
		diag = append(diag, fmt.Errorf("%w: start %#x end %#x", ErrCounterSaturation, start, end))
	} else {
		s.Ticks = start - end
	}
	if len(diag) != 0 {
		s.Degraded = true
		s.Diagnostic = errors.Join(diag...)
	}
	if h.freq != 0 {
		s.Elapsed = time.Duration(uint64(s.Ticks) * uint64(time.Second) / uint64(h.freq))
	}
	return s
}
