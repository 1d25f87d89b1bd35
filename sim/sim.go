// Package sim is an in-memory board: clock synthesizer, GPIO and SPI, the
// converter driver, JESD link monitors, streaming cores, DMA engines and the
// benchmark counter.  It backs the --mock run and the tests.
package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nasa-jpl/mxfe/bench"
	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/stream"
)

// CounterFrequency is the clock of the simulated benchmark counter
const CounterFrequency = 100000000

var (
	// ErrInjected is returned by operations configured to fail
	ErrInjected = errors.New("injected failure")

	// ErrNoSuchLine is returned for GPIO lines outside the board
	ErrNoSuchLine = errors.New("gpio line does not exist")
)

// Board is a simulated board.  Fail* maps inject failures.
type Board struct {
	sync.Mutex

	// GPIOLines is the number of GPIO lines, 0 for unlimited
	GPIOLines int

	FailClocks map[string]bool
	FailInit   map[int]bool // by chip select
	FailCores  map[string]bool
	FailLinks  map[jesd.Role]bool

	// TicksPerRead is how far the counter runs between two reads
	TicksPerRead uint32

	clocks  map[string]clock.RateSpec
	gpio    map[int]bool
	devices map[int]*Device
	cores   map[string]stream.Handle
	handle  stream.Handle
	events  []string

	counter uint32
	running bool
}

// NewBoard returns an empty board
func NewBoard() *Board {
	return &Board{
		FailClocks:   map[string]bool{},
		FailInit:     map[int]bool{},
		FailCores:    map[string]bool{},
		FailLinks:    map[jesd.Role]bool{},
		TicksPerRead: 100,
		clocks:       map[string]clock.RateSpec{},
		gpio:         map[int]bool{},
		devices:      map[int]*Device{},
		cores:        map[string]stream.Handle{},
	}
}

func (b *Board) event(format string, args ...interface{}) {
	b.events = append(b.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of the board event log
func (b *Board) Events() []string {
	b.Lock()
	defer b.Unlock()
	return append([]string(nil), b.events...)
}

// Configure implements clock.Synthesizer
func (b *Board) Configure(specs []clock.RateSpec) error {
	b.Lock()
	defer b.Unlock()
	for _, s := range specs {
		if b.FailClocks[s.Name] {
			return fmt.Errorf("%w: %s pll unlocked", ErrInjected, s.Name)
		}
		b.clocks[s.Name] = s
		b.event("clock %s %d", s.Name, s.Rate)
	}
	return nil
}

// Clock returns a configured clock
func (b *Board) Clock(name string) (clock.RateSpec, bool) {
	b.Lock()
	defer b.Unlock()
	s, ok := b.clocks[name]
	return s, ok
}

type line struct {
	b *Board
	n int
}

func (l line) Set(high bool) error {
	l.b.Lock()
	defer l.b.Unlock()
	l.b.gpio[l.n] = high
	l.b.event("gpio %d %v", l.n, high)
	return nil
}

// Output implements mxfe.Platform
func (b *Board) Output(n int) (mxfe.Output, error) {
	if n < 0 || (b.GPIOLines > 0 && n >= b.GPIOLines) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchLine, n)
	}
	return line{b: b, n: n}, nil
}

// GPIO returns the level of line n
func (b *Board) GPIO(n int) bool {
	b.Lock()
	defer b.Unlock()
	return b.gpio[n]
}

// SPI implements mxfe.Platform.  Each chip select has its own register file.
func (b *Board) SPI(cs int) (mxfe.Transactor, error) {
	b.Lock()
	defer b.Unlock()
	d, ok := b.devices[cs]
	if !ok {
		d = newDevice(cs)
		b.devices[cs] = d
	}
	b.event("spi %d", cs)
	return d, nil
}

// Device returns the simulated converter behind chip select cs
func (b *Board) Device(cs int) *Device {
	b.Lock()
	defer b.Unlock()
	return b.devices[cs]
}

// Init implements mxfe.Driver.  The negotiated state is what the templates
// ask for.
func (b *Board) Init(spi mxfe.Transactor, p mxfe.InitParams) (datapath.Device, mxfe.Negotiated, error) {
	d, ok := spi.(*Device)
	if !ok {
		return nil, mxfe.Negotiated{}, errors.New("transactor does not belong to this board")
	}
	b.Lock()
	fail := b.FailInit[p.Identity.ChipSelect]
	b.Unlock()
	if fail {
		return nil, mxfe.Negotiated{}, fmt.Errorf("%w: mxfe cs %d link did not come up", ErrInjected, p.Identity.ChipSelect)
	}
	d.Lock()
	d.adc, d.dac = p.ADCRate, p.DACRate
	d.params = p
	d.Unlock()
	n := mxfe.Negotiated{Tx: mxfe.LinkState{Converters: p.Tx.M, DualLink: p.Tx.DualLink}}
	for k, rx := range p.Rx {
		n.Rx[k] = mxfe.LinkState{Converters: rx.M, DualLink: rx.DualLink}
	}
	return d, n, nil
}

// Status implements mxfe.LinkMonitor
func (b *Board) Status(role jesd.Role) (mxfe.LinkStatus, error) {
	b.Lock()
	defer b.Unlock()
	if b.FailLinks[role] {
		return mxfe.LinkStatus{}, fmt.Errorf("%w: %s watchdog", ErrInjected, role)
	}
	return mxfe.LinkStatus{Role: role, Link: role.String(), Up: true, State: "DATA"}, nil
}

func (b *Board) init(name string) (stream.Handle, error) {
	if b.FailCores[name] {
		return 0, fmt.Errorf("%w: %s", ErrInjected, name)
	}
	b.handle++
	b.cores[name] = b.handle
	return b.handle, nil
}

// InitCore implements stream.Cores
func (b *Board) InitCore(name string, base uint64, channels int) (stream.Handle, error) {
	b.Lock()
	defer b.Unlock()
	b.event("core %s %#x %d", name, base, channels)
	return b.init(name)
}

// InitDMA implements stream.DMAs
func (b *Board) InitDMA(name string, base uint64, dir stream.Transfer, mode stream.Mode) (stream.Handle, error) {
	b.Lock()
	defer b.Unlock()
	b.event("dma %s %#x %s %s", name, base, dir, mode)
	return b.init(name)
}

// Start implements bench.Timer
func (b *Board) Start() error {
	b.Lock()
	defer b.Unlock()
	b.running = true
	return nil
}

// Stop implements bench.Timer
func (b *Board) Stop() error {
	b.Lock()
	defer b.Unlock()
	b.running = false
	return nil
}

// SetCounter implements bench.Timer
func (b *Board) SetCounter(v uint32) error {
	b.Lock()
	defer b.Unlock()
	b.counter = v
	return nil
}

// Frequency implements bench.Timer
func (b *Board) Frequency() (uint32, error) {
	return CounterFrequency, nil
}

// Read32 implements bench.Register.  Every address reads the counter, which
// runs down TicksPerRead per read while started.
func (b *Board) Read32(addr uint64) (uint32, error) {
	b.Lock()
	defer b.Unlock()
	v := b.counter
	if b.running {
		b.counter -= b.TicksPerRead
	}
	return v, nil
}

var (
	_ clock.Synthesizer = (*Board)(nil)
	_ mxfe.Platform     = (*Board)(nil)
	_ mxfe.Driver       = (*Board)(nil)
	_ mxfe.LinkMonitor  = (*Board)(nil)
	_ stream.Cores      = (*Board)(nil)
	_ stream.DMAs       = (*Board)(nil)
	_ bench.Timer       = (*Board)(nil)
	_ bench.Register    = (*Board)(nil)
)
