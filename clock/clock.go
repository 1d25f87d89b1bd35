// Package clock plans and requests the reference, device and JESD link clocks
// used during bring-up.
//
// Requests are issued one at a time so that a single unreachable output does
// not prevent the rest of the tree from being configured.  Consumers look the
// result up by name with Handles.Resolve, which refuses anything that was not
// configured successfully.
package clock

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

const (
	// JESDRx is the name of the receive link (device) clock
	JESDRx = "jesd_rx"

	// JESDTx is the name of the transmit link (device) clock
	JESDTx = "jesd_tx"

	// MaxInstances bounds the number of device clocks a plan may request.
	// The clock distribution chip on the quad board has 14 outputs, two of
	// which feed the FPGA link clocks.
	MaxInstances = 12
)

var (
	// ErrClockUnavailable is generated when a clock was not requested or its
	// request failed
	ErrClockUnavailable = errors.New("clock unavailable")

	// ErrTooManyInstances is generated when more device clocks are needed than
	// the distribution chip provides
	ErrTooManyInstances = errors.New("instance count exceeds available clock outputs")
)

// RateSpec is a single request for a named clock output
type RateSpec struct {
	// Name identifies the consumer, e.g. dev_clk0 or jesd_rx
	Name string

	// Rate is the target output frequency in Hz
	Rate uint64

	// Reference is the input reference frequency in Hz, only used by link clocks
	Reference uint64

	// LaneRate is the serial lane bit rate in bits/s, only used by link clocks
	LaneRate uint64
}

// Synthesizer is a clock generation device that can configure outputs
type Synthesizer interface {
	// Configure programs the outputs described by the specs
	Configure([]RateSpec) error
}

// Handle is a successfully configured clock
type Handle struct {
	Name      string
	Rate      uint64
	LaneRate  uint64
	Reference uint64
}

// Handles is the outcome of a clock plan: every requested clock is either
// configured or failed, never both
type Handles struct {
	ok     map[string]Handle
	failed map[string]error
}

func newHandles() *Handles {
	return &Handles{ok: map[string]Handle{}, failed: map[string]error{}}
}

// Resolve returns the handle for a configured clock
func (h *Handles) Resolve(name string) (Handle, error) {
	if h == nil {
		return Handle{}, fmt.Errorf("%w: %s was never requested", ErrClockUnavailable, name)
	}
	if hdl, ok := h.ok[name]; ok {
		return hdl, nil
	}
	if err, ok := h.failed[name]; ok {
		return Handle{}, fmt.Errorf("%w: %s: %v", ErrClockUnavailable, name, err)
	}
	return Handle{}, fmt.Errorf("%w: %s was never requested", ErrClockUnavailable, name)
}

// Device resolves the reference clock of device instance i
func (h *Handles) Device(i int) (Handle, error) {
	return h.Resolve(DeviceClockName(i))
}

// Configured returns the configured handles sorted by name
func (h *Handles) Configured() []Handle {
	out := make([]Handle, 0, len(h.ok))
	for _, v := range h.ok {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Failed returns the names of clocks whose request failed, sorted
func (h *Handles) Failed() []string {
	out := make([]string, 0, len(h.failed))
	for k := range h.failed {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DeviceClockName is the name of the device clock for instance i
func DeviceClockName(i int) string {
	return fmt.Sprintf("dev_clk%d", i)
}

// Plan holds the target frequencies of the clock tree.
// All frequencies are in Hz, lane rates in bits/s.
type Plan struct {
	Synth Synthesizer

	// DeviceRate is the converter reference clock delivered to every instance
	DeviceRate uint64

	// Reference is the reference input of the FPGA link clock generators
	Reference uint64

	RxDeviceRate uint64
	TxDeviceRate uint64
	RxLaneRate   uint64
	TxLaneRate   uint64
}

// Requests returns the clock requests for instanceCount devices, device
// clocks first, then the receive and transmit link clocks
func (p Plan) Requests(instanceCount int) []RateSpec {
	out := make([]RateSpec, 0, instanceCount+2)
	for i := 0; i < instanceCount; i++ {
		out = append(out, RateSpec{Name: DeviceClockName(i), Rate: p.DeviceRate})
	}
	out = append(out,
		RateSpec{Name: JESDRx, Rate: p.RxDeviceRate, Reference: p.Reference, LaneRate: p.RxLaneRate},
		RateSpec{Name: JESDTx, Rate: p.TxDeviceRate, Reference: p.Reference, LaneRate: p.TxLaneRate})
	return out
}

// RequestClocks requests every clock the system needs.  A failing request is
// logged and recorded, the remaining requests are still issued.  The returned
// Handles are always usable; the error, if any, wraps ErrClockUnavailable once
// per failed clock.
func (p Plan) RequestClocks(instanceCount int) (*Handles, error) {
	h := newHandles()
	if instanceCount < 1 || instanceCount > MaxInstances {
		return h, fmt.Errorf("%w: %d (max %d)", ErrTooManyInstances, instanceCount, MaxInstances)
	}
	if p.Synth == nil {
		return h, fmt.Errorf("%w: no synthesizer", ErrClockUnavailable)
	}
	var errs []error
	for _, spec := range p.Requests(instanceCount) {
		if spec.Rate == 0 {
			err := errors.New("zero rate requested")
			h.failed[spec.Name] = err
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrClockUnavailable, spec.Name, err))
			log.Printf("clock %s: %v", spec.Name, err)
			continue
		}
		if err := p.Synth.Configure([]RateSpec{spec}); err != nil {
			h.failed[spec.Name] = err
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrClockUnavailable, spec.Name, err))
			log.Printf("clock %s (%d Hz) error: %v", spec.Name, spec.Rate, err)
			continue
		}
		h.ok[spec.Name] = Handle{Name: spec.Name, Rate: spec.Rate, LaneRate: spec.LaneRate, Reference: spec.Reference}
	}
	return h, errors.Join(errs...)
}
