// Package mxfe brings up MxFE converter instances on a shared SPI bus.
//
// Every instance walks the same state machine:
//
//	UNINIT -> RESET_ASSERTED -> SPI_BOUND -> LINK_NEGOTIATED -> READY
//
// and drops to FAILED from whichever state it was in when a step failed.
// Instances are brought up strictly one after another; they share the bus
// and nothing else, so a failed instance does not stop the ones after it.
package mxfe

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
)

// State is the bring-up state of one instance
type State int

const (
	// Uninit is the state before any hardware access
	Uninit State = iota
	// ResetAsserted means the reset line was acquired and pulsed
	ResetAsserted
	// SPIBound means the chip select was bound on the shared bus
	SPIBound
	// LinkNegotiated means the driver initialized the device and its links
	LinkNegotiated
	// Ready means the negotiated state was checked against the templates
	Ready
	// Failed is terminal
	Failed
)

func (s State) String() string {
	switch s {
	case Uninit:
		return "UNINIT"
	case ResetAsserted:
		return "RESET_ASSERTED"
	case SPIBound:
		return "SPI_BOUND"
	case LinkNegotiated:
		return "LINK_NEGOTIATED"
	case Ready:
		return "READY"
	case Failed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	// ErrDeviceInit is wrapped by every DeviceInitError
	ErrDeviceInit = errors.New("device init failed")

	// ErrDuplicateIdentity is generated when two instances share a chip
	// select or reset line
	ErrDuplicateIdentity = errors.New("duplicate device identity")

	// ErrNotSettled is generated when the negotiated link state does not fit
	// the link templates
	ErrNotSettled = errors.New("negotiated link state does not match templates")

	// ErrInstanceCount is generated for an unusable instance count
	ErrInstanceCount = errors.New("invalid instance count")
)

// DeviceInitError describes the failure of one instance
type DeviceInitError struct {
	Index int

	// State is the last state the instance reached before failing
	State State

	Err error
}

func (e *DeviceInitError) Error() string {
	return fmt.Sprintf("mxfe %d: %v in state %s: %v", e.Index, ErrDeviceInit, e.State, e.Err)
}

// Unwrap makes both ErrDeviceInit and the cause visible to errors.Is
func (e *DeviceInitError) Unwrap() []error {
	return []error{ErrDeviceInit, e.Err}
}

// Identity is the hardware identity of one instance on the board
type Identity struct {
	ChipSelect int `json:"chipSelect"`
	ResetLine  int `json:"resetLine"`

	// LinkDeviceID is the JESD device id reported on the receive links.
	// It is always the instance index.
	LinkDeviceID int `json:"linkDeviceID"`
}

// Identities derives count identities as base + index
func Identities(count, csBase, resetBase int) []Identity {
	out := make([]Identity, count)
	for i := range out {
		out[i] = Identity{ChipSelect: csBase + i, ResetLine: resetBase + i, LinkDeviceID: i}
	}
	return out
}

// Output is a single GPIO output line
type Output interface {
	Set(high bool) error
}

// Transactor performs one full-duplex SPI transfer; the received bytes
// overwrite buf
type Transactor interface {
	WriteAndRead(buf []byte) error
}

// Platform is the board HAL
type Platform interface {
	// Output acquires GPIO line n as an output
	Output(n int) (Output, error)

	// SPI binds chip select cs on the shared bus
	SPI(cs int) (Transactor, error)
}

// LinkState is the state of one link after negotiation
type LinkState struct {
	Converters int  `json:"converters"`
	DualLink   bool `json:"dualLink"`
}

// DualLinkFactor is 2 for a dual-link topology and 1 otherwise
func (l LinkState) DualLinkFactor() int {
	if l.DualLink {
		return 2
	}
	return 1
}

// Negotiated is what the driver reports after initializing a device
type Negotiated struct {
	Tx LinkState    `json:"tx"`
	Rx [2]LinkState `json:"rx"`
}

// Templates are the link parameters shared by every instance
type Templates struct {
	Tx jesd.LinkParameters
	Rx [2]jesd.LinkParameters
}

// InitParams is everything the driver needs to initialize one device
type InitParams struct {
	Identity Identity

	// Clock is the device reference clock
	Clock clock.Handle

	// RxLinkClock and TxLinkClock are the FPGA side link clocks
	RxLinkClock clock.Handle
	TxLinkClock clock.Handle

	Tx jesd.LinkParameters
	Rx [2]jesd.LinkParameters

	// ADCRate and DACRate are the converter sample rates in Hz
	ADCRate uint64
	DACRate uint64

	// SyncPinSwap exchanges the SYNC pins, needed on the quad board
	SyncPinSwap bool
}

// Driver is the register level converter driver
type Driver interface {
	// Init initializes a device over spi and returns its datapath handle
	Init(spi Transactor, p InitParams) (datapath.Device, Negotiated, error)
}

// LinkStatus is the FPGA view of one JESD link
type LinkStatus struct {
	Role  jesd.Role `json:"-"`
	Link  string    `json:"link"`
	Up    bool      `json:"up"`
	State string    `json:"state"`
}

// LinkMonitor reads the status of the FPGA JESD link layers
type LinkMonitor interface {
	Status(role jesd.Role) (LinkStatus, error)
}

// Instance is one converter chip
type Instance struct {
	Index    int                    `json:"index"`
	Identity Identity               `json:"identity"`
	Clock    clock.Handle           `json:"clock"`
	Tx       jesd.LinkParameters    `json:"-"`
	Rx       [2]jesd.LinkParameters `json:"-"`
	State    State                  `json:"state"`
	Err      error                  `json:"-"`

	Negotiated Negotiated `json:"negotiated"`

	// Device is the datapath handle, nil unless READY
	Device datapath.Device `json:"-"`

	// SPI is the bus binding of the instance, nil before SPI_BOUND
	SPI Transactor `json:"-"`
}

// Counts is the number of channels across all READY instances
type Counts struct {
	RX int `json:"rx"`
	TX int `json:"tx"`
}

// Orchestrator brings up converter instances
type Orchestrator struct {
	Platform Platform
	Driver   Driver
	Clocks   *clock.Handles

	// Monitor is optional
	Monitor LinkMonitor

	// ResetPulse is how long the reset line is held low
	ResetPulse time.Duration

	// MuxLine is the GPIO selecting the quad board SPI mux, negative if none
	MuxLine int

	SyncPinSwap bool

	ADCRate uint64
	DACRate uint64

	instances []*Instance
}

// Instances returns the instances of the last BringUp
func (o *Orchestrator) Instances() []*Instance {
	return o.instances
}

// SelectMux drives the SPI mux line high.  It is a no-op without a mux.
func (o *Orchestrator) SelectMux() error {
	if o.MuxLine < 0 {
		return nil
	}
	out, err := o.Platform.Output(o.MuxLine)
	if err != nil {
		return fmt.Errorf("mux gpio %d: %w", o.MuxLine, err)
	}
	return out.Set(true)
}

func checkIdentities(ids []Identity) error {
	cs := map[int]int{}
	rst := map[int]int{}
	for i, id := range ids {
		if j, ok := cs[id.ChipSelect]; ok {
			return fmt.Errorf("%w: instances %d and %d share chip select %d", ErrDuplicateIdentity, j, i, id.ChipSelect)
		}
		if j, ok := rst[id.ResetLine]; ok {
			return fmt.Errorf("%w: instances %d and %d share reset line %d", ErrDuplicateIdentity, j, i, id.ResetLine)
		}
		cs[id.ChipSelect] = i
		rst[id.ResetLine] = i
	}
	return nil
}

func checkTemplates(t Templates) error {
	if t.Tx.Role != jesd.Tx {
		return fmt.Errorf("%w: transmit template has role %s", jesd.ErrInvalidGeometry, t.Tx.Role)
	}
	for k, rx := range t.Rx {
		if rx.Role != jesd.Rx {
			return fmt.Errorf("%w: receive template %d has role %s", jesd.ErrInvalidGeometry, k, rx.Role)
		}
	}
	return nil
}

// BringUp initializes count instances in index order.  Identity and
// template problems are reported before any hardware access.  Per instance
// failures are recorded on the instance and joined into the returned error;
// the instances and counts are valid either way.
func (o *Orchestrator) BringUp(count int, ids []Identity, t Templates) ([]*Instance, Counts, error) {
	if count < 1 || count > clock.MaxInstances {
		return nil, Counts{}, fmt.Errorf("%w: %d", ErrInstanceCount, count)
	}
	if len(ids) != count {
		return nil, Counts{}, fmt.Errorf("%w: %d identities for %d instances", ErrInstanceCount, len(ids), count)
	}
	if err := checkIdentities(ids); err != nil {
		return nil, Counts{}, err
	}
	if err := checkTemplates(t); err != nil {
		return nil, Counts{}, err
	}

	o.instances = make([]*Instance, count)
	var errs []error
	for i := 0; i < count; i++ {
		inst := &Instance{Index: i, Identity: ids[i], State: Uninit, Tx: t.Tx.WithDeviceID(t.Tx.DeviceID)}
		inst.Identity.LinkDeviceID = i
		for k := range t.Rx {
			inst.Rx[k] = t.Rx[k].WithDeviceID(i)
		}
		o.instances[i] = inst
		if err := o.bringUp(inst); err != nil {
			inst.Err = &DeviceInitError{Index: i, State: inst.State, Err: err}
			inst.State = Failed
			inst.Device = nil
			log.Println(inst.Err)
			errs = append(errs, inst.Err)
			continue
		}
		log.Printf("mxfe %d READY cs=%d reset=%d tx M=%d rx M=%d+%d",
			i, inst.Identity.ChipSelect, inst.Identity.ResetLine,
			inst.Negotiated.Tx.Converters, inst.Negotiated.Rx[0].Converters, inst.Negotiated.Rx[1].Converters)
	}
	counts := Aggregate(o.instances)
	return o.instances, counts, errors.Join(errs...)
}

func (o *Orchestrator) bringUp(inst *Instance) error {
	devClk, err := o.Clocks.Device(inst.Index)
	if err != nil {
		return err
	}
	rxClk, err := o.Clocks.Resolve(clock.JESDRx)
	if err != nil {
		return err
	}
	txClk, err := o.Clocks.Resolve(clock.JESDTx)
	if err != nil {
		return err
	}
	inst.Clock = devClk

	rst, err := o.Platform.Output(inst.Identity.ResetLine)
	if err != nil {
		return fmt.Errorf("reset gpio %d: %w", inst.Identity.ResetLine, err)
	}
	if err := rst.Set(false); err != nil {
		return fmt.Errorf("assert reset: %w", err)
	}
	if o.ResetPulse > 0 {
		time.Sleep(o.ResetPulse)
	}
	if err := rst.Set(true); err != nil {
		return fmt.Errorf("release reset: %w", err)
	}
	inst.State = ResetAsserted

	spi, err := o.Platform.SPI(inst.Identity.ChipSelect)
	if err != nil {
		return fmt.Errorf("spi cs %d: %w", inst.Identity.ChipSelect, err)
	}
	inst.SPI = spi
	inst.State = SPIBound

	p := InitParams{
		Identity:    inst.Identity,
		Clock:       devClk,
		RxLinkClock: rxClk,
		TxLinkClock: txClk,
		Tx:          inst.Tx,
		Rx:          inst.Rx,
		ADCRate:     o.ADCRate,
		DACRate:     o.DACRate,
		SyncPinSwap: o.SyncPinSwap,
	}
	dev, neg, err := o.Driver.Init(spi, p)
	if err != nil {
		return fmt.Errorf("driver init: %w", err)
	}
	inst.Negotiated = neg
	inst.State = LinkNegotiated

	if err := settled(inst); err != nil {
		return err
	}
	inst.Device = dev
	inst.State = Ready
	return nil
}

// settled checks the negotiated converter counts against the templates
func settled(inst *Instance) error {
	n := inst.Negotiated
	if n.Tx.Converters < 0 || n.Tx.Converters > inst.Tx.M {
		return fmt.Errorf("%w: tx negotiated M=%d, template M=%d", ErrNotSettled, n.Tx.Converters, inst.Tx.M)
	}
	for k, rx := range inst.Rx {
		if n.Rx[k].Converters < 0 || n.Rx[k].Converters > rx.M {
			return fmt.Errorf("%w: rx%d negotiated M=%d, template M=%d", ErrNotSettled, k, n.Rx[k].Converters, rx.M)
		}
	}
	return nil
}

// Aggregate sums the negotiated channel counts of READY instances.
// Absent receive links do not contribute.
func Aggregate(instances []*Instance) Counts {
	var c Counts
	for _, inst := range instances {
		if inst == nil || inst.State != Ready {
			continue
		}
		for k, rx := range inst.Rx {
			if rx.Absent() {
				continue
			}
			c.RX += inst.Negotiated.Rx[k].Converters
		}
		c.TX += inst.Negotiated.Tx.Converters * inst.Negotiated.Tx.DualLinkFactor()
	}
	return c
}

// LinkStatus reads the FPGA link status of both directions.  A failed read
// is logged and returned, the other direction is still read.
func (o *Orchestrator) LinkStatus() ([]LinkStatus, error) {
	if o.Monitor == nil {
		return nil, nil
	}
	var (
		out  []LinkStatus
		errs []error
	)
	for _, role := range []jesd.Role{jesd.Tx, jesd.Rx} {
		st, err := o.Monitor.Status(role)
		if err != nil {
			log.Printf("%s link status: %v", role, err)
			errs = append(errs, fmt.Errorf("%s link status: %w", role, err))
			continue
		}
		st.Role = role
		if st.Link == "" {
			st.Link = role.String()
		}
		log.Printf("%s link %s up=%v", st.Link, st.State, st.Up)
		out = append(out, st)
	}
	return out, errors.Join(errs...)
}
