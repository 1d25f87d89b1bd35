/*Package bridge speaks to a board side agent that owns the converter
hardware.  Every request is one telegram and is answered by exactly one
telegram carrying the same sequence number.

The Client implements the hardware interfaces of the bring-up stages, so a
remote board can be driven the same way as a local one:

	rd := comm.NewRemoteDevice("192.168.1.40:5000", false, comm.Options{})
	if err := rd.Open(); err != nil {
		return err
	}
	c := bridge.NewClient(rd)
	report, err := bringup.Run(ctx, c.Deps(), opts)
*/
package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nasa-jpl/mxfe/bench"
	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/comm"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/stream"
)

var (
	// ErrNack is generated when the agent refuses a request
	ErrNack = errors.New("agent refused request")

	// ErrSequence is generated when a response does not answer the request
	ErrSequence = errors.New("response sequence mismatch")

	// ErrForeignBus is generated when Init is given a bus not bound by this client
	ErrForeignBus = errors.New("spi binding does not belong to this client")
)

// Exchanger sends one request and reads one response
type Exchanger interface {
	Exchange(b []byte, read comm.ReadFunc) ([]byte, error)
}

// Client is the host side of the bridge
type Client struct {
	ex  Exchanger
	mu  sync.Mutex
	seq byte
}

// NewClient returns a client speaking over ex
func NewClient(ex Exchanger) *Client {
	return &Client{ex: ex}
}

// Deps returns the client in every hardware role of a bring-up
func (c *Client) Deps() bringup.Deps {
	return bringup.Deps{
		Synth:    c,
		Platform: c,
		Driver:   c,
		Monitor:  c,
		Cores:    c,
		DMAs:     c,
		Timer:    c,
		Counter:  c,
	}
}

func (c *Client) call(op byte, data []byte) ([]byte, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()
	req, err := Encode(Telegram{Op: op, Seq: seq, Data: data})
	if err != nil {
		return nil, err
	}
	raw, err := c.ex.Exchange(req, readTelegram)
	if err != nil {
		return nil, err
	}
	resp, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if resp.Seq != seq {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrSequence, seq, resp.Seq)
	}
	if resp.Op == opNack {
		return nil, fmt.Errorf("%w: op %02X: %s", ErrNack, op, resp.Data)
	}
	if resp.Op != op {
		return nil, fmt.Errorf("%w: op %02X answered with %02X", ErrFrame, op, resp.Op)
	}
	return resp.Data, nil
}

// callDec performs a call and wraps the response in a decoder
func (c *Client) callDec(op byte, data []byte) (*dec, error) {
	resp, err := c.call(op, data)
	if err != nil {
		return nil, err
	}
	return &dec{b: resp}, nil
}

// Configure implements clock.Synthesizer.  One telegram is sent per spec.
func (c *Client) Configure(specs []clock.RateSpec) error {
	for _, s := range specs {
		var e enc
		e.str(s.Name)
		e.u64(s.Rate)
		e.u64(s.Reference)
		e.u64(s.LaneRate)
		if _, err := c.call(opClock, e); err != nil {
			return err
		}
	}
	return nil
}

type gpio struct {
	c *Client
	n int
}

func (g gpio) Set(high bool) error {
	var e enc
	e.u16(uint16(g.n))
	e.bool(high)
	_, err := g.c.call(opGPIO, e)
	return err
}

// Output implements mxfe.Platform.  The line is acquired on first Set.
func (c *Client) Output(n int) (mxfe.Output, error) {
	if n < 0 || n > 0xFFFF {
		return nil, fmt.Errorf("gpio line %d out of range", n)
	}
	return gpio{c: c, n: n}, nil
}

// Bus is a chip select bound on the agent
type Bus struct {
	c  *Client
	cs int
}

// WriteAndRead implements mxfe.Transactor
func (b *Bus) WriteAndRead(buf []byte) error {
	var e enc
	e.u8(b.cs)
	e.bytes(buf)
	d, err := b.c.callDec(opSPI, e)
	if err != nil {
		return err
	}
	rx := d.bytes()
	if d.err != nil {
		return d.err
	}
	if len(rx) != len(buf) {
		return fmt.Errorf("%w: spi sent %d bytes, received %d", ErrFrame, len(buf), len(rx))
	}
	copy(buf, rx)
	return nil
}

// SPI implements mxfe.Platform
func (c *Client) SPI(cs int) (mxfe.Transactor, error) {
	if cs < 0 || cs > 0xFF {
		return nil, fmt.Errorf("chip select %d out of range", cs)
	}
	var e enc
	e.u8(cs)
	if _, err := c.call(opSPIBind, e); err != nil {
		return nil, err
	}
	return &Bus{c: c, cs: cs}, nil
}

// initLinks is the number of link templates staged before an init: tx, rx0, rx1
const initLinks = 3

// encodeInit encodes everything but the links, which are staged first
func encodeInit(p mxfe.InitParams) enc {
	var e enc
	e.u8(p.Identity.ChipSelect)
	e.u16(uint16(p.Identity.ResetLine))
	e.u16(uint16(p.Identity.LinkDeviceID))
	e.handle(p.Clock)
	e.handle(p.RxLinkClock)
	e.handle(p.TxLinkClock)
	e.u64(p.ADCRate)
	e.u64(p.DACRate)
	e.bool(p.SyncPinSwap)
	return e
}

func decodeInit(d *dec) mxfe.InitParams {
	var p mxfe.InitParams
	p.Identity.ChipSelect = d.u8()
	p.Identity.ResetLine = int(d.u16())
	p.Identity.LinkDeviceID = int(d.u16())
	p.Clock = d.handle()
	p.RxLinkClock = d.handle()
	p.TxLinkClock = d.handle()
	p.ADCRate = d.u64()
	p.DACRate = d.u64()
	p.SyncPinSwap = d.bool()
	return p
}

func initLinkParams(p mxfe.InitParams) [initLinks]jesd.LinkParameters {
	return [initLinks]jesd.LinkParameters{p.Tx, p.Rx[0], p.Rx[1]}
}

func encodeNegotiated(n mxfe.Negotiated) enc {
	var e enc
	for _, l := range []mxfe.LinkState{n.Tx, n.Rx[0], n.Rx[1]} {
		e.u16(uint16(l.Converters))
		e.bool(l.DualLink)
	}
	return e
}

func decodeNegotiated(d *dec) mxfe.Negotiated {
	var n mxfe.Negotiated
	for _, l := range []*mxfe.LinkState{&n.Tx, &n.Rx[0], &n.Rx[1]} {
		l.Converters = int(d.u16())
		l.DualLink = d.bool()
	}
	return n
}

// Init implements mxfe.Driver.  spi must have been bound by this client.
// The three link templates are staged one telegram each, then the init
// telegram carries the identity, clock handles and converter rates.
func (c *Client) Init(spi mxfe.Transactor, p mxfe.InitParams) (datapath.Device, mxfe.Negotiated, error) {
	b, ok := spi.(*Bus)
	if !ok || b.c != c {
		return nil, mxfe.Negotiated{}, ErrForeignBus
	}
	p.Identity.ChipSelect = b.cs
	for slot, lp := range initLinkParams(p) {
		var e enc
		e.u8(b.cs)
		e.u8(slot)
		e.link(lp)
		if _, err := c.call(opInitLink, e); err != nil {
			return nil, mxfe.Negotiated{}, err
		}
	}
	d, err := c.callDec(opInit, encodeInit(p))
	if err != nil {
		return nil, mxfe.Negotiated{}, err
	}
	n := decodeNegotiated(d)
	if d.err != nil {
		return nil, mxfe.Negotiated{}, d.err
	}
	return &Device{c: c, cs: b.cs}, n, nil
}

// Status implements mxfe.LinkMonitor
func (c *Client) Status(role jesd.Role) (mxfe.LinkStatus, error) {
	d, err := c.callDec(opLink, []byte{byte(role)})
	if err != nil {
		return mxfe.LinkStatus{}, err
	}
	st := mxfe.LinkStatus{Role: role, Link: role.String(), Up: d.bool(), State: d.str()}
	return st, d.err
}

// InitCore implements stream.Cores
func (c *Client) InitCore(name string, base uint64, channels int) (stream.Handle, error) {
	if channels < 0 || channels > 0xFFFF {
		return 0, fmt.Errorf("%w: %s channel count %d", ErrPayload, name, channels)
	}
	var e enc
	e.str(name)
	e.u64(base)
	e.u16(uint16(channels))
	d, err := c.callDec(opCore, e)
	if err != nil {
		return 0, err
	}
	h := stream.Handle(d.u32())
	return h, d.err
}

// InitDMA implements stream.DMAs
func (c *Client) InitDMA(name string, base uint64, dir stream.Transfer, mode stream.Mode) (stream.Handle, error) {
	var e enc
	e.str(name)
	e.u64(base)
	e.u8(int(dir))
	e.u8(int(mode))
	d, err := c.callDec(opDMA, e)
	if err != nil {
		return 0, err
	}
	h := stream.Handle(d.u32())
	return h, d.err
}

// Start implements bench.Timer
func (c *Client) Start() error {
	_, err := c.call(opStart, nil)
	return err
}

// Stop implements bench.Timer
func (c *Client) Stop() error {
	_, err := c.call(opStop, nil)
	return err
}

// SetCounter implements bench.Timer
func (c *Client) SetCounter(v uint32) error {
	var e enc
	e.u32(v)
	_, err := c.call(opSetCount, e)
	return err
}

// Frequency implements bench.Timer
func (c *Client) Frequency() (uint32, error) {
	d, err := c.callDec(opFreq, nil)
	if err != nil {
		return 0, err
	}
	f := d.u32()
	return f, d.err
}

// Read32 implements bench.Register
func (c *Client) Read32(addr uint64) (uint32, error) {
	var e enc
	e.u64(addr)
	d, err := c.callDec(opRead32, e)
	if err != nil {
		return 0, err
	}
	v := d.u32()
	return v, d.err
}

var (
	_ clock.Synthesizer = (*Client)(nil)
	_ mxfe.Platform     = (*Client)(nil)
	_ mxfe.Driver       = (*Client)(nil)
	_ mxfe.LinkMonitor  = (*Client)(nil)
	_ stream.Cores      = (*Client)(nil)
	_ stream.DMAs       = (*Client)(nil)
	_ bench.Timer       = (*Client)(nil)
	_ bench.Register    = (*Client)(nil)
	_ mxfe.Transactor   = (*Bus)(nil)
)
