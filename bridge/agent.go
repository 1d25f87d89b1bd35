package bridge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/stream"
)

// ErrUnknownOp is generated for a request with an unknown operation code
var ErrUnknownOp = errors.New("unknown operation")

// Agent is the board side of the bridge.  It answers telegrams by calling
// the local hardware in Deps.
type Agent struct {
	Deps bringup.Deps

	mu    sync.Mutex
	outs  map[int]mxfe.Output
	buses map[int]mxfe.Transactor
	devs  map[int]datapath.Device
	fir   map[int][]uint16
	links map[int]*stagedLinks
}

// stagedLinks are the link templates of one chip select awaiting init
type stagedLinks struct {
	lp  [initLinks]jesd.LinkParameters
	got [initLinks]bool
}

// NewAgent returns an agent serving deps
func NewAgent(deps bringup.Deps) *Agent {
	return &Agent{
		Deps:  deps,
		outs:  map[int]mxfe.Output{},
		buses: map[int]mxfe.Transactor{},
		devs:  map[int]datapath.Device{},
		fir:   map[int][]uint16{},
		links: map[int]*stagedLinks{},
	}
}

// ListenAndServe accepts connections on addr and serves each of them
// until it closes
func (a *Agent) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Println("bridge agent listening on", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go func() {
			defer conn.Close()
			if err := a.Serve(conn); err != nil {
				log.Printf("bridge agent %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

// Serve answers telegrams on rw until it reaches EOF.  Malformed telegrams
// are logged and dropped, the client times out on them.
func (a *Agent) Serve(rw io.ReadWriter) error {
	r := bufio.NewReader(rw)
	for {
		raw, err := readTelegram(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		req, err := Decode(raw)
		if err != nil {
			log.Println("bridge agent: dropped telegram:", err)
			continue
		}
		resp := Telegram{Op: req.Op, Seq: req.Seq}
		data, err := a.handle(req.Op, &dec{b: req.Data})
		if err != nil {
			msg := err.Error()
			if len(msg) > MaxPayload {
				msg = msg[:MaxPayload]
			}
			resp.Op, data = opNack, []byte(msg)
		}
		resp.Data = data
		out, err := Encode(resp)
		if err != nil {
			return err
		}
		if _, err := rw.Write(out); err != nil {
			return err
		}
	}
}

func (a *Agent) device(cs int) (datapath.Device, error) {
	dev, ok := a.devs[cs]
	if !ok {
		return nil, fmt.Errorf("no initialized device on cs %d", cs)
	}
	return dev, nil
}

func (a *Agent) handle(op byte, d *dec) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var (
		e   enc
		err error
	)
	switch op {
	case opClock:
		spec := clock.RateSpec{Name: d.str(), Rate: d.u64(), Reference: d.u64(), LaneRate: d.u64()}
		if d.err == nil {
			err = a.Deps.Synth.Configure([]clock.RateSpec{spec})
		}
	case opGPIO:
		n, high := int(d.u16()), d.bool()
		if d.err != nil {
			break
		}
		out, ok := a.outs[n]
		if !ok {
			out, err = a.Deps.Platform.Output(n)
			if err != nil {
				break
			}
			a.outs[n] = out
		}
		err = out.Set(high)
	case opSPIBind:
		cs := d.u8()
		if d.err != nil {
			break
		}
		var bus mxfe.Transactor
		bus, err = a.Deps.Platform.SPI(cs)
		if err == nil {
			a.buses[cs] = bus
		}
	case opSPI:
		cs, buf := d.u8(), d.bytes()
		if d.err != nil {
			break
		}
		bus, ok := a.buses[cs]
		if !ok {
			err = fmt.Errorf("cs %d not bound", cs)
			break
		}
		if err = bus.WriteAndRead(buf); err == nil {
			e.bytes(buf)
		}
	case opInitLink:
		cs, slot, lp := d.u8(), d.u8(), d.link()
		if d.err != nil {
			break
		}
		if slot >= initLinks {
			err = fmt.Errorf("link slot %d out of range", slot)
			break
		}
		st, ok := a.links[cs]
		if !ok {
			st = &stagedLinks{}
			a.links[cs] = st
		}
		st.lp[slot], st.got[slot] = lp, true
	case opInit:
		p := decodeInit(d)
		if d.err != nil {
			break
		}
		cs := p.Identity.ChipSelect
		bus, ok := a.buses[cs]
		if !ok {
			err = fmt.Errorf("cs %d not bound", cs)
			break
		}
		st := a.links[cs]
		delete(a.links, cs)
		if st == nil || st.got != [initLinks]bool{true, true, true} {
			err = fmt.Errorf("cs %d init without its link templates", cs)
			break
		}
		p.Tx, p.Rx[0], p.Rx[1] = st.lp[0], st.lp[1], st.lp[2]
		var (
			dev datapath.Device
			n   mxfe.Negotiated
		)
		dev, n, err = a.Deps.Driver.Init(bus, p)
		if err == nil {
			a.devs[p.Identity.ChipSelect] = dev
			e = encodeNegotiated(n)
		}
	case opConvRate, opMainRate, opMainMode, opMainNCO, opChanRate, opChanMode, opChanGain, opChanNCO, opCrossbar, opNyquist:
		return a.handleDatapath(op, d)
	case opFIRCoef, opFIR:
		return a.handleFIR(op, d)
	case opLink:
		role := jesd.Role(d.u8())
		if d.err != nil {
			break
		}
		if a.Deps.Monitor == nil {
			err = errors.New("no link monitor")
			break
		}
		var st mxfe.LinkStatus
		st, err = a.Deps.Monitor.Status(role)
		if err == nil {
			e.bool(st.Up)
			e.str(st.State)
		}
	case opCore:
		name, base, ch := d.str(), d.u64(), int(d.u16())
		if d.err != nil {
			break
		}
		var h stream.Handle
		h, err = a.Deps.Cores.InitCore(name, base, ch)
		e.u32(uint32(h))
	case opDMA:
		name, base, dir, mode := d.str(), d.u64(), stream.Transfer(d.u8()), stream.Mode(d.u8())
		if d.err != nil {
			break
		}
		var h stream.Handle
		h, err = a.Deps.DMAs.InitDMA(name, base, dir, mode)
		e.u32(uint32(h))
	case opStart, opStop, opSetCount, opFreq:
		if a.Deps.Timer == nil {
			err = errors.New("no benchmark timer")
			break
		}
		switch op {
		case opStart:
			err = a.Deps.Timer.Start()
		case opStop:
			err = a.Deps.Timer.Stop()
		case opSetCount:
			v := d.u32()
			if d.err == nil {
				err = a.Deps.Timer.SetCounter(v)
			}
		case opFreq:
			var f uint32
			f, err = a.Deps.Timer.Frequency()
			e.u32(f)
		}
	case opRead32:
		addr := d.u64()
		if d.err != nil {
			break
		}
		if a.Deps.Counter == nil {
			err = errors.New("no counter register")
			break
		}
		var v uint32
		v, err = a.Deps.Counter.Read32(addr)
		e.u32(v)
	default:
		err = fmt.Errorf("%w: %02X", ErrUnknownOp, op)
	}
	if d.err != nil {
		return nil, d.err
	}
	return e, err
}

// handleDatapath is called with the lock held
func (a *Agent) handleDatapath(op byte, d *dec) ([]byte, error) {
	cs, dir, mask := d.u8(), datapath.Direction(d.u8()), uint8(d.u8())
	var (
		e   enc
		err error
	)
	if d.err != nil {
		return nil, d.err
	}
	dev, err := a.device(cs)
	if err != nil {
		return nil, err
	}
	switch op {
	case opConvRate:
		var r uint64
		r, err = dev.ConverterRate(dir)
		e.u64(r)
	case opMainRate:
		err = dev.SetMainRate(dir, mask, int(d.u16()))
	case opMainMode:
		err = dev.SetMainMode(dir, mask, d.bool())
	case opMainNCO:
		err = dev.SetMainNCO(dir, mask, d.word())
	case opChanRate:
		err = dev.SetChannelRate(dir, mask, int(d.u16()))
	case opChanMode:
		err = dev.SetChannelMode(dir, mask, d.bool())
	case opChanGain:
		err = dev.SetChannelGain(dir, mask, d.u16())
	case opChanNCO:
		err = dev.SetChannelNCO(dir, mask, d.word())
	case opCrossbar:
		err = dev.SetCrossbar(dir, d.u8(), mask)
	case opNyquist:
		err = dev.SetNyquistZone(d.u8())
	}
	return e, err
}

// handleFIR is called with the lock held.  Coefficients are staged per chip
// select until the configuration telegram arrives.
func (a *Agent) handleFIR(op byte, d *dec) ([]byte, error) {
	cs := d.u8()
	if op == opFIRCoef {
		off, n := int(d.u16()), d.u8()
		buf := a.fir[cs]
		if off == 0 {
			buf = buf[:0]
		}
		if off != len(buf) {
			return nil, fmt.Errorf("pfir chunk at %d, expected %d", off, len(buf))
		}
		for i := 0; i < n; i++ {
			buf = append(buf, d.u16())
		}
		if d.err != nil {
			return nil, d.err
		}
		a.fir[cs] = buf
		return nil, nil
	}
	f := datapath.FIRConfig{Pairs: uint8(d.u8()), Pages: uint8(d.u8()), IMode: datapath.FIRMode(d.u8()), QMode: datapath.FIRMode(d.u8())}
	for i := range f.Gains {
		f.Gains[i] = datapath.FIRGain(int8(d.u8()))
	}
	f.LoadSelect = uint8(d.u8())
	f.Length = int(d.u16())
	total := int(d.u16())
	if d.err != nil {
		return nil, d.err
	}
	staged := a.fir[cs]
	delete(a.fir, cs)
	if total != len(staged) {
		return nil, fmt.Errorf("pfir expected %d staged coefficients, have %d", total, len(staged))
	}
	f.Coefficients = staged
	dev, err := a.device(cs)
	if err != nil {
		return nil, err
	}
	return nil, dev.SetFIR(f)
}
