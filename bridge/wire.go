package bridge

import (
	"encoding/binary"
	"fmt"

	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
)

// dataOrder is the byte order of multi-byte payload fields
var dataOrder = binary.LittleEndian

// operation codes.  Responses carry the request code, or opNack with an
// error message as data.
const (
	opNack byte = 0x00

	opClock    byte = 0x10
	opGPIO     byte = 0x11
	opSPIBind  byte = 0x12
	opSPI      byte = 0x13
	opInit     byte = 0x20
	opInitLink byte = 0x2B
	opConvRate byte = 0x21
	opMainRate byte = 0x22
	opMainMode byte = 0x23
	opMainNCO  byte = 0x24
	opChanRate byte = 0x25
	opChanGain byte = 0x26
	opChanNCO  byte = 0x27
	opCrossbar byte = 0x28
	opFIRCoef  byte = 0x29
	opFIR      byte = 0x2A
	opChanMode byte = 0x2C
	opNyquist  byte = 0x2D
	opLink     byte = 0x30
	opCore     byte = 0x40
	opDMA      byte = 0x41
	opStart    byte = 0x50
	opStop     byte = 0x51
	opSetCount byte = 0x52
	opFreq     byte = 0x53
	opRead32   byte = 0x54
)

// enc appends fields to a payload
type enc []byte

func (e *enc) u8(v int)       { *e = append(*e, byte(v)) }
func (e *enc) u16(v uint16)   { *e = dataOrder.AppendUint16(*e, v) }
func (e *enc) u32(v uint32)   { *e = dataOrder.AppendUint32(*e, v) }
func (e *enc) u64(v uint64)   { *e = dataOrder.AppendUint64(*e, v) }
func (e *enc) bytes(b []byte) { e.u8(len(b)); *e = append(*e, b...) }
func (e *enc) str(s string)   { e.bytes([]byte(s)) }

func (e *enc) bool(b bool) {
	if b {
		e.u8(1)
		return
	}
	e.u8(0)
}

func (e *enc) ints(v []int) {
	e.u8(len(v))
	for _, x := range v {
		e.u16(uint16(x))
	}
}

func (e *enc) word(w datapath.NCOWord) {
	e.u64(uint64(w.Hz))
	e.u64(w.FTW)
	e.u64(w.ModA)
	e.u64(w.ModB)
}

func (e *enc) handle(h clock.Handle) {
	e.str(h.Name)
	e.u64(h.Rate)
	e.u64(h.LaneRate)
	e.u64(h.Reference)
}

// link carries every geometry field; F and K reach 256 so the small
// fields travel as u16
func (e *enc) link(lp jesd.LinkParameters) {
	e.u8(int(lp.Role))
	e.u16(uint16(lp.DeviceID))
	g := lp.Geometry
	for _, v := range []int{g.F, g.K, g.S, g.N, g.NP, g.M, g.CS, g.L, g.Subclass, g.Mode, int(g.Version)} {
		e.u16(uint16(v))
	}
	e.bool(g.HighDensity)
	e.bool(g.DualLink)
	e.ints(g.LaneMap)
	e.ints(g.ConverterSelect)
	e.u16(uint16(g.TPLPhaseAdjust))
	e.u64(g.SampleRate)
	e.u64(g.LaneRate)
}

// dec consumes fields from a payload.  The first short read sticks in err
// and every later read returns zero.
type dec struct {
	b   []byte
	err error
}

func (d *dec) take(n int) []byte {
	if d.err != nil {
		return make([]byte, n)
	}
	if len(d.b) < n {
		d.err = fmt.Errorf("%w: payload short by %d bytes", ErrFrame, n-len(d.b))
		return make([]byte, n)
	}
	out := d.b[:n]
	d.b = d.b[n:]
	return out
}

func (d *dec) u8() int       { return int(d.take(1)[0]) }
func (d *dec) u16() uint16   { return dataOrder.Uint16(d.take(2)) }
func (d *dec) u32() uint32   { return dataOrder.Uint32(d.take(4)) }
func (d *dec) u64() uint64   { return dataOrder.Uint64(d.take(8)) }
func (d *dec) bool() bool    { return d.u8() != 0 }
func (d *dec) bytes() []byte { return append([]byte(nil), d.take(d.u8())...) }
func (d *dec) str() string   { return string(d.bytes()) }

func (d *dec) ints() []int {
	n := d.u8()
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(d.u16())
	}
	return out
}

func (d *dec) word() datapath.NCOWord {
	return datapath.NCOWord{Hz: int64(d.u64()), FTW: d.u64(), ModA: d.u64(), ModB: d.u64()}
}

func (d *dec) handle() clock.Handle {
	return clock.Handle{Name: d.str(), Rate: d.u64(), LaneRate: d.u64(), Reference: d.u64()}
}

func (d *dec) link() jesd.LinkParameters {
	lp := jesd.LinkParameters{Role: jesd.Role(d.u8()), DeviceID: int(d.u16())}
	g := &lp.Geometry
	for _, p := range []*int{&g.F, &g.K, &g.S, &g.N, &g.NP, &g.M, &g.CS, &g.L, &g.Subclass, &g.Mode} {
		*p = int(d.u16())
	}
	g.Version = jesd.Version(d.u16())
	g.HighDensity = d.bool()
	g.DualLink = d.bool()
	g.LaneMap = d.ints()
	g.ConverterSelect = d.ints()
	g.TPLPhaseAdjust = int(int16(d.u16()))
	g.SampleRate = d.u64()
	g.LaneRate = d.u64()
	return lp
}
