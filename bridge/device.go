package bridge

import (
	"github.com/nasa-jpl/mxfe/datapath"
)

// firChunk is the number of coefficients sent per telegram
const firChunk = 64

// Device is the datapath surface of one converter behind the agent
type Device struct {
	c  *Client
	cs int
}

func (d *Device) head(dir datapath.Direction, mask uint8) enc {
	var e enc
	e.u8(d.cs)
	e.u8(int(dir))
	e.u8(int(mask))
	return e
}

// ConverterRate implements datapath.Device
func (d *Device) ConverterRate(dir datapath.Direction) (uint64, error) {
	r, err := d.c.callDec(opConvRate, d.head(dir, 0))
	if err != nil {
		return 0, err
	}
	v := r.u64()
	return v, r.err
}

func (d *Device) set(op byte, e enc) error {
	_, err := d.c.call(op, e)
	return err
}

// SetMainRate implements datapath.Device
func (d *Device) SetMainRate(dir datapath.Direction, mask uint8, factor int) error {
	e := d.head(dir, mask)
	e.u16(uint16(factor))
	return d.set(opMainRate, e)
}

// SetMainMode implements datapath.Device
func (d *Device) SetMainMode(dir datapath.Direction, mask uint8, complexToReal bool) error {
	e := d.head(dir, mask)
	e.bool(complexToReal)
	return d.set(opMainMode, e)
}

// SetMainNCO implements datapath.Device
func (d *Device) SetMainNCO(dir datapath.Direction, mask uint8, w datapath.NCOWord) error {
	e := d.head(dir, mask)
	e.word(w)
	return d.set(opMainNCO, e)
}

// SetChannelRate implements datapath.Device
func (d *Device) SetChannelRate(dir datapath.Direction, mask uint8, factor int) error {
	e := d.head(dir, mask)
	e.u16(uint16(factor))
	return d.set(opChanRate, e)
}

// SetChannelMode implements datapath.Device
func (d *Device) SetChannelMode(dir datapath.Direction, mask uint8, complexToReal bool) error {
	e := d.head(dir, mask)
	e.bool(complexToReal)
	return d.set(opChanMode, e)
}

// SetNyquistZone implements datapath.Device
func (d *Device) SetNyquistZone(zone int) error {
	e := d.head(datapath.Receive, 0)
	e.u8(zone)
	return d.set(opNyquist, e)
}

// SetChannelGain implements datapath.Device
func (d *Device) SetChannelGain(dir datapath.Direction, mask uint8, gain uint16) error {
	e := d.head(dir, mask)
	e.u16(gain)
	return d.set(opChanGain, e)
}

// SetChannelNCO implements datapath.Device
func (d *Device) SetChannelNCO(dir datapath.Direction, mask uint8, w datapath.NCOWord) error {
	e := d.head(dir, mask)
	e.word(w)
	return d.set(opChanNCO, e)
}

// SetCrossbar implements datapath.Device
func (d *Device) SetCrossbar(dir datapath.Direction, main int, channelMask uint8) error {
	e := d.head(dir, channelMask)
	e.u8(main)
	return d.set(opCrossbar, e)
}

// SetFIR implements datapath.Device.  The coefficients are staged in chunks,
// then the configuration telegram commits them.
func (d *Device) SetFIR(f datapath.FIRConfig) error {
	coefs := f.Coefficients
	for off := 0; off < len(coefs); off += firChunk {
		end := off + firChunk
		if end > len(coefs) {
			end = len(coefs)
		}
		var e enc
		e.u8(d.cs)
		e.u16(uint16(off))
		e.u8(end - off)
		for _, c := range coefs[off:end] {
			e.u16(c)
		}
		if err := d.set(opFIRCoef, e); err != nil {
			return err
		}
	}
	var e enc
	e.u8(d.cs)
	e.u8(int(f.Pairs))
	e.u8(int(f.Pages))
	e.u8(int(f.IMode))
	e.u8(int(f.QMode))
	for _, g := range f.Gains {
		e.u8(int(int8(g)))
	}
	e.u8(int(f.LoadSelect))
	e.u16(uint16(f.Length))
	e.u16(uint16(len(coefs)))
	return d.set(opFIR, e)
}

var _ datapath.Device = (*Device)(nil)
