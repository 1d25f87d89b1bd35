package sim

import (
	"fmt"
	"sync"

	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/mxfe"
)

// Device is a simulated converter: a register file behind a chip select and
// the datapath state the driver would hold
type Device struct {
	sync.Mutex
	cs     int
	regs   map[uint16]byte
	params mxfe.InitParams

	adc, dac uint64

	// Writes counts datapath writes per operation name
	Writes map[string]int

	MainNCO    [2][datapath.MainPaths]datapath.NCOWord
	ChannelNCO [2][datapath.Channels]datapath.NCOWord
	MainRate   [2][datapath.MainPaths]int
	ChanRate   [2][datapath.Channels]int
	Gain       [2][datapath.Channels]uint16
	Crossbar   [2][datapath.MainPaths]uint8
	FIR        *datapath.FIRConfig

	// MainMode and ChanMode hold the complex to real enables
	MainMode [2][datapath.MainPaths]bool
	ChanMode [2][datapath.Channels]bool

	// NyquistZone is the ADC input band, zero until selected
	NyquistZone int
}

func newDevice(cs int) *Device {
	return &Device{cs: cs, regs: map[uint16]byte{}, Writes: map[string]int{}}
}

// WriteAndRead implements mxfe.Transactor for 3-byte register commands.
// A read returns the register value in the last byte.
func (d *Device) WriteAndRead(buf []byte) error {
	if len(buf) != 3 {
		return fmt.Errorf("sim: %d byte transfer, expected 3", len(buf))
	}
	d.Lock()
	defer d.Unlock()
	addr := uint16(buf[0]&0x7f)<<8 | uint16(buf[1])
	if buf[0]&0x80 != 0 {
		buf[2] = d.regs[addr]
		return nil
	}
	d.regs[addr] = buf[2]
	return nil
}

// Register returns the value of a register
func (d *Device) Register(addr uint16) byte {
	d.Lock()
	defer d.Unlock()
	return d.regs[addr]
}

// Params returns the parameters the device was initialized with
func (d *Device) Params() mxfe.InitParams {
	d.Lock()
	defer d.Unlock()
	return d.params
}

func (d *Device) count(op string) {
	d.Writes[op]++
}

// ConverterRate implements datapath.Device
func (d *Device) ConverterRate(dir datapath.Direction) (uint64, error) {
	d.Lock()
	defer d.Unlock()
	if dir == datapath.Transmit {
		return d.dac, nil
	}
	return d.adc, nil
}

// SetNyquistZone implements datapath.Device
func (d *Device) SetNyquistZone(zone int) error {
	d.Lock()
	defer d.Unlock()
	d.count("nyquist zone")
	if zone != 1 && zone != 2 {
		return fmt.Errorf("sim: nyquist zone %d", zone)
	}
	d.NyquistZone = zone
	return nil
}

func each(mask uint8, n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		if mask&(1<<uint(i)) != 0 {
			fn(i)
		}
	}
}

// SetMainRate implements datapath.Device
func (d *Device) SetMainRate(dir datapath.Direction, mask uint8, factor int) error {
	d.Lock()
	defer d.Unlock()
	d.count("main rate")
	each(mask, datapath.MainPaths, func(i int) { d.MainRate[dir][i] = factor })
	return nil
}

// SetMainMode implements datapath.Device
func (d *Device) SetMainMode(dir datapath.Direction, mask uint8, complexToReal bool) error {
	d.Lock()
	defer d.Unlock()
	d.count("main mode")
	each(mask, datapath.MainPaths, func(i int) { d.MainMode[dir][i] = complexToReal })
	return nil
}

// SetMainNCO implements datapath.Device
func (d *Device) SetMainNCO(dir datapath.Direction, mask uint8, w datapath.NCOWord) error {
	d.Lock()
	defer d.Unlock()
	d.count("main nco")
	each(mask, datapath.MainPaths, func(i int) { d.MainNCO[dir][i] = w })
	return nil
}

// SetChannelRate implements datapath.Device
func (d *Device) SetChannelRate(dir datapath.Direction, mask uint8, factor int) error {
	d.Lock()
	defer d.Unlock()
	d.count("channel rate")
	each(mask, datapath.Channels, func(i int) { d.ChanRate[dir][i] = factor })
	return nil
}

// SetChannelMode implements datapath.Device
func (d *Device) SetChannelMode(dir datapath.Direction, mask uint8, complexToReal bool) error {
	d.Lock()
	defer d.Unlock()
	d.count("channel mode")
	each(mask, datapath.Channels, func(i int) { d.ChanMode[dir][i] = complexToReal })
	return nil
}

// SetChannelGain implements datapath.Device
func (d *Device) SetChannelGain(dir datapath.Direction, mask uint8, gain uint16) error {
	d.Lock()
	defer d.Unlock()
	d.count("channel gain")
	each(mask, datapath.Channels, func(i int) { d.Gain[dir][i] = gain })
	return nil
}

// SetChannelNCO implements datapath.Device
func (d *Device) SetChannelNCO(dir datapath.Direction, mask uint8, w datapath.NCOWord) error {
	d.Lock()
	defer d.Unlock()
	d.count("channel nco")
	each(mask, datapath.Channels, func(i int) { d.ChannelNCO[dir][i] = w })
	return nil
}

// SetCrossbar implements datapath.Device
func (d *Device) SetCrossbar(dir datapath.Direction, main int, channelMask uint8) error {
	d.Lock()
	defer d.Unlock()
	d.count("crossbar")
	if main < 0 || main >= datapath.MainPaths {
		return fmt.Errorf("sim: main %d out of range", main)
	}
	d.Crossbar[dir][main] = channelMask
	return nil
}

// SetFIR implements datapath.Device
func (d *Device) SetFIR(f datapath.FIRConfig) error {
	d.Lock()
	defer d.Unlock()
	d.count("pfir")
	f.Coefficients = append([]uint16(nil), f.Upload()...)
	d.FIR = &f
	return nil
}

// TotalWrites is the number of datapath writes the device received
func (d *Device) TotalWrites() int {
	d.Lock()
	defer d.Unlock()
	n := 0
	for _, v := range d.Writes {
		n += v
	}
	return n
}

var _ datapath.Device = (*Device)(nil)
