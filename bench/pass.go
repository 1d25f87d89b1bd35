package bench

import (
	"log"

	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/util"
)

// DefaultShift is the NCO shift used by every timed retune, in Hz
const DefaultShift = 100000000

// DefaultFIR is the filter upload timed by the pass: both ADC pairs, every
// page, complex full on both rails at -6 dB, all coefficients zero
func DefaultFIR() datapath.FIRConfig {
	return datapath.FIRConfig{
		Pairs:        util.Mask(0, 1),
		Pages:        util.Mask(0, 1, 2, 3),
		IMode:        datapath.FIRComplexFull,
		QMode:        datapath.FIRComplexFull,
		Gains:        [4]datapath.FIRGain{datapath.FIRGainN6, datapath.FIRGainN6, datapath.FIRGainN6, datapath.FIRGainN6},
		LoadSelect:   util.Bit(4),
		Coefficients: make([]uint16, datapath.FIRTaps),
		Length:       datapath.FIRTaps,
	}
}

// Pass is one benchmark pass over the first READY instance.  Every driver
// call is followed by the raw sequence doing the same work.
type Pass struct {
	Harness *Harness

	// Datapath is the configurator of the instance under test
	Datapath *datapath.Configurator

	// SPI is the bus of the instance under test, used for raw sequences
	SPI Transactor

	// Rx0 is the first receive link of the instance
	Rx0 jesd.LinkParameters

	// Shift is the NCO shift in Hz, DefaultShift when zero
	Shift int64

	// FIR is the filter upload, DefaultFIR when nil
	FIR *datapath.FIRConfig
}

func (p *Pass) raw(seq Sequence) Sample {
	s := p.Harness.Measure(seq.Name, func() error { return Apply(p.SPI, seq) })
	s.Kind = Raw
	return s
}

func (p *Pass) api(label string, op func() error) Sample {
	s := p.Harness.Measure(label, op)
	s.Kind = API
	return s
}

// rxMain returns the main datapath fed by ADC 0, the lowest enabled main
func (p *Pass) rxMain() uint8 {
	cfg, ok := p.Datapath.Applied(datapath.Receive)
	if !ok {
		return util.Bit(0)
	}
	for i := 0; i < datapath.MainPaths; i++ {
		if cfg.MainEnabled(i) {
			return util.Bit(uint(i))
		}
	}
	return util.Bit(0)
}

// txMainsOfChannel0 returns the transmit mains whose crossbar includes channel 0
func (p *Pass) txMainsOfChannel0() []int {
	cfg, ok := p.Datapath.Applied(datapath.Transmit)
	if !ok {
		return nil
	}
	var out []int
	for i := 0; i < datapath.MainPaths; i++ {
		if cfg.MainEnabled(i) && util.GetBit(cfg.CrossbarMask(i), 0) {
			out = append(out, i)
		}
	}
	return out
}

// fineDDC returns the channel carrying the first converter of link 0
func (p *Pass) fineDDC() uint8 {
	if len(p.Rx0.ConverterSelect) == 0 {
		return util.Bit(0)
	}
	return util.Bit(uint(p.Rx0.ConverterSelect[0] / 2))
}

// Run executes the pass and logs every sample
func (p *Pass) Run() []Sample {
	hz := p.Shift
	if hz == 0 {
		hz = DefaultShift
	}
	fir := DefaultFIR()
	if p.FIR != nil {
		fir = *p.FIR
	}
	dp := p.Datapath

	var out []Sample
	out = append(out, p.api(CoarseDDC.Name, func() error { return dp.SetMainNCO(datapath.Receive, p.rxMain(), hz) }))
	out = append(out, p.raw(CoarseDDC))
	for _, i := range p.txMainsOfChannel0() {
		mask := util.Bit(uint(i))
		out = append(out, p.api(CoarseDUC.Name, func() error { return dp.SetMainNCO(datapath.Transmit, mask, hz) }))
	}
	out = append(out, p.raw(CoarseDUC))
	out = append(out, p.api(FineDDC.Name, func() error { return dp.SetChannelNCO(datapath.Receive, p.fineDDC(), hz) }))
	out = append(out, p.raw(FineDDC))
	out = append(out, p.api(FineDUC.Name, func() error { return dp.SetChannelNCO(datapath.Transmit, util.Bit(0), hz) }))
	out = append(out, p.raw(FineDUC))
	out = append(out, p.api(PFIRUpdate.Name, func() error { return dp.SetFIR(fir) }))
	out = append(out, p.raw(PFIRUpdate))
	for _, s := range out {
		log.Println(s)
	}
	return out
}
