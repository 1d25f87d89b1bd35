// Package datapath configures the main and channelizer datapaths of a
// converter: NCO shifts, rate conversion, gains, the channel crossbar and the
// programmable FIR.
//
// Every configuration is validated completely before the first register
// write.  Partial hardware state cannot be read back reliably, so there is no
// rollback path; an invalid configuration simply never reaches the device.
package datapath

import (
	"errors"
	"fmt"
	"log"

	"github.com/nasa-jpl/mxfe/util"
)

// Direction selects the receive (ADC, DDC) or transmit (DAC, DUC) side
type Direction int

const (
	// Receive is the ADC side
	Receive Direction = iota
	// Transmit is the DAC side
	Transmit
)

func (d Direction) String() string {
	if d == Transmit {
		return "tx"
	}
	return "rx"
}

const (
	// MainPaths is the number of main (coarse) datapaths per direction
	MainPaths = 4

	// Channels is the number of channelizers (fine) per direction
	Channels = 8

	// MaxTxGain is the largest transmit channel gain code, 2048 is unity
	MaxTxGain = 4095
)

var (
	// ErrInvalidCrossbar is generated when an enabled channel routes to a disabled main datapath
	ErrInvalidCrossbar = errors.New("enabled channel routed to disabled main datapath")

	// ErrInvalidRate is generated for unsupported decimation or interpolation factors
	ErrInvalidRate = errors.New("unsupported rate conversion factor")

	// ErrInvalidGain is generated for gain codes the channel cannot apply
	ErrInvalidGain = errors.New("invalid channel gain")

	// ErrNotConfigured is generated when a retune is requested before any configuration
	ErrNotConfigured = errors.New("datapath not configured")

	// ErrInvalidMode is generated for modes a direction does not support
	ErrInvalidMode = errors.New("invalid datapath mode")

	rates = map[Direction][2]map[int]bool{
		Receive: {
			{1: true, 2: true, 3: true, 4: true, 6: true, 8: true, 12: true, 16: true, 24: true},
			{1: true, 2: true, 3: true, 4: true, 6: true, 8: true, 16: true, 24: true},
		},
		Transmit: {
			{1: true, 2: true, 3: true, 4: true, 6: true, 8: true, 12: true},
			{1: true, 2: true, 3: true, 4: true, 6: true, 8: true},
		},
	}
)

// Main is the configuration of one main datapath
type Main struct {
	NCOHz         int64 `koanf:"ncohz" yaml:"ncohz"`
	Rate          int   `koanf:"rate" yaml:"rate"`
	ComplexToReal bool  `koanf:"complextoreal" yaml:"complextoreal"`
}

// Channel is the configuration of one channelizer
type Channel struct {
	NCOHz int64 `koanf:"ncohz" yaml:"ncohz"`
	Rate  int   `koanf:"rate" yaml:"rate"`

	// Gain is a linear code on transmit (2048 = 0 dB) and a +6 dB enable on receive
	Gain uint16 `koanf:"gain" yaml:"gain"`

	// Crossbar is the main datapath this channel is routed to
	Crossbar int `koanf:"crossbar" yaml:"crossbar"`

	// ComplexToReal converts the channel output to real samples (receive only)
	ComplexToReal bool `koanf:"complextoreal" yaml:"complextoreal"`
}

// Config is the datapath configuration of one direction
type Config struct {
	Main          [MainPaths]Main   `koanf:"main" yaml:"main"`
	MainEnable    uint8             `koanf:"mainenable" yaml:"mainenable"`
	Channels      [Channels]Channel `koanf:"channels" yaml:"channels"`
	ChannelEnable uint8             `koanf:"channelenable" yaml:"channelenable"`
	FIR           *FIRConfig        `koanf:"fir" yaml:"fir,omitempty"`

	// NyquistZone selects the ADC input band, 1 for odd and 2 for even.
	// Zero leaves the power-on zone alone.  Receive only.
	NyquistZone int `koanf:"nyquistzone" yaml:"nyquistzone"`
}

// MainEnabled returns true if main datapath i is enabled
func (c Config) MainEnabled(i int) bool {
	return i >= 0 && i < MainPaths && util.GetBit(c.MainEnable, uint(i))
}

// ChannelEnabled returns true if channel i is enabled
func (c Config) ChannelEnabled(i int) bool {
	return i >= 0 && i < Channels && util.GetBit(c.ChannelEnable, uint(i))
}

// CrossbarMask returns the mask of enabled channels routed to main datapath m
func (c Config) CrossbarMask(m int) uint8 {
	var mask uint8
	for ch := 0; ch < Channels; ch++ {
		if c.ChannelEnabled(ch) && c.Channels[ch].Crossbar == m {
			mask = util.SetBit(mask, uint(ch), true)
		}
	}
	return mask
}

// Device is the narrow driver surface the configurator writes through.
// Masks select main datapaths or channels, bit i for index i.
type Device interface {
	// ConverterRate returns the ADC or DAC sample rate in Hz
	ConverterRate(Direction) (uint64, error)

	// SetNyquistZone selects the ADC input band, 1 odd or 2 even
	SetNyquistZone(zone int) error

	SetMainRate(dir Direction, mask uint8, factor int) error
	SetMainMode(dir Direction, mask uint8, complexToReal bool) error
	SetMainNCO(dir Direction, mask uint8, w NCOWord) error

	SetChannelRate(dir Direction, mask uint8, factor int) error
	SetChannelMode(dir Direction, mask uint8, complexToReal bool) error
	SetChannelGain(dir Direction, mask uint8, gain uint16) error
	SetChannelNCO(dir Direction, mask uint8, w NCOWord) error

	// SetCrossbar routes the channels in channelMask to main datapath main
	SetCrossbar(dir Direction, main int, channelMask uint8) error

	// SetFIR uploads a programmable FIR configuration (receive only)
	SetFIR(FIRConfig) error
}

// Validate checks a configuration against the capabilities of a direction
// without touching hardware.  The NCO range is checked by Configure since it
// depends on the live converter rate.
func Validate(dir Direction, c Config) error {
	rt, ok := rates[dir]
	if !ok {
		return fmt.Errorf("unknown direction %d", dir)
	}
	switch {
	case c.NyquistZone < 0 || c.NyquistZone > 2:
		return fmt.Errorf("%w: nyquist zone %d, expected 1 (odd) or 2 (even)", ErrInvalidMode, c.NyquistZone)
	case c.NyquistZone != 0 && dir != Receive:
		return fmt.Errorf("%w: nyquist zone is receive only", ErrInvalidMode)
	}
	for i := 0; i < MainPaths; i++ {
		if !c.MainEnabled(i) {
			continue
		}
		if !rt[0][c.Main[i].Rate] {
			return fmt.Errorf("%w: %s main %d factor %d", ErrInvalidRate, dir, i, c.Main[i].Rate)
		}
	}
	for i := 0; i < Channels; i++ {
		if !c.ChannelEnabled(i) {
			continue
		}
		ch := c.Channels[i]
		if !c.MainEnabled(ch.Crossbar) {
			return fmt.Errorf("%w: %s channel %d selects main %d (enable mask %08b)",
				ErrInvalidCrossbar, dir, i, ch.Crossbar, c.MainEnable)
		}
		if !rt[1][ch.Rate] {
			return fmt.Errorf("%w: %s channel %d factor %d", ErrInvalidRate, dir, i, ch.Rate)
		}
		if dir == Transmit && ch.ComplexToReal {
			return fmt.Errorf("%w: tx channel %d complex to real", ErrInvalidMode, i)
		}
		if dir == Transmit && ch.Gain > MaxTxGain {
			return fmt.Errorf("%w: tx channel %d gain %d > %d", ErrInvalidGain, i, ch.Gain, MaxTxGain)
		}
		if dir == Receive && ch.Gain > 1 {
			return fmt.Errorf("%w: rx channel %d gain %d, expected 0 or 1 (+6 dB)", ErrInvalidGain, i, ch.Gain)
		}
	}
	if c.FIR != nil {
		if dir != Receive {
			return fmt.Errorf("%w: programmable FIR is receive only", ErrFIRConfig)
		}
		if err := c.FIR.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// words holds the tuning words computed for a configuration
type words struct {
	main [MainPaths]NCOWord
	ch   [Channels]NCOWord
}

func tuneAll(dir Direction, c Config, fs uint64) (words, error) {
	var w words
	var err error
	for i := 0; i < MainPaths; i++ {
		if !c.MainEnabled(i) {
			continue
		}
		w.main[i], err = Tune(c.Main[i].NCOHz, fs)
		if err != nil {
			return w, fmt.Errorf("%s main %d: %w", dir, i, err)
		}
	}
	for i := 0; i < Channels; i++ {
		if !c.ChannelEnabled(i) {
			continue
		}
		ch := c.Channels[i]
		w.ch[i], err = Tune(ch.NCOHz, fs/uint64(c.Main[ch.Crossbar].Rate))
		if err != nil {
			return w, fmt.Errorf("%s channel %d: %w", dir, i, err)
		}
	}
	return w, nil
}

// Configurator applies datapath configurations to one device
type Configurator struct {
	Dev Device

	applied [2]*Config
}

// New returns a Configurator writing through dev
func New(dev Device) *Configurator {
	return &Configurator{Dev: dev}
}

// ConfigureReceive validates and applies a receive datapath configuration
func (c *Configurator) ConfigureReceive(cfg Config) error {
	return c.configure(Receive, cfg)
}

// ConfigureTransmit validates and applies a transmit datapath configuration
func (c *Configurator) ConfigureTransmit(cfg Config) error {
	return c.configure(Transmit, cfg)
}

// Applied returns the last configuration applied in a direction
func (c *Configurator) Applied(dir Direction) (Config, bool) {
	if dir != Receive && dir != Transmit {
		return Config{}, false
	}
	p := c.applied[dir]
	if p == nil {
		return Config{}, false
	}
	return *p, true
}

func (c *Configurator) configure(dir Direction, cfg Config) error {
	if err := Validate(dir, cfg); err != nil {
		return err
	}
	fs, err := c.Dev.ConverterRate(dir)
	if err != nil {
		return fmt.Errorf("%s converter rate: %w", dir, err)
	}
	w, err := tuneAll(dir, cfg, fs)
	if err != nil {
		return err
	}

	// validation is complete, from here on every step writes hardware
	if cfg.NyquistZone != 0 {
		if err := c.Dev.SetNyquistZone(cfg.NyquistZone); err != nil {
			return fmt.Errorf("nyquist zone: %w", err)
		}
	}
	for i := 0; i < MainPaths; i++ {
		if !cfg.MainEnabled(i) {
			continue
		}
		m := cfg.Main[i]
		bit := util.Bit(uint(i))
		if err := c.Dev.SetMainRate(dir, bit, m.Rate); err != nil {
			return fmt.Errorf("%s main %d rate: %w", dir, i, err)
		}
		if err := c.Dev.SetMainMode(dir, bit, m.ComplexToReal); err != nil {
			return fmt.Errorf("%s main %d mode: %w", dir, i, err)
		}
		if err := c.Dev.SetMainNCO(dir, bit, w.main[i]); err != nil {
			return fmt.Errorf("%s main %d nco: %w", dir, i, err)
		}
	}
	for i := 0; i < Channels; i++ {
		if !cfg.ChannelEnabled(i) {
			continue
		}
		ch := cfg.Channels[i]
		bit := util.Bit(uint(i))
		if err := c.Dev.SetChannelRate(dir, bit, ch.Rate); err != nil {
			return fmt.Errorf("%s channel %d rate: %w", dir, i, err)
		}
		if err := c.Dev.SetChannelMode(dir, bit, ch.ComplexToReal); err != nil {
			return fmt.Errorf("%s channel %d mode: %w", dir, i, err)
		}
		if err := c.Dev.SetChannelGain(dir, bit, ch.Gain); err != nil {
			return fmt.Errorf("%s channel %d gain: %w", dir, i, err)
		}
		if err := c.Dev.SetChannelNCO(dir, bit, w.ch[i]); err != nil {
			return fmt.Errorf("%s channel %d nco: %w", dir, i, err)
		}
	}
	for i := 0; i < MainPaths; i++ {
		if !cfg.MainEnabled(i) {
			continue
		}
		if err := c.Dev.SetCrossbar(dir, i, cfg.CrossbarMask(i)); err != nil {
			return fmt.Errorf("%s crossbar %d: %w", dir, i, err)
		}
	}
	if cfg.FIR != nil {
		if err := c.Dev.SetFIR(*cfg.FIR); err != nil {
			return fmt.Errorf("pfir: %w", err)
		}
	}
	cp := cfg
	c.applied[dir] = &cp
	log.Printf("%s datapath configured: mains %v channels %v at %d Hz",
		dir, util.IntSliceToCSV(util.Indices(cfg.MainEnable)), util.IntSliceToCSV(util.Indices(cfg.ChannelEnable)), fs)
	return nil
}

// SetMainNCO retunes the main datapaths in mask to hz.  The tuning word is
// computed against the converter rate read at call time.
func (c *Configurator) SetMainNCO(dir Direction, mask uint8, hz int64) error {
	fs, err := c.Dev.ConverterRate(dir)
	if err != nil {
		return fmt.Errorf("%s converter rate: %w", dir, err)
	}
	w, err := Tune(hz, fs)
	if err != nil {
		return err
	}
	return c.Dev.SetMainNCO(dir, mask, w)
}

// SetChannelNCO retunes the channels in mask to hz.  All channels in the mask
// must be clocked at the same rate, i.e. routed to mains with the same factor.
func (c *Configurator) SetChannelNCO(dir Direction, mask uint8, hz int64) error {
	cfg, ok := c.Applied(dir)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotConfigured, dir)
	}
	fs, err := c.Dev.ConverterRate(dir)
	if err != nil {
		return fmt.Errorf("%s converter rate: %w", dir, err)
	}
	factor := 0
	for _, ch := range util.Indices(mask) {
		f := cfg.Main[cfg.Channels[ch].Crossbar].Rate
		if f == 0 {
			f = 1
		}
		if factor != 0 && f != factor {
			return fmt.Errorf("%w: channels in mask %08b run at different rates", ErrNCORange, mask)
		}
		factor = f
	}
	if factor == 0 {
		factor = 1
	}
	w, err := Tune(hz, fs/uint64(factor))
	if err != nil {
		return err
	}
	return c.Dev.SetChannelNCO(dir, mask, w)
}

// SetFIR validates then uploads a programmable FIR configuration
func (c *Configurator) SetFIR(f FIRConfig) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return c.Dev.SetFIR(f)
}
