// Package config holds the YAML configuration of a bring-up run.
//
// Defaults are loaded from Default() through the koanf structs provider and
// overlaid by the file, so a file only needs the keys it changes.  A missing
// file is not an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	yml "gopkg.in/yaml.v2"

	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/stream"
)

// FileName is the default configuration file
var FileName = "mxfe.yml"

// Clocks are the clock tree targets in Hz, lane rates in bits/s
type Clocks struct {
	Reference  uint64 `koanf:"reference" yaml:"reference"`
	Device     uint64 `koanf:"device" yaml:"device"`
	RxLink     uint64 `koanf:"rxlink" yaml:"rxlink"`
	TxLink     uint64 `koanf:"txlink" yaml:"txlink"`
	RxLaneRate uint64 `koanf:"rxlanerate" yaml:"rxlanerate"`
	TxLaneRate uint64 `koanf:"txlanerate" yaml:"txlanerate"`
}

// Links are the link templates shared by every instance
type Links struct {
	Tx  jesd.Geometry `koanf:"tx" yaml:"tx"`
	Rx0 jesd.Geometry `koanf:"rx0" yaml:"rx0"`
	Rx1 jesd.Geometry `koanf:"rx1" yaml:"rx1"`
}

// Converters are the converter sample rates in Hz
type Converters struct {
	ADC uint64 `koanf:"adc" yaml:"adc"`
	DAC uint64 `koanf:"dac" yaml:"dac"`
}

// Datapath is the datapath configuration applied to every READY instance
type Datapath struct {
	Rx datapath.Config `koanf:"rx" yaml:"rx"`
	Tx datapath.Config `koanf:"tx" yaml:"tx"`
}

// Streams is the streaming fabric
type Streams struct {
	Layout stream.Layout `koanf:"layout" yaml:"layout"`

	// Rx and Tx mark directions that must carry samples
	Rx bool `koanf:"rx" yaml:"rx"`
	Tx bool `koanf:"tx" yaml:"tx"`
}

// Bench configures the benchmark pass
type Bench struct {
	Enable bool `koanf:"enable" yaml:"enable"`

	// Counter is the address of the counter value register
	Counter uint64 `koanf:"counter" yaml:"counter"`

	// Shift is the NCO shift used for every retune, Hz
	Shift int64 `koanf:"shift" yaml:"shift"`
}

// Transport selects how the board is reached
type Transport struct {
	// Kind is mock, tcp or serial
	Kind string `koanf:"kind" yaml:"kind"`

	// Addr is host:port for tcp or a device path for serial
	Addr string `koanf:"addr" yaml:"addr"`

	Baud int `koanf:"baud" yaml:"baud"`

	// Rate limits telegrams per second, 0 for unlimited
	Rate  float64 `koanf:"rate" yaml:"rate"`
	Burst int     `koanf:"burst" yaml:"burst"`

	// TimeoutMs bounds a single transaction
	TimeoutMs int `koanf:"timeoutms" yaml:"timeoutms"`

	// ConnectMs bounds the connect backoff
	ConnectMs int `koanf:"connectms" yaml:"connectms"`
}

// Timeout returns the transaction timeout
func (t Transport) Timeout() time.Duration {
	return time.Duration(t.TimeoutMs) * time.Millisecond
}

// ConnectTimeout returns the connect budget
func (t Transport) ConnectTimeout() time.Duration {
	return time.Duration(t.ConnectMs) * time.Millisecond
}

// Server is the status server
type Server struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// Log configures the rotating log file; an empty File logs to stdout only
type Log struct {
	File       string `koanf:"file" yaml:"file"`
	MaxSizeMB  int    `koanf:"maxsizemb" yaml:"maxsizemb"`
	MaxBackups int    `koanf:"maxbackups" yaml:"maxbackups"`
	MaxAgeDays int    `koanf:"maxagedays" yaml:"maxagedays"`
	Compress   bool   `koanf:"compress" yaml:"compress"`
}

// Config is the complete configuration
type Config struct {
	Instances      int  `koanf:"instances" yaml:"instances"`
	ChipSelectBase int  `koanf:"csbase" yaml:"csbase"`
	ResetBase      int  `koanf:"resetbase" yaml:"resetbase"`
	MuxLine        int  `koanf:"muxline" yaml:"muxline"`
	SyncPinSwap    bool `koanf:"syncpinswap" yaml:"syncpinswap"`
	ResetPulseMs   int  `koanf:"resetpulsems" yaml:"resetpulsems"`

	Clocks     Clocks     `koanf:"clocks" yaml:"clocks"`
	Links      Links      `koanf:"links" yaml:"links"`
	Converters Converters `koanf:"converters" yaml:"converters"`
	Datapath   Datapath   `koanf:"datapath" yaml:"datapath"`
	Streams    Streams    `koanf:"streams" yaml:"streams"`
	Bench      Bench      `koanf:"bench" yaml:"bench"`
	Transport  Transport  `koanf:"transport" yaml:"transport"`
	Server     Server     `koanf:"server" yaml:"server"`
	Log        Log        `koanf:"log" yaml:"log"`
}

// Default is a single MxFE evaluation board: 8 converters per link on 4
// lanes at 10 Gbps, 4 GSPS ADCs decimating by 16 and 12 GSPS DACs
// interpolating by 48 to 250 MSPS on the links.
func Default() Config {
	link := jesd.Geometry{
		F: 4, K: 32, S: 1, N: 16, NP: 16, M: 8, L: 4,
		Subclass: 1, Mode: 9, Version: jesd.JESD204B,
		LaneMap:        []int{0, 1, 2, 3, 4, 5, 6, 7},
		TPLPhaseAdjust: 12,
	}
	rx0 := link
	rx0.Mode = 10
	rx0.TPLPhaseAdjust = 0
	rx0.LaneMap = []int{0, 1, 2, 3, 4, 5, 6, 7}
	rx0.ConverterSelect = []int{0, 1, 2, 3, 4, 5, 6, 7}

	c := Config{
		Instances:    1,
		MuxLine:      -1,
		ResetPulseMs: 1,
		Clocks: Clocks{
			Reference: 500000000, Device: 250000000,
			RxLink: 250000000, TxLink: 250000000,
			RxLaneRate: 10000000000, TxLaneRate: 10000000000,
		},
		Links:      Links{Tx: link, Rx0: rx0},
		Converters: Converters{ADC: 4000000000, DAC: 12000000000},
		Streams: Streams{
			Layout: stream.Layout{RxCore: 0x84a10000, TxCore: 0x84b10000, RxDMA: 0x9c420000, TxDMA: 0x9c430000},
			Rx:     true,
			Tx:     true,
		},
		Bench:     Bench{Shift: 100000000},
		Transport: Transport{Kind: "mock", Baud: 115200, TimeoutMs: 1000, ConnectMs: 10000, Burst: 1},
		Server:    Server{Addr: ":8000"},
		Log:       Log{MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 28},
	}
	c.Datapath.Rx.MainEnable, c.Datapath.Rx.ChannelEnable = 0x0f, 0x0f
	c.Datapath.Tx.MainEnable, c.Datapath.Tx.ChannelEnable = 0x0f, 0x0f
	for i := 0; i < datapath.MainPaths; i++ {
		c.Datapath.Rx.Main[i] = datapath.Main{NCOHz: 400000000, Rate: 4}
		c.Datapath.Rx.Channels[i] = datapath.Channel{Rate: 4, Crossbar: i}
		c.Datapath.Tx.Main[i] = datapath.Main{NCOHz: 1000000000, Rate: 6}
		c.Datapath.Tx.Channels[i] = datapath.Channel{Rate: 8, Gain: 2048, Crossbar: i}
	}
	return c
}

// Load reads the configuration at path over the defaults
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading config: %w", err)
	}
	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Write encodes the configuration as YAML
func Write(w io.Writer, c Config) error {
	return yml.NewEncoder(w).Encode(c)
}

// Options converts the configuration into bring-up options
func (c Config) Options() bringup.Options {
	return bringup.Options{
		Instances:      c.Instances,
		ChipSelectBase: c.ChipSelectBase,
		ResetBase:      c.ResetBase,
		MuxLine:        c.MuxLine,
		SyncPinSwap:    c.SyncPinSwap,
		ResetPulse:     time.Duration(c.ResetPulseMs) * time.Millisecond,
		Clocks: clock.Plan{
			DeviceRate:   c.Clocks.Device,
			Reference:    c.Clocks.Reference,
			RxDeviceRate: c.Clocks.RxLink,
			TxDeviceRate: c.Clocks.TxLink,
			RxLaneRate:   c.Clocks.RxLaneRate,
			TxLaneRate:   c.Clocks.TxLaneRate,
		},
		TxLink:      c.Links.Tx,
		Rx0Link:     c.Links.Rx0,
		Rx1Link:     c.Links.Rx1,
		ADCRate:     c.Converters.ADC,
		DACRate:     c.Converters.DAC,
		Rx:          c.Datapath.Rx,
		Tx:          c.Datapath.Tx,
		Layout:      c.Streams.Layout,
		RxUsed:      c.Streams.Rx,
		TxUsed:      c.Streams.Tx,
		Benchmark:   c.Bench.Enable,
		CounterAddr: c.Bench.Counter,
		Shift:       c.Bench.Shift,
	}
}
