// Package stream brings up the FPGA sample streaming fabric: the ADC and DAC
// transport cores and the DMA engines that move their samples to and from
// memory.
package stream

import (
	"errors"
	"fmt"
	"log"
)

// names of the cores and DMA engines as known to the board
const (
	RxCore = "rx_adc"
	TxCore = "tx_dac"
	RxDMA  = "rx_dmac"
	TxDMA  = "tx_dmac"
)

// ErrStreamInit is generated when an endpoint cannot be brought up
var ErrStreamInit = errors.New("stream init failed")

// Transfer is the direction of a DMA transfer
type Transfer int

const (
	// DevToMem moves samples from a core to memory
	DevToMem Transfer = iota
	// MemToDev moves samples from memory to a core
	MemToDev
)

func (t Transfer) String() string {
	if t == MemToDev {
		return "mem->dev"
	}
	return "dev->mem"
}

// Mode is the DMA transfer mode
type Mode int

const (
	// Single transfers a buffer once
	Single Mode = iota
	// Cyclic repeats a buffer until stopped
	Cyclic
)

func (m Mode) String() string {
	if m == Cyclic {
		return "cyclic"
	}
	return "single"
}

// Handle is the board side identifier of an initialized core or DMA engine
type Handle uint32

// Cores initializes ADC and DAC transport cores
type Cores interface {
	InitCore(name string, base uint64, channels int) (Handle, error)
}

// DMAs initializes DMA engines
type DMAs interface {
	InitDMA(name string, base uint64, dir Transfer, mode Mode) (Handle, error)
}

// Layout holds the bus addresses of the streaming fabric
type Layout struct {
	RxCore uint64 `koanf:"rxcore" yaml:"rxcore"`
	TxCore uint64 `koanf:"txcore" yaml:"txcore"`
	RxDMA  uint64 `koanf:"rxdma" yaml:"rxdma"`
	TxDMA  uint64 `koanf:"txdma" yaml:"txdma"`
}

// Endpoint is a streaming endpoint handed to the consumer of the samples.
// A disabled endpoint is a stable placeholder for a direction that is not
// used; none of its handles are valid.
type Endpoint struct {
	Name     string   `json:"name"`
	Enabled  bool     `json:"enabled"`
	Channels int      `json:"channels"`
	Core     Handle   `json:"core"`
	CoreName string   `json:"coreName"`
	CoreBase uint64   `json:"coreBase"`
	DMA      Handle   `json:"dma"`
	DMAName  string   `json:"dmaName"`
	DMABase  uint64   `json:"dmaBase"`
	Transfer Transfer `json:"-"`
	Mode     Mode     `json:"-"`
}

func (e *Endpoint) String() string {
	if !e.Enabled {
		return fmt.Sprintf("%s disabled", e.Name)
	}
	return fmt.Sprintf("%s %d channels, %s@%#x %s@%#x %s %s",
		e.Name, e.Channels, e.CoreName, e.CoreBase, e.DMAName, e.DMABase, e.Transfer, e.Mode)
}

// Bringup initializes the receive and transmit endpoints
type Bringup struct {
	Cores Cores
	DMAs  DMAs
	Layout

	// RxUsed and TxUsed mark the directions that must carry samples.
	// An unused direction with no channels yields a disabled endpoint.
	RxUsed bool
	TxUsed bool
}

func (b *Bringup) endpoint(used bool, channels int, name string) (*Endpoint, error) {
	if channels < 0 {
		return nil, fmt.Errorf("%w: %s: %d channels", ErrStreamInit, name, channels)
	}
	if channels == 0 {
		if used {
			return nil, fmt.Errorf("%w: %s is in use but no channels are ready", ErrStreamInit, name)
		}
		return &Endpoint{Name: name}, nil
	}
	return &Endpoint{Name: name, Enabled: true, Channels: channels}, nil
}

// InitStreams sizes and initializes both endpoints.  Channel counts are
// checked before any core is touched.  The DAC side is initialized before
// the ADC side and cores before DMA engines.
func (b *Bringup) InitStreams(rxChannels, txChannels int) (*Endpoint, *Endpoint, error) {
	rx, err := b.endpoint(b.RxUsed, rxChannels, "rx")
	if err != nil {
		return nil, nil, err
	}
	tx, err := b.endpoint(b.TxUsed, txChannels, "tx")
	if err != nil {
		return nil, nil, err
	}
	if tx.Enabled {
		tx.CoreName, tx.CoreBase = TxCore, b.Layout.TxCore
		tx.DMAName, tx.DMABase = TxDMA, b.Layout.TxDMA
		tx.Transfer, tx.Mode = MemToDev, Cyclic
	}
	if rx.Enabled {
		rx.CoreName, rx.CoreBase = RxCore, b.Layout.RxCore
		rx.DMAName, rx.DMABase = RxDMA, b.Layout.RxDMA
		rx.Transfer, rx.Mode = DevToMem, Single
	}

	for _, e := range []*Endpoint{tx, rx} {
		if !e.Enabled {
			continue
		}
		if e.Core, err = b.Cores.InitCore(e.CoreName, e.CoreBase, e.Channels); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrStreamInit, e.CoreName, err)
		}
	}
	for _, e := range []*Endpoint{tx, rx} {
		if !e.Enabled {
			continue
		}
		if e.DMA, err = b.DMAs.InitDMA(e.DMAName, e.DMABase, e.Transfer, e.Mode); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrStreamInit, e.DMAName, err)
		}
	}
	log.Println(rx)
	log.Println(tx)
	return rx, tx, nil
}
