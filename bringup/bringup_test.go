package bringup

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/sim"
	"github.com/nasa-jpl/mxfe/stream"
)

func deps(b *sim.Board) Deps {
	return Deps{Synth: b, Platform: b, Driver: b, Monitor: b, Cores: b, DMAs: b, Timer: b, Counter: b}
}

func options(n int) Options {
	link := jesd.Geometry{F: 4, K: 32, S: 1, N: 16, NP: 16, M: 8, L: 4, Mode: 9, LaneMap: []int{0, 1, 2, 3}}
	rx0 := link
	rx0.ConverterSelect = []int{0, 1, 2, 3, 4, 5, 6, 7}
	o := Options{
		Instances: n, ChipSelectBase: 0, ResetBase: 10, MuxLine: -1,
		Clocks: clock.Plan{DeviceRate: 250e6, Reference: 500e6, RxDeviceRate: 250e6,
			TxDeviceRate: 250e6, RxLaneRate: 10e9, TxLaneRate: 10e9},
		TxLink: link, Rx0Link: rx0,
		ADCRate: 4e9, DACRate: 12e9,
		RxUsed: true, TxUsed: true,
		Layout: stream.Layout{RxCore: 0x84a10000, TxCore: 0x84b10000, RxDMA: 0x9c420000, TxDMA: 0x9c430000},
	}
	o.Rx.MainEnable, o.Rx.ChannelEnable = 0b1111, 0b1111
	o.Tx.MainEnable, o.Tx.ChannelEnable = 0b1111, 0b1111
	for i := 0; i < 4; i++ {
		o.Rx.Main[i] = datapath.Main{Rate: 4, NCOHz: 400e6}
		o.Rx.Channels[i] = datapath.Channel{Rate: 1, Crossbar: i}
		o.Tx.Main[i] = datapath.Main{Rate: 6, NCOHz: 1e9}
		o.Tx.Channels[i] = datapath.Channel{Rate: 1, Gain: 2048, Crossbar: i}
	}
	return o
}

func indexOf(events []string, prefix string) int {
	for i, e := range events {
		if strings.HasPrefix(e, prefix) {
			return i
		}
	}
	return -1
}

func TestRunSingleDevice(t *testing.T) {
	b := sim.NewBoard()
	rep, err := Run(context.Background(), deps(b), options(1))
	require.NoError(t, err)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, mxfe.Counts{RX: 8, TX: 8}, rep.Counts)
	assert.True(t, rep.Rx.Enabled)
	assert.Equal(t, 8, rep.Tx.Channels)
	assert.Len(t, rep.Links, 2)
	assert.Empty(t, rep.Fatal)

	ev := b.Events()
	clk, gpio, core := indexOf(ev, "clock"), indexOf(ev, "gpio 10"), indexOf(ev, "core")
	assert.True(t, clk >= 0 && clk < gpio && gpio < core, "stage order %v", ev)

	d := b.Device(0)
	require.NotNil(t, d)
	assert.Equal(t, 6, d.MainRate[datapath.Transmit][3])
	assert.Equal(t, uint8(0b0100), d.Crossbar[datapath.Receive][2])
}

func TestFailedDeviceReducesCounts(t *testing.T) {
	b := sim.NewBoard()
	b.FailInit[1] = true
	rep, err := Run(context.Background(), deps(b), options(2))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Ready())
	assert.Equal(t, mxfe.Failed, rep.Instances[1].State)
	assert.Equal(t, mxfe.Counts{RX: 8, TX: 8}, rep.Counts)
	assert.Equal(t, 8, rep.Rx.Channels, "streams sized from the reduced count")
	assert.NotEmpty(t, rep.Warnings)
}

func TestClockFailureIsNotFatal(t *testing.T) {
	b := sim.NewBoard()
	b.FailClocks[clock.DeviceClockName(0)] = true
	rep, err := Run(context.Background(), deps(b), options(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"dev_clk0"}, rep.FailedClocks)
	assert.Equal(t, mxfe.Failed, rep.Instances[0].State)
	assert.ErrorIs(t, rep.Instances[0].Err, clock.ErrClockUnavailable)
	assert.Equal(t, mxfe.Ready, rep.Instances[1].State)
}

func TestNoReadyDevicesIsFatal(t *testing.T) {
	b := sim.NewBoard()
	b.FailInit[0] = true
	rep, err := Run(context.Background(), deps(b), options(1))
	assert.ErrorIs(t, err, ErrNoDevices)
	assert.NotEmpty(t, rep.Fatal)
	assert.Nil(t, rep.Rx)
	assert.Equal(t, -1, indexOf(b.Events(), "core"))
}

func TestNoReadyDevicesWithUnusedStreams(t *testing.T) {
	b := sim.NewBoard()
	b.FailInit[0] = true
	o := options(1)
	o.RxUsed, o.TxUsed = false, false
	rep, err := Run(context.Background(), deps(b), o)
	require.NoError(t, err)
	require.NotNil(t, rep.Rx)
	assert.False(t, rep.Rx.Enabled)
	assert.False(t, rep.Tx.Enabled)
}

func TestInvalidDatapathIsFatal(t *testing.T) {
	b := sim.NewBoard()
	o := options(1)
	o.Rx.MainEnable = 0b0111 // channel 3 still routes to main 3
	rep, err := Run(context.Background(), deps(b), o)
	assert.ErrorIs(t, err, datapath.ErrInvalidCrossbar)
	assert.Zero(t, b.Device(0).TotalWrites())
	assert.Nil(t, rep.Rx)
}

func TestStreamFailureIsFatal(t *testing.T) {
	b := sim.NewBoard()
	b.FailCores[stream.TxCore] = true
	_, err := Run(context.Background(), deps(b), options(1))
	assert.ErrorIs(t, err, stream.ErrStreamInit)
}

func TestInvalidTemplateTouchesNothing(t *testing.T) {
	b := sim.NewBoard()
	o := options(1)
	o.TxLink.F = 3
	_, err := Run(context.Background(), deps(b), o)
	assert.ErrorIs(t, err, jesd.ErrInvalidGeometry)
	assert.Empty(t, b.Events())
}

func TestCancelledBeforeStart(t *testing.T) {
	b := sim.NewBoard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, deps(b), options(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.Events())
}

func TestBenchmarkPass(t *testing.T) {
	b := sim.NewBoard()
	o := options(1)
	o.Benchmark = true
	rep, err := Run(context.Background(), deps(b), o)
	require.NoError(t, err)
	// channel 0 is routed to main 0 only, one coarse DUC measurement
	require.Len(t, rep.Samples, 10)
	for _, s := range rep.Samples {
		assert.NoError(t, s.Err, s.Label)
		assert.False(t, s.Degraded, s.Label)
		assert.Equal(t, b.TicksPerRead, s.Ticks, s.Label)
	}
}

func TestBenchmarkWithoutCounterWarns(t *testing.T) {
	b := sim.NewBoard()
	o := options(1)
	o.Benchmark = true
	d := deps(b)
	d.Timer, d.Counter = nil, nil
	rep, err := Run(context.Background(), d, o)
	require.NoError(t, err)
	assert.Empty(t, rep.Samples)
	assert.NotEmpty(t, rep.Warnings)
}

// nilDriver negotiates like the board but hands out no datapath handle
type nilDriver struct{ *sim.Board }

func (n nilDriver) Init(spi mxfe.Transactor, p mxfe.InitParams) (datapath.Device, mxfe.Negotiated, error) {
	_, neg, err := n.Board.Init(spi, p)
	return nil, neg, err
}

func TestReadyInstanceWithoutDatapathIsFatal(t *testing.T) {
	b := sim.NewBoard()
	d := deps(b)
	d.Driver = nilDriver{b}
	o := options(1)
	o.Rx.MainEnable, o.Rx.ChannelEnable = 0, 0
	o.Tx.MainEnable, o.Tx.ChannelEnable = 0, 0
	o.Benchmark = true
	var (
		rep *Report
		err error
	)
	require.NotPanics(t, func() { rep, err = Run(context.Background(), d, o) })
	assert.ErrorIs(t, err, datapath.ErrNotConfigured)
	assert.Empty(t, rep.Samples)
	assert.Nil(t, rep.Rx)
}
