package bridge_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasa-jpl/mxfe/bench"
	"github.com/nasa-jpl/mxfe/bridge"
	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/comm"
	"github.com/nasa-jpl/mxfe/config"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/sim"
)

func simDeps(b *sim.Board) bringup.Deps {
	return bringup.Deps{Synth: b, Platform: b, Driver: b, Monitor: b, Cores: b, DMAs: b, Timer: b, Counter: b}
}

// connect serves an agent for b on a loopback port and returns a client
func connect(t *testing.T, b *sim.Board) *bridge.Client {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	agent := bridge.NewAgent(simDeps(b))
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		agent.Serve(conn)
	}()
	rd := comm.NewRemoteDevice(ln.Addr().String(), false, comm.Options{Timeout: 2 * time.Second})
	require.NoError(t, rd.Open())
	t.Cleanup(func() { rd.Close() })
	return bridge.NewClient(rd)
}

func TestClockAndGPIO(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	spec := clock.RateSpec{Name: "jesd_rx", Rate: 250e6, Reference: 500e6, LaneRate: 10e9}
	require.NoError(t, c.Configure([]clock.RateSpec{spec}))
	got, ok := b.Clock("jesd_rx")
	require.True(t, ok)
	assert.Equal(t, spec, got)

	out, err := c.Output(3)
	require.NoError(t, err)
	require.NoError(t, out.Set(true))
	assert.True(t, b.GPIO(3))
}

func TestNackCarriesAgentError(t *testing.T) {
	b := sim.NewBoard()
	b.FailClocks["dev_clk0"] = true
	c := connect(t, b)
	err := c.Configure([]clock.RateSpec{{Name: "dev_clk0", Rate: 250e6}})
	assert.ErrorIs(t, err, bridge.ErrNack)
	assert.Contains(t, err.Error(), "injected failure")
}

func TestSPITransferReadsBack(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	bus, err := c.SPI(2)
	require.NoError(t, err)
	require.NoError(t, bus.WriteAndRead([]byte{0x01, 0xA1, 0x5A}))
	buf := []byte{0x81, 0xA1, 0x00}
	require.NoError(t, bus.WriteAndRead(buf))
	assert.Equal(t, byte(0x5A), buf[2])
	assert.Equal(t, byte(0x5A), b.Device(2).Register(0x1a1))
}

func TestInitRejectsForeignBus(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	spi, err := b.SPI(0)
	require.NoError(t, err)
	_, _, err = c.Init(spi, mxfe.InitParams{})
	assert.ErrorIs(t, err, bridge.ErrForeignBus)
}

func TestFIRUploadIsChunked(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	bus, err := c.SPI(0)
	require.NoError(t, err)
	tx := jesd.LinkParameters{Role: jesd.Tx, Geometry: jesd.Geometry{M: 8, LaneMap: []int{0, 1, 2, 3}}}
	dev, n, err := c.Init(bus, mxfe.InitParams{Tx: tx, ADCRate: 4e9})
	require.NoError(t, err)
	assert.Equal(t, 8, n.Tx.Converters)

	rate, err := dev.ConverterRate(datapath.Receive)
	require.NoError(t, err)
	assert.Equal(t, uint64(4e9), rate)

	f := bench.DefaultFIR()
	for i := range f.Coefficients {
		f.Coefficients[i] = uint16(i)
	}
	require.NoError(t, dev.SetFIR(f))
	got := b.Device(0).FIR
	require.NotNil(t, got)
	assert.Equal(t, f, *got)
	assert.Equal(t, tx.Geometry.LaneMap, b.Device(0).Params().Tx.LaneMap)
}

func TestInitCarriesGeometryAtWireLimits(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	bus, err := c.SPI(1)
	require.NoError(t, err)
	tx := jesd.LinkParameters{Role: jesd.Tx, DeviceID: 300, Geometry: jesd.Geometry{
		F: 256, K: 256, S: 1, N: 16, NP: 16, M: 300, L: 8, Subclass: 1, Mode: 300,
		Version: jesd.Version(1), DualLink: true, LaneMap: []int{7, 6, 5, 4, 3, 2, 1, 0},
		TPLPhaseAdjust: -12, SampleRate: 12000000000, LaneRate: 24750000000,
	}}
	rx := jesd.LinkParameters{Role: jesd.Rx, DeviceID: 1, Geometry: jesd.Geometry{
		F: 4, K: 256, M: 8, L: 4, ConverterSelect: []int{0, 1, 2, 3, 4, 5, 6, 7},
		SampleRate: 250000000, LaneRate: 10000000000,
	}}
	p := mxfe.InitParams{
		Identity:    mxfe.Identity{ChipSelect: 1, ResetLine: 1000, LinkDeviceID: 1},
		Clock:       clock.Handle{Name: "dev_clk1", Rate: 12000000000},
		RxLinkClock: clock.Handle{Name: "jesd_rx", Rate: 250000000, LaneRate: 10000000000, Reference: 500000000},
		TxLinkClock: clock.Handle{Name: "jesd_tx", Rate: 375000000, LaneRate: 24750000000, Reference: 500000000},
		Tx:          tx,
		Rx:          [2]jesd.LinkParameters{rx, {Role: jesd.Rx}},
		ADCRate:     4000000000,
		DACRate:     12000000000,
		SyncPinSwap: true,
	}
	_, n, err := c.Init(bus, p)
	require.NoError(t, err)
	assert.Equal(t, 300, n.Tx.Converters)
	assert.Equal(t, p, b.Device(1).Params())

	_, err = c.InitCore("rx_adc", 0x84a10000, 384)
	require.NoError(t, err)
	assert.Contains(t, b.Events(), "core rx_adc 0x84a10000 384")
	_, err = c.InitCore("rx_adc", 0x84a10000, 0x10000)
	assert.ErrorIs(t, err, bridge.ErrPayload)
}

func TestDatapathModesOverBridge(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	bus, err := c.SPI(0)
	require.NoError(t, err)
	dev, _, err := c.Init(bus, mxfe.InitParams{ADCRate: 4e9})
	require.NoError(t, err)
	cfg := datapath.Config{MainEnable: 1, ChannelEnable: 0b11, NyquistZone: 2}
	cfg.Main[0] = datapath.Main{Rate: 4, ComplexToReal: true}
	cfg.Channels[0] = datapath.Channel{Rate: 2}
	cfg.Channels[1] = datapath.Channel{Rate: 2, ComplexToReal: true}
	require.NoError(t, datapath.New(dev).ConfigureReceive(cfg))
	d := b.Device(0)
	assert.Equal(t, 2, d.NyquistZone)
	assert.True(t, d.MainMode[datapath.Receive][0])
	assert.Equal(t, [datapath.Channels]bool{false, true}, d.ChanMode[datapath.Receive])
}

func TestBringUpOverBridge(t *testing.T) {
	b := sim.NewBoard()
	c := connect(t, b)
	opts := config.Default().Options()
	opts.ResetPulse = 0
	opts.Benchmark = true
	rep, err := bringup.Run(context.Background(), c.Deps(), opts)
	require.NoError(t, err)
	assert.Equal(t, mxfe.Counts{RX: 8, TX: 8}, rep.Counts)
	require.Len(t, rep.Samples, 10)
	for _, s := range rep.Samples {
		assert.NoError(t, s.Err, s.Label)
		assert.Equal(t, b.TicksPerRead, s.Ticks, s.Label)
	}
}
