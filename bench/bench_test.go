package bench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
)

// counter is a down counter that loses step ticks on every read
type counter struct {
	value   uint32
	step    uint32
	running bool
	ops     []string
	reads   []uint32 // scripted values, used instead of value when non-empty
}

func (c *counter) Start() error {
	c.ops = append(c.ops, "start")
	c.running = true
	return nil
}

func (c *counter) Stop() error {
	c.ops = append(c.ops, "stop")
	c.running = false
	return nil
}

func (c *counter) SetCounter(v uint32) error {
	c.ops = append(c.ops, "set")
	c.value = v
	return nil
}
func (c *counter) Frequency() (uint32, error) { return 100000000, nil }

func (c *counter) Read32(addr uint64) (uint32, error) {
	c.ops = append(c.ops, "read")
	if len(c.reads) != 0 {
		v := c.reads[0]
		c.reads = c.reads[1:]
		return v, nil
	}
	v := c.value
	if c.running {
		c.value -= c.step
	}
	return v, nil
}

func harness(t *testing.T, c *counter) *Harness {
	h, err := NewHarness(c, c, 0x800c0008)
	require.NoError(t, err)
	return h
}

func TestMeasureResetsCounter(t *testing.T) {
	c := &counter{step: 1234}
	h := harness(t, c)
	s := h.Measure("op", func() error { return nil })
	assert.Equal(t, []string{"stop", "set", "start", "read", "read", "stop"}, c.ops)
	assert.Equal(t, uint32(CounterMax), s.Start)
	assert.Equal(t, uint32(1234), s.Ticks)
	assert.Equal(t, 12340*time.Nanosecond, s.Elapsed)
	assert.False(t, s.Degraded)
	assert.Equal(t, "0.01234 ms", s.Millis())
}

func TestMeasureSaturates(t *testing.T) {
	c := &counter{reads: []uint32{100, 5000}}
	s := harness(t, c).Measure("op", func() error { return nil })
	assert.Zero(t, s.Ticks)
	assert.Zero(t, s.Elapsed)
	assert.True(t, s.Degraded)
	assert.ErrorIs(t, s.Diagnostic, ErrCounterSaturation)
}

func TestMeasureKeepsTimingOnError(t *testing.T) {
	c := &counter{step: 10}
	boom := errors.New("spi nack")
	s := harness(t, c).Measure("op", func() error { return boom })
	assert.ErrorIs(t, s.Err, boom)
	assert.Equal(t, uint32(10), s.Ticks)
	assert.False(t, s.Degraded)
	assert.Contains(t, s.String(), "spi nack")
}

type zeroFreq struct{ counter }

func (zeroFreq) Frequency() (uint32, error) { return 0, nil }

func TestHarnessNeedsFrequency(t *testing.T) {
	z := &zeroFreq{}
	_, err := NewHarness(z, z, 0)
	assert.Error(t, err)
}

// bus records SPI transfers and overwrites the buffer like a real read
type bus struct {
	sent  [][3]byte
	fail  int
	calls int
}

func (b *bus) WriteAndRead(buf []byte) error {
	b.calls++
	if b.calls == b.fail {
		return errors.New("bus busy")
	}
	var c [3]byte
	copy(c[:], buf)
	b.sent = append(b.sent, c)
	for i := range buf {
		buf[i] = 0xff
	}
	return nil
}

func TestApplySendsEveryCommandInOrder(t *testing.T) {
	b := &bus{}
	require.NoError(t, Apply(b, FineDUC))
	require.Len(t, b.sent, FineDUC.Len())
	for i, c := range FineDUC.Commands {
		assert.Equal(t, [3]byte(c), b.sent[i], "command %d", i)
	}
	assert.Equal(t, Command{0x81, 0xff, 0x68}, FineDUC.Commands[0], "table modified by read data")
}

func TestApplyStopsOnError(t *testing.T) {
	b := &bus{fail: 3}
	err := Apply(b, CoarseDDC)
	assert.ErrorContains(t, err, "command 2")
	assert.Len(t, b.sent, 2)
}

func TestCommandDecode(t *testing.T) {
	c := Command{0x8c, 0x0c, 0x05}
	assert.True(t, c.Read())
	assert.Equal(t, uint16(0x0c0c), c.Address())
	assert.False(t, Command{0x0c, 0x0c, 0x05}.Read())
}

func TestSequenceSizes(t *testing.T) {
	assert.Equal(t, 30, CoarseDDC.Len())
	assert.Equal(t, 20, CoarseDUC.Len())
	assert.Equal(t, 24, FineDDC.Len())
	assert.Equal(t, 21, FineDUC.Len())
	assert.Equal(t, 632, PFIRUpdate.Len())
}

// device accepts every datapath write
type device struct{ nco int }

func (d *device) ConverterRate(datapath.Direction) (uint64, error) { return 4000000000, nil }

func (d *device) SetMainNCO(datapath.Direction, uint8, datapath.NCOWord) error {
	d.nco++
	return nil
}

func (d *device) SetMainRate(datapath.Direction, uint8, int) error                { return nil }
func (d *device) SetMainMode(datapath.Direction, uint8, bool) error               { return nil }
func (d *device) SetChannelMode(datapath.Direction, uint8, bool) error            { return nil }
func (d *device) SetNyquistZone(int) error                                        { return nil }
func (d *device) SetChannelRate(datapath.Direction, uint8, int) error             { return nil }
func (d *device) SetChannelGain(datapath.Direction, uint8, uint16) error          { return nil }
func (d *device) SetChannelNCO(datapath.Direction, uint8, datapath.NCOWord) error { return nil }
func (d *device) SetCrossbar(datapath.Direction, int, uint8) error                { return nil }
func (d *device) SetFIR(datapath.FIRConfig) error                                 { return nil }

func TestPassRun(t *testing.T) {
	dev := &device{}
	dp := datapath.New(dev)
	rx := datapath.Config{MainEnable: 1, ChannelEnable: 1}
	rx.Main[0].Rate, rx.Channels[0].Rate = 4, 1
	require.NoError(t, dp.ConfigureReceive(rx))
	tx := datapath.Config{MainEnable: 0b11, ChannelEnable: 0b11}
	tx.Main[0].Rate, tx.Main[1].Rate = 6, 6
	tx.Channels[0] = datapath.Channel{Rate: 1, Gain: 2048, Crossbar: 1}
	tx.Channels[1] = datapath.Channel{Rate: 1, Gain: 2048, Crossbar: 0}
	require.NoError(t, dp.ConfigureTransmit(tx))
	dev.nco = 0

	rx0, err := jesd.Build(jesd.Rx, jesd.Geometry{F: 2, K: 32, S: 1, N: 16, NP: 16, M: 4, L: 4, ConverterSelect: []int{2, 3, 0, 1}})
	require.NoError(t, err)

	c := &counter{step: 7}
	p := &Pass{Harness: harness(t, c), Datapath: dp, SPI: &bus{}, Rx0: rx0}
	samples := p.Run()
	// one coarse DUC call: only main 1 carries channel 0
	require.Len(t, samples, 10)
	assert.Equal(t, 2, dev.nco)
	for _, s := range samples {
		assert.NoError(t, s.Err, s.Label)
		assert.Equal(t, uint32(7), s.Ticks, s.Label)
	}
	assert.Equal(t, API, samples[0].Kind)
	assert.Equal(t, Raw, samples[1].Kind)
	assert.Equal(t, PFIRUpdate.Name, samples[9].Label)
}

func TestDefaultFIRSelectsBothPairsAllPages(t *testing.T) {
	f := DefaultFIR()
	assert.Equal(t, uint8(0x3), f.Pairs)
	assert.Equal(t, uint8(0xF), f.Pages)
	require.NoError(t, f.Validate())
}
