package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/config"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/sim"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}
	d := config.Default()
	if c.Instances != d.Instances || c.Clocks != d.Clocks || c.Streams.Layout != d.Streams.Layout {
		t.Errorf("defaults not loaded: %+v", c)
	}
	if diff := cmp.Diff(d.Links.Rx0.ConverterSelect, c.Links.Rx0.ConverterSelect); diff != "" {
		t.Errorf("converter selection (-want +got):\n%s", diff)
	}
	if c.Datapath.Tx.Channels[3].Gain != 2048 || c.Datapath.Rx.Main[2].Rate != 4 {
		t.Errorf("datapath defaults lost: %+v", c.Datapath)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mxfe.yml")
	doc := []byte("instances: 2\ntransport:\n  kind: tcp\n  addr: 192.168.1.40:5000\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Instances != 2 || c.Transport.Kind != "tcp" || c.Transport.Addr != "192.168.1.40:5000" {
		t.Errorf("overrides not applied: %+v %+v", c.Instances, c.Transport)
	}
	if c.Transport.Baud != 115200 || c.Converters.DAC != 12000000000 {
		t.Error("untouched keys lost their defaults")
	}
}

func TestWriteThenLoad(t *testing.T) {
	c := config.Default()
	c.Instances = 4
	c.Bench.Enable = true
	var buf bytes.Buffer
	if err := config.Write(&buf, c); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "mxfe.yml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Instances != 4 || !got.Bench.Enable {
		t.Errorf("written config not read back: %d %v", got.Instances, got.Bench.Enable)
	}
}

func TestDefaultsBringUpOnSimulatedBoard(t *testing.T) {
	b := sim.NewBoard()
	deps := bringup.Deps{Synth: b, Platform: b, Driver: b, Monitor: b, Cores: b, DMAs: b, Timer: b, Counter: b}
	opts := config.Default().Options()
	opts.ResetPulse = 0
	rep, err := bringup.Run(context.Background(), deps, opts)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Counts != (mxfe.Counts{RX: 8, TX: 8}) {
		t.Errorf("unexpected counts %+v", rep.Counts)
	}
}
