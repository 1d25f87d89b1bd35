package jesd_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nasa-jpl/mxfe/jesd"
)

func txGeometry() jesd.Geometry {
	return jesd.Geometry{
		F: 2, K: 32, S: 1, N: 16, NP: 16, M: 4, L: 4, Subclass: 1, Mode: 9,
		LaneMap:        []int{0, 2, 7, 6, 1, 5, 4, 3},
		TPLPhaseAdjust: 12,
	}
}

func rxGeometry() jesd.Geometry {
	g := txGeometry()
	g.Mode = 10
	g.TPLPhaseAdjust = 0
	g.LaneMap = []int{2, 0, 7, 6, 5, 4, 3, 1}
	g.ConverterSelect = []int{0, 1, 2, 3}
	return g
}

func ExampleBuild() {
	lp, err := jesd.Build(jesd.Tx, txGeometry())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(lp)
	// Output: tx link dev 0 mode 9 204B L=4 M=4 F=2 S=1 K=32 N=16 NP=16
}

func TestBuildValid(t *testing.T) {
	if _, err := jesd.Build(jesd.Tx, txGeometry()); err != nil {
		t.Errorf("tx: %v", err)
	}
	if _, err := jesd.Build(jesd.Rx, rxGeometry()); err != nil {
		t.Errorf("rx: %v", err)
	}
}

func TestAbsentReceiveLinkIsValid(t *testing.T) {
	lp, err := jesd.Build(jesd.Rx, jesd.Geometry{})
	if err != nil {
		t.Fatalf("absent link rejected: %v", err)
	}
	if !lp.Absent() {
		t.Error("expected link to report absent")
	}
}

func TestAbsentTransmitLinkIsInvalid(t *testing.T) {
	_, err := jesd.Build(jesd.Tx, jesd.Geometry{})
	if !errors.Is(err, jesd.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestBuildRejects(t *testing.T) {
	cases := map[string]func(g *jesd.Geometry){
		"frame does not close": func(g *jesd.Geometry) { g.F = 3 },
		"subclass 2":           func(g *jesd.Geometry) { g.Subclass = 2 },
		"NP 10":                func(g *jesd.Geometry) { g.NP = 10 },
		"N above NP":           func(g *jesd.Geometry) { g.N = 17 },
		"too many lanes":       func(g *jesd.Geometry) { g.L = 9 },
		"duplicate lane":       func(g *jesd.Geometry) { g.LaneMap = []int{0, 0, 1, 2} },
		"short lane map":       func(g *jesd.Geometry) { g.LaneMap = []int{0, 1} },
		"multiframe too short": func(g *jesd.Geometry) { g.K = 4 },
		"selection on tx":      func(g *jesd.Geometry) { g.ConverterSelect = []int{0} },
	}
	for name, mutate := range cases {
		g := txGeometry()
		mutate(&g)
		if _, err := jesd.Build(jesd.Tx, g); !errors.Is(err, jesd.ErrInvalidGeometry) {
			t.Errorf("%s: expected ErrInvalidGeometry, got %v", name, err)
		}
	}
}

func TestReceiveSelectionMustCoverConverters(t *testing.T) {
	g := rxGeometry()
	g.ConverterSelect = []int{0, 1}
	if _, err := jesd.Build(jesd.Rx, g); !errors.Is(err, jesd.ErrInvalidGeometry) {
		t.Errorf("expected short selection table to be rejected, got %v", err)
	}
}

func TestBandwidthBudget(t *testing.T) {
	g := txGeometry()
	// 4 converters * 16 bits * 500 MSPS * 10/8 / 4 lanes = 10 Gbps
	g.SampleRate = 500000000
	g.LaneRate = 10000000000
	lp, err := jesd.Build(jesd.Tx, g)
	if err != nil {
		t.Fatalf("exact budget rejected: %v", err)
	}
	if r := lp.RequiredLaneRate(g.SampleRate); r != 10000000000 {
		t.Errorf("expected 10 Gbps required, got %d", r)
	}
	g.SampleRate = 600000000
	if _, err := jesd.Build(jesd.Tx, g); !errors.Is(err, jesd.ErrBandwidth) {
		t.Errorf("expected ErrBandwidth, got %v", err)
	}
}

func TestWithDeviceIDCopies(t *testing.T) {
	lp, err := jesd.Build(jesd.Rx, rxGeometry())
	if err != nil {
		t.Fatal(err)
	}
	cp := lp.WithDeviceID(3)
	cp.ConverterSelect[0] = 9
	if lp.DeviceID != 0 || cp.DeviceID != 3 {
		t.Errorf("device ids: original %d copy %d", lp.DeviceID, cp.DeviceID)
	}
	if lp.ConverterSelect[0] != 0 {
		t.Error("modifying the copy changed the template")
	}
}

func TestRequiredLaneRateRoundsUp(t *testing.T) {
	// 4 * 16 bits * 10/8 over 3 lanes is 26.67 bits per sample
	lp := jesd.LinkParameters{Role: jesd.Tx, Geometry: jesd.Geometry{M: 4, NP: 16, L: 3}}
	if r := lp.RequiredLaneRate(1); r != 27 {
		t.Errorf("expected 27, got %d", r)
	}
}
