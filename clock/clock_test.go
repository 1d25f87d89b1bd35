package clock

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeSynth struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeSynth) Configure(specs []RateSpec) error {
	for _, s := range specs {
		f.calls = append(f.calls, s.Name)
		if f.fail[s.Name] {
			return errors.New("pll did not lock")
		}
	}
	return nil
}

func testPlan(s Synthesizer) Plan {
	return Plan{
		Synth:        s,
		DeviceRate:   100000000,
		Reference:    500000000,
		RxDeviceRate: 250000000,
		TxDeviceRate: 250000000,
		RxLaneRate:   10000000000,
		TxLaneRate:   10000000000,
	}
}

func TestRequestsOrderAndNames(t *testing.T) {
	reqs := testPlan(nil).Requests(2)
	names := []string{}
	for _, r := range reqs {
		names = append(names, r.Name)
	}
	want := []string{"dev_clk0", "dev_clk1", JESDRx, JESDTx}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("request names mismatch (-want +got):\n%s", diff)
	}
	if reqs[2].LaneRate != 10000000000 || reqs[2].Reference != 500000000 {
		t.Errorf("link clock request lost lane rate or reference: %+v", reqs[2])
	}
}

func TestRequestClocksContinuesAfterFailure(t *testing.T) {
	s := &fakeSynth{fail: map[string]bool{"dev_clk0": true}}
	h, err := testPlan(s).RequestClocks(2)
	if !errors.Is(err, ErrClockUnavailable) {
		t.Fatalf("expected ErrClockUnavailable, got %v", err)
	}
	if len(s.calls) != 4 {
		t.Fatalf("expected all 4 requests to be issued, got %v", s.calls)
	}
	if _, err := h.Device(0); !errors.Is(err, ErrClockUnavailable) {
		t.Errorf("failed clock resolved: %v", err)
	}
	hdl, err := h.Device(1)
	if err != nil {
		t.Fatalf("dev_clk1 should resolve: %v", err)
	}
	if hdl.Rate != 100000000 {
		t.Errorf("expected 100 MHz, got %d", hdl.Rate)
	}
	if diff := cmp.Diff([]string{"dev_clk0"}, h.Failed()); diff != "" {
		t.Errorf("failed list mismatch:\n%s", diff)
	}
}

func TestResolveUnrequested(t *testing.T) {
	h, err := testPlan(&fakeSynth{}).RequestClocks(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.Device(3); !errors.Is(err, ErrClockUnavailable) {
		t.Errorf("expected unrequested clock to be unavailable, got %v", err)
	}
	if len(h.Configured()) != 3 {
		t.Errorf("expected 3 configured clocks, got %d", len(h.Configured()))
	}
}

func TestRequestClocksBounds(t *testing.T) {
	_, err := testPlan(&fakeSynth{}).RequestClocks(MaxInstances + 1)
	if !errors.Is(err, ErrTooManyInstances) {
		t.Errorf("expected ErrTooManyInstances, got %v", err)
	}
}

func TestZeroRateIsFailure(t *testing.T) {
	p := testPlan(&fakeSynth{})
	p.TxDeviceRate = 0
	h, err := p.RequestClocks(1)
	if !errors.Is(err, ErrClockUnavailable) {
		t.Fatalf("expected error for zero rate, got %v", err)
	}
	if _, err := h.Resolve(JESDTx); err == nil {
		t.Error("zero-rate clock should not resolve")
	}
}
