package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/config"
	"github.com/nasa-jpl/mxfe/sim"
)

func report(t *testing.T) *bringup.Report {
	t.Helper()
	b := sim.NewBoard()
	b.FailInit[1] = true
	deps := bringup.Deps{Synth: b, Platform: b, Driver: b, Monitor: b, Cores: b, DMAs: b, Timer: b, Counter: b}
	c := config.Default()
	c.Instances = 2
	opts := c.Options()
	opts.ResetPulse = 0
	opts.Benchmark = true
	rep, err := bringup.Run(context.Background(), deps, opts)
	require.NoError(t, err)
	return rep
}

func get(t *testing.T, h http.Handler, path string, v interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, path)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestStatus(t *testing.T) {
	rep := report(t)
	h := New(rep).Handler()
	var st struct {
		RunID     string `json:"runID"`
		Ready     int    `json:"ready"`
		Counts    struct{ RX, TX int }
		Instances []struct {
			State string `json:"state"`
		} `json:"instances"`
	}
	get(t, h, "/status", &st)
	assert.Equal(t, rep.RunID, st.RunID)
	assert.Equal(t, 1, st.Ready)
	assert.Equal(t, 8, st.Counts.RX)
	assert.Equal(t, 8, st.Counts.TX)
	require.Len(t, st.Instances, 2)
	assert.Equal(t, "READY", st.Instances[0].State)
	assert.Equal(t, "FAILED", st.Instances[1].State)
}

func TestStreams(t *testing.T) {
	h := New(report(t)).Handler()
	var s struct {
		Rx struct {
			Name     string `json:"name"`
			Channels int    `json:"channels"`
			DMAName  string `json:"dmaName"`
		} `json:"rx"`
	}
	get(t, h, "/streams", &s)
	assert.Equal(t, "rx", s.Rx.Name)
	assert.Equal(t, 8, s.Rx.Channels)
	assert.Equal(t, "rx_dmac", s.Rx.DMAName)
}

func TestBenchmark(t *testing.T) {
	h := New(report(t)).Handler()
	var ms []struct {
		Kind   string `json:"kind"`
		Ticks  uint32 `json:"ticks"`
		Millis string `json:"ms"`
	}
	get(t, h, "/benchmark", &ms)
	require.Len(t, ms, 10)
	assert.Equal(t, "api", ms[0].Kind)
	assert.Equal(t, "raw", ms[1].Kind)
	assert.Equal(t, uint32(100), ms[0].Ticks)
	assert.Equal(t, "0.00100 ms", ms[0].Millis)
}

func TestEndpoints(t *testing.T) {
	h := New(&bringup.Report{}).Handler()
	var routes []string
	get(t, h, "/endpoints", &routes)
	assert.Equal(t, []string{"/benchmark", "/status", "/streams", "/endpoints"}, routes)
}

func TestWritesAreRejected(t *testing.T) {
	h := New(&bringup.Report{}).Handler()
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
