// Package bringup sequences a complete board bring-up:
//
//	mux, clocks, devices, link status, datapath, channel counts, streams, benchmark
//
// Clock and per device failures are recorded and the sequence continues with
// whatever came up.  Invalid configuration, datapath and streaming failures
// end the run, as does having no READY device while a stream direction is in
// use.  Nothing is retried.
package bringup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rs/xid"

	"github.com/nasa-jpl/mxfe/bench"
	"github.com/nasa-jpl/mxfe/clock"
	"github.com/nasa-jpl/mxfe/datapath"
	"github.com/nasa-jpl/mxfe/jesd"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/stream"
)

// ErrNoDevices is generated when no instance reached READY but a stream
// direction needs samples
var ErrNoDevices = errors.New("no device reached READY")

// Deps are the hardware collaborators of a run
type Deps struct {
	Synth    clock.Synthesizer
	Platform mxfe.Platform
	Driver   mxfe.Driver

	// Monitor is optional
	Monitor mxfe.LinkMonitor

	Cores stream.Cores
	DMAs  stream.DMAs

	// Timer and Counter are only needed when benchmarking
	Timer   bench.Timer
	Counter bench.Register
}

// Options describe the board and what to bring up on it
type Options struct {
	Instances      int
	ChipSelectBase int
	ResetBase      int

	// MuxLine is the quad board SPI mux GPIO, negative if none
	MuxLine     int
	SyncPinSwap bool
	ResetPulse  time.Duration

	// Clocks are the target frequencies; the synthesizer comes from Deps
	Clocks clock.Plan

	TxLink  jesd.Geometry
	Rx0Link jesd.Geometry
	Rx1Link jesd.Geometry

	ADCRate uint64
	DACRate uint64

	Rx datapath.Config
	Tx datapath.Config

	Layout stream.Layout
	RxUsed bool
	TxUsed bool

	Benchmark   bool
	CounterAddr uint64
	Shift       int64
}

// Report is the outcome of a run.  It is not modified once Run returns.
type Report struct {
	RunID    string    `json:"runID"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	Clocks       []clock.Handle `json:"clocks"`
	FailedClocks []string       `json:"failedClocks"`

	Instances []*mxfe.Instance  `json:"instances"`
	Counts    mxfe.Counts       `json:"counts"`
	Links     []mxfe.LinkStatus `json:"links"`

	Rx *stream.Endpoint `json:"rx"`
	Tx *stream.Endpoint `json:"tx"`

	Samples []bench.Sample `json:"samples"`

	// Warnings are the non-fatal errors of the run
	Warnings []string `json:"warnings"`

	// Fatal is the error that ended the run, empty on success
	Fatal string `json:"fatal,omitempty"`
}

// Ready returns the number of READY instances
func (r *Report) Ready() int {
	n := 0
	for _, inst := range r.Instances {
		if inst.State == mxfe.Ready {
			n++
		}
	}
	return n
}

func (r *Report) warn(stage string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %v", stage, err)
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v", stage, err))
}

type run struct {
	deps Deps
	opts Options
	rep  *Report
	orch *mxfe.Orchestrator
	tmpl mxfe.Templates

	// dp holds the configurators of READY instances, by index
	dp map[int]*datapath.Configurator
}

// Run performs one bring-up.  The report is always returned and reflects
// everything up to the point of failure.  ctx is checked between stages.
func Run(ctx context.Context, deps Deps, opts Options) (*Report, error) {
	r := &run{deps: deps, opts: opts, rep: &Report{RunID: xid.New().String(), Started: time.Now()}}
	err := r.sequence(ctx)
	r.rep.Finished = time.Now()
	if err != nil {
		r.rep.Fatal = err.Error()
		log.Printf("bring-up %s failed: %v", r.rep.RunID, err)
	} else {
		log.Printf("bring-up %s done in %s: %d/%d READY, rx %d tx %d channels",
			r.rep.RunID, r.rep.Finished.Sub(r.rep.Started), r.rep.Ready(), len(r.rep.Instances), r.rep.Counts.RX, r.rep.Counts.TX)
	}
	return r.rep, err
}

func (r *run) sequence(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"templates", r.templates},
		{"mux", r.mux},
		{"clocks", r.clocks},
		{"devices", r.devices},
		{"links", r.links},
		{"datapath", r.datapaths},
		{"streams", r.streams},
		{"benchmark", r.benchmark},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("before %s: %w", st.name, err)
		}
		if err := st.fn(); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}
	return nil
}

func (r *run) templates() error {
	tx, err := jesd.Build(jesd.Tx, r.opts.TxLink)
	if err != nil {
		return fmt.Errorf("tx link: %w", err)
	}
	rx0, err := jesd.Build(jesd.Rx, r.opts.Rx0Link)
	if err != nil {
		return fmt.Errorf("rx0 link: %w", err)
	}
	rx1, err := jesd.Build(jesd.Rx, r.opts.Rx1Link)
	if err != nil {
		return fmt.Errorf("rx1 link: %w", err)
	}
	for _, lp := range []jesd.LinkParameters{tx, rx0, rx1} {
		log.Println(lp)
	}
	r.orch = &mxfe.Orchestrator{
		Platform:    r.deps.Platform,
		Driver:      r.deps.Driver,
		Monitor:     r.deps.Monitor,
		ResetPulse:  r.opts.ResetPulse,
		MuxLine:     r.opts.MuxLine,
		SyncPinSwap: r.opts.SyncPinSwap,
		ADCRate:     r.opts.ADCRate,
		DACRate:     r.opts.DACRate,
	}
	r.tmpl = mxfe.Templates{Tx: tx, Rx: [2]jesd.LinkParameters{rx0, rx1}}
	return nil
}

func (r *run) mux() error {
	return r.orch.SelectMux()
}

func (r *run) clocks() error {
	plan := r.opts.Clocks
	plan.Synth = r.deps.Synth
	h, err := plan.RequestClocks(r.opts.Instances)
	if errors.Is(err, clock.ErrTooManyInstances) {
		return err
	}
	r.orch.Clocks = h
	r.rep.Clocks = h.Configured()
	r.rep.FailedClocks = h.Failed()
	r.rep.warn("clocks", err)
	return nil
}

func (r *run) devices() error {
	ids := mxfe.Identities(r.opts.Instances, r.opts.ChipSelectBase, r.opts.ResetBase)
	insts, counts, err := r.orch.BringUp(r.opts.Instances, ids, r.tmpl)
	if insts == nil {
		// identity or template problem, nothing was touched
		return err
	}
	r.rep.Instances = insts
	r.rep.Counts = counts
	r.rep.warn("devices", err)
	if r.rep.Ready() == 0 && (r.opts.RxUsed || r.opts.TxUsed) {
		return fmt.Errorf("%w: 0 of %d instances", ErrNoDevices, len(insts))
	}
	return nil
}

func (r *run) links() error {
	st, err := r.orch.LinkStatus()
	r.rep.Links = st
	r.rep.warn("link status", err)
	return nil
}

func (r *run) datapaths() error {
	r.dp = map[int]*datapath.Configurator{}
	for _, inst := range r.rep.Instances {
		if inst.State != mxfe.Ready {
			continue
		}
		if inst.Device == nil {
			return fmt.Errorf("mxfe %d: %w: no datapath handle", inst.Index, datapath.ErrNotConfigured)
		}
		c := datapath.New(inst.Device)
		if r.opts.Rx.MainEnable != 0 {
			if err := c.ConfigureReceive(r.opts.Rx); err != nil {
				return fmt.Errorf("mxfe %d: %w", inst.Index, err)
			}
		}
		if r.opts.Tx.MainEnable != 0 {
			if err := c.ConfigureTransmit(r.opts.Tx); err != nil {
				return fmt.Errorf("mxfe %d: %w", inst.Index, err)
			}
		}
		r.dp[inst.Index] = c
	}
	return nil
}

func (r *run) streams() error {
	b := &stream.Bringup{
		Cores:  r.deps.Cores,
		DMAs:   r.deps.DMAs,
		Layout: r.opts.Layout,
		RxUsed: r.opts.RxUsed,
		TxUsed: r.opts.TxUsed,
	}
	rx, tx, err := b.InitStreams(r.rep.Counts.RX, r.rep.Counts.TX)
	if err != nil {
		return err
	}
	r.rep.Rx, r.rep.Tx = rx, tx
	return nil
}

// benchmark runs one pass over the first READY instance.  A benchmark that
// cannot start is a warning, the streams are already up.
func (r *run) benchmark() error {
	if !r.opts.Benchmark {
		return nil
	}
	var inst *mxfe.Instance
	for _, i := range r.rep.Instances {
		if i.State == mxfe.Ready {
			inst = i
			break
		}
	}
	if inst == nil {
		r.rep.warn("benchmark", ErrNoDevices)
		return nil
	}
	if r.deps.Timer == nil || r.deps.Counter == nil {
		r.rep.warn("benchmark", errors.New("no counter available"))
		return nil
	}
	h, err := bench.NewHarness(r.deps.Timer, r.deps.Counter, r.opts.CounterAddr)
	if err != nil {
		r.rep.warn("benchmark", err)
		return nil
	}
	p := &bench.Pass{
		Harness:  h,
		Datapath: r.dp[inst.Index],
		SPI:      inst.SPI,
		Rx0:      inst.Rx[0],
		Shift:    r.opts.Shift,
	}
	r.rep.Samples = p.Run()
	return nil
}
