package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/theckman/yacspin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nasa-jpl/mxfe/bridge"
	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/comm"
	"github.com/nasa-jpl/mxfe/config"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/server"
	"github.com/nasa-jpl/mxfe/sim"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "1"

	cfgPath string
	mock    bool
	bench   bool
	serve   bool
	listen  string
)

var rootCmd = &cobra.Command{
	Use:   "mxfe",
	Short: "mxfe brings up MxFE data converter boards",
	Long: `mxfe programs the clock tree, initializes every converter, configures the
datapaths and the streaming fabric of an MxFE board, and optionally times the
datapath operations.

The board is reached through a board side agent over TCP or RS-232, or
simulated in memory with --mock.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "perform a bring-up",
	RunE:  run,
}

var mkconfCmd = &cobra.Command{
	Use:   "mkconf",
	Short: "write the default configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(cfgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return config.Write(f, config.Default())
	},
}

var confCmd = &cobra.Command{
	Use:   "conf",
	Short: "print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		return config.Write(os.Stdout, c)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mxfe version %v\n", Version)
	},
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "serve a simulated board to bridge clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return bridge.NewAgent(simDeps(sim.NewBoard())).ListenAndServe(listen)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.FileName, "configuration file")
	runCmd.Flags().BoolVar(&mock, "mock", false, "use a simulated board")
	runCmd.Flags().BoolVar(&bench, "bench", false, "run the benchmark pass")
	runCmd.Flags().BoolVar(&serve, "serve", false, "serve the report over HTTP after bring-up")
	agentCmd.Flags().StringVar(&listen, "listen", ":5000", "address to listen on")
	rootCmd.AddCommand(runCmd, mkconfCmd, confCmd, versionCmd, agentCmd)
}

func setupLog(c config.Log) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if c.File == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxAge:     c.MaxAgeDays,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}

func simDeps(b *sim.Board) bringup.Deps {
	return bringup.Deps{Synth: b, Platform: b, Driver: b, Monitor: b, Cores: b, DMAs: b, Timer: b, Counter: b}
}

// connect returns the hardware of the configured transport and a func
// releasing it
func connect(t config.Transport) (bringup.Deps, func(), error) {
	kind := strings.ToLower(t.Kind)
	switch kind {
	case "mock", "sim", "":
		return simDeps(sim.NewBoard()), func() {}, nil
	case "tcp", "serial":
		rd := comm.NewRemoteDevice(t.Addr, kind == "serial", comm.Options{
			Baud:           t.Baud,
			Timeout:        t.Timeout(),
			ConnectTimeout: t.ConnectTimeout(),
			Rate:           t.Rate,
			Burst:          t.Burst,
		})
		if err := rd.Open(); err != nil {
			return bringup.Deps{}, nil, err
		}
		return bridge.NewClient(rd).Deps(), func() { rd.Close() }, nil
	default:
		return bringup.Deps{}, nil, fmt.Errorf("unknown transport %q", t.Kind)
	}
}

func newSpinner() *yacspin.Spinner {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}
	spinner, err := yacspin.New(yacspin.Config{
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[14],
		Suffix:            " bring-up",
		SuffixAutoColon:   true,
		Message:           "running",
		StopCharacter:     "✓",
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: "✗",
		StopFailColors:    []string{"fgRed"},
	})
	if err != nil {
		log.Println("spinner:", err)
		return nil
	}
	return spinner
}

func run(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	setupLog(c.Log)
	if mock {
		c.Transport.Kind = "mock"
	}
	deps, release, err := connect(c.Transport)
	if err != nil {
		return err
	}
	defer release()

	opts := c.Options()
	opts.Benchmark = opts.Benchmark || bench

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner := newSpinner()
	if spinner != nil {
		spinner.Start()
	}
	rep, err := bringup.Run(ctx, deps, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopFail()
		} else {
			spinner.Stop()
		}
	}
	if rep != nil {
		printReport(os.Stdout, rep)
	}
	if err != nil {
		return err
	}
	if serve {
		return server.New(rep).ListenAndServe(c.Server.Addr)
	}
	return nil
}

func printReport(w io.Writer, rep *bringup.Report) {
	ready := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "run %s\n", rep.RunID)
	for _, h := range rep.Clocks {
		fmt.Fprintf(w, "clock %-10s %d Hz\n", h.Name, h.Rate)
	}
	for _, name := range rep.FailedClocks {
		fmt.Fprintf(w, "clock %-10s %s\n", name, failed("FAILED"))
	}
	for _, inst := range rep.Instances {
		state := inst.State.String()
		switch inst.State {
		case mxfe.Ready:
			state = ready(state)
		case mxfe.Failed:
			state = failed(state)
		}
		fmt.Fprintf(w, "mxfe %d cs %d reset %d: %s\n", inst.Index, inst.Identity.ChipSelect, inst.Identity.ResetLine, state)
		if inst.Err != nil {
			fmt.Fprintf(w, "\t%v\n", inst.Err)
		}
	}
	for _, l := range rep.Links {
		fmt.Fprintf(w, "link %s up=%v %s\n", l.Link, l.Up, l.State)
	}
	fmt.Fprintf(w, "channels rx %d tx %d\n", rep.Counts.RX, rep.Counts.TX)
	if rep.Rx != nil {
		fmt.Fprintln(w, rep.Rx)
	}
	if rep.Tx != nil {
		fmt.Fprintln(w, rep.Tx)
	}
	for _, s := range rep.Samples {
		fmt.Fprintln(w, s)
	}
	for _, s := range rep.Warnings {
		fmt.Fprintln(w, warn("warning:"), s)
	}
	if rep.Fatal != "" {
		fmt.Fprintln(w, failed("fatal:"), rep.Fatal)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
