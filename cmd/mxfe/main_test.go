package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/config"
)

func TestConnectUnknownTransport(t *testing.T) {
	if _, _, err := connect(config.Transport{Kind: "carrier-pigeon"}); err == nil {
		t.Fatal("expected an error for an unknown transport")
	}
}

func TestMockRunReport(t *testing.T) {
	color.NoColor = true
	deps, release, err := connect(config.Transport{Kind: "mock"})
	if err != nil {
		t.Fatal(err)
	}
	defer release()
	opts := config.Default().Options()
	opts.ResetPulse = 0
	rep, err := bringup.Run(context.Background(), deps, opts)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printReport(&buf, rep)
	out := buf.String()
	for _, want := range []string{"mxfe 0 cs 0", "READY", "channels rx 8 tx 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
