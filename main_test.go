package main

import (
	"reflect"
	"testing"

	"github.com/atomicstack/pullmenu/internal/app"
	"github.com/atomicstack/pullmenu/internal/config"
	"github.com/atomicstack/pullmenu/internal/pull"
)

func TestProbeTerminalListsEveryDescriptor(t *testing.T) {
	info := probeTerminal(standardDescriptors())
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdout", "stdin", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestProbeTerminalSkipsInvalidDescriptors(t *testing.T) {
	info := probeTerminal([]descriptor{{"closed", -1}})
	if info.Size != nil {
		t.Fatalf("expected no size, got %+v", info.Size)
	}
	if info.Probes[0].IsTerminal {
		t.Fatalf("expected invalid descriptor not to be a terminal")
	}
}

func TestWithTerminalSizeSeedsUnsetDimensions(t *testing.T) {
	terminal := terminalInfo{Size: &terminalSize{Source: "stdout", Width: 120, Height: 40}}

	cfg := withTerminalSize(app.Config{Height: 24}, terminal)
	if cfg.InitialWidth != 120 {
		t.Fatalf("expected initial width 120, got %d", cfg.InitialWidth)
	}
	if cfg.InitialHeight != 0 || cfg.Height != 24 {
		t.Fatalf("expected explicit height to win, got height=%d initial=%d", cfg.Height, cfg.InitialHeight)
	}

	cfg = withTerminalSize(app.Config{}, terminalInfo{})
	if cfg.InitialWidth != 0 || cfg.InitialHeight != 0 {
		t.Fatalf("expected no initial size without a terminal, got %+v", cfg)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Labels:       []string{"Top Stories", "Interest"},
			Pull:         pull.DefaultOptions(),
			Height:       24,
			InitialWidth: 120,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "/etc/pullmenu/config.toml",
		Flags: map[string]string{
			"labels":   "Top Stories,Interest",
			"distance": "0.5",
		},
		Args: []string{"--labels", "Top Stories,Interest"},
	}
	terminal := terminalInfo{Size: &terminalSize{Source: "stdout", Width: 120, Height: 40}}

	payload := startupTracePayload(cfg, terminal)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["labels"] != "Top Stories,Interest" {
		t.Fatalf("expected labels flag, got %v", flagsValue["labels"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "/etc/pullmenu/config.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	layout, ok := payload["layout"].(map[string]int)
	if !ok || layout["initialWidth"] != 120 || layout["height"] != 24 {
		t.Fatalf("expected layout in payload, got %#v", payload["layout"])
	}
	if !reflect.DeepEqual(payload["labels"], cfg.App.Labels) {
		t.Fatalf("expected labels %v, got %v", cfg.App.Labels, payload["labels"])
	}
	if got, ok := payload["terminal"].(terminalInfo); !ok || got.Size.Width != 120 {
		t.Fatalf("expected terminal info in payload, got %#v", payload["terminal"])
	}
}
