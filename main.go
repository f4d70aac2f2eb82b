package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/pullmenu/internal/app"
	"github.com/atomicstack/pullmenu/internal/config"
	"github.com/atomicstack/pullmenu/internal/logging"
	"github.com/atomicstack/pullmenu/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	terminal := probeTerminal(standardDescriptors())
	runtimeCfg.App = withTerminalSize(runtimeCfg.App, terminal)
	events.App.Start(startupTracePayload(runtimeCfg, terminal))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.App.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withTerminalSize seeds the layout with the detected terminal size so the
// pull region has bounds before the first resize message. Explicit sizes win.
func withTerminalSize(cfg app.Config, terminal terminalInfo) app.Config {
	if terminal.Size == nil {
		return cfg
	}
	if cfg.Width == 0 {
		cfg.InitialWidth = terminal.Size.Width
	}
	if cfg.Height == 0 {
		cfg.InitialHeight = terminal.Size.Height
	}
	return cfg
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, terminal terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"configFile": cfg.File,
		"labels":     cfg.App.Labels,
		"pull":       cfg.App.Pull,
		"layout": map[string]int{
			"width":         cfg.App.Width,
			"height":        cfg.App.Height,
			"initialWidth":  cfg.App.InitialWidth,
			"initialHeight": cfg.App.InitialHeight,
		},
		"terminal": terminal,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

// terminalInfo records which standard descriptor, if any, is a terminal with a
// usable size.
type terminalInfo struct {
	Size   *terminalSize   `json:"size,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type terminalProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Error      string `json:"error,omitempty"`
}

type descriptor struct {
	name string
	fd   int
}

func standardDescriptors() []descriptor {
	return []descriptor{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

// probeTerminal returns the size of the first descriptor that is a terminal.
// Bubble Tea renders to stdout, so it is probed first.
func probeTerminal(fds []descriptor) terminalInfo {
	info := terminalInfo{Probes: make([]terminalProbe, 0, len(fds))}
	for _, d := range fds {
		probe := terminalProbe{Name: d.name}
		if d.fd >= 0 && term.IsTerminal(d.fd) {
			probe.IsTerminal = true
			width, height, err := term.GetSize(d.fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case info.Size == nil && width > 0 && height > 0:
				info.Size = &terminalSize{Source: d.name, Width: width, Height: height}
			}
		}
		info.Probes = append(info.Probes, probe)
	}
	return info
}
