package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/atomicstack/pullmenu/internal/app"
	"github.com/atomicstack/pullmenu/internal/band"
	"github.com/atomicstack/pullmenu/internal/feed"
	"github.com/atomicstack/pullmenu/internal/menu"
	"github.com/atomicstack/pullmenu/internal/pull"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was loaded, empty when none was found.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig         = "PULLMENU_CONFIG"
	envLabels         = "PULLMENU_LABELS"
	envDistance       = "PULLMENU_DISTANCE"
	envRefreshOnUp    = "PULLMENU_REFRESH_ON_UP"
	envMinimize       = "PULLMENU_MINIMIZE"
	envMinimizeDelay  = "PULLMENU_MINIMIZE_DELAY"
	envTouchSlop      = "PULLMENU_TOUCH_SLOP"
	envCurve          = "PULLMENU_CURVE"
	envReorderDelay   = "PULLMENU_REORDER_DELAY"
	envRefreshLatency = "PULLMENU_REFRESH_LATENCY"
	envStatePath      = "PULLMENU_STATE"
	envWidth          = "PULLMENU_WIDTH"
	envHeight         = "PULLMENU_HEIGHT"
	envTrace          = "PULLMENU_TRACE"
	envLogFile        = "PULLMENU_LOG_FILE"

	configRelPath = "pullmenu/config.toml"
)

// DefaultLabels is the stock pull menu.
var DefaultLabels = []string{"Top Stories", "Most Recent", "Interest", "Refresh"}

// fileConfig mirrors config.toml. Fields absent from the file keep the values
// they were initialised with.
type fileConfig struct {
	Labels []string   `koanf:"labels"`
	Pull   filePull   `koanf:"pull"`
	Feed   fileFeed   `koanf:"feed"`
	State  fileState  `koanf:"state"`
	Window fileWindow `koanf:"window"`
	Log    fileLog    `koanf:"log"`
}

type filePull struct {
	Distance      float64       `koanf:"distance"`
	RefreshOnUp   bool          `koanf:"refresh_on_up"`
	Minimize      bool          `koanf:"minimize"`
	MinimizeDelay time.Duration `koanf:"minimize_delay"`
	TouchSlop     float64       `koanf:"touch_slop"`
	Curve         string        `koanf:"curve"`
	ReorderDelay  time.Duration `koanf:"reorder_delay"`
}

type fileFeed struct {
	Latency time.Duration `koanf:"latency"`
	Entries []feed.Entry  `koanf:"entries"`
}

type fileState struct {
	Path string `koanf:"path"`
}

type fileWindow struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
}

type fileLog struct {
	File  string `koanf:"file"`
	Trace bool   `koanf:"trace"`
}

func defaults() fileConfig {
	opts := pull.DefaultOptions()
	return fileConfig{
		Labels: append([]string(nil), DefaultLabels...),
		Pull: filePull{
			Distance:      opts.RefreshScrollDistance,
			RefreshOnUp:   opts.RefreshOnUp,
			Minimize:      opts.MinimizeEnabled,
			MinimizeDelay: opts.MinimizeDelay,
			// terminal rows are coarse; one row of travel is already deliberate
			TouchSlop:    1,
			Curve:        opts.Curve.String(),
			ReorderDelay: menu.DefaultReorderDelay,
		},
		Feed: fileFeed{
			Latency: 5 * time.Second,
			Entries: feed.DefaultEntries(),
		},
	}
}

// Load parses configuration from the config file, environment variables and
// CLI arguments, in increasing order of precedence.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	// The first pass only locates the config file.
	probe, err := parseFlags(args, env, defaults(), "")
	if err != nil {
		return Config{}, err
	}
	path := *probe.config
	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}

	base := defaults()
	if path != "" {
		if err := loadFile(path, &base); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
			path = ""
		}
	}

	v, err := parseFlags(args, env, base, path)
	if err != nil {
		return Config{}, err
	}

	if *v.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *v.width)
	}
	if *v.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *v.height)
	}
	curve, err := band.ParseCurve(*v.curve)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Labels:  splitLabels(*v.labels),
			Entries: base.Feed.Entries,
			Pull: pull.Options{
				RefreshScrollDistance: *v.distance,
				RefreshOnUp:           *v.refreshOnUp,
				MinimizeEnabled:       *v.minimize,
				MinimizeDelay:         *v.minimizeDelay,
				TouchSlop:             *v.touchSlop,
				Curve:                 curve,
			},
			ReorderDelay:   *v.reorderDelay,
			RefreshLatency: *v.latency,
			StatePath:      *v.statePath,
			Width:          *v.width,
			Height:         *v.height,
		},
		Logging: Logging{
			FilePath: *v.logFile,
			Trace:    *v.trace,
		},
		File: path,
		Flags: map[string]string{
			"config":         path,
			"labels":         *v.labels,
			"distance":       strconv.FormatFloat(*v.distance, 'g', -1, 64),
			"refreshOnUp":    strconv.FormatBool(*v.refreshOnUp),
			"minimize":       strconv.FormatBool(*v.minimize),
			"minimizeDelay":  v.minimizeDelay.String(),
			"touchSlop":      strconv.FormatFloat(*v.touchSlop, 'g', -1, 64),
			"curve":          curve.String(),
			"reorderDelay":   v.reorderDelay.String(),
			"refreshLatency": v.latency.String(),
			"state":          *v.statePath,
			"width":          strconv.Itoa(*v.width),
			"height":         strconv.Itoa(*v.height),
			"trace":          strconv.FormatBool(*v.trace),
			"logFile":        *v.logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

type flagValues struct {
	config        *string
	labels        *string
	distance      *float64
	refreshOnUp   *bool
	minimize      *bool
	minimizeDelay *time.Duration
	touchSlop     *float64
	curve         *string
	reorderDelay  *time.Duration
	latency       *time.Duration
	statePath     *string
	width         *int
	height        *int
	trace         *bool
	logFile       *string
}

func parseFlags(args []string, env map[string]string, base fileConfig, configPath string) (flagValues, error) {
	fs := flag.NewFlagSet("pullmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	v := flagValues{
		config:        fs.String("config", envOrDefault(env, envConfig, configPath), "path to config.toml (default: XDG config search)"),
		labels:        fs.String("labels", envOrDefault(env, envLabels, strings.Join(base.Labels, ",")), "comma separated pull menu labels (2-6 enable menu selection)"),
		distance:      fs.Float64("distance", envOrFloat(env, envDistance, base.Pull.Distance), "fraction of the content height that makes a full pull"),
		refreshOnUp:   fs.Bool("refresh-on-up", envOrBool(env, envRefreshOnUp, base.Pull.RefreshOnUp), "wait for release before a full pull refreshes"),
		minimize:      fs.Bool("minimize", envOrBool(env, envMinimize, base.Pull.Minimize), "minimize the header while refreshing"),
		minimizeDelay: fs.Duration("minimize-delay", envOrDuration(env, envMinimizeDelay, base.Pull.MinimizeDelay), "delay before the header minimizes"),
		touchSlop:     fs.Float64("touch-slop", envOrFloat(env, envTouchSlop, base.Pull.TouchSlop), "rows of travel before a press becomes a drag"),
		curve:         fs.String("curve", envOrDefault(env, envCurve, base.Pull.Curve), "indicator curve: accelerate or linear"),
		reorderDelay:  fs.Duration("reorder-delay", envOrDuration(env, envReorderDelay, base.Pull.ReorderDelay), "delay before a reordered menu is redrawn"),
		latency:       fs.Duration("refresh-latency", envOrDuration(env, envRefreshLatency, base.Feed.Latency), "simulated feed load time"),
		statePath:     fs.String("state", envOrDefault(env, envStatePath, base.State.Path), "path to the state database (default: XDG data dir)"),
		width:         fs.Int("width", envOrInt(env, envWidth, base.Window.Width), "desired viewport width in cells (0 uses terminal width)"),
		height:        fs.Int("height", envOrInt(env, envHeight, base.Window.Height), "desired viewport height in rows (0 uses terminal height)"),
		trace:         fs.Bool("trace", envOrBool(env, envTrace, base.Log.Trace), "enable verbose JSON trace logging"),
		logFile:       fs.String("log-file", envOrDefault(env, envLogFile, base.Log.File), "path to the log file"),
	}

	if err := fs.Parse(args); err != nil {
		return flagValues{}, err
	}
	return v, nil
}

func findConfigFile() string {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return ""
	}
	return path
}

func loadFile(path string, into *fileConfig) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return err
	}
	// Lists in the file replace the defaults instead of merging with them.
	labels, entries := into.Labels, into.Feed.Entries
	into.Labels, into.Feed.Entries = nil, nil
	if err := k.Unmarshal("", into); err != nil {
		return err
	}
	if into.Labels == nil {
		into.Labels = labels
	}
	if into.Feed.Entries == nil {
		into.Feed.Entries = entries
	}
	return nil
}

func splitLabels(raw string) []string {
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the pull tunables and menu labels are usable. Label counts
// the band tables do not cover are allowed; menu selection is then disabled.
func Validate(cfg Config) error {
	if err := cfg.App.Pull.Validate(); err != nil {
		return err
	}
	if cfg.App.ReorderDelay < 0 {
		return fmt.Errorf("reorder delay must be >= 0 (got %v)", cfg.App.ReorderDelay)
	}
	if cfg.App.RefreshLatency < 0 {
		return fmt.Errorf("refresh latency must be >= 0 (got %v)", cfg.App.RefreshLatency)
	}
	seen := make(map[string]struct{}, len(cfg.App.Labels))
	for _, label := range cfg.App.Labels {
		if _, dup := seen[label]; dup {
			return fmt.Errorf("duplicate menu label %q", label)
		}
		seen[label] = struct{}{}
	}
	return nil
}
