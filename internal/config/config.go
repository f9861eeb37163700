package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/popup-menu/internal/app"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuPath           = "POPUP_MENU_FILE"
	envMode               = "POPUP_MENU_MODE"
	envDefaultActiveFirst = "POPUP_MENU_DEFAULT_ACTIVE_FIRST"
	envMultiple           = "POPUP_MENU_MULTIPLE"
	envActiveKey          = "POPUP_MENU_ACTIVE_KEY"
	envWidth              = "POPUP_MENU_WIDTH"
	envHeight             = "POPUP_MENU_HEIGHT"
	envShowFooter         = "POPUP_MENU_FOOTER"
	envVerbose            = "POPUP_MENU_VERBOSE"
	envTrace              = "POPUP_MENU_TRACE"
	envLogFile            = "POPUP_MENU_LOG_FILE"
	envMetricsAddr        = "POPUP_MENU_METRICS_ADDR"
	envWatch              = "POPUP_MENU_WATCH"
)

// LoadArgs parses configuration from CLI arguments and environment
// variables given as KEY=value entries.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popup-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuPath := fs.String("menu", envOrDefault(env, envMenuPath, ""), "path to a TOML menu definition (built-in demo menu when empty)")
	mode := fs.String("mode", envOrDefault(env, envMode, ""), "menu mode: vertical, vertical-left, vertical-right, horizontal or inline")
	defaultActiveFirst := fs.Bool("default-active-first", envOrBool(env, envDefaultActiveFirst, false), "activate the first enabled item when a level has no active item")
	multiple := fs.Bool("multiple", envOrBool(env, envMultiple, false), "allow selecting several items (ctrl+d confirms)")
	activeKey := fs.String("active-key", envOrDefault(env, envActiveKey, ""), "control the active key of the root level")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show info messages for selections and reloads")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve prometheus metrics on this address")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the menu definition when the file changes")
	list := fs.Bool("list", false, "print the menu definition as a table and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	// The root level is only controlled when a key was actually given.
	var controlled *string
	activeSet := false
	if _, ok := env[envActiveKey]; ok {
		activeSet = true
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "active-key" {
			activeSet = true
		}
	})
	if activeSet {
		value := *activeKey
		controlled = &value
	}

	cfg := Config{
		App: app.Config{
			MenuPath:           *menuPath,
			Mode:               *mode,
			DefaultActiveFirst: *defaultActiveFirst,
			Multiple:           *multiple,
			ActiveKey:          controlled,
			Width:              *width,
			Height:             *height,
			ShowFooter:         *footer,
			Verbose:            *verbose,
			MetricsAddr:        *metricsAddr,
			Watch:              *watch,
			List:               *list,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menu":               *menuPath,
			"mode":               *mode,
			"defaultActiveFirst": strconv.FormatBool(*defaultActiveFirst),
			"multiple":           strconv.FormatBool(*multiple),
			"activeKey":          *activeKey,
			"width":              strconv.Itoa(*width),
			"height":             strconv.Itoa(*height),
			"footer":             strconv.FormatBool(*footer),
			"trace":              strconv.FormatBool(*trace),
			"verbose":            strconv.FormatBool(*verbose),
			"logFile":            *logFile,
			"metricsAddr":        *metricsAddr,
			"watch":              strconv.FormatBool(*watch),
			"list":               strconv.FormatBool(*list),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

// Validate rejects option combinations the menu cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Mode != "" {
		if _, err := menu.ParseMode(cfg.App.Mode); err != nil {
			return err
		}
	}
	if cfg.App.Watch && strings.TrimSpace(cfg.App.MenuPath) == "" {
		return errors.New("-watch needs a menu definition file (-menu)")
	}
	return nil
}
