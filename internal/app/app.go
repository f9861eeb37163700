package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/popup-menu/internal/backend"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/metric"
	"github.com/atomicstack/popup-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const watchInterval = 500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	MenuPath           string
	Mode               string
	DefaultActiveFirst bool
	Multiple           bool
	ActiveKey          *string
	Width              int
	Height             int
	ShowFooter         bool
	Verbose            bool
	MetricsAddr        string
	Watch              bool
	List               bool
}

// Run bootstraps and executes the Bubble Tea program. The picked key is
// written to stdout; the menu itself draws on stderr so the result can be
// captured by a shell.
func Run(cfg Config) error {
	return run(context.Background(), cfg, os.Stdout, os.Stderr)
}

func run(ctx context.Context, cfg Config, out, screen io.Writer) error {
	def, err := loadDefinition(cfg.MenuPath)
	if err != nil {
		return err
	}
	if cfg.List {
		return writeList(out, def)
	}
	opts, err := buildOptions(cfg, def)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	recorder := metric.NewRecorder()
	opts.Metrics = recorder
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return recorder.Serve(gctx, cfg.MetricsAddr)
		})
	}
	if cfg.Watch {
		watcher := backend.NewWatcher(cfg.MenuPath, watchInterval)
		defer watcher.Stop()
		opts.Watcher = watcher
	}

	model := ui.NewModel(opts)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(gctx),
		tea.WithOutput(screen),
	)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	result, ok := model.Result()
	if !ok {
		return nil
	}
	return writeResult(out, result, cfg.Multiple)
}

func loadDefinition(path string) (menu.Definition, error) {
	if strings.TrimSpace(path) == "" {
		return menu.Definition{Items: menu.DemoItems()}, nil
	}
	def, err := menu.LoadFile(path)
	if err != nil {
		return menu.Definition{}, fmt.Errorf("load menu %s: %w", path, err)
	}
	return def, nil
}

// buildOptions merges the definition with the command line. Flags win over
// the file.
func buildOptions(cfg Config, def menu.Definition) (ui.Options, error) {
	modeText := cfg.Mode
	if modeText == "" {
		modeText = def.Mode
	}
	mode, err := menu.ParseMode(modeText)
	if err != nil {
		return ui.Options{}, err
	}
	return ui.Options{
		Title:              def.Title,
		Items:              def.Items,
		Mode:               mode,
		DefaultActiveFirst: cfg.DefaultActiveFirst,
		Multiple:           cfg.Multiple,
		ActiveKey:          cfg.ActiveKey,
		Width:              cfg.Width,
		Height:             cfg.Height,
		ShowFooter:         cfg.ShowFooter,
		Verbose:            cfg.Verbose,
	}, nil
}

func writeResult(w io.Writer, result ui.Result, multiple bool) error {
	if multiple {
		for _, key := range result.SelectedKeys {
			if _, err := fmt.Fprintln(w, key); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintln(w, result.Key)
	return err
}
