package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/arcadebody/internal/application/game"
	"github.com/younwookim/arcadebody/internal/application/scene/sandbox"
	"github.com/younwookim/arcadebody/internal/infrastructure/config"
)

type options struct {
	configPath string
	preset     string
	headless   bool
	steps      int
	statsEvery int
	record     string
	csv        string
	verify     string
	watch      bool
	debug      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a simulation .yaml/.json file (empty = embedded preset)")
	flag.StringVar(&opts.preset, "preset", config.DefaultSimulation, "Embedded preset to load when -config is empty")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window")
	flag.IntVar(&opts.steps, "steps", 600, "Steps to run in headless mode")
	flag.IntVar(&opts.statsEvery, "stats-every", 60, "Log energy stats every N headless steps (0 = off)")
	flag.StringVar(&opts.record, "record", "", "Record input and body trace to file (e.g., -record trace.json)")
	flag.StringVar(&opts.csv, "csv", "", "Also write the recorded trace as CSV")
	flag.StringVar(&opts.verify, "verify", "", "Replay a recorded trace's input headless and report the first divergent step")
	flag.BoolVar(&opts.watch, "watch", false, "Reload -config when the file changes")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(os.Stderr, opts.headless || opts.verify != "", opts.debug)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("sandbox failed", "error", err)
		os.Exit(1)
	}
}

// newLogger returns a JSON logger for headless runs and a text logger otherwise
func newLogger(w io.Writer, structured, debug bool) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		hopts.Level = slog.LevelDebug
	}
	if structured {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "name", cfg.Name, "bodies", len(cfg.Bodies), "step", cfg.StepSeconds())

	if opts.verify != "" {
		return verifyTrace(cfg, opts.verify, logger)
	}

	sceneOpts := sandbox.Options{
		RecordPath: opts.record,
		CSVPath:    opts.csv,
		Logger:     logger,
	}

	if opts.watch {
		if opts.configPath == "" {
			return errors.New("-watch needs -config")
		}
		w, err := config.NewWatcher(opts.configPath, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
		sceneOpts.Updates = w.Updates()
	}

	if opts.headless {
		return runHeadless(ctx, cfg, sceneOpts, opts.steps, opts.statsEvery, logger)
	}
	return runWindow(cfg, sceneOpts)
}

func loadConfig(opts options) (*config.SimulationConfig, error) {
	if opts.configPath != "" {
		return config.LoadFile(opts.configPath)
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadSimulation(opts.preset)
}

func runWindow(cfg *config.SimulationConfig, opts sandbox.Options) error {
	s := sandbox.New(cfg, opts)
	w, h := s.Size()
	g := game.New(s, w, h)
	defer g.Close()

	scale := max(cfg.Display.Scale, 1)
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle("Arcade Body Sandbox - " + cfg.Name)
	if cfg.Display.Framerate > 0 {
		ebiten.SetTPS(cfg.Display.Framerate)
		g.SetDT(1.0 / float64(cfg.Display.Framerate))
	}

	return ebiten.RunGame(g)
}
