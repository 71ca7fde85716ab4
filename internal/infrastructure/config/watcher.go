package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a simulation file whenever it is written and delivers the
// result on Updates. Invalid files are logged and skipped.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan *SimulationConfig
	logger  *slog.Logger
}

// NewWatcher watches the directory holding filename; editors often replace
// files instead of writing them in place.
func NewWatcher(filename string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan *SimulationConfig, 1),
		logger:  logger,
	}, nil
}

// Updates returns the channel of reloaded configs. Only the newest pending config is kept.
func (w *Watcher) Updates() <-chan *SimulationConfig {
	return w.updates
}

// Run processes file events until ctx is cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
		return
	}

	// drop a stale pending update so the newest one wins
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("config reloaded", "path", w.path, "bodies", len(cfg.Bodies))
}
