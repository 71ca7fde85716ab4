package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/younwookim/arcadebody/internal/application/game"
	"github.com/younwookim/arcadebody/internal/application/replay"
	"github.com/younwookim/arcadebody/internal/application/scene/sandbox"
	"github.com/younwookim/arcadebody/internal/application/system"
	"github.com/younwookim/arcadebody/internal/infrastructure/config"
)

// runHeadless drives the sandbox scene without a window or input
func runHeadless(ctx context.Context, cfg *config.SimulationConfig, opts sandbox.Options, steps, statsEvery int, logger *slog.Logger) error {
	opts.Input = func() system.InputState { return system.InputState{} }

	s := sandbox.New(cfg, opts)
	w, h := s.Size()
	g := game.New(s, w, h)
	defer g.Close()

	logger.Info("starting headless simulation",
		"name", cfg.Name,
		"seed", s.Seed(),
		"steps", steps,
		"step", cfg.StepSeconds(),
	)

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			logger.Info("interrupted", "step", s.Physics().Steps())
			return nil
		}
		if err := g.Update(); err != nil {
			return err
		}
		if statsEvery > 0 && s.Physics().Steps()%statsEvery == 0 {
			logger.Info("stats", "step", s.Physics().Steps(), "energy", s.Physics().Stats())
		}
	}

	logger.Info("max steps reached", "step", s.Physics().Steps())
	return nil
}

// verifyTrace re-drives a sandbox built from cfg with a trace's seed, step size
// and recorded input, then reports the first step where the bodies differ.
// Traces without recorded input replay as idle updates.
func verifyTrace(cfg *config.SimulationConfig, path string, logger *slog.Logger) error {
	trace, err := replay.LoadTrace(path)
	if err != nil {
		return err
	}
	if len(trace.Frames) == 0 {
		return fmt.Errorf("trace %s has no frames", path)
	}

	run := *cfg
	run.Physics.Seed = trace.Seed
	if trace.StepSize > 0 {
		run.Physics.FixedStep = trace.StepSize
	}

	replayer := replay.NewReplayer(*trace)
	updates := replayer.TotalFrames()
	if updates == 0 {
		updates = len(trace.Frames)
	}

	s := sandbox.New(&run, sandbox.Options{
		Record: true,
		Logger: logger,
		Input: func() system.InputState {
			in, _ := replayer.GetInput()
			return in
		},
	})
	for i := 0; i < updates; i++ {
		if _, err := s.Update(run.StepSeconds()); err != nil {
			return err
		}
	}

	if step, ok := replay.Compare(*trace, s.Recorder().GetTrace()); !ok {
		return fmt.Errorf("%w at step %d", replay.ErrDiverged, step)
	}
	logger.Info("trace verified",
		"file", path,
		"frames", len(trace.Frames),
		"updates", updates,
		"seed", trace.Seed,
	)
	return nil
}
