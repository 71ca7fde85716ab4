// Package sandbox provides a scene that steps configured bodies inside the
// world bounds and draws them.
package sandbox

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/younwookim/arcadebody/internal/application/replay"
	"github.com/younwookim/arcadebody/internal/application/scene"
	"github.com/younwookim/arcadebody/internal/application/state"
	"github.com/younwookim/arcadebody/internal/application/system"
	"github.com/younwookim/arcadebody/internal/domain/entity"
	"github.com/younwookim/arcadebody/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorBounds     = colornames.Slategray
	colorBody       = colornames.Mediumseagreen
	colorBlocked    = colornames.Indianred
	colorControlled = colornames.Gold
	colorPaused     = color.RGBA{0, 0, 0, 128}
)

// DefaultPush is the controlled body's acceleration while an arrow key is held
const DefaultPush = 400.0

// spawnSize is used for clicked bodies when the config has no body template
const spawnSize = 12.0

// Options configures a Sandbox
type Options struct {
	// RecordPath enables trace recording. The trace is written on exit and on F5.
	RecordPath string
	// Record keeps a trace in memory without writing it. RecordPath implies it.
	Record bool
	// CSVPath additionally writes the trace as CSV when saving
	CSVPath string
	// Updates delivers reloaded configs; nil disables hot reload
	Updates <-chan *config.SimulationConfig
	Logger  *slog.Logger
	// Input replaces ebiten polling, mainly for tests
	Input func() system.InputState
	Push  float64
}

// Sandbox steps the configured world at a fixed rate
type Sandbox struct {
	cfg     *config.SimulationConfig
	physics *system.PhysicsSystem
	sprites []*entity.Sprite
	input   *system.InputSystem
	read    func() system.InputState
	run     state.RunState
	dt      float64
	screenW int
	screenH int

	// Deterministic RNG for spawned bodies
	rng  *rand.Rand
	seed int64

	// Controlled body's configured acceleration, restored when a push ends
	base entity.Vec2

	recorder   *replay.Recorder
	record     bool
	recordPath string
	csvPath    string
	segment    int

	updates <-chan *config.SimulationConfig
	logger  *slog.Logger
}

// New creates a new Sandbox scene from a validated config
func New(cfg *config.SimulationConfig, opts Options) *Sandbox {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	push := opts.Push
	if push <= 0 {
		push = DefaultPush
	}

	s := &Sandbox{
		input:      system.NewInputSystem(push),
		read:       opts.Input,
		record:     opts.Record || opts.RecordPath != "",
		recordPath: opts.RecordPath,
		csvPath:    opts.CSVPath,
		updates:    opts.Updates,
		logger:     logger,
	}
	if s.read == nil {
		s.read = s.input.GetInput
	}

	s.load(cfg)
	return s
}

// load replaces the config and rebuilds the world from it. A recording in
// progress is closed as a numbered segment and a new one starts, since a trace
// only replays against a single config.
func (s *Sandbox) load(cfg *config.SimulationConfig) {
	if s.recorder != nil && s.recorder.FrameCount() > 0 && s.recordPath != "" {
		s.segment++
		csvPath := ""
		if s.csvPath != "" {
			csvPath = replay.SegmentFilename(s.csvPath, s.segment)
		}
		s.saveRecording(replay.SegmentFilename(s.recordPath, s.segment), csvPath)
	}

	s.cfg = cfg
	s.dt = cfg.StepSeconds()
	s.screenW, s.screenH = cfg.Display.ScreenWidth, cfg.Display.ScreenHeight
	if s.screenW <= 0 || s.screenH <= 0 {
		s.screenW, s.screenH = int(cfg.World.X+cfg.World.Width), int(cfg.World.Y+cfg.World.Height)
	}

	s.seed = cfg.Physics.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.reset()

	if s.record {
		s.recorder = replay.NewRecorder(s.seed, cfg.Name, s.dt)
	}
}

// reset rebuilds bodies from the current config and restarts the RNG.
// The recording carries on: the reset itself is part of the recorded input.
func (s *Sandbox) reset() {
	s.physics, s.sprites = system.LoadWorld(s.cfg, s.logger)
	s.rng = rand.New(rand.NewSource(s.seed))

	s.base = entity.Vec2{}
	if b := s.Controlled(); b != nil {
		s.base = b.Acceleration
	}
	s.input.ReleasePush()
}

// Update handles input and advances the world by one fixed step (implements scene.Scene).
// The frame dt is ignored so recorded runs replay identically.
func (s *Sandbox) Update(_ float64) (scene.Scene, error) {
	s.pollConfig()

	input := s.read()
	if s.recorder != nil {
		s.recorder.RecordInput(input)
	}

	for _, intent := range s.input.Intents(input) {
		s.handle(intent)
	}

	switch s.run {
	case state.RunRunning:
		s.step()
	case state.RunSingleStep:
		s.step()
		s.run = state.RunPaused
	}

	return nil, nil // nil = stay on this scene
}

func (s *Sandbox) pollConfig() {
	if s.updates == nil {
		return
	}
	select {
	case cfg, ok := <-s.updates:
		if !ok {
			s.updates = nil
			return
		}
		if cfg != nil {
			s.load(cfg)
			s.logger.Info("config reloaded", "name", cfg.Name, "bodies", s.physics.Len())
		}
	default:
	}
}

func (s *Sandbox) handle(intent system.Intent) {
	switch in := intent.(type) {
	case system.ResetIntent:
		s.reset()
		if s.recorder != nil {
			s.logger.Info("world reset", "bodies", s.physics.Len(), "recorded_frames", s.recorder.FrameCount())
		} else {
			s.logger.Info("world reset", "bodies", s.physics.Len())
		}
	case system.PauseIntent:
		if s.run == state.RunRunning {
			s.run = state.RunPaused
		} else {
			s.run = state.RunRunning
		}
	case system.StepIntent:
		if s.run == state.RunPaused {
			s.run = state.RunSingleStep
		}
	case system.SaveIntent:
		s.saveRecording(s.recordPath, s.csvPath)
	case system.SpawnIntent:
		s.spawn(in.X, in.Y)
	case system.PushIntent:
		system.ApplyPush(s.Controlled(), s.base, in)
	}
}

func (s *Sandbox) step() {
	s.physics.Step(s.dt)
	if s.recorder != nil {
		s.recorder.Capture(s.physics.Steps(), s.physics.Bodies())
	}
}

// spawn adds a body centered on (x, y) with a random velocity drawn from the seeded RNG
func (s *Sandbox) spawn(x, y float64) *entity.Body {
	tmpl := config.BodyConfig{
		Width:              spawnSize,
		Height:             spawnSize,
		Bounce:             config.XY{X: 0.8, Y: 0.8},
		CollideWorldBounds: true,
	}
	if len(s.cfg.Bodies) > 0 {
		tmpl = s.cfg.Bodies[0]
		tmpl.Count = 1
		tmpl.CollideWorldBounds = true
	}

	tmpl.X, tmpl.Y = x-tmpl.Width/2, y-tmpl.Height/2
	tmpl.Velocity = config.XY{
		X: (s.rng.Float64()*2 - 1) * 200,
		Y: -s.rng.Float64() * 200,
	}

	s.sprites = append(s.sprites, system.SpawnBodies(s.physics, []config.BodyConfig{tmpl})...)
	bodies := s.physics.Bodies()
	return bodies[len(bodies)-1]
}

// saveRecording writes the current trace. In-memory recordings have no path
// and are kept.
func (s *Sandbox) saveRecording(filename, csvPath string) {
	if s.recorder == nil || filename == "" {
		return
	}

	if err := s.recorder.Save(filename); err != nil {
		s.logger.Error("failed to save trace", "file", filename, "err", err)
		return
	}
	s.logger.Info("trace saved",
		"file", filename,
		"frames", s.recorder.FrameCount(),
		"updates", s.recorder.InputCount(),
		"seed", s.seed,
	)

	if csvPath != "" {
		if err := s.recorder.SaveCSV(csvPath); err != nil {
			s.logger.Error("failed to save trace csv", "file", csvPath, "err", err)
		}
	}
}

// Controlled returns the body driven by the arrow keys, or nil when the world is empty
func (s *Sandbox) Controlled() *entity.Body {
	if s.physics.Len() == 0 {
		return nil
	}
	return s.physics.Bodies()[0]
}

// Physics returns the system being stepped
func (s *Sandbox) Physics() *system.PhysicsSystem { return s.physics }

// RunState returns whether the sandbox is advancing
func (s *Sandbox) RunState() state.RunState { return s.run }

// Recorder returns the active recorder, or nil when recording is off
func (s *Sandbox) Recorder() *replay.Recorder { return s.recorder }

// Seed returns the seed driving spawned bodies
func (s *Sandbox) Seed() int64 { return s.seed }

// Size returns the logical screen size
func (s *Sandbox) Size() (int, int) { return s.screenW, s.screenH }

// Draw renders the world bounds and every body
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	wb := s.physics.Bounds()
	vector.StrokeRect(screen, float32(wb.X), float32(wb.Y), float32(wb.Width), float32(wb.Height), 1, colorBounds, false)

	controlled := s.Controlled()
	for _, b := range s.physics.Bodies() {
		c := colorBody
		switch {
		case b == controlled:
			c = colorControlled
		case b.Blocked.Any():
			c = colorBlocked
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), c, false)
	}

	if s.run == state.RunPaused {
		vector.DrawFilledRect(screen, 0, 0, float32(s.screenW), float32(s.screenH), colorPaused, false)
	}

	stats := s.physics.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  bodies: %d  step: %d  %s\nmean speed: %.1f  kinetic: %.0f\nArrows: push | Click: spawn | Space: pause | .: step | R: reset | F5: save",
		s.cfg.Name, stats.Bodies, s.physics.Steps(), s.run, stats.MeanSpeed, stats.Kinetic,
	))
}

// OnEnter is called when entering this scene
func (s *Sandbox) OnEnter() {
	s.logger.Info("sandbox started",
		"name", s.cfg.Name,
		"bodies", s.physics.Len(),
		"step", s.dt,
		"seed", s.seed,
		"recording", s.recorder != nil,
	)
}

// OnExit is called when leaving this scene
func (s *Sandbox) OnExit() {
	if s.recorder != nil {
		s.recorder.Stop()
		s.saveRecording(s.recordPath, s.csvPath)
	}
}
