package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/arcadebody/internal/application/system"
	"github.com/younwookim/arcadebody/internal/domain/entity"
)

const testDT = 1.0 / 60.0

// createTestSystem builds two bouncing bodies in a 100x100 box
func createTestSystem() *system.PhysicsSystem {
	sys := system.NewPhysicsSystem(entity.Rect{Width: 100, Height: 100}, system.NewArcadeMotion(entity.Vec2{Y: 400}), nil)
	for i := 0; i < 2; i++ {
		b := entity.NewBody(entity.NewSprite(20+float64(i)*40, 10, 10, 10))
		b.Velocity = entity.Vec2{X: 120 - float64(i)*240, Y: -50}
		b.Bounce = entity.Vec2{X: 0.8, Y: 0.6}
		b.CollideWorldBounds = true
		sys.Add(b)
	}
	return sys
}

func record(steps int) Trace {
	sys := createTestSystem()
	rec := NewRecorder(42, "test", testDT)
	for i := 0; i < steps; i++ {
		sys.Step(testDT)
		rec.Capture(sys.Steps(), sys.Bodies())
	}
	return rec.GetTrace()
}

func TestSnapshot(t *testing.T) {
	b := entity.NewBody(entity.NewSprite(3, 4, 8, 8))
	b.Velocity = entity.Vec2{X: 1, Y: -2}
	b.Rotation = 30
	b.Blocked.Down = true
	b.Blocked.Left = true

	f := Snapshot(7, []*entity.Body{b})

	assert.Equal(t, 7, f.Step)
	require.Len(t, f.Bodies, 1)
	assert.Equal(t, BodyState{ID: 0, X: 3, Y: 4, VX: 1, VY: -2, Rotation: 30, Blocked: "dl"}, f.Bodies[0])
}

func TestFaceMask(t *testing.T) {
	tests := []struct {
		faces entity.Faces
		want  string
	}{
		{entity.NoFaces(), ""},
		{entity.Faces{Up: true}, "u"},
		{entity.Faces{Down: true, Right: true}, "dr"},
		{entity.Faces{Up: true, Down: true, Left: true, Right: true}, "udlr"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FaceMask(tt.faces))
		})
	}
}

func TestRecorder_Capture(t *testing.T) {
	trace := record(30)

	assert.Equal(t, TraceVersion, trace.Version)
	assert.Equal(t, int64(42), trace.Seed)
	assert.Equal(t, testDT, trace.StepSize)
	require.Len(t, trace.Frames, 30)
	for i, f := range trace.Frames {
		assert.Equal(t, i+1, f.Step)
		assert.Len(t, f.Bodies, 2)
	}
}

func TestRecorder_Stop(t *testing.T) {
	sys := createTestSystem()
	rec := NewRecorder(1, "stop", testDT)

	rec.Capture(0, sys.Bodies())
	rec.Stop()
	rec.Capture(1, sys.Bodies())

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 1, rec.FrameCount())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(1, "empty", testDT)

	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrEmptyTrace)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	sys := createTestSystem()
	rec := NewRecorder(7, "roundtrip", testDT)
	for i := 0; i < 10; i++ {
		sys.Step(testDT)
		rec.Capture(sys.Steps(), sys.Bodies())
	}

	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadTrace(path)
	require.NoError(t, err)

	step, ok := Compare(rec.GetTrace(), *loaded)
	assert.True(t, ok, "diverged at step %d", step)
	assert.Equal(t, "roundtrip", loaded.Name)
}

func TestRecorder_SaveCreateError(t *testing.T) {
	rec := NewRecorder(1, "bad path", testDT)
	sys := createTestSystem()
	sys.Step(testDT)
	rec.Capture(sys.Steps(), sys.Bodies())

	missing := filepath.Join(t.TempDir(), "no-such-dir", "trace.json")
	assert.ErrorContains(t, rec.Save(missing), "failed to create file")
	assert.ErrorContains(t, rec.SaveCSV(missing), "failed to create file")
}

func TestRecorder_RecordInput(t *testing.T) {
	rec := NewRecorder(1, "input", testDT)

	rec.RecordInput(system.InputState{})
	rec.RecordInput(system.InputState{Right: true, MouseClick: true, MouseX: 5, MouseY: 6})
	rec.Stop()
	rec.RecordInput(system.InputState{Left: true})

	trace := rec.GetTrace()
	require.Equal(t, 2, rec.InputCount())
	assert.Equal(t, FrameInput{F: 0}, trace.Inputs[0])
	assert.Equal(t, FrameInput{F: 1, R: true, MC: true, MX: 5, MY: 6}, trace.Inputs[1])
}

func TestFrameInput_State(t *testing.T) {
	in := system.InputState{
		Left: true, Up: true, Pause: true, Reset: true, Save: true,
		MouseX: 12, MouseY: 34, MouseClick: true,
	}

	fi := NewFrameInput(9, in)

	assert.Equal(t, 9, fi.F)
	assert.Equal(t, in, fi.State())
}

func TestRecorder_InputsSurviveSave(t *testing.T) {
	sys := createTestSystem()
	rec := NewRecorder(3, "inputs", testDT)
	for i := 0; i < 4; i++ {
		rec.RecordInput(system.InputState{Down: i%2 == 0})
		sys.Step(testDT)
		rec.Capture(sys.Steps(), sys.Bodies())
	}

	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, rec.GetTrace().Inputs, loaded.Inputs)
}

func TestSegmentFilename(t *testing.T) {
	assert.Equal(t, filepath.Join("run", "trace.2.json"), SegmentFilename(filepath.Join("run", "trace.json"), 2))
	assert.Equal(t, "trace.1.csv", SegmentFilename("trace.csv", 1))
	assert.Equal(t, "trace.3", SegmentFilename("trace", 3))
}

func TestLoadTrace_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTrace(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadTrace(bad)
	assert.ErrorContains(t, err, "failed to decode trace")
}

func TestWriteCSV(t *testing.T) {
	trace := record(5)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trace))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "step,id,x,y,vx,vy,rotation,blocked", lines[0])
	assert.Len(t, lines, 1+5*2)

	var rows []Row
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &rows))
	assert.Equal(t, trace.Rows(), rows)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, Trace{}), ErrEmptyTrace)
}

func TestRecorder_SaveCSV(t *testing.T) {
	sys := createTestSystem()
	rec := NewRecorder(1, "csv", testDT)
	sys.Step(testDT)
	rec.Capture(sys.Steps(), sys.Bodies())

	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, rec.SaveCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "step,id,"))
}

func TestCompare(t *testing.T) {
	a := record(60)
	b := record(60)

	step, ok := Compare(a, b)
	assert.True(t, ok, "same inputs give the same trace")
	assert.Equal(t, -1, step)

	b.Frames[20].Bodies[1].X += 1e-9
	step, ok = Compare(a, b)
	assert.False(t, ok)
	assert.Equal(t, a.Frames[20].Step, step)
}

func TestCompare_Length(t *testing.T) {
	a := record(10)
	b := record(12)

	step, ok := Compare(a, b)
	assert.False(t, ok)
	assert.Equal(t, b.Frames[10].Step, step)

	step, ok = Compare(b, a)
	assert.False(t, ok)
	assert.Equal(t, b.Frames[10].Step, step)
}

func TestReplayer_GetInput(t *testing.T) {
	trace := Trace{
		Seed:     42,
		StepSize: testDT,
		Inputs: []FrameInput{
			{F: 0},
			{F: 1, R: true},
			{F: 2, MC: true, MX: 7, MY: 8},
		},
	}
	replayer := NewReplayer(trace)
	assert.Equal(t, 3, replayer.TotalFrames())
	assert.Equal(t, int64(42), replayer.Seed())
	assert.Equal(t, testDT, replayer.StepSize())

	var got []system.InputState
	for !replayer.IsFinished() {
		in, ok := replayer.GetInput()
		require.True(t, ok)
		got = append(got, in)
	}

	assert.Equal(t, []system.InputState{
		{},
		{Right: true},
		{MouseClick: true, MouseX: 7, MouseY: 8},
	}, got)
	assert.Equal(t, 3, replayer.CurrentFrame())

	in, ok := replayer.GetInput()
	assert.False(t, ok)
	assert.Equal(t, system.InputState{}, in)
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(Trace{Inputs: []FrameInput{{F: 0, L: true}, {F: 1}}})

	in, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, in.Left)
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	in, _ = replayer.GetInput()
	assert.True(t, in.Left)
}
