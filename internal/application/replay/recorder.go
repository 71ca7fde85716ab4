package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/younwookim/arcadebody/internal/application/system"
	"github.com/younwookim/arcadebody/internal/domain/entity"
)

// ErrEmptyTrace is returned when saving a trace with no frames
var ErrEmptyTrace = errors.New("no frames to save")

// Recorder captures the input of every update and body snapshots after every step
type Recorder struct {
	trace     Trace
	recording bool
	frame     int
}

// NewRecorder creates a new recorder. stepSize is stored so a replay can use the same dt.
func NewRecorder(seed int64, name string, stepSize float64) *Recorder {
	return &Recorder{
		trace: Trace{
			Version:   TraceVersion,
			Seed:      seed,
			Name:      name,
			StartTime: time.Now().Format(time.RFC3339),
			StepSize:  stepSize,
			Inputs:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
			Frames:    make([]Frame, 0, 3600),
		},
		recording: true,
	}
}

// RecordInput records the input read on one update
func (r *Recorder) RecordInput(input system.InputState) {
	if !r.recording {
		return
	}
	r.trace.Inputs = append(r.trace.Inputs, NewFrameInput(r.frame, input))
	r.frame++
}

// Capture records the bodies' state for one step
func (r *Recorder) Capture(step int, bodies []*entity.Body) {
	if !r.recording {
		return
	}
	r.trace.Frames = append(r.trace.Frames, Snapshot(step, bodies))
}

// Save writes the trace to a file as indented JSON
func (r *Recorder) Save(filename string) (err error) {
	if len(r.trace.Frames) == 0 {
		return ErrEmptyTrace
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.trace); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	return nil
}

// SaveCSV writes the flattened trace to a CSV file
func (r *Recorder) SaveCSV(filename string) (err error) {
	if len(r.trace.Frames) == 0 {
		return ErrEmptyTrace
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return WriteCSV(file, r.trace)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.trace.Frames)
}

// InputCount returns the number of recorded updates
func (r *Recorder) InputCount() int {
	return len(r.trace.Inputs)
}

// GetTrace returns the recorded trace
func (r *Recorder) GetTrace() Trace {
	return r.trace
}

// WriteCSV writes one header row followed by one row per body per frame
func WriteCSV(w io.Writer, t Trace) error {
	rows := t.Rows()
	if len(rows) == 0 {
		return ErrEmptyTrace
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// SegmentFilename inserts a segment number before the extension:
// "run/trace.json" with n=2 becomes "run/trace.2.json".
func SegmentFilename(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(path, ext), n, ext)
}
