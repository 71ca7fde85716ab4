package system

import (
	"log/slog"

	"github.com/younwookim/arcadebody/internal/domain/entity"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EnergyReport summarizes body speeds for one step. A rising Kinetic total
// with no gravity or acceleration points to an integrator bug.
type EnergyReport struct {
	Bodies      int
	MeanSpeed   float64
	StdDevSpeed float64
	MaxSpeed    float64
	Kinetic     float64 // sum of 1/2 m v^2
}

// Measure computes an EnergyReport over bodies
func Measure(bodies []*entity.Body) EnergyReport {
	if len(bodies) == 0 {
		return EnergyReport{}
	}

	speeds := make([]float64, len(bodies))
	kinetic := make([]float64, len(bodies))
	for i, b := range bodies {
		v := b.Velocity.Len()
		speeds[i] = v
		kinetic[i] = 0.5 * b.Mass * v * v
	}

	r := EnergyReport{
		Bodies:   len(bodies),
		MaxSpeed: floats.Max(speeds),
		Kinetic:  floats.Sum(kinetic),
	}
	if len(speeds) > 1 {
		r.MeanSpeed, r.StdDevSpeed = stat.MeanStdDev(speeds, nil)
	} else {
		r.MeanSpeed = speeds[0]
	}
	return r
}

// LogValue implements slog.LogValuer for structured logging.
func (r EnergyReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bodies", r.Bodies),
		slog.Float64("mean_speed", r.MeanSpeed),
		slog.Float64("stddev_speed", r.StdDevSpeed),
		slog.Float64("max_speed", r.MaxSpeed),
		slog.Float64("kinetic", r.Kinetic),
	)
}
