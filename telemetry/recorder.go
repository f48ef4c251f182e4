package telemetry

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one late-phase snapshot of the player and camera.
type Sample struct {
	Frame       int     `csv:"frame"`
	Time        float64 `csv:"time"`
	Steps       int     `csv:"physics_steps"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Z           float64 `csv:"z"`
	VX          float64 `csv:"vx"`
	VY          float64 `csv:"vy"`
	VZ          float64 `csv:"vz"`
	Speed       float64 `csv:"horizontal_speed"`
	State       string  `csv:"state"`
	Tier        string  `csv:"tier"`
	Grounded    bool    `csv:"grounded"`
	Jumping     bool    `csv:"jumping"`
	AirTime     float64 `csv:"air_time"`
	Interacting bool    `csv:"interacting"`
	CameraYaw   float64 `csv:"camera_yaw"`
	CameraPitch float64 `csv:"camera_pitch"`
	CameraZ     float64 `csv:"camera_z"`
}

// Recorder keeps every sample in memory and optionally streams them as CSV.
type Recorder struct {
	out           io.Writer
	headerWritten bool
	samples       []Sample
}

// NewRecorder streams to out as samples arrive. out may be nil.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

func (r *Recorder) Record(s Sample) error {
	r.samples = append(r.samples, s)
	if r.out == nil {
		return nil
	}

	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

func (r *Recorder) Samples() []Sample {
	return r.samples
}

// WriteCSV writes every recorded sample, with header, to w.
func (r *Recorder) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(r.samples, w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Summary condenses a run.
type Summary struct {
	Frames      int
	MeanSpeed   float64
	StdDevSpeed float64
	MaxSpeed    float64
	MaxAirTime  float64
	Jumps       int
	Landings    int
}

func (r *Recorder) Summary() Summary {
	s := Summary{Frames: len(r.samples)}
	if len(r.samples) == 0 {
		return s
	}

	speeds := make([]float64, len(r.samples))
	air := make([]float64, len(r.samples))
	for i, sample := range r.samples {
		speeds[i] = sample.Speed
		air[i] = sample.AirTime
		if i == 0 {
			continue
		}
		prev := r.samples[i-1]
		if sample.Jumping && !prev.Jumping {
			s.Jumps++
		}
		if sample.Grounded && !prev.Grounded {
			s.Landings++
		}
	}

	s.MeanSpeed = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		s.StdDevSpeed = stat.StdDev(speeds, nil)
	}
	s.MaxSpeed = floats.Max(speeds)
	s.MaxAirTime = floats.Max(air)
	return s
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("stddev_speed", s.StdDevSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("max_air_time", s.MaxAirTime),
		slog.Int("jumps", s.Jumps),
		slog.Int("landings", s.Landings),
	)
}
