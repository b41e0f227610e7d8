// Package pulse defines the waveform and pulse value objects carried by
// channel instructions.
package pulse

import (
	"fmt"

	"github.com/atomlab/pulsekit"
)

// Waveform is the modulation of a channel parameter over time, sampled once
// per nanosecond.
type Waveform interface {
	// Duration is the waveform length in ns.
	Duration() int64
	// Samples returns one value per ns. The slice is freshly allocated and
	// safe for the caller to mutate.
	Samples() []float64
}

// Constant holds a fixed value for its whole duration.
type Constant struct {
	duration int64
	value    float64
}

// NewConstant builds a constant waveform. Duration must be positive.
func NewConstant(duration int64, value float64) (Constant, error) {
	if duration <= 0 {
		return Constant{}, issuef(pulsekit.CodeInvalidPulse, "/duration", "duration must be positive, got %d", duration)
	}
	return Constant{duration: duration, value: value}, nil
}

func (w Constant) Duration() int64 { return w.duration }

func (w Constant) Samples() []float64 {
	s := make([]float64, w.duration)
	for i := range s {
		s[i] = w.value
	}
	return s
}

// Ramp interpolates linearly between a start and a stop value.
type Ramp struct {
	duration    int64
	start, stop float64
}

// NewRamp builds a linear ramp waveform. Duration must be positive.
func NewRamp(duration int64, start, stop float64) (Ramp, error) {
	if duration <= 0 {
		return Ramp{}, issuef(pulsekit.CodeInvalidPulse, "/duration", "duration must be positive, got %d", duration)
	}
	return Ramp{duration: duration, start: start, stop: stop}, nil
}

func (w Ramp) Duration() int64 { return w.duration }

func (w Ramp) Samples() []float64 {
	s := make([]float64, w.duration)
	if w.duration == 1 {
		s[0] = w.start
		return s
	}
	step := (w.stop - w.start) / float64(w.duration-1)
	for i := range s {
		s[i] = w.start + float64(i)*step
	}
	return s
}

// Custom carries explicit per-ns samples.
type Custom struct {
	samples []float64
}

// NewCustom builds a waveform from explicit samples, one per ns. The input
// slice is copied.
func NewCustom(samples []float64) (Custom, error) {
	if len(samples) == 0 {
		return Custom{}, issuef(pulsekit.CodeInvalidPulse, "/samples", "a custom waveform needs at least one sample")
	}
	cp := make([]float64, len(samples))
	copy(cp, samples)
	return Custom{samples: cp}, nil
}

func (w Custom) Duration() int64 { return int64(len(w.samples)) }

func (w Custom) Samples() []float64 {
	cp := make([]float64, len(w.samples))
	copy(cp, w.samples)
	return cp
}

func issuef(code, path, format string, args ...any) pulsekit.Issues {
	return pulsekit.Issues{{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}}
}
