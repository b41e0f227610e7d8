package pulse

import (
	"github.com/atomlab/pulsekit"
)

// Pulse pairs an amplitude and a detuning waveform of equal duration with a
// phase offset. Immutable once constructed; channels decide whether they can
// execute it.
type Pulse struct {
	amplitude Waveform
	detuning  Waveform
	phase     float64
}

// New builds a pulse after checking its shape: both waveforms present, equal
// durations, and non-negative amplitude samples.
func New(amplitude, detuning Waveform, phase float64) (Pulse, error) {
	if amplitude == nil || detuning == nil {
		return Pulse{}, issuef(pulsekit.CodeInvalidPulse, "/", "a pulse needs both an amplitude and a detuning waveform")
	}
	if amplitude.Duration() != detuning.Duration() {
		return Pulse{}, issuef(pulsekit.CodeInvalidPulse, "/duration",
			"amplitude and detuning durations differ (%d ns vs %d ns)",
			amplitude.Duration(), detuning.Duration())
	}
	for i, a := range amplitude.Samples() {
		if a < 0 {
			return Pulse{}, issuef(pulsekit.CodeInvalidPulse, "/amplitude",
				"amplitude must not be negative (sample %d is %g)", i, a)
		}
	}
	return Pulse{amplitude: amplitude, detuning: detuning, phase: phase}, nil
}

// ConstantDetuning builds the pulse shape a detuning channel receives: zero
// amplitude with a constant detuning.
func ConstantDetuning(duration int64, detuning, phase float64) (Pulse, error) {
	amp, err := NewConstant(duration, 0)
	if err != nil {
		return Pulse{}, err
	}
	det, err := NewConstant(duration, detuning)
	if err != nil {
		return Pulse{}, err
	}
	return New(amp, det, phase)
}

// Amplitude returns the amplitude waveform (rad/µs).
func (p Pulse) Amplitude() Waveform { return p.amplitude }

// Detuning returns the detuning waveform (rad/µs).
func (p Pulse) Detuning() Waveform { return p.detuning }

// Phase returns the phase offset in rad.
func (p Pulse) Phase() float64 { return p.phase }

// Duration is the pulse length in ns.
func (p Pulse) Duration() int64 {
	if p.amplitude == nil {
		return 0
	}
	return p.amplitude.Duration()
}
