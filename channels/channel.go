// Package channels defines immutable descriptors for the control lines of a
// neutral-atom device and their pulse admission rules.
package channels

import (
	"fmt"
	"math"

	"github.com/atomlab/pulsekit"
	"github.com/atomlab/pulsekit/pulse"
)

// Addressing is a channel's targeting mode.
type Addressing string

const (
	AddressingGlobal Addressing = "Global"
	AddressingLocal  Addressing = "Local"
)

// Basis names the atomic transition a channel drives.
type Basis string

const (
	BasisGroundRydberg Basis = "ground-rydberg"
	BasisDigital       Basis = "digital"
	BasisXY            Basis = "XY"
)

// Channel describes a control line's fixed capability limits. The zero value
// is not usable; construct through a validating factory such as NewDMM.
type Channel struct {
	addressing     Addressing
	basis          Basis
	maxAbsDetuning *float64 // rad/µs
	maxAmp         float64  // rad/µs
	minAvgAmp      float64  // rad/µs
	clockPeriod    int64    // ns
	minDuration    int64    // ns
	maxDuration    *int64   // ns
	modBandwidth   *float64 // MHz
}

// Addressing reports the channel's targeting mode.
func (c Channel) Addressing() Addressing { return c.addressing }

// Basis reports the addressed transition.
func (c Channel) Basis() Basis { return c.basis }

// MaxAmp is the highest amplitude a pulse sample may reach, in rad/µs.
func (c Channel) MaxAmp() float64 { return c.maxAmp }

// MaxAbsDetuning is the absolute detuning bound in rad/µs, when the channel
// has one.
func (c Channel) MaxAbsDetuning() (float64, bool) {
	if c.maxAbsDetuning == nil {
		return 0, false
	}
	return *c.maxAbsDetuning, true
}

// ClockPeriod is the duration of a clock cycle in ns; instruction durations
// must be multiples of it.
func (c Channel) ClockPeriod() int64 { return c.clockPeriod }

// MinDuration is the shortest duration an instruction can take, in ns.
func (c Channel) MinDuration() int64 { return c.minDuration }

// MaxDuration is the longest duration an instruction can take, when bounded.
func (c Channel) MaxDuration() (int64, bool) {
	if c.maxDuration == nil {
		return 0, false
	}
	return *c.maxDuration, true
}

// ModBandwidth is the modulation bandwidth at -3dB in MHz, when known.
func (c Channel) ModBandwidth() (float64, bool) {
	if c.modBandwidth == nil {
		return 0, false
	}
	return *c.modBandwidth, true
}

// ValidatePulse runs the shape checks every channel applies: duration against
// the clock and the duration bounds, amplitude against the channel maximum,
// detuning against the absolute bound when the channel has one.
func (c Channel) ValidatePulse(p pulse.Pulse) error {
	var iss pulsekit.Issues
	d := p.Duration()
	if c.clockPeriod > 0 && d%c.clockPeriod != 0 {
		iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
			Code:    pulsekit.CodeInvalidPulse,
			Path:    "/duration",
			Message: fmt.Sprintf("duration %d ns is not a multiple of the clock period (%d ns)", d, c.clockPeriod),
		})
	}
	if d < c.minDuration {
		iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
			Code:    pulsekit.CodeInvalidPulse,
			Path:    "/duration",
			Message: fmt.Sprintf("duration %d ns is below the minimum of %d ns", d, c.minDuration),
		})
	}
	if c.maxDuration != nil && d > *c.maxDuration {
		iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
			Code:    pulsekit.CodeInvalidPulse,
			Path:    "/duration",
			Message: fmt.Sprintf("duration %d ns is above the maximum of %d ns", d, *c.maxDuration),
		})
	}
	amp := p.Amplitude().Samples()
	for i, a := range amp {
		if round6(a) > c.maxAmp {
			iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
				Code:    pulsekit.CodeInvalidPulse,
				Path:    "/amplitude",
				Message: fmt.Sprintf("amplitude goes over the channel maximum (%g rad/µs)", c.maxAmp),
				Params:  map[string]any{"sample": i, "got": a},
			})
			break
		}
	}
	if c.minAvgAmp > 0 {
		if avg := mean(amp); avg > 0 && avg < c.minAvgAmp {
			iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
				Code:    pulsekit.CodeInvalidPulse,
				Path:    "/amplitude",
				Message: fmt.Sprintf("average amplitude is below the channel minimum (%g rad/µs)", c.minAvgAmp),
				Params:  map[string]any{"got": avg},
			})
		}
	}
	if c.maxAbsDetuning != nil {
		for i, s := range p.Detuning().Samples() {
			if math.Abs(round6(s)) > *c.maxAbsDetuning {
				iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
					Code:    pulsekit.CodeInvalidPulse,
					Path:    "/detuning",
					Message: fmt.Sprintf("detuning goes out of the channel range (±%g rad/µs)", *c.maxAbsDetuning),
					Params:  map[string]any{"sample": i, "got": s},
				})
				break
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// round6 rounds to 6 decimal places, shielding comparisons from float noise
// accumulated while sampling.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}
