package channels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomlab/pulsekit"
	"github.com/atomlab/pulsekit/pulse"
)

// DMMConfig carries the caller-adjustable parameters of a detuning map
// modulator. Everything else about the channel is fixed.
type DMMConfig struct {
	// BottomDetuning is the minimum possible detuning in rad/µs; must be
	// below zero when set.
	BottomDetuning *float64
	// ClockPeriod is the clock cycle duration in ns (default 1).
	ClockPeriod int64
	// MinDuration is the shortest instruction duration in ns (default 1).
	MinDuration int64
	// MaxDuration is the longest instruction duration in ns, when bounded.
	MaxDuration *int64
	// MinAvgAmp is the minimum average amplitude of a pulse when not zero.
	MinAvgAmp float64
	// ModBandwidth is the modulation bandwidth at -3dB in MHz.
	ModBandwidth *float64
}

// DMM is a detuning map modulator: a Global channel on the ground-rydberg
// basis whose pulses carry only detuning. Its maximum amplitude is fixed to
// zero and its detuning must stay within [bottom detuning, 0].
type DMM struct {
	Channel
	bottomDetuning *float64
}

// NewDMM validates cfg and builds the descriptor. The value is read-only
// afterwards.
func NewDMM(cfg DMMConfig) (DMM, error) {
	if cfg.BottomDetuning != nil && *cfg.BottomDetuning > 0 {
		return DMM{}, pulsekit.Issues{{
			Code:    pulsekit.CodeInvalidConfig,
			Path:    "/bottom_detuning",
			Message: "bottom_detuning must be negative",
			Params:  map[string]any{"got": *cfg.BottomDetuning},
		}}
	}
	if cfg.ClockPeriod < 0 || cfg.MinDuration < 0 {
		return DMM{}, pulsekit.Issues{{
			Code:    pulsekit.CodeInvalidConfig,
			Path:    "/",
			Message: "clock_period and min_duration must be positive",
		}}
	}
	clockPeriod := cfg.ClockPeriod
	if clockPeriod == 0 {
		clockPeriod = 1
	}
	minDuration := cfg.MinDuration
	if minDuration == 0 {
		minDuration = 1
	}
	return DMM{
		Channel: Channel{
			addressing:   AddressingGlobal,
			basis:        BasisGroundRydberg,
			maxAmp:       0,
			minAvgAmp:    cfg.MinAvgAmp,
			clockPeriod:  clockPeriod,
			minDuration:  minDuration,
			maxDuration:  cfg.MaxDuration,
			modBandwidth: cfg.ModBandwidth,
		},
		bottomDetuning: cfg.BottomDetuning,
	}, nil
}

// BottomDetuning is the channel's detuning floor in rad/µs, when set.
func (d DMM) BottomDetuning() (float64, bool) {
	if d.bottomDetuning == nil {
		return 0, false
	}
	return *d.bottomDetuning, true
}

// UndefinedFields lists the optional capability fields left unset.
func (d DMM) UndefinedFields() []string {
	var out []string
	if d.bottomDetuning == nil {
		out = append(out, "bottom_detuning")
	}
	if d.maxDuration == nil {
		out = append(out, "max_duration")
	}
	return out
}

// ValidatePulse checks whether a pulse can be executed on this DMM: the
// generic channel checks first, then the detuning range. Samples are rounded
// to 6 decimal places so a detuning that is zero up to float noise passes.
func (d DMM) ValidatePulse(p pulse.Pulse) error {
	if err := d.Channel.ValidatePulse(p); err != nil {
		return err
	}
	bottom, hasBottom := d.BottomDetuning()
	for i, s := range p.Detuning().Samples() {
		r := round6(s)
		if r > 0 {
			return pulsekit.Issues{{
				Code:    pulsekit.CodePulseRange,
				Path:    "/detuning",
				Message: "the detuning in a DMM must not be positive",
				Params:  map[string]any{"sample": i, "got": s},
			}}
		}
		if hasBottom && r < bottom {
			return pulsekit.Issues{{
				Code:    pulsekit.CodePulseRange,
				Path:    "/detuning",
				Message: fmt.Sprintf("the detuning goes below the bottom detuning of the DMM (%g rad/µs)", bottom),
				Params:  map[string]any{"sample": i, "got": s},
			}}
		}
	}
	return nil
}

// DMMIDFromName derives the hardware id a channel name refers to. Generated
// names append "_N" with N >= 1 to the id; hardware ids end in "_0" or carry
// no numeric suffix, so a trailing "_N" with N >= 1 is always a generated
// suffix.
func DMMIDFromName(name string) string {
	i := strings.LastIndex(name, "_")
	if i <= 0 || i == len(name)-1 {
		return name
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil || n < 1 {
		return name
	}
	return name[:i]
}

// DMMName returns the channel name under which to add id next to the existing
// channel names: the bare id for the first use, then "id_N" with N counting
// the names already reducible to id.
func DMMName(id string, existing []string) string {
	count := 0
	for _, name := range existing {
		if DMMIDFromName(name) == id {
			count++
		}
	}
	if count == 0 {
		return id
	}
	return fmt.Sprintf("%s_%d", id, count)
}
