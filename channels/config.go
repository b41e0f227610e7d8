package channels

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/atomlab/pulsekit"
)

// ChannelConfig mirrors one dmm_channels entry of a device configuration
// file.
type ChannelConfig struct {
	ID             string   `yaml:"id" validate:"required"`
	BottomDetuning *float64 `yaml:"bottom_detuning" validate:"omitempty,lt=0"`
	ClockPeriod    int64    `yaml:"clock_period" validate:"omitempty,gt=0"`
	MinDuration    int64    `yaml:"min_duration" validate:"omitempty,gt=0"`
	MaxDuration    *int64   `yaml:"max_duration" validate:"omitempty,gt=0"`
	MinAvgAmp      float64  `yaml:"min_avg_amp" validate:"gte=0"`
	ModBandwidth   *float64 `yaml:"mod_bandwidth" validate:"omitempty,gt=0"`
}

// DeviceConfig is the YAML description of a device's DMM channels.
type DeviceConfig struct {
	Name        string          `yaml:"name" validate:"required"`
	DMMChannels []ChannelConfig `yaml:"dmm_channels" validate:"min=1,dive"`
}

var structValidator = validator.New()

// LoadDeviceConfig decodes and validates a device channel configuration.
// Unknown YAML keys are rejected; struct-level violations come back as
// invalid_config issues.
func LoadDeviceConfig(r io.Reader) (*DeviceConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg DeviceConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, pulsekit.Issues{{
			Code:    pulsekit.CodeInvalidConfig,
			Path:    "/",
			Message: fmt.Sprintf("invalid YAML: %v", err),
			Cause:   err,
		}}
	}
	if err := structValidator.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		var iss pulsekit.Issues
		for _, fe := range verrs {
			iss = pulsekit.AppendIssues(iss, pulsekit.Issue{
				Code:    pulsekit.CodeInvalidConfig,
				Path:    pointerFromNamespace(fe.Namespace()),
				Message: fmt.Sprintf("constraint %q failed on %s", fe.Tag(), fe.Field()),
				Params:  map[string]any{"tag": fe.Tag(), "value": fe.Value()},
			})
		}
		return nil, iss
	}
	return &cfg, nil
}

// pointerFromNamespace turns a validator namespace such as
// "DeviceConfig.DMMChannels[0].BottomDetuning" into a JSON-Pointer-ish path.
func pointerFromNamespace(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the root struct name
	}
	var b strings.Builder
	for _, p := range parts {
		p = strings.ReplaceAll(p, "[", "/")
		p = strings.ReplaceAll(p, "]", "")
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// NamedDMM pairs a resolved channel name with its descriptor.
type NamedDMM struct {
	Name string
	DMM  DMM
}

// BuildDMMs constructs the configured DMMs in declaration order, assigning
// names with the counted-suffix scheme.
func (c *DeviceConfig) BuildDMMs() ([]NamedDMM, error) {
	names := make([]string, 0, len(c.DMMChannels))
	out := make([]NamedDMM, 0, len(c.DMMChannels))
	for i, cc := range c.DMMChannels {
		d, err := NewDMM(DMMConfig{
			BottomDetuning: cc.BottomDetuning,
			ClockPeriod:    cc.ClockPeriod,
			MinDuration:    cc.MinDuration,
			MaxDuration:    cc.MaxDuration,
			MinAvgAmp:      cc.MinAvgAmp,
			ModBandwidth:   cc.ModBandwidth,
		})
		if err != nil {
			if iss, ok := pulsekit.AsIssues(err); ok {
				for j := range iss {
					iss[j].Path = fmt.Sprintf("/dmm_channels/%d%s", i, iss[j].Path)
				}
				return nil, iss
			}
			return nil, err
		}
		name := DMMName(cc.ID, names)
		names = append(names, name)
		out = append(out, NamedDMM{Name: name, DMM: d})
	}
	return out, nil
}
