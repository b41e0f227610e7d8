package channels_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomlab/pulsekit"
	"github.com/atomlab/pulsekit/channels"
)

const deviceYAML = `
name: AnalogDevice
dmm_channels:
  - id: dmm_0
    bottom_detuning: -20
    clock_period: 4
    min_duration: 16
  - id: dmm_0
    bottom_detuning: -10
  - id: dmm_0
`

func TestLoadDeviceConfig_BuildsNamedDMMs(t *testing.T) {
	cfg, err := channels.LoadDeviceConfig(strings.NewReader(deviceYAML))
	require.NoError(t, err)
	require.Equal(t, "AnalogDevice", cfg.Name)

	dmms, err := cfg.BuildDMMs()
	require.NoError(t, err)
	require.Len(t, dmms, 3)
	require.Equal(t, "dmm_0", dmms[0].Name)
	require.Equal(t, "dmm_0_1", dmms[1].Name)
	require.Equal(t, "dmm_0_2", dmms[2].Name)

	bd, ok := dmms[0].DMM.BottomDetuning()
	require.True(t, ok)
	require.Equal(t, -20.0, bd)
	require.Equal(t, int64(4), dmms[0].DMM.ClockPeriod())

	_, ok = dmms[2].DMM.BottomDetuning()
	require.False(t, ok)
}

func TestLoadDeviceConfig_RejectsPositiveBottomDetuning(t *testing.T) {
	_, err := channels.LoadDeviceConfig(strings.NewReader(`
name: Bad
dmm_channels:
  - id: dmm_0
    bottom_detuning: 5
`))
	require.Error(t, err)
	require.True(t, pulsekit.HasCode(err, pulsekit.CodeInvalidConfig), "got %v", err)
	iss, ok := pulsekit.AsIssues(err)
	require.True(t, ok)
	require.Contains(t, iss[0].Path, "DMMChannels/0")
}

func TestLoadDeviceConfig_RejectsUnknownKeys(t *testing.T) {
	_, err := channels.LoadDeviceConfig(strings.NewReader(`
name: Bad
dmm_channels:
  - id: dmm_0
    botom_detuning: -5
`))
	require.Error(t, err)
	require.True(t, pulsekit.HasCode(err, pulsekit.CodeInvalidConfig), "got %v", err)
}

func TestLoadDeviceConfig_RequiresNameAndChannels(t *testing.T) {
	_, err := channels.LoadDeviceConfig(strings.NewReader(`name: OnlyAName`))
	require.Error(t, err)
	require.True(t, pulsekit.HasCode(err, pulsekit.CodeInvalidConfig), "got %v", err)

	_, err = channels.LoadDeviceConfig(strings.NewReader(`
dmm_channels:
  - id: dmm_0
`))
	require.Error(t, err)
	require.True(t, pulsekit.HasCode(err, pulsekit.CodeInvalidConfig), "got %v", err)
}
