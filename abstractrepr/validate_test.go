package abstractrepr_test

import (
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/atomlab/pulsekit"
	"github.com/atomlab/pulsekit/abstractrepr"
)

const validDevice = `{
	"name": "AnalogDevice",
	"dimensions": 2,
	"rydberg_level": 70,
	"min_atom_distance": 4,
	"max_atom_num": 25,
	"channels": [
		{
			"id": "rydberg_global",
			"basis": "ground-rydberg",
			"addressing": "Global",
			"max_abs_detuning": 125.66,
			"max_amp": 15.71,
			"clock_period": 4,
			"min_duration": 16,
			"max_duration": 100000000
		}
	],
	"dmm_objects": [
		{"bottom_detuning": -20, "clock_period": 4, "min_duration": 16}
	]
}`

const validRegister = `[
	{"name": "q0", "x": 0, "y": 0},
	{"name": "q1", "x": 4, "y": 0}
]`

const validNoise = `{"runs": 10, "samples_per_run": 5, "noise_types": ["SPAM", "doppler"]}`

// Missing the required samples_per_run field.
const invalidNoise = `{"runs": 10}`

const validLayout = `{"coordinates": [[0, 0], [4, 0], [0, 4]], "slug": "triangle"}`

var validSequence = `{
	"version": "1",
	"name": "demo",
	"device": ` + validDevice + `,
	"register": ` + validRegister + `,
	"layout": ` + validLayout + `,
	"channels": {"global": "rydberg_global", "dmm_0": "dmm_0"},
	"operations": [
		{"op": "delay", "channel": "global", "time": 0, "duration": 100},
		{"op": "pulse", "channel": "global", "time": 100, "duration": 52, "phase": 0}
	]
}`

// Sequence whose embedded device violates the device schema (rydberg_level
// out of range), exercising cross-schema references on both backends.
var invalidSequence = `{
	"version": "1",
	"device": {"name": "X", "dimensions": 2, "rydberg_level": 5, "min_atom_distance": 4, "channels": []},
	"register": ` + validRegister + `,
	"channels": {},
	"operations": []
}`

func allBackends(t *testing.T) map[string]abstractrepr.Backend {
	t.Helper()
	compiled, err := abstractrepr.NewCompiledBackend()
	require.NoError(t, err)
	registry, err := abstractrepr.NewRegistryBackend(abstractrepr.GenerationCurrent)
	require.NoError(t, err)
	legacy, err := abstractrepr.NewRegistryBackend(abstractrepr.GenerationLegacy)
	require.NoError(t, err)
	return map[string]abstractrepr.Backend{
		"compiled":        compiled,
		"registry":        registry,
		"registry-legacy": legacy,
	}
}

func TestBackends_AgreeOnOutcome(t *testing.T) {
	cases := []struct {
		name    string
		obj     string
		kind    abstractrepr.Kind
		wantErr bool
	}{
		{"valid device", validDevice, abstractrepr.KindDevice, false},
		{"valid register", validRegister, abstractrepr.KindRegister, false},
		{"valid layout", validLayout, abstractrepr.KindLayout, false},
		{"valid noise", validNoise, abstractrepr.KindNoise, false},
		{"valid sequence", validSequence, abstractrepr.KindSequence, false},
		{"noise missing required", invalidNoise, abstractrepr.KindNoise, true},
		{"sequence with bad device", invalidSequence, abstractrepr.KindSequence, true},
		{"device as layout", validDevice, abstractrepr.KindLayout, true},
	}
	for name, b := range allBackends(t) {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				var obj any
				require.NoError(t, json.Unmarshal([]byte(tc.obj), &obj))
				err := b.Validate(obj, tc.kind)
				if tc.wantErr {
					require.Error(t, err)
					require.True(t, pulsekit.HasCode(err, pulsekit.CodeSchemaViolation),
						"expected schema_violation issues, got %v", err)
				} else {
					require.NoError(t, err)
				}
			})
		}
	}
}

func TestValidate_ParseErrorIsDistinct(t *testing.T) {
	err := abstractrepr.Validate(`{"runs": 10,`, abstractrepr.KindNoise)
	require.Error(t, err)
	require.True(t, pulsekit.HasCode(err, pulsekit.CodeParseError))
	require.False(t, pulsekit.HasCode(err, pulsekit.CodeSchemaViolation))
}

func TestValidate_UnknownKind(t *testing.T) {
	err := abstractrepr.Validate(`{}`, abstractrepr.Kind("pulses"))
	require.Error(t, err)
	require.True(t, pulsekit.HasCode(err, pulsekit.CodeUnknownKind))
}

func TestValidate_SchemaViolationCarriesPath(t *testing.T) {
	err := abstractrepr.Validate(invalidNoise, abstractrepr.KindNoise)
	require.Error(t, err)
	iss, ok := pulsekit.AsIssues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	for _, it := range iss {
		require.Equal(t, pulsekit.CodeSchemaViolation, it.Code)
		require.NotEmpty(t, it.Path)
	}
}

func TestValidate_SetBackendWins(t *testing.T) {
	compiled, err := abstractrepr.NewCompiledBackend()
	require.NoError(t, err)
	abstractrepr.SetBackend(compiled)
	require.NoError(t, abstractrepr.Validate(validDevice, abstractrepr.KindDevice))
	require.Error(t, abstractrepr.Validate(invalidNoise, abstractrepr.KindNoise))
}

func TestParseKind(t *testing.T) {
	for _, k := range abstractrepr.Kinds() {
		got, ok := abstractrepr.ParseKind(string(k))
		require.True(t, ok)
		require.Equal(t, k, got)
	}
	_, ok := abstractrepr.ParseKind("Sequence")
	require.False(t, ok)
}

// Compiled validators are reused read-only; concurrent validation must be
// safe once the backend exists.
func TestValidate_ConcurrentUse(t *testing.T) {
	require.NoError(t, abstractrepr.Validate(validDevice, abstractrepr.KindDevice))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if err := abstractrepr.Validate(validDevice, abstractrepr.KindDevice); err != nil {
					t.Errorf("unexpected failure: %v", err)
					return
				}
				if err := abstractrepr.Validate(invalidNoise, abstractrepr.KindNoise); err == nil {
					t.Errorf("expected noise validation to fail")
					return
				}
			}
		}()
	}
	wg.Wait()
}
