package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
)

const crossingYAML = `
name: crossing
ticks: 120
seed: 7
auto_track: true
max_tracks: 1
interceptor_acceleration: 200
ownship:
  position: [0, 0]
  velocity: [0, 0]
targets:
  - name: bandit
    class: fighter
    position: [3000, 500]
    velocity: [-50, 100]
    acceleration: [5, -10]
    snr: 60
`

func TestParseScenario(t *testing.T) {
	t.Parallel()

	sc, err := ParseScenario([]byte(crossingYAML))
	require.NoError(t, err)

	assert.Equal(t, "crossing", sc.Name)
	assert.Equal(t, 120, sc.Ticks)
	assert.Equal(t, int64(7), sc.Seed)
	assert.True(t, sc.AutoTrack)
	assert.Equal(t, 1, sc.MaxTracks)
	assert.Equal(t, 200.0, sc.InterceptorAcceleration)

	require.Len(t, sc.Targets, 1)
	target := sc.Targets[0]
	assert.Equal(t, "bandit", target.Name)
	assert.Equal(t, sensor.ClassFighter, target.Class)
	assert.Equal(t, 60.0, target.SNR)
	assert.Equal(t, kinematics.Model{
		Pos: kinematics.Vec{X: 3000, Y: 500},
		Vel: kinematics.Vec{X: -50, Y: 100},
		Acc: kinematics.Vec{X: 5, Y: -10},
	}, target.Model())
	assert.Equal(t, kinematics.Model{}, sc.Ownship.Model())
}

func TestParseScenarioErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "no ticks", yaml: "name: x\n"},
		{name: "bad class", yaml: "ticks: 1\ntargets:\n  - name: a\n    class: zeppelin\n"},
		{name: "short vector", yaml: "ticks: 1\nownship:\n  position: [1]\n"},
		{name: "unnamed target", yaml: "ticks: 1\ntargets:\n  - class: fighter\n"},
		{name: "duplicate target", yaml: "ticks: 1\ntargets:\n  - name: a\n  - name: a\n"},
		{name: "negative tracks", yaml: "ticks: 1\nmax_tracks: -1\n"},
		{name: "negative interceptor", yaml: "ticks: 1\ninterceptor_acceleration: -5\n"},
		{name: "not yaml", yaml: "ticks: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseScenario([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crossing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(crossingYAML), 0o644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "crossing", sc.Name)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
