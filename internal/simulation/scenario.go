package simulation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
)

// Vec2 is an [x, y] pair in scenario files.
type Vec2 [2]float64

func (v Vec2) Vec() kinematics.Vec { return kinematics.Vec{X: v[0], Y: v[1]} }

// UnmarshalYAML accepts a two-element sequence.
func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	var xs []float64
	if err := node.Decode(&xs); err != nil {
		return fmt.Errorf("line %d: vector: %w", node.Line, err)
	}
	if len(xs) != 2 {
		return fmt.Errorf("line %d: vector needs 2 components, got %d", node.Line, len(xs))
	}
	v[0], v[1] = xs[0], xs[1]
	return nil
}

// Body is a constant-acceleration starting state.
type Body struct {
	Position     Vec2 `yaml:"position"`
	Velocity     Vec2 `yaml:"velocity"`
	Acceleration Vec2 `yaml:"acceleration"`
}

func (b Body) Model() kinematics.Model {
	return kinematics.Model{Pos: b.Position.Vec(), Vel: b.Velocity.Vec(), Acc: b.Acceleration.Vec()}
}

// TargetSpec is one scripted target.
type TargetSpec struct {
	Name  string       `yaml:"name"`
	Class sensor.Class `yaml:"class"`
	Body  `yaml:",inline"`

	// SNR is the signal-to-noise ratio in dB at ReferenceRange.
	SNR float64 `yaml:"snr"`
}

// Scenario describes a headless run.
type Scenario struct {
	Name  string `yaml:"name"`
	Ticks int    `yaml:"ticks"`
	Seed  int64  `yaml:"seed"`

	// AutoTrack starts tracking new search contacts until MaxTracks are held.
	AutoTrack bool `yaml:"auto_track"`
	MaxTracks int  `yaml:"max_tracks"`

	// InterceptorAcceleration enables guided intercepts when positive.
	InterceptorAcceleration float64 `yaml:"interceptor_acceleration"`

	Ownship Body         `yaml:"ownship"`
	Targets []TargetSpec `yaml:"targets"`
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario for values the simulation cannot run.
func (sc *Scenario) Validate() error {
	if sc.Ticks <= 0 {
		return fmt.Errorf("scenario %q: ticks must be positive, got %d", sc.Name, sc.Ticks)
	}
	if sc.MaxTracks < 0 {
		return fmt.Errorf("scenario %q: max_tracks must not be negative", sc.Name)
	}
	if sc.InterceptorAcceleration < 0 {
		return fmt.Errorf("scenario %q: interceptor_acceleration must not be negative", sc.Name)
	}
	seen := make(map[string]bool, len(sc.Targets))
	for i, t := range sc.Targets {
		if t.Name == "" {
			return fmt.Errorf("scenario %q: target %d has no name", sc.Name, i)
		}
		if seen[t.Name] {
			return fmt.Errorf("scenario %q: duplicate target %q", sc.Name, t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
