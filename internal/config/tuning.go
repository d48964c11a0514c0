package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// Root selection policies accepted by intercept_root_policy.
const (
	RootPolicyFixedIndex       = "fixed_index"
	RootPolicyEarliestPositive = "earliest_positive"
)

// TuningConfig represents the root configuration for the targeting core.
// All values are SI: metres, seconds, radians.
type TuningConfig struct {
	// Simulation
	TickLength *float64 `json:"tick_length,omitempty"`

	// Sensor beam
	SensorMaxRange  *float64 `json:"sensor_max_range,omitempty"`
	SearchBeamWidth *float64 `json:"search_beam_width,omitempty"`
	TrackBeamWidth  *float64 `json:"track_beam_width,omitempty"`

	// Sensor error model
	BearingNoiseFactor  *float64 `json:"bearing_noise_factor,omitempty"`
	DistanceNoiseFactor *float64 `json:"distance_noise_factor,omitempty"`
	VelocityNoiseFactor *float64 `json:"velocity_noise_factor,omitempty"`
	NoiseRNGRange       *float64 `json:"noise_rng_range,omitempty"`

	// Firing solution
	InterceptRootPolicy *string  `json:"intercept_root_policy,omitempty"`
	ProjectileSpeed     *float64 `json:"projectile_speed,omitempty"`

	// Journal
	JournalEveryTicks *int `json:"journal_every_ticks,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	empty := EmptyTuningConfig()
	return &TuningConfig{
		TickLength:          ptrFloat64(empty.GetTickLength()),
		SensorMaxRange:      ptrFloat64(empty.GetSensorMaxRange()),
		SearchBeamWidth:     ptrFloat64(empty.GetSearchBeamWidth()),
		TrackBeamWidth:      ptrFloat64(empty.GetTrackBeamWidth()),
		BearingNoiseFactor:  ptrFloat64(empty.GetBearingNoiseFactor()),
		DistanceNoiseFactor: ptrFloat64(empty.GetDistanceNoiseFactor()),
		VelocityNoiseFactor: ptrFloat64(empty.GetVelocityNoiseFactor()),
		NoiseRNGRange:       ptrFloat64(empty.GetNoiseRNGRange()),
		InterceptRootPolicy: ptrString(empty.GetInterceptRootPolicy()),
		ProjectileSpeed:     ptrFloat64(empty.GetProjectileSpeed()),
		JournalEveryTicks:   ptrInt(empty.GetJournalEveryTicks()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/tools/journal-report/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	positive := []struct {
		name string
		v    *float64
	}{
		{"tick_length", c.TickLength},
		{"sensor_max_range", c.SensorMaxRange},
		{"projectile_speed", c.ProjectileSpeed},
		{"noise_rng_range", c.NoiseRNGRange},
	}
	for _, p := range positive {
		if p.v != nil && !(*p.v > 0) {
			return fmt.Errorf("%s must be positive, got %f", p.name, *p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"bearing_noise_factor", c.BearingNoiseFactor},
		{"distance_noise_factor", c.DistanceNoiseFactor},
		{"velocity_noise_factor", c.VelocityNoiseFactor},
	}
	for _, p := range nonNegative {
		if p.v != nil && (*p.v < 0 || math.IsNaN(*p.v)) {
			return fmt.Errorf("%s must be non-negative, got %f", p.name, *p.v)
		}
	}

	beams := []struct {
		name string
		v    *float64
	}{
		{"search_beam_width", c.SearchBeamWidth},
		{"track_beam_width", c.TrackBeamWidth},
	}
	for _, b := range beams {
		if b.v != nil && (*b.v <= 0 || *b.v > 2*math.Pi) {
			return fmt.Errorf("%s must be in (0, 2π], got %f", b.name, *b.v)
		}
	}

	if c.InterceptRootPolicy != nil {
		switch *c.InterceptRootPolicy {
		case RootPolicyFixedIndex, RootPolicyEarliestPositive:
		default:
			return fmt.Errorf("invalid intercept_root_policy %q", *c.InterceptRootPolicy)
		}
	}

	if c.JournalEveryTicks != nil && *c.JournalEveryTicks < 1 {
		return fmt.Errorf("journal_every_ticks must be at least 1, got %d", *c.JournalEveryTicks)
	}

	return nil
}

// GetTickLength returns the tick_length value or the default.
func (c *TuningConfig) GetTickLength() float64 {
	if c.TickLength == nil {
		return 1.0 / 60.0
	}
	return *c.TickLength
}

// GetSensorMaxRange returns the sensor_max_range value or the default.
func (c *TuningConfig) GetSensorMaxRange() float64 {
	if c.SensorMaxRange == nil {
		return 25000.0
	}
	return *c.SensorMaxRange
}

// GetSearchBeamWidth returns the search_beam_width value or the default.
func (c *TuningConfig) GetSearchBeamWidth() float64 {
	if c.SearchBeamWidth == nil {
		return math.Pi / 8
	}
	return *c.SearchBeamWidth
}

// GetTrackBeamWidth returns the track_beam_width value or the default.
func (c *TuningConfig) GetTrackBeamWidth() float64 {
	if c.TrackBeamWidth == nil {
		return math.Pi / 32
	}
	return *c.TrackBeamWidth
}

// GetBearingNoiseFactor returns the bearing_noise_factor value or the default (10°).
func (c *TuningConfig) GetBearingNoiseFactor() float64 {
	if c.BearingNoiseFactor == nil {
		return 10 * (2 * math.Pi / 360)
	}
	return *c.BearingNoiseFactor
}

// GetDistanceNoiseFactor returns the distance_noise_factor value or the default.
func (c *TuningConfig) GetDistanceNoiseFactor() float64 {
	if c.DistanceNoiseFactor == nil {
		return 1e4
	}
	return *c.DistanceNoiseFactor
}

// GetVelocityNoiseFactor returns the velocity_noise_factor value or the default.
func (c *TuningConfig) GetVelocityNoiseFactor() float64 {
	if c.VelocityNoiseFactor == nil {
		return 1e2
	}
	return *c.VelocityNoiseFactor
}

// GetNoiseRNGRange returns the noise_rng_range value or the default.
func (c *TuningConfig) GetNoiseRNGRange() float64 {
	if c.NoiseRNGRange == nil {
		return 4.0
	}
	return *c.NoiseRNGRange
}

// GetInterceptRootPolicy returns the intercept_root_policy value or the default.
func (c *TuningConfig) GetInterceptRootPolicy() string {
	if c.InterceptRootPolicy == nil || *c.InterceptRootPolicy == "" {
		return RootPolicyFixedIndex
	}
	return *c.InterceptRootPolicy
}

// GetProjectileSpeed returns the projectile_speed value or the default.
func (c *TuningConfig) GetProjectileSpeed() float64 {
	if c.ProjectileSpeed == nil {
		return 1000.0
	}
	return *c.ProjectileSpeed
}

// GetJournalEveryTicks returns the journal_every_ticks value or the default.
func (c *TuningConfig) GetJournalEveryTicks() int {
	if c.JournalEveryTicks == nil {
		return 1
	}
	return *c.JournalEveryTicks
}
