package scheduler

import (
	"github.com/banshee-data/targeting/internal/config"
	"github.com/banshee-data/targeting/internal/sensor"
)

// Config holds the beam geometry used by the search and track jobs.
type Config struct {
	MaxRange        float64
	SearchBeamWidth float64
	TrackBeamWidth  float64
	Errors          sensor.ErrorModel
}

// DefaultConfig returns the configuration built from the default tuning.
func DefaultConfig() Config {
	return ConfigFromTuning(config.EmptyTuningConfig())
}

// ConfigFromTuning builds a Config from the sensor keys of cfg.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		MaxRange:        cfg.GetSensorMaxRange(),
		SearchBeamWidth: cfg.GetSearchBeamWidth(),
		TrackBeamWidth:  cfg.GetTrackBeamWidth(),
		Errors:          sensor.ErrorModelFromTuning(cfg),
	}
}
