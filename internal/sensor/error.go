package sensor

import (
	"math"

	"github.com/banshee-data/targeting/internal/config"
)

// Error bounds the measurement error of a single scan.
type Error struct {
	Bearing  float64 // radians
	Distance float64 // metres
	Velocity float64 // metres per second
}

// ErrorModel maps a scan's signal-to-noise ratio to error bounds. Each bound
// is factor * 10^(-snr/10) * RNGRange, so the error grows as SNR falls.
type ErrorModel struct {
	BearingFactor  float64
	DistanceFactor float64
	VelocityFactor float64
	RNGRange       float64
}

// DefaultErrorModel returns the error model built from the default tuning.
func DefaultErrorModel() ErrorModel {
	return ErrorModelFromTuning(config.EmptyTuningConfig())
}

// ErrorModelFromTuning builds an ErrorModel from the noise keys of cfg.
func ErrorModelFromTuning(cfg *config.TuningConfig) ErrorModel {
	return ErrorModel{
		BearingFactor:  cfg.GetBearingNoiseFactor(),
		DistanceFactor: cfg.GetDistanceNoiseFactor(),
		VelocityFactor: cfg.GetVelocityNoiseFactor(),
		RNGRange:       cfg.GetNoiseRNGRange(),
	}
}

// ErrorFor returns the error bounds for a scan with the given SNR in dB.
func (m ErrorModel) ErrorFor(snr float64) Error {
	factor := math.Pow(10, -snr/10) * m.RNGRange
	return Error{
		Bearing:  m.BearingFactor * factor,
		Distance: m.DistanceFactor * factor,
		Velocity: m.VelocityFactor * factor,
	}
}
