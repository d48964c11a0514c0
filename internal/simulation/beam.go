package simulation

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/targeting/internal/geometry"
	"github.com/banshee-data/targeting/internal/kinematics"
	"github.com/banshee-data/targeting/internal/sensor"
	"github.com/banshee-data/targeting/internal/timeutil"
)

const (
	// ReferenceRange is the distance at which a target's scenario SNR applies.
	ReferenceRange = 1000.0

	// DetectionThreshold is the weakest SNR in dB the beam reports.
	DetectionThreshold = 0.0

	// NoiseScale keeps measurement noise inside half of each error bound so
	// the true position always lies in the reported region.
	NoiseScale = 0.5

	noiseFloor = -100.0
)

// BeamSensor is a simulated directional sensor. A scan reports the strongest
// target inside the beam's sector with noise drawn from the error model.
type BeamSensor struct {
	world  *World
	clock  timeutil.Clock
	errors sensor.ErrorModel
	rng    *rand.Rand

	heading, width float64
	minDistance    float64
	maxDistance    float64
}

func NewBeamSensor(world *World, clock timeutil.Clock, errors sensor.ErrorModel, rng *rand.Rand) *BeamSensor {
	return &BeamSensor{world: world, clock: clock, errors: errors, rng: rng}
}

func (b *BeamSensor) Heading() float64         { return b.heading }
func (b *BeamSensor) SetHeading(h float64)     { b.heading = h }
func (b *BeamSensor) Width() float64           { return b.width }
func (b *BeamSensor) SetWidth(w float64)       { b.width = w }
func (b *BeamSensor) MinDistance() float64     { return b.minDistance }
func (b *BeamSensor) SetMinDistance(d float64) { b.minDistance = d }
func (b *BeamSensor) MaxDistance() float64     { return b.maxDistance }
func (b *BeamSensor) SetMaxDistance(d float64) { b.maxDistance = d }

// SNRAt returns the SNR of a target with reference SNR snr at distance d,
// falling off with the fourth power of range.
func SNRAt(snr, d float64) float64 {
	return snr - 40*math.Log10(math.Max(d, 1)/ReferenceRange)
}

// Scan implements sensor.Sensor.
func (b *BeamSensor) Scan() (sensor.Reading, bool) {
	now := b.clock.Now()
	from := b.world.Ownship(now)

	var (
		best      *Target
		bestSNR   float64
		bestState kinematics.Model
	)
	for _, t := range b.world.Targets() {
		state := t.At(now)
		if !b.inBeam(from.Pos, state.Pos) {
			continue
		}
		snr := SNRAt(t.SNR, kinematics.DistanceTo(from, state))
		if snr < DetectionThreshold {
			continue
		}
		if best == nil || snr > bestSNR {
			best, bestSNR, bestState = t, snr, state
		}
	}
	if best == nil {
		return sensor.Reading{}, false
	}

	pos, vel := b.measure(from.Pos, bestState, b.errors.ErrorFor(bestSNR))
	return sensor.Reading{
		Class:    best.Class,
		Position: pos,
		Velocity: vel,
		RSSI:     bestSNR + noiseFloor,
		SNR:      bestSNR,
	}, true
}

func (b *BeamSensor) inBeam(from, to r2.Vec) bool {
	rel := r2.Sub(to, from)
	d := r2.Norm(rel)
	if d < b.minDistance || d > b.maxDistance {
		return false
	}
	return math.Abs(kinematics.AngleDiff(b.heading, geometry.Angle(rel))) <= b.width/2
}

// measure perturbs the true state in range, bearing and velocity.
func (b *BeamSensor) measure(from r2.Vec, truth kinematics.Model, err sensor.Error) (pos, vel r2.Vec) {
	rel := r2.Sub(truth.Pos, from)
	d := r2.Norm(rel) + b.noise()*NoiseScale*err.Distance
	bearing := geometry.Angle(rel) + b.noise()*NoiseScale*math.Atan(err.Bearing)
	pos = r2.Add(from, geometry.FromPolar(bearing, d))

	dir := b.rng.Float64() * 2 * math.Pi
	vel = r2.Add(truth.Vel, geometry.FromPolar(dir, b.rng.Float64()*NoiseScale*err.Velocity))
	return pos, vel
}

// noise returns a uniform sample in [-1, 1).
func (b *BeamSensor) noise() float64 { return 2*b.rng.Float64() - 1 }
