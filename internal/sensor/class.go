package sensor

import (
	"fmt"
	"math"
	"strings"
)

// Class is the vessel class reported by a scan.
type Class int

const (
	ClassUnknown Class = iota
	ClassFighter
	ClassFrigate
	ClassCruiser
	ClassAsteroid
	ClassTarget
	ClassMissile
	ClassTorpedo
)

var classNames = map[Class]string{
	ClassUnknown:  "unknown",
	ClassFighter:  "fighter",
	ClassFrigate:  "frigate",
	ClassCruiser:  "cruiser",
	ClassAsteroid: "asteroid",
	ClassTarget:   "target",
	ClassMissile:  "missile",
	ClassTorpedo:  "torpedo",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// ParseClass maps a class name to its Class. Matching is case-insensitive.
func ParseClass(name string) (Class, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for c, n := range classNames {
		if n == want {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("unknown class %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MaxAcceleration is the acceleration envelope of a vessel class in m/s²
// (angular in rad/s²).
type MaxAcceleration struct {
	Forward float64
	Reverse float64
	Lateral float64
	Angular float64
}

var maxAccelerations = map[Class]MaxAcceleration{
	ClassFighter:  {Forward: 60, Reverse: 30, Lateral: 30, Angular: 2 * math.Pi},
	ClassFrigate:  {Forward: 10, Reverse: 5, Lateral: 5, Angular: math.Pi / 4},
	ClassCruiser:  {Forward: 5, Reverse: 2.5, Lateral: 2.5, Angular: math.Pi / 8},
	ClassAsteroid: {},
	ClassMissile:  {Forward: 300, Reverse: 0, Lateral: 100, Angular: 4 * math.Pi},
	ClassTorpedo:  {Forward: 70, Reverse: 0, Lateral: 20, Angular: 2 * math.Pi},
}

// MaxAccelerationFor returns the acceleration envelope used to bound how far
// an unseen contact of class c may have drifted.
//
// Targets are stationary practice objects and never accelerate. An unknown
// class is given the largest envelope of any known class so its region is
// never too small.
func MaxAccelerationFor(c Class) MaxAcceleration {
	if a, ok := maxAccelerations[c]; ok {
		return a
	}
	if c == ClassTarget {
		return MaxAcceleration{}
	}

	var widest MaxAcceleration
	for _, a := range maxAccelerations {
		if a.Magnitude() > widest.Magnitude() {
			widest = a
		}
	}
	return widest
}

// Magnitude combines the larger of the forward and reverse limits with the
// lateral limit.
func (a MaxAcceleration) Magnitude() float64 {
	medial := math.Max(a.Forward, a.Reverse)
	return math.Hypot(medial, a.Lateral)
}
