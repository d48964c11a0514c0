package intercept

import (
	"fmt"

	"github.com/banshee-data/targeting/internal/config"
	"github.com/banshee-data/targeting/internal/polynomial"
)

// Policy picks the impact time from the real roots of an intercept quartic.
type Policy int

const (
	// FixedIndex picks a fixed root by count: for a firing solution the
	// third of four or first of two, for a guided intercept the second of
	// four or second of two. The choice can return a negative time.
	FixedIndex Policy = iota

	// EarliestPositive picks the smallest root greater than zero.
	EarliestPositive
)

// ParsePolicy maps an intercept_root_policy value to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case config.RootPolicyFixedIndex:
		return FixedIndex, nil
	case config.RootPolicyEarliestPositive:
		return EarliestPositive, nil
	}
	return FixedIndex, fmt.Errorf("unknown root policy %q", name)
}

func (p Policy) String() string {
	switch p {
	case FixedIndex:
		return config.RootPolicyFixedIndex
	case EarliestPositive:
		return config.RootPolicyEarliestPositive
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// rootIndex gives the FixedIndex choice for four and two roots.
type rootIndex struct {
	ofFour, ofTwo int
}

var (
	firingIndex    = rootIndex{ofFour: 2, ofTwo: 0}
	interceptIndex = rootIndex{ofFour: 1, ofTwo: 1}
)

func (p Policy) pick(roots polynomial.Roots, fixed rootIndex) (float64, bool) {
	switch p {
	case EarliestPositive:
		for _, r := range roots.Values() {
			if r > 0 {
				return r, true
			}
		}
		return 0, false

	default:
		switch roots.Len() {
		case 4:
			return roots.At(fixed.ofFour), true
		case 2:
			return roots.At(fixed.ofTwo), true
		}
		return 0, false
	}
}
