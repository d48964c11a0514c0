package polynomial

import "fmt"

// MaxRoots is the largest number of real roots any solver can return.
const MaxRoots = 4

// Roots is a sorted set of distinct real roots. The zero value holds no
// roots. Roots values are immutable; AddNewRoot returns a new value.
type Roots struct {
	n      int
	values [MaxRoots]float64
}

// NewRoots builds a root set from xs, sorting and removing exact duplicates.
// It panics if more than MaxRoots distinct values are supplied.
func NewRoots(xs ...float64) Roots {
	var r Roots
	for _, x := range xs {
		r = r.AddNewRoot(x)
	}
	return r
}

// Len returns the number of roots.
func (r Roots) Len() int { return r.n }

// IsEmpty reports whether the set holds no roots.
func (r Roots) IsEmpty() bool { return r.n == 0 }

// At returns the i-th smallest root.
func (r Roots) At(i int) float64 {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("polynomial: root index %d out of range [0,%d)", i, r.n))
	}
	return r.values[i]
}

// Values returns the roots in ascending order. The slice is a copy.
func (r Roots) Values() []float64 {
	out := make([]float64, r.n)
	copy(out, r.values[:r.n])
	return out
}

// Last returns the largest root.
func (r Roots) Last() (float64, bool) {
	if r.n == 0 {
		return 0, false
	}
	return r.values[r.n-1], true
}

// String renders the roots as a bracketed list.
func (r Roots) String() string {
	return fmt.Sprint(r.values[:r.n])
}

// AddNewRoot returns a copy of r with x inserted, keeping the set sorted
// and unique. Uniqueness is exact float equality. Adding a fifth distinct
// root panics.
func (r Roots) AddNewRoot(x float64) Roots {
	pos := 0
	for ; pos < r.n; pos++ {
		if r.values[pos] == x {
			return r
		}
		if r.values[pos] > x {
			break
		}
	}

	if r.n == MaxRoots {
		panic(fmt.Sprintf("polynomial: cannot add root %v to %v", x, r))
	}

	out := r
	copy(out.values[pos+1:out.n+1], r.values[pos:r.n])
	out.values[pos] = x
	out.n++
	return out
}
