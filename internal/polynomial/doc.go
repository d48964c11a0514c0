// Package polynomial finds the real roots of polynomials of degree one
// through four in closed form.
//
// Every solver returns a Roots value holding zero to four distinct real
// roots in ascending order. Degenerate forms that the quartic solver does
// not reduce (a4 == 0, a0 == 0, and a1 == a3 == 0) yield no roots; callers
// treat that as "no usable prediction" rather than a fault.
//
// Precision is about 5e-15 relative for well-conditioned inputs. Multiple
// roots are detected by exact comparison of the discriminant with zero, so
// near-multiple roots may be reported as two close roots or as none.
package polynomial
