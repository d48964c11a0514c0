package polynomial

import (
	"math"

	"github.com/banshee-data/targeting/internal/monitoring"
)

// SolveLinear solves a1*x + a0 = 0.
//
// When both coefficients are zero every x is a solution; zero is returned
// as the representative root.
func SolveLinear(a1, a0 float64) Roots {
	if a1 == 0 {
		if a0 == 0 {
			return NewRoots(0)
		}
		return Roots{}
	}
	return NewRoots(-a0 / a1)
}

// SolveQuadratic solves a2*x^2 + a1*x + a0 = 0, falling back to SolveLinear
// when a2 is zero.
//
// Of the two algebraically equivalent root formulas, the one dividing by the
// larger-magnitude divisor is used for each root to limit cancellation.
// See https://people.csail.mit.edu/bkph/articles/Quadratics.pdf
func SolveQuadratic(a2, a1, a0 float64) Roots {
	if a2 == 0 {
		return SolveLinear(a1, a0)
	}

	discriminant := a1*a1 - 4*a2*a0
	if discriminant < 0 {
		return Roots{}
	}

	a2x2 := 2 * a2
	if discriminant == 0 {
		return NewRoots(-a1 / a2x2)
	}

	sq := math.Sqrt(discriminant)

	var sameSign, diffSign float64
	if a1 < 0 {
		sameSign, diffSign = -a1+sq, -a1-sq
	} else {
		sameSign, diffSign = -a1-sq, -a1+sq
	}

	var x1, x2 float64
	if math.Abs(sameSign) > math.Abs(a2x2) {
		a0x2 := 2 * a0
		if math.Abs(diffSign) > math.Abs(a2x2) {
			// 2*a2 is the smallest divisor
			x1, x2 = a0x2/sameSign, a0x2/diffSign
		} else {
			// diffSign is the smallest divisor
			x1, x2 = a0x2/sameSign, sameSign/a2x2
		}
	} else {
		x1, x2 = diffSign/a2x2, sameSign/a2x2
	}

	return NewRoots(x1, x2)
}

// SolveCubicNormalized solves the monic cubic x^3 + a2*x^2 + a1*x + a0 = 0.
// At least one real root is always returned.
func SolveCubicNormalized(a2, a1, a0 float64) Roots {
	coeffs := []float64{1, a2, a1, a0}
	q := (3*a1 - a2*a2) / 9
	r := (9*a2*a1 - 27*a0 - 2*a2*a2*a2) / 54
	q3 := q * q * q
	d := q3 + r*r
	a2Div3 := a2 / 3

	if d < 0 {
		// Three distinct real roots: trigonometric form.
		cosArg := r / math.Sqrt(-q3)
		cosArg = math.Max(-1, math.Min(1, cosArg))
		phi3 := math.Acos(cosArg) / 3
		sqrtQ2 := 2 * math.Sqrt(-q)

		return polishAll(coeffs,
			sqrtQ2*math.Cos(phi3)-a2Div3,
			sqrtQ2*math.Cos(phi3-2*math.Pi/3)-a2Div3,
			sqrtQ2*math.Cos(phi3+2*math.Pi/3)-a2Div3,
		)
	}

	sqrtD := math.Sqrt(d)
	s := math.Cbrt(r + sqrtD)
	t := math.Cbrt(r - sqrtD)

	if s == t {
		if s+t == 0 {
			// Triple root.
			return polishAll(coeffs, s+t-a2Div3)
		}
		// One simple and one double root.
		return polishAll(coeffs, s+t-a2Div3, -(s+t)/2-a2Div3)
	}
	return polishAll(coeffs, s+t-a2Div3)
}

// SolveQuarticDepressed solves x^4 + a2*x^2 + a1*x + a0 = 0 through its
// resolvent cubic.
//
// The biquadratic (a1 == 0) and zero-constant (a0 == 0) forms are not
// reduced and return no roots.
func SolveQuarticDepressed(a2, a1, a0 float64) Roots {
	if a1 == 0 {
		monitoring.Debugf("polynomial: unhandled depressed quartic form: a1 == 0")
		return Roots{}
	}
	if a0 == 0 {
		monitoring.Debugf("polynomial: unhandled depressed quartic form: a0 == 0")
		return Roots{}
	}

	// Resolvent: y^3 + (5/2)*a2*y^2 + (2*a2^2-a0)*y + (a2^3/2 - a2*a0/2 - a1^2/8) = 0
	a2Pow2 := a2 * a2
	a1Div2 := a1 / 2
	b2 := a2 * 5 / 2
	b1 := 2*a2Pow2 - a0
	b0 := (a2Pow2*a2 - a2*a0 - a1Div2*a1Div2) / 2

	// The cubic always has a real root; the largest one is used.
	y, _ := SolveCubicNormalized(b2, b1, b0).Last()

	a2Plus2y := a2 + 2*y
	if a2Plus2y <= 0 {
		return Roots{}
	}

	sqrtA2Plus2y := math.Sqrt(a2Plus2y)
	q0a := a2 + y - a1Div2/sqrtA2Plus2y
	q0b := a2 + y + a1Div2/sqrtA2Plus2y

	roots := SolveQuadratic(1, sqrtA2Plus2y, q0a)
	for _, x := range SolveQuadratic(1, -sqrtA2Plus2y, q0b).Values() {
		roots = roots.AddNewRoot(x)
	}
	return roots
}

// SolveQuartic solves a4*x^4 + a3*x^3 + a2*x^2 + a1*x + a0 = 0.
//
// Three forms are deliberately left unhandled and return no roots:
// a4 == 0 (really a cubic), a0 == 0 (a zero root plus a cubic) and
// a1 == a3 == 0 (a biquadratic).
//
// Each root from the closed form is polished against the original
// coefficients. When a4 is small next to the other coefficients the shift to
// the depressed quartic loses precision, and candidates still failing
// residualTolerance after polishing are not roots at all; they are dropped.
func SolveQuartic(a4, a3, a2, a1, a0 float64) Roots {
	return refine([]float64{a4, a3, a2, a1, a0}, solveQuartic(a4, a3, a2, a1, a0))
}

func solveQuartic(a4, a3, a2, a1, a0 float64) Roots {
	switch {
	case a4 == 0:
		monitoring.Debugf("polynomial: unhandled quartic form: a4 == 0")
		return Roots{}
	case a0 == 0:
		monitoring.Debugf("polynomial: unhandled quartic form: a0 == 0")
		return Roots{}
	case a1 == 0 && a3 == 0:
		monitoring.Debugf("polynomial: unhandled quartic form: a1 == 0 && a3 == 0")
		return Roots{}
	}

	// Discriminant, partially factored to keep intermediate values small.
	// https://en.wikipedia.org/wiki/Quartic_function#Nature_of_the_roots
	discriminant := a4*a0*a4*(256*a4*a0*a0+a1*(144*a2*a1-192*a3*a0)) +
		a4*a0*a2*a2*(16*a2*a2-80*a3*a1-128*a4*a0) +
		a3*a3*(a4*a0*(144*a2*a0-6*a1*a1)+
			(a0*(18*a3*a2*a1-27*a3*a3*a0-4*a2*a2*a2)+a1*a1*(a2*a2-4*a3*a1))) +
		a4*a1*a1*(18*a3*a2*a1-27*a4*a1*a1-4*a2*a2*a2)

	pp := 8*a4*a2 - 3*a3*a3
	rr := a3*a3*a3 + 8*a4*a4*a1 - 4*a4*a3*a2
	delta0 := a2*a2 - 3*a3*a1 + 12*a4*a0
	dd := 64*a4*a4*a4*a0 - 16*a4*a4*a2*a2 + 16*a4*a3*a3*a2 -
		16*a4*a4*a3*a1 - 3*a3*a3*a3*a3

	if discriminant == 0 {
		tripleRoot := delta0 == 0
		quadrupleRoot := tripleRoot && dd == 0
		noRoots := dd == 0 && pp > 0 && rr == 0

		switch {
		case quadrupleRoot:
			return NewRoots(-a3 / (4 * a4))
		case tripleRoot:
			// x0 is the root of the remainder of the quartic divided by
			// its second derivative.
			x0 := (-72*a4*a4*a0 + 10*a4*a2*a2 - 3*a3*a3*a2) /
				(9 * (8*a4*a4*a1 - 4*a4*a3*a2 + a3*a3*a3))
			return NewRoots(x0, -(a3/a4 + 3*x0))
		case noRoots:
			// Two complex-conjugate double roots.
			return Roots{}
		}
		return solveViaDepressedQuartic(a4, a3, a2, a1, a0, pp, rr, dd)
	}

	if discriminant > 0 && (pp > 0 || dd > 0) {
		// Two pairs of complex-conjugate roots.
		return Roots{}
	}
	return solveViaDepressedQuartic(a4, a3, a2, a1, a0, pp, rr, dd)
}

// solveViaDepressedQuartic substitutes x = y - a3/(4*a4) to obtain
// y^4 + p*y^2 + q*y + r = 0, reusing the already computed pp, rr and dd.
// https://en.wikipedia.org/wiki/Quartic_function#Converting_to_a_depressed_quartic
func solveViaDepressedQuartic(a4, a3, a2, a1, a0, pp, rr, dd float64) Roots {
	a4Pow2 := a4 * a4
	a4Pow3 := a4Pow2 * a4
	a4Pow4 := a4Pow2 * a4Pow2

	p := pp / (8 * a4Pow2)
	q := rr / (8 * a4Pow3)
	r := (dd + 16*a4Pow2*(12*a0*a4-3*a1*a3+a2*a2)) / (256 * a4Pow4)

	shift := a3 / (4 * a4)
	var roots Roots
	for _, y := range SolveQuarticDepressed(p, q, r).Values() {
		roots = roots.AddNewRoot(y - shift)
	}
	return roots
}

// residualTolerance bounds the relative residual of a returned quartic root.
const residualTolerance = 1e-9

const maxPolishSteps = 8

// evaluate returns p(x) and p'(x) for coefficients ordered from the highest
// degree down.
func evaluate(coeffs []float64, x float64) (p, dp float64) {
	for _, a := range coeffs {
		dp = dp*x + p
		p = p*x + a
	}
	return p, dp
}

// relativeResidual is |p(x)| over the sum of the magnitudes of p's terms.
func relativeResidual(coeffs []float64, x float64) float64 {
	p, _ := evaluate(coeffs, x)
	var scale float64
	for _, a := range coeffs {
		scale = scale*math.Abs(x) + math.Abs(a)
	}
	if scale == 0 {
		return 0
	}
	return math.Abs(p) / scale
}

// polish takes Newton steps from x for as long as each one shrinks |p(x)|.
func polish(coeffs []float64, x float64) float64 {
	p, dp := evaluate(coeffs, x)
	for range maxPolishSteps {
		if p == 0 || dp == 0 {
			break
		}
		next := x - p/dp
		np, ndp := evaluate(coeffs, next)
		if math.IsNaN(np) || math.Abs(np) >= math.Abs(p) {
			break
		}
		x, p, dp = next, np, ndp
	}
	return x
}

func polishAll(coeffs []float64, xs ...float64) Roots {
	var roots Roots
	for _, x := range xs {
		roots = roots.AddNewRoot(polish(coeffs, x))
	}
	return roots
}

// refine polishes roots and drops those whose residual stays above
// residualTolerance.
func refine(coeffs []float64, roots Roots) Roots {
	var out Roots
	for _, x := range roots.Values() {
		x = polish(coeffs, x)
		if r := relativeResidual(coeffs, x); math.IsNaN(r) || r > residualTolerance {
			monitoring.Debugf("polynomial: dropping spurious root %g (residual %g)", x, r)
			continue
		}
		out = out.AddNewRoot(x)
	}
	return out
}
