package engine

// polyBLEP is the polynomial band limited step correction. x is the distance
// to the discontinuity in units of the transition width; it is zero outside
// (-1,1). x = 0 counts as already past the step.
func polyBLEP(x float64) float64 {
	switch {
	case x <= -1 || x >= 1:
		return 0
	case x < 0:
		return (x + 1) * (x + 1)
	default:
		return -(x - 1) * (x - 1)
	}
}

// integrateF1 is the integral of the quadratic ramp that smooths a square
// wave edge, normalized so that integrateF1(1) = 2/3.
func integrateF1(u float64) float64 {
	return -u*u*u/3 + u*u
}

// integrateSquare returns the integral from 0 to p of a 0..1 square wave whose
// rising and falling edges are smoothed over t. p is in [0,1) and t must be
// at most 0.25.
func integrateSquare(p, t float64) float64 {
	if p > 0.5 {
		return integrateHalfSquare(0.5, t) - integrateHalfSquare(p-0.5, t)
	}
	return integrateHalfSquare(p, t)
}

func integrateHalfSquare(p, t float64) float64 {
	if p <= t {
		return integrateF1(p/t) * t
	}
	v := 2.0 / 3.0 * t
	rest := p - t
	if p <= 0.5-t {
		return v + rest
	}
	v += 0.5 - 2*t
	rest -= 0.5 - 2*t
	return v + (2.0/3.0-integrateF1(1-rest/t))*t
}
