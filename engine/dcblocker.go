package engine

import "math"

// dcBlocker is the one pole, one zero filter y[n] = x[n] - x[n-1] + R*y[n-1].
// See https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
type dcBlocker struct {
	x, y float64
}

const dcBlockerR = 0.995

// process treats a non-finite input as silence so the state never carries
// NaN or Inf forward.
func (d *dcBlocker) process(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	d.y = x - d.x + dcBlockerR*d.y
	d.x = x
	return d.y
}

func (d *dcBlocker) reset() {
	*d = dcBlocker{}
}
