package engine

import "github.com/bruv1700/fox3osc"

// route evaluates the three oscillators for one sample and advances their
// phases according to the modulation mode. Oscillator 3 is always evaluated
// first, oscillator 2 last, so that the noise generator is consumed in the
// same order in every mode. level is the envelope level of this sample.
func (v *voice) route(p *fox3osc.Params, level float64) (s1, s2, s3 float64) {
	o1, o2, o3 := &v.osc[0], &v.osc[1], &v.osc[2]
	mode := p.Modulation
	if p.ModIndex == 0 {
		mode = fox3osc.ModulationOff
	}
	switch mode {
	case fox3osc.ModulationPhase:
		s3 = o3.sample(p.Quality, o3.phase, &v.noise)
		s1 = o1.sample(p.Quality, wrap(o1.phase+p.ModIndex*s3), &v.noise)
		o1.advance()
		o3.advance()
	case fox3osc.ModulationEvil:
		// the modulator never integrates; it is pinned to the carrier step
		o3.phase = wrap(o1.inc)
		s3 = o3.sample(p.Quality, o3.phase, &v.noise)
		s1 = o1.sample(p.Quality, o1.phase, &v.noise)
		o1.phase = wrap(o1.phase + o1.inc + p.ModIndex*s3*level*v.velocity)
	default:
		s3 = o3.sample(p.Quality, o3.phase, &v.noise)
		s1 = o1.sample(p.Quality, o1.phase, &v.noise)
		o1.advance()
		o3.advance()
	}
	s2 = o2.sample(p.Quality, o2.phase, &v.noise)
	o2.advance()
	return
}
