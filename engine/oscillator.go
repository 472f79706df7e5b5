package engine

import (
	"math"

	"github.com/bruv1700/fox3osc"
)

type oscillator struct {
	waveform   fox3osc.Waveform // resolved, never Random
	phase      float64          // [0,1)
	freq       float64          // Hz
	inc        float64          // phase increment per sample
	transition float64          // band limiting transition width
	dc         dcBlocker        // used by sploinky and skloinky
}

// The integrated square of the band limited triangle is only well formed up
// to this transition width.
const maxTriangleTransition = 0.25

func (o *oscillator) start(w fox3osc.Waveform, freq, sampleRate float64) {
	o.waveform = w
	o.phase = 0
	o.freq = freq
	o.dc.reset()
	o.setSampleRate(sampleRate)
}

func (o *oscillator) setSampleRate(sampleRate float64) {
	o.inc = o.freq / sampleRate
	o.transition = 2 * o.inc
}

func (o *oscillator) advance() {
	o.phase = wrap(o.phase + o.inc)
}

// sample evaluates the oscillator at phase, which need not be its own
// accumulator.
func (o *oscillator) sample(q fox3osc.Quality, phase float64, noise *rand) float64 {
	return oscillate(o.waveform, q, phase, o.transition, &o.dc, noise)
}

// oscillate returns one sample of waveform w at phase, clamped to [-1,1]. dc
// is the filter state of the waveforms that need DC removal and noise the
// generator of the noise waveform.
func oscillate(w fox3osc.Waveform, q fox3osc.Quality, phase, t float64, dc *dcBlocker, noise *rand) float64 {
	var v float64
	switch w {
	case fox3osc.Sine:
		v = math.Sin(2 * math.Pi * phase)
	case fox3osc.Triangle:
		if q == fox3osc.HighQuality {
			v = 4*integrateSquare(wrap(phase+0.25), min(t, maxTriangleTransition)) - 1
		} else {
			v = naiveTriangle(phase)
		}
	case fox3osc.Square:
		v = naiveSquare(phase)
		if q == fox3osc.HighQuality {
			v += polyBLEP((wrap(phase+0.5)-0.5)/t) - polyBLEP((phase-0.5)/t)
		}
	case fox3osc.Saw:
		v = 2*phase - 1
		if q == fox3osc.HighQuality {
			v -= polyBLEP((wrap(phase+0.5) - 0.5) / t)
		}
	case fox3osc.Noise:
		v = noise.float()
	case fox3osc.Sploinky:
		// polyBLEP corrections misplaced and mis-scaled on purpose
		v = dc.process((naiveSquare(phase) + polyBLEP(math.Mod(phase, 0.5)-t) - polyBLEP((phase-0.5)/t)) / 2)
	case fox3osc.Skloinky:
		v = dc.process((2*phase - 1 - polyBLEP(math.Mod(phase, 0.5)-t)) / 2)
	}
	return clampSample(v)
}

func naiveTriangle(p float64) float64 {
	switch {
	case p < 0.25:
		return 4 * p
	case p < 0.75:
		return 1 - 4*(p-0.25)
	default:
		return -1 + 4*(p-0.75)
	}
}

func naiveSquare(p float64) float64 {
	if p < 0.5 {
		return 1
	}
	return -1
}

// wrap maps x into [0,1).
func wrap(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 || math.IsNaN(x) {
		return 0
	}
	return x
}

func clampSample(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	case math.IsNaN(v):
		return 0
	}
	return v
}
