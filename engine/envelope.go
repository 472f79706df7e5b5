package engine

import (
	"math"

	"github.com/bruv1700/fox3osc"
)

type envState int

const (
	envStateIdle envState = iota
	envStateAttack
	envStateDecay
	envStateSustain
	envStateRelease
	envStateFinished
)

// envelope is a linear ADSR. Stage lengths are read from the parameters on
// every sample, so parameter and sample rate changes apply immediately.
type envelope struct {
	state envState
	level float64
	start float64 // level where the current ramp started
	pos   int     // samples spent in the current stage
}

// trigger enters Attack. A sounding envelope ramps up from its current level
// instead of restarting from zero.
func (e *envelope) trigger() {
	if e.state == envStateIdle || e.state == envStateFinished {
		e.level = 0
	}
	e.start = e.level
	e.state = envStateAttack
	e.pos = 0
}

func (e *envelope) release() {
	switch e.state {
	case envStateAttack, envStateDecay, envStateSustain:
		e.start = e.level
		e.state = envStateRelease
		e.pos = 0
	}
}

func (e *envelope) releasing() bool {
	return e.state == envStateRelease
}

// next advances the envelope by one sample and returns the new level.
func (e *envelope) next(p *fox3osc.Envelope, sampleRate float64) float64 {
	switch e.state {
	case envStateAttack:
		n := stageSamples(p.Attack, sampleRate)
		if e.pos++; e.pos >= n {
			e.level = 1
			e.state = envStateDecay
			e.pos = 0
		} else {
			e.level = e.start + (1-e.start)*float64(e.pos)/float64(n)
		}
	case envStateDecay:
		n := stageSamples(p.Decay, sampleRate)
		if e.pos++; e.pos >= n {
			e.level = p.Sustain
			e.state = envStateSustain
			e.pos = 0
		} else {
			e.level = 1 - (1-p.Sustain)*float64(e.pos)/float64(n)
		}
	case envStateSustain:
		e.level = p.Sustain
	case envStateRelease:
		n := stageSamples(p.Release, sampleRate)
		if e.pos++; e.pos >= n {
			e.level = 0
			e.state = envStateFinished
			e.pos = 0
		} else {
			e.level = e.start * (1 - float64(e.pos)/float64(n))
		}
	default:
		e.level = 0
	}
	e.level = clampLevel(e.level)
	return e.level
}

func stageSamples(seconds, sampleRate float64) int {
	n := math.Round(seconds * sampleRate)
	if !(n > 0) {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func clampLevel(l float64) float64 {
	if !(l > 0) {
		return 0
	}
	return min(l, 1)
}
