package engine

import (
	"github.com/bruv1700/fox3osc"
)

type voice struct {
	active   bool
	note     int
	velocity float64
	started  uint64 // note on order, smaller is older
	env      envelope
	osc      [fox3osc.NumOscillators]oscillator
	noise    rand
}

// start initializes the voice for a new note. Random waveforms are resolved
// here and stay fixed for the lifetime of the voice.
func (v *voice) start(p *fox3osc.Params, note int, velocity, sampleRate float64, r *rand) {
	v.active = true
	v.note = note
	v.velocity = velocity
	v.env = envelope{}
	v.env.trigger()
	for i := range v.osc {
		w := p.Oscillators[i].Waveform
		if w == fox3osc.Random {
			w = fox3osc.Waveform(r.intn(fox3osc.NumConcreteWaveforms))
		}
		v.osc[i].start(w, oscillatorFrequency(p, note, i), sampleRate)
	}
	v.noise = newRand(r.next())
}

// retrigger restarts the envelope of a voice already playing the note,
// keeping its waveforms and phases.
func (v *voice) retrigger(p *fox3osc.Params, velocity, sampleRate float64) {
	v.velocity = velocity
	v.env.trigger()
	for i := range v.osc {
		v.osc[i].freq = oscillatorFrequency(p, v.note, i)
		v.osc[i].setSampleRate(sampleRate)
	}
}

func (v *voice) kill() {
	v.active = false
	v.env = envelope{}
}

// next advances the voice by one sample and returns its contribution to the
// mix.
func (v *voice) next(p *fox3osc.Params, sampleRate float64) float64 {
	level := v.env.next(&p.Envelope, sampleRate)
	s1, s2, s3 := v.route(p, level)
	mix := unitLevel(p.Oscillators[0].Level)*s1 + unitLevel(p.Oscillators[1].Level)*s2 + unitLevel(p.Oscillators[2].Level)*s3
	return mix * level * v.velocity
}

// unitLevel clamps a mix level to [0,1]; NaN is silent.
func unitLevel(l float64) float64 {
	if !(l > 0) {
		return 0
	}
	return min(l, 1)
}

func oscillatorFrequency(p *fox3osc.Params, note, osc int) float64 {
	return Frequency(note, p.RefNote, p.RefFreq, p.Divisions, p.Oscillators[osc].Octave)
}
