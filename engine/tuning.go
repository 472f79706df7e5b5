package engine

import (
	"math"

	"github.com/bruv1700/fox3osc"
)

// Frequency returns the frequency in Hz of a note in an equal temperament of
// divisions steps per octave, where refNote sounds at refFreq, transposed by
// octave octaves. Unsupported divisions snap to the nearest supported one,
// octave is clamped to [-MaxOctave, MaxOctave] and a non-positive refFreq
// falls back to 440 Hz.
func Frequency(note, refNote int, refFreq float64, divisions, octave int) float64 {
	if !(refFreq > 0) {
		refFreq = 440
	}
	d := fox3osc.NearestDivisions(divisions)
	octave = max(-fox3osc.MaxOctave, min(fox3osc.MaxOctave, octave))
	return refFreq * math.Exp2(float64(note-refNote)/float64(d)+float64(octave))
}
