// Package fox3osc defines the parameter set and the audio types of a three
// oscillator polyphonic synthesizer. The signal generation itself lives in
// package engine; package player drives an engine from timestamped events.
package fox3osc

// Synth is a polyphonic voice engine. All methods are called from a single
// goroutine, the audio thread. None of them allocate or block.
//
// NoteOn and Render take the parameter set explicitly; the synth reads it
// but never retains it past the call.
type Synth interface {
	// NoteOn starts a note. Notes outside 0..127 are ignored, velocity 0 is
	// a note off.
	NoteOn(p *Params, note int, velocity float64)
	// NoteOff releases every voice playing the note.
	NoteOff(note int)
	// AllNotesOff releases every voice.
	AllNotesOff()
	// AllSoundOff silences every voice immediately.
	AllSoundOff()
	// Render fills the whole buffer with mono samples.
	Render(p *Params, buffer AudioBuffer)
	SetSampleRate(rate float64)
	ActiveVoices() int
}

// Render is a convenience wrapper that renders frames samples into a new
// buffer.
func Render(s Synth, p *Params, frames int) AudioBuffer {
	buffer := make(AudioBuffer, frames)
	s.Render(p, buffer)
	return buffer
}
