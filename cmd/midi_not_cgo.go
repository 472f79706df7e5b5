//go:build !cgo

package cmd

import (
	"github.com/bruv1700/fox3osc/player"
)

func NewMidiContext(sampleRate int) MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return player.NullMIDIContext{}
}
