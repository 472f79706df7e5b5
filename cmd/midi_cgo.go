//go:build cgo

package cmd

import (
	"github.com/bruv1700/fox3osc/gomidi"
)

func NewMidiContext(sampleRate int) MIDIContext {
	return gomidi.NewContext(sampleRate)
}
