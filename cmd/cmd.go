// Package cmd contains the helpers shared by the command line tools.
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/player"
	"github.com/bruv1700/fox3osc/presets"
)

// MIDIContext is a MIDI driver that also feeds its input to a player.
type MIDIContext interface {
	player.MIDIContext
	player.ProcessContext
}

// LoadPatch returns the built-in preset called patch, or loads patch as a .yml
// file if it has an extension or no preset has that name.
func LoadPatch(patch string) (fox3osc.Params, error) {
	if filepath.Ext(patch) == "" {
		if p, ok := presets.Get(patch); ok {
			return p, nil
		}
		if !strings.ContainsAny(patch, `/\`) {
			return fox3osc.Params{}, fmt.Errorf("unknown preset %q, want a .yml file or one of %v", patch, presets.Names())
		}
	}
	return fox3osc.LoadParams(patch)
}

// PatchName returns the name of a patch given to LoadPatch.
func PatchName(patch string) string {
	_, name := filepath.Split(patch)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
