package presets_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/presets"
)

func TestBuiltinPresets(t *testing.T) {
	want := []string{"evil-bass", "init", "microtonal-pad", "noise-hat", "sploinky-lead"}
	if got := presets.Names(); !slices.Equal(got, want) {
		t.Fatalf("got presets %v, want %v", got, want)
	}
	for _, name := range want {
		p, ok := presets.Get(name)
		if !ok {
			t.Fatalf("preset %v not found", name)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %v is invalid: %v", name, err)
		}
	}
}

func TestInitMatchesDefaults(t *testing.T) {
	p, _ := presets.Get("init")
	if p != fox3osc.DefaultParams() {
		t.Fatalf("got %+v, want the default parameters", p)
	}
}

func TestPresetValues(t *testing.T) {
	p, _ := presets.Get("microtonal-pad")
	if p.Divisions != 19 || p.RefFreq != 432 || p.Oscillators[1].Waveform != fox3osc.Skloinky || p.Oscillators[1].Octave != -1 {
		t.Fatalf("microtonal-pad decoded wrong: %+v", p)
	}
	p, _ = presets.Get("evil-bass")
	if p.Modulation != fox3osc.ModulationEvil || p.ModIndex != 2.5 {
		t.Fatalf("evil-bass decoded wrong: %+v", p)
	}
	p, _ = presets.Get("noise-hat")
	if p.Quality != fox3osc.LowQuality || p.Oscillators[2].Waveform != fox3osc.Random || p.ModIndex != 1 {
		t.Fatalf("noise-hat decoded wrong: %+v", p)
	}
	if _, ok := presets.Get("nope"); ok {
		t.Fatalf("unknown preset should not be found")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"unknown field", "oscillators: [{waveform: sine}, {waveform: sine}, {waveform: sine}]\ncutoff: 3\n"},
		{"unknown waveform", "oscillators: [{waveform: sine}, {waveform: pulse}, {waveform: sine}]\n"},
		{"two oscillators", "oscillators: [{waveform: sine}, {waveform: sine}]\n"},
		{"bad divisions", "divisions: 13\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := presets.Parse([]byte(c.data)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	data := "oscillators:\n  - {waveform: saw, level: 0.5}\n  - {waveform: sine, level: 0}\n  - {waveform: sine, level: 0}\n"
	if err := os.WriteFile(filepath.Join(dir, "mine.yml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a preset"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := presets.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "mine" || !got[0].User || got[0].Params.Oscillators[0].Waveform != fox3osc.Saw {
		t.Fatalf("got %+v", got)
	}
}
