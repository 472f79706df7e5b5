package cmd

import (
	"path/filepath"
	"testing"

	"github.com/bruv1700/fox3osc"
)

func TestLoadPatch(t *testing.T) {
	p, err := LoadPatch("evil-bass")
	if err != nil {
		t.Fatalf("could not load preset: %v", err)
	}
	if p.Modulation != fox3osc.ModulationEvil {
		t.Fatalf("got modulation %v, want evil", p.Modulation)
	}
	if _, err := LoadPatch("no-such-preset"); err == nil {
		t.Fatalf("unknown preset should fail")
	}
	file := filepath.Join(t.TempDir(), "mine.yml")
	want := fox3osc.DefaultParams()
	want.Divisions = 22
	if err := fox3osc.SaveParams(file, &want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadPatch(file)
	if err != nil || got != want {
		t.Fatalf("got %+v, %v, want %+v", got, err, want)
	}
	if name := PatchName(file); name != "mine" {
		t.Fatalf("got patch name %q, want mine", name)
	}
}
