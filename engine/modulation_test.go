package engine

import (
	"testing"

	"github.com/bruv1700/fox3osc"
)

func modulationParams(mode fox3osc.Modulation, index float64) fox3osc.Params {
	p := fox3osc.DefaultParams()
	p.Oscillators = [fox3osc.NumOscillators]fox3osc.Oscillator{
		{Waveform: fox3osc.Saw, Level: 1},
		{Waveform: fox3osc.Noise, Level: 0.3},
		{Waveform: fox3osc.Sploinky, Level: 0.5, Octave: 1},
	}
	p.Modulation = mode
	p.ModIndex = index
	return p
}

func renderNotes(p *fox3osc.Params, frames int) []float32 {
	e := New(WithPolyphony(4), WithSampleRate(44100))
	e.NoteOn(p, 48, 0.8)
	e.NoteOn(p, 55, 0.5)
	out := make(fox3osc.AudioBuffer, frames)
	e.Render(p, out[:frames/2])
	e.NoteOff(48)
	e.Render(p, out[frames/2:])
	return out
}

func TestModIndexZeroMatchesOff(t *testing.T) {
	off := modulationParams(fox3osc.ModulationOff, 0)
	want := renderNotes(&off, 4096)
	for _, mode := range []fox3osc.Modulation{fox3osc.ModulationPhase, fox3osc.ModulationEvil} {
		p := modulationParams(mode, 0)
		got := renderNotes(&p, 4096)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%v with index 0: sample %d is %v, want %v", mode, i, got[i], want[i])
			}
		}
	}
}

func TestModulationChangesOutput(t *testing.T) {
	off := modulationParams(fox3osc.ModulationOff, 0)
	want := renderNotes(&off, 4096)
	for _, mode := range []fox3osc.Modulation{fox3osc.ModulationPhase, fox3osc.ModulationEvil} {
		p := modulationParams(mode, 1)
		got := renderNotes(&p, 4096)
		same := true
		for i := range want {
			if got[i] != want[i] {
				same = false
				break
			}
		}
		if same {
			t.Fatalf("%v with index 1 renders the same as no modulation", mode)
		}
	}
}

func TestEvilModulatorPhaseIsPinned(t *testing.T) {
	p := modulationParams(fox3osc.ModulationEvil, 2)
	e := New(WithSampleRate(48000))
	e.NoteOn(&p, 60, 1)
	v := &e.voices[0]
	for i := 0; i < 1000; i++ {
		e.RenderSample(&p)
		if got, want := v.osc[2].phase, wrap(v.osc[0].inc); got != want {
			t.Fatalf("sample %d: modulator phase %v, want %v", i, got, want)
		}
	}
}

func TestPhaseModulationAdvancesBothOscillators(t *testing.T) {
	p := modulationParams(fox3osc.ModulationPhase, 1)
	p.Oscillators[2].Waveform = fox3osc.Sine
	e := New(WithSampleRate(48000))
	e.NoteOn(&p, 60, 1)
	v := &e.voices[0]
	const n = 100
	for i := 0; i < n; i++ {
		e.RenderSample(&p)
	}
	for i := range v.osc {
		want := wrap(float64(n) * v.osc[i].inc)
		if d := v.osc[i].phase - want; d > 1e-9 || d < -1e-9 {
			t.Fatalf("oscillator %d: phase %v, want %v", i+1, v.osc[i].phase, want)
		}
	}
}

func TestRandomWaveformResolvedOnce(t *testing.T) {
	p := fox3osc.DefaultParams()
	for i := range p.Oscillators {
		p.Oscillators[i] = fox3osc.Oscillator{Waveform: fox3osc.Random, Level: 0.3}
	}
	e := New(WithPolyphony(8))
	for note := 60; note < 68; note++ {
		e.NoteOn(&p, note, 1)
	}
	var resolved [8][fox3osc.NumOscillators]fox3osc.Waveform
	seen := map[fox3osc.Waveform]bool{}
	for i := range e.voices {
		for j := range e.voices[i].osc {
			w := e.voices[i].osc[j].waveform
			if w == fox3osc.Random || w < fox3osc.Sine || w > fox3osc.Skloinky {
				t.Fatalf("voice %d oscillator %d did not resolve: %v", i, j, w)
			}
			resolved[i][j] = w
			seen[w] = true
		}
	}
	if len(seen) < 2 {
		t.Fatalf("24 random draws all resolved to %v", resolved[0][0])
	}
	for i := 0; i < 2000; i++ {
		e.RenderSample(&p)
	}
	for i := range e.voices {
		for j := range e.voices[i].osc {
			if got := e.voices[i].osc[j].waveform; got != resolved[i][j] {
				t.Fatalf("voice %d oscillator %d changed from %v to %v", i, j, resolved[i][j], got)
			}
		}
	}
}

func TestSetSampleRateUpdatesIncrements(t *testing.T) {
	p := fox3osc.DefaultParams()
	e := New(WithSampleRate(48000))
	e.NoteOn(&p, 69, 1)
	v := &e.voices[0]
	if got := v.osc[0].inc; got != 440.0/48000 {
		t.Fatalf("got increment %v, want %v", got, 440.0/48000)
	}
	e.SetSampleRate(96000)
	if got := v.osc[0].inc; got != 440.0/96000 {
		t.Fatalf("got increment %v after rate change, want %v", got, 440.0/96000)
	}
	if got := v.osc[0].transition; got != 2*440.0/96000 {
		t.Fatalf("got transition %v after rate change, want %v", got, 2*440.0/96000)
	}
}
