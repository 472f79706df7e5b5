package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/export"
)

func TestSheet(t *testing.T) {
	e, err := export.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sheet, err := e.Sheet()
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	for _, want := range []string{
		"| 0 | Attack | 0.00 us .. 10.00 s | 10.00 ms | continuous |",
		"| 4 | Osc 1 Waveform | Sine .. Random | Sine | stepped |",
		"| 17 | Reference Note | C-1 .. G9 | A4 | stepped |",
		"Waveforms: Sine, Triangle, Square, Saw, Noise, Sploinky, Skloinky, Random",
		"Modulation modes: Off, Phase, Evil",
		"Scales: 12, 15, 17, 19, 22, 23, 24 equal divisions",
	} {
		if !strings.Contains(sheet, want) {
			t.Fatalf("sheet does not contain %q:\n%s", want, sheet)
		}
	}
}

func TestPatch(t *testing.T) {
	e, err := export.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p := fox3osc.DefaultParams()
	p.Divisions = 24
	h, err := e.Patch("evil-bass", &p)
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	for _, want := range []string{
		"// evil-bass for fox3osc\n",
		"#ifndef FOX3OSC_EVIL_BASS_H\n",
		"#define FOX3OSC_EVIL_BASS_NUM_PARAMS 19\n",
		"#define FOX3OSC_EVIL_BASS_ATTACK 0\n",
		"#define FOX3OSC_EVIL_BASS_OSC_3_OSC_1_MODULATION 14\n",
		"static const float evil_bass_params[19] = {",
		"    0.01f, // Attack: 10.00 ms",
		"    6.0f, // Scale: 24 TET",
		"    440.0f, // Reference Frequency: 440.00 Hz",
	} {
		if !strings.Contains(h, want) {
			t.Fatalf("header does not contain %q:\n%s", want, h)
		}
	}
}

func TestNewFromTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "patch.h"), []byte(`{{.Ident | upper}} {{len .Values}}`), 0644); err != nil {
		t.Fatal(err)
	}
	e, err := export.NewFromTemplates(dir)
	if err != nil {
		t.Fatalf("NewFromTemplates failed: %v", err)
	}
	p := fox3osc.DefaultParams()
	got, err := e.Patch("my pad", &p)
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if got != "MY_PAD 19" {
		t.Fatalf("got %q, want %q", got, "MY_PAD 19")
	}
	if _, err := e.Sheet(); err == nil {
		t.Fatalf("Sheet should fail without a params.md template")
	}
}
