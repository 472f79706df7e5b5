// Package presets holds the built-in patch library and loads user patches
// from a directory.
package presets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bruv1700/fox3osc"
	"gopkg.in/yaml.v2"
)

//go:embed builtin/*
var builtinFS embed.FS

type (
	Preset struct {
		Name   string
		User   bool
		Params fox3osc.Params
	}

	// presetFile is the on-disk layout of a preset. Missing fields keep the
	// values of fox3osc.DefaultParams.
	presetFile struct {
		Oscillators []fox3osc.Oscillator `yaml:"oscillators"`
		Quality     fox3osc.Quality      `yaml:"quality"`
		Modulation  fox3osc.Modulation   `yaml:"modulation"`
		ModIndex    float64              `yaml:"modindex"`
		Envelope    fox3osc.Envelope     `yaml:"envelope"`
		Divisions   int                  `yaml:"divisions"`
		RefNote     int                  `yaml:"refnote"`
		RefFreq     float64              `yaml:"reffreq"`
	}
)

var builtin []Preset

func init() {
	var err error
	builtin, err = load(builtinFS, "builtin", false)
	if err != nil {
		panic(fmt.Sprintf("presets: %v", err))
	}
}

// Names lists the built-in presets in alphabetical order.
func Names() []string {
	ret := make([]string, len(builtin))
	for i, p := range builtin {
		ret[i] = p.Name
	}
	return ret
}

// Get returns the built-in preset called name.
func Get(name string) (fox3osc.Params, bool) {
	i := slices.IndexFunc(builtin, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return fox3osc.Params{}, false
	}
	return builtin[i].Params, true
}

// All returns the built-in presets.
func All() []Preset {
	return slices.Clone(builtin)
}

// LoadDir loads every .yml file of dir as a user preset.
func LoadDir(dir string) ([]Preset, error) {
	return load(os.DirFS(dir), ".", true)
}

func load(fsys fs.FS, root string, user bool) ([]Preset, error) {
	var ret []Preset
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".yml" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("could not read preset %v: %w", p, err)
		}
		params, err := Parse(data)
		if err != nil {
			return fmt.Errorf("preset %v: %w", p, err)
		}
		ret = append(ret, Preset{Name: strings.TrimSuffix(path.Base(p), ".yml"), User: user, Params: params})
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b Preset) int { return strings.Compare(a.Name, b.Name) })
	return ret, nil
}

// Parse decodes a preset. Unknown fields are rejected and the result must
// pass fox3osc.Params.Validate.
func Parse(data []byte) (fox3osc.Params, error) {
	def := fox3osc.DefaultParams()
	f := presetFile{
		Oscillators: def.Oscillators[:],
		Quality:     def.Quality,
		Modulation:  def.Modulation,
		ModIndex:    def.ModIndex,
		Envelope:    def.Envelope,
		Divisions:   def.Divisions,
		RefNote:     def.RefNote,
		RefFreq:     def.RefFreq,
	}
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return fox3osc.Params{}, fmt.Errorf("could not parse preset: %w", err)
	}
	if len(f.Oscillators) != fox3osc.NumOscillators {
		return fox3osc.Params{}, fmt.Errorf("got %d oscillators, want %d", len(f.Oscillators), fox3osc.NumOscillators)
	}
	p := fox3osc.Params{
		Quality:    f.Quality,
		Modulation: f.Modulation,
		ModIndex:   f.ModIndex,
		Envelope:   f.Envelope,
		Divisions:  f.Divisions,
		RefNote:    f.RefNote,
		RefFreq:    f.RefFreq,
	}
	copy(p.Oscillators[:], f.Oscillators)
	if err := p.Validate(); err != nil {
		return fox3osc.Params{}, err
	}
	return p, nil
}
