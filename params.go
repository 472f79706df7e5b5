package fox3osc

import (
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	// Waveform selects the shape an oscillator produces. Random is resolved
	// into one of the concrete waveforms once, when a voice is started.
	Waveform int

	// Quality selects between naive and band-limited synthesis of the
	// triangle, square and saw waveforms. Other waveforms ignore it.
	Quality int

	// Modulation selects how oscillator 3 modulates the phase of
	// oscillator 1. Oscillator 2 is never modulated.
	Modulation int

	// Envelope holds the ADSR settings. Times are in seconds, Sustain is a
	// level in [0,1].
	Envelope struct {
		Attack  float64 `yaml:"attack"`
		Decay   float64 `yaml:"decay"`
		Sustain float64 `yaml:"sustain"`
		Release float64 `yaml:"release"`
	}

	// Oscillator holds the settings of a single oscillator.
	Oscillator struct {
		Waveform Waveform `yaml:"waveform"`
		Level    float64  `yaml:"level"`            // weight in the voice mix, [0,1]
		Octave   int      `yaml:"octave,omitempty"` // octave offset, [-2,2]
	}

	// Params is the complete parameter set of the synth. It is passed by
	// pointer into every engine call; the engine never keeps a copy. Params
	// can be marshaled to and from the .yml patch format.
	Params struct {
		Oscillators [NumOscillators]Oscillator `yaml:"oscillators"`
		Quality     Quality                    `yaml:"quality"`
		Modulation  Modulation                 `yaml:"modulation"`
		ModIndex    float64                    `yaml:"modindex"`
		Envelope    Envelope                   `yaml:"envelope"`
		Divisions   int                        `yaml:"divisions"` // equal divisions of the octave
		RefNote     int                        `yaml:"refnote"`   // MIDI note that sounds at RefFreq
		RefFreq     float64                    `yaml:"reffreq"`   // Hz
	}
)

const (
	Sine Waveform = iota
	Triangle
	Square
	Saw
	Noise
	Sploinky
	Skloinky
	Random
)

// NumConcreteWaveforms is the number of waveforms that Random can resolve to.
const NumConcreteWaveforms = int(Random)

const (
	LowQuality Quality = iota
	HighQuality
)

const (
	ModulationOff Modulation = iota
	ModulationPhase
	ModulationEvil
)

const (
	NumOscillators  = 3
	MaxOctave       = 2
	MaxModIndex     = 8.0
	MaxEnvelopeTime = 10.0 // seconds
	MinRefFreq      = 1.0
	MaxRefFreq      = 20000.0
)

// SupportedDivisions lists the equal temperaments the tuning system accepts,
// in ascending order.
var SupportedDivisions = [...]int{12, 15, 17, 19, 22, 23, 24}

var waveformNames = [...]string{"sine", "triangle", "square", "saw", "noise", "sploinky", "skloinky", "random"}
var qualityNames = [...]string{"low", "high"}
var modulationNames = [...]string{"off", "phase", "evil"}

// DefaultParams returns the parameter set of a freshly loaded synth: a single
// sine oscillator with a short plucky envelope in 12-TET at A4 = 440 Hz.
func DefaultParams() Params {
	return Params{
		Oscillators: [NumOscillators]Oscillator{
			{Waveform: Sine, Level: 1},
			{Waveform: Sine, Level: 0},
			{Waveform: Sine, Level: 0},
		},
		Quality:    HighQuality,
		Modulation: ModulationOff,
		ModIndex:   1,
		Envelope:   Envelope{Attack: 0.01, Decay: 0.1, Sustain: 0.8, Release: 0.1},
		Divisions:  12,
		RefNote:    69,
		RefFreq:    440,
	}
}

// LoadParams reads a .yml patch file. Fields missing from the file keep their
// default values. The loaded parameters are validated but not sanitized.
func LoadParams(filename string) (Params, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Params{}, fmt.Errorf("could not read patch %v: %w", filename, err)
	}
	p := DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("could not parse patch %v: %w", filename, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid patch %v: %w", filename, err)
	}
	return p, nil
}

// SaveParams writes the parameters as a .yml patch file.
func SaveParams(filename string, p *Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("could not marshal patch: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("could not write patch %v: %w", filename, err)
	}
	return nil
}

// Sanitize clamps every field to the nearest valid value. The engine assumes
// sanitized parameters.
func (p *Params) Sanitize() {
	for i := range p.Oscillators {
		o := &p.Oscillators[i]
		if o.Waveform < Sine || o.Waveform > Random {
			o.Waveform = Sine
		}
		o.Level = clampFloat(o.Level, 0, 1)
		o.Octave = clampInt(o.Octave, -MaxOctave, MaxOctave)
	}
	if p.Quality != HighQuality && p.Quality != LowQuality {
		p.Quality = HighQuality
	}
	if p.Modulation < ModulationOff || p.Modulation > ModulationEvil {
		p.Modulation = ModulationOff
	}
	p.ModIndex = clampFloat(p.ModIndex, 0, MaxModIndex)
	p.Envelope.Attack = clampFloat(p.Envelope.Attack, 0, MaxEnvelopeTime)
	p.Envelope.Decay = clampFloat(p.Envelope.Decay, 0, MaxEnvelopeTime)
	p.Envelope.Sustain = clampFloat(p.Envelope.Sustain, 0, 1)
	p.Envelope.Release = clampFloat(p.Envelope.Release, 0, MaxEnvelopeTime)
	p.Divisions = NearestDivisions(p.Divisions)
	p.RefNote = clampInt(p.RefNote, 0, 127)
	if math.IsNaN(p.RefFreq) || p.RefFreq <= 0 {
		p.RefFreq = 440
	}
	p.RefFreq = clampFloat(p.RefFreq, MinRefFreq, MaxRefFreq)
}

// Validate reports every field that Sanitize would change.
func (p *Params) Validate() error {
	var errs []error
	for i, o := range p.Oscillators {
		if o.Waveform < Sine || o.Waveform > Random {
			errs = append(errs, fmt.Errorf("oscillator %d: unknown waveform %d", i+1, o.Waveform))
		}
		if !inRange(o.Level, 0, 1) {
			errs = append(errs, fmt.Errorf("oscillator %d: level %v out of range [0,1]", i+1, o.Level))
		}
		if o.Octave < -MaxOctave || o.Octave > MaxOctave {
			errs = append(errs, fmt.Errorf("oscillator %d: octave %d out of range [%d,%d]", i+1, o.Octave, -MaxOctave, MaxOctave))
		}
	}
	if p.Quality != HighQuality && p.Quality != LowQuality {
		errs = append(errs, fmt.Errorf("unknown quality %d", p.Quality))
	}
	if p.Modulation < ModulationOff || p.Modulation > ModulationEvil {
		errs = append(errs, fmt.Errorf("unknown modulation %d", p.Modulation))
	}
	if !inRange(p.ModIndex, 0, MaxModIndex) {
		errs = append(errs, fmt.Errorf("modulation index %v out of range [0,%v]", p.ModIndex, MaxModIndex))
	}
	for _, t := range []struct {
		name  string
		value float64
	}{{"attack", p.Envelope.Attack}, {"decay", p.Envelope.Decay}, {"release", p.Envelope.Release}} {
		if !inRange(t.value, 0, MaxEnvelopeTime) {
			errs = append(errs, fmt.Errorf("%s %v s out of range [0,%v]", t.name, t.value, MaxEnvelopeTime))
		}
	}
	if !inRange(p.Envelope.Sustain, 0, 1) {
		errs = append(errs, fmt.Errorf("sustain %v out of range [0,1]", p.Envelope.Sustain))
	}
	if NearestDivisions(p.Divisions) != p.Divisions {
		errs = append(errs, fmt.Errorf("unsupported divisions %d, want one of %v", p.Divisions, SupportedDivisions))
	}
	if p.RefNote < 0 || p.RefNote > 127 {
		errs = append(errs, fmt.Errorf("reference note %d out of range [0,127]", p.RefNote))
	}
	if !inRange(p.RefFreq, MinRefFreq, MaxRefFreq) {
		errs = append(errs, fmt.Errorf("reference frequency %v Hz out of range [%v,%v]", p.RefFreq, MinRefFreq, MaxRefFreq))
	}
	return errors.Join(errs...)
}

// NearestDivisions snaps d to the closest supported equal temperament. Ties
// resolve to the smaller division count.
func NearestDivisions(d int) int {
	best := SupportedDivisions[0]
	for _, s := range SupportedDivisions[1:] {
		if absInt(s-d) < absInt(best-d) {
			best = s
		}
	}
	return best
}

func (w Waveform) String() string {
	if w < Sine || w > Random {
		return fmt.Sprintf("waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// DisplayName returns the title cased name, e.g. "Sploinky".
func (w Waveform) DisplayName() string { return title(w.String()) }

func (w Waveform) MarshalText() ([]byte, error) {
	if w < Sine || w > Random {
		return nil, fmt.Errorf("unknown waveform %d", int(w))
	}
	return []byte(waveformNames[w]), nil
}

func (w *Waveform) UnmarshalText(text []byte) error {
	i, err := lookupName(waveformNames[:], "waveform", string(text))
	*w = Waveform(i)
	return err
}

func (q Quality) String() string {
	if q != HighQuality && q != LowQuality {
		return fmt.Sprintf("quality(%d)", int(q))
	}
	return qualityNames[q]
}

func (q Quality) DisplayName() string { return title(q.String()) }

func (q Quality) MarshalText() ([]byte, error) {
	if q != HighQuality && q != LowQuality {
		return nil, fmt.Errorf("unknown quality %d", int(q))
	}
	return []byte(qualityNames[q]), nil
}

func (q *Quality) UnmarshalText(text []byte) error {
	i, err := lookupName(qualityNames[:], "quality", string(text))
	*q = Quality(i)
	return err
}

func (m Modulation) String() string {
	if m < ModulationOff || m > ModulationEvil {
		return fmt.Sprintf("modulation(%d)", int(m))
	}
	return modulationNames[m]
}

func (m Modulation) DisplayName() string { return title(m.String()) }

func (m Modulation) MarshalText() ([]byte, error) {
	if m < ModulationOff || m > ModulationEvil {
		return nil, fmt.Errorf("unknown modulation %d", int(m))
	}
	return []byte(modulationNames[m]), nil
}

func (m *Modulation) UnmarshalText(text []byte) error {
	i, err := lookupName(modulationNames[:], "modulation", string(text))
	*m = Modulation(i)
	return err
}

func lookupName(names []string, kind, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// title is not cached: a cases.Caser must not be shared between goroutines.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func inRange(v, min, max float64) bool {
	return v >= min && v <= max // false for NaN
}

func clampFloat(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
