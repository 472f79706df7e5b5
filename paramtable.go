package fox3osc

import (
	"fmt"
	"math"
	"strconv"
)

type (
	// ParamID enumerates every automatable parameter as a single float64
	// value, the way a plugin host sees them.
	ParamID int

	// ParamInfo documents the range of a parameter and how to display its
	// value. Stepped parameters only take integer values in [Min, Max].
	ParamInfo struct {
		Name        string
		Min         float64
		Max         float64
		Default     float64
		Stepped     bool
		DisplayFunc ParamDisplayFunc
	}

	ParamDisplayFunc func(float64) (value string, unit string)
)

const (
	ParamAttack ParamID = iota
	ParamDecay
	ParamSustain
	ParamRelease
	ParamWaveform1
	ParamWaveform2
	ParamWaveform3
	ParamLevel1
	ParamLevel2
	ParamLevel3
	ParamOctave1
	ParamOctave2
	ParamOctave3
	ParamQuality
	ParamModulation
	ParamModIndex
	ParamDivisions
	ParamRefNote
	ParamRefFreq
	NumParams
)

// ParamInfos is indexed by ParamID.
var ParamInfos = [NumParams]ParamInfo{
	ParamAttack:     {Name: "Attack", Max: MaxEnvelopeTime, Default: 0.01, DisplayFunc: engineeringTime},
	ParamDecay:      {Name: "Decay", Max: MaxEnvelopeTime, Default: 0.1, DisplayFunc: engineeringTime},
	ParamSustain:    {Name: "Sustain", Max: 1, Default: 0.8, DisplayFunc: percentDispFunc},
	ParamRelease:    {Name: "Release", Max: MaxEnvelopeTime, Default: 0.1, DisplayFunc: engineeringTime},
	ParamWaveform1:  {Name: "Osc 1 Waveform", Max: float64(Random), Stepped: true, DisplayFunc: waveformDispFunc},
	ParamWaveform2:  {Name: "Osc 2 Waveform", Max: float64(Random), Stepped: true, DisplayFunc: waveformDispFunc},
	ParamWaveform3:  {Name: "Osc 3 Waveform", Max: float64(Random), Stepped: true, DisplayFunc: waveformDispFunc},
	ParamLevel1:     {Name: "Osc 1 Level", Max: 1, Default: 1, DisplayFunc: percentDispFunc},
	ParamLevel2:     {Name: "Osc 2 Level", Max: 1, DisplayFunc: percentDispFunc},
	ParamLevel3:     {Name: "Osc 3 Level", Max: 1, DisplayFunc: percentDispFunc},
	ParamOctave1:    {Name: "Osc 1 Octave", Min: -MaxOctave, Max: MaxOctave, Stepped: true, DisplayFunc: octaveDispFunc},
	ParamOctave2:    {Name: "Osc 2 Octave", Min: -MaxOctave, Max: MaxOctave, Stepped: true, DisplayFunc: octaveDispFunc},
	ParamOctave3:    {Name: "Osc 3 Octave", Min: -MaxOctave, Max: MaxOctave, Stepped: true, DisplayFunc: octaveDispFunc},
	ParamQuality:    {Name: "Quality", Max: float64(HighQuality), Default: float64(HighQuality), Stepped: true, DisplayFunc: qualityDispFunc},
	ParamModulation: {Name: "Osc 3 -> Osc 1 Modulation", Max: float64(ModulationEvil), Stepped: true, DisplayFunc: modulationDispFunc},
	ParamModIndex:   {Name: "Modulation Index", Max: MaxModIndex, Default: 1, DisplayFunc: func(v float64) (string, string) { return formatFloat(v), "" }},
	ParamDivisions:  {Name: "Scale", Max: float64(len(SupportedDivisions) - 1), Stepped: true, DisplayFunc: divisionsDispFunc},
	ParamRefNote:    {Name: "Reference Note", Max: 127, Default: 69, Stepped: true, DisplayFunc: noteDispFunc},
	ParamRefFreq:    {Name: "Reference Frequency", Min: MinRefFreq, Max: MaxRefFreq, Default: 440, DisplayFunc: func(v float64) (string, string) { return strconv.FormatFloat(v, 'f', 2, 64), "Hz" }},
}

func (id ParamID) Info() (ParamInfo, bool) {
	if id < 0 || id >= NumParams {
		return ParamInfo{}, false
	}
	return ParamInfos[id], true
}

func (id ParamID) String() string {
	if info, ok := id.Info(); ok {
		return info.Name
	}
	return fmt.Sprintf("param(%d)", int(id))
}

// Display formats a value of the parameter for showing to the user.
func (id ParamID) Display(v float64) (value string, unit string) {
	info, ok := id.Info()
	if !ok || info.DisplayFunc == nil {
		return formatFloat(v), ""
	}
	return info.DisplayFunc(info.Clamp(v))
}

// Clamp limits v to the range of the parameter, rounding stepped values to
// the nearest integer. NaN maps to the default.
func (info ParamInfo) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return info.Default
	}
	if info.Stepped {
		v = math.Round(v)
	}
	return math.Max(info.Min, math.Min(info.Max, v))
}

// Param returns the value of a parameter in the units of ParamInfos. Unknown
// ids return 0. The scale is returned as an index into SupportedDivisions.
func (p *Params) Param(id ParamID) float64 {
	switch id {
	case ParamAttack:
		return p.Envelope.Attack
	case ParamDecay:
		return p.Envelope.Decay
	case ParamSustain:
		return p.Envelope.Sustain
	case ParamRelease:
		return p.Envelope.Release
	case ParamWaveform1, ParamWaveform2, ParamWaveform3:
		return float64(p.Oscillators[id-ParamWaveform1].Waveform)
	case ParamLevel1, ParamLevel2, ParamLevel3:
		return p.Oscillators[id-ParamLevel1].Level
	case ParamOctave1, ParamOctave2, ParamOctave3:
		return float64(p.Oscillators[id-ParamOctave1].Octave)
	case ParamQuality:
		return float64(p.Quality)
	case ParamModulation:
		return float64(p.Modulation)
	case ParamModIndex:
		return p.ModIndex
	case ParamDivisions:
		return float64(divisionsIndex(p.Divisions))
	case ParamRefNote:
		return float64(p.RefNote)
	case ParamRefFreq:
		return p.RefFreq
	}
	return 0
}

// SetParam clamps v to the range of the parameter and stores it. It reports
// false for unknown ids.
func (p *Params) SetParam(id ParamID, v float64) bool {
	info, ok := id.Info()
	if !ok {
		return false
	}
	v = info.Clamp(v)
	switch id {
	case ParamAttack:
		p.Envelope.Attack = v
	case ParamDecay:
		p.Envelope.Decay = v
	case ParamSustain:
		p.Envelope.Sustain = v
	case ParamRelease:
		p.Envelope.Release = v
	case ParamWaveform1, ParamWaveform2, ParamWaveform3:
		p.Oscillators[id-ParamWaveform1].Waveform = Waveform(v)
	case ParamLevel1, ParamLevel2, ParamLevel3:
		p.Oscillators[id-ParamLevel1].Level = v
	case ParamOctave1, ParamOctave2, ParamOctave3:
		p.Oscillators[id-ParamOctave1].Octave = int(v)
	case ParamQuality:
		p.Quality = Quality(v)
	case ParamModulation:
		p.Modulation = Modulation(v)
	case ParamModIndex:
		p.ModIndex = v
	case ParamDivisions:
		p.Divisions = SupportedDivisions[int(v)]
	case ParamRefNote:
		p.RefNote = int(v)
	case ParamRefFreq:
		p.RefFreq = v
	}
	return true
}

func divisionsIndex(d int) int {
	d = NearestDivisions(d)
	for i, s := range SupportedDivisions {
		if s == d {
			return i
		}
	}
	return 0
}

var noteNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteDispFunc(v float64) (string, string) {
	n := int(v)
	return fmt.Sprintf("%s%d", noteNames[n%12], n/12-1), ""
}

func waveformDispFunc(v float64) (string, string) { return Waveform(v).DisplayName(), "" }

func qualityDispFunc(v float64) (string, string) { return Quality(v).DisplayName(), "" }

func modulationDispFunc(v float64) (string, string) { return Modulation(v).DisplayName(), "" }

func divisionsDispFunc(v float64) (string, string) {
	return strconv.Itoa(SupportedDivisions[int(v)]), "TET"
}

func octaveDispFunc(v float64) (string, string) {
	return fmt.Sprintf("%+d", int(v)), "oct"
}

func percentDispFunc(v float64) (string, string) {
	return strconv.FormatFloat(v*100, 'f', 2, 64), "%"
}

func engineeringTime(sec float64) (string, string) {
	if sec < 1e-3 {
		return fmt.Sprintf("%.2f", sec*1e6), "us"
	} else if sec < 1 {
		return fmt.Sprintf("%.2f", sec*1e3), "ms"
	}
	return fmt.Sprintf("%.2f", sec), "s"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
