package engine

import (
	"github.com/bruv1700/fox3osc"
)

type (
	// Engine is a polyphonic fox3osc synth. The voice table is allocated
	// once in New; the number of voices never grows.
	Engine struct {
		sampleRate float64
		voices     []voice
		clock      uint64 // counts note ons, orders voices by age
		rand       rand   // resolves random waveforms and seeds voice noise
		dc         dcBlocker
	}

	// Option configures an Engine in New.
	Option func(*config)

	config struct {
		polyphony  int
		sampleRate float64
		seed       uint32
	}

	// VoiceState is a snapshot of one voice for metering.
	VoiceState struct {
		Active   bool
		Note     int
		Level    float64 // envelope level
		Released bool
	}
)

const (
	DefaultPolyphony = 16
	MaxPolyphony     = 128
	DefaultRate      = 48000
)

var _ fox3osc.Synth = (*Engine)(nil)

// WithPolyphony sets the number of voices, clamped to [1, MaxPolyphony].
func WithPolyphony(n int) Option {
	return func(c *config) {
		c.polyphony = max(1, min(n, MaxPolyphony))
	}
}

// WithSampleRate sets the initial sample rate in Hz.
func WithSampleRate(rate float64) Option {
	return func(c *config) {
		c.sampleRate = rate
	}
}

// WithSeed sets the seed of the generator behind random waveforms and noise.
// Engines with the same seed render identical output from identical input.
func WithSeed(seed uint32) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func New(opts ...Option) *Engine {
	cfg := config{polyphony: DefaultPolyphony, sampleRate: DefaultRate, seed: defaultSeed}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Engine{
		sampleRate: cfg.sampleRate,
		voices:     make([]voice, cfg.polyphony),
		rand:       newRand(cfg.seed),
	}
}

func (e *Engine) Polyphony() int { return len(e.voices) }

func (e *Engine) SampleRate() float64 { return e.sampleRate }

// SetSampleRate changes the sample rate. Envelope stage lengths follow on the
// next sample; phase increments of playing voices are recomputed now. A rate
// of zero or less makes the engine silent and ignore note ons.
func (e *Engine) SetSampleRate(rate float64) {
	e.sampleRate = rate
	if !e.running() {
		return
	}
	for i := range e.voices {
		v := &e.voices[i]
		if !v.active {
			continue
		}
		for j := range v.osc {
			v.osc[j].setSampleRate(rate)
		}
	}
}

func (e *Engine) running() bool {
	return e.sampleRate > 0
}

// NoteOn starts note, retriggering the voice already playing it if any.
// Notes outside 0..127 are ignored and velocity 0 releases the note.
func (e *Engine) NoteOn(p *fox3osc.Params, note int, velocity float64) {
	if note < 0 || note > 127 || !e.running() {
		return
	}
	if !(velocity > 0) {
		e.NoteOff(note)
		return
	}
	velocity = min(velocity, 1)
	e.clock++
	if i := e.findVoice(note); i >= 0 {
		v := &e.voices[i]
		v.retrigger(p, velocity, e.sampleRate)
		v.started = e.clock
		return
	}
	v := &e.voices[e.allocate()]
	v.start(p, note, velocity, e.sampleRate, &e.rand)
	v.started = e.clock
}

// NoteOff releases every voice playing note. The voices keep their slots
// until the release has finished.
func (e *Engine) NoteOff(note int) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.note == note {
			v.env.release()
		}
	}
}

func (e *Engine) AllNotesOff() {
	for i := range e.voices {
		e.voices[i].env.release()
	}
}

// AllSoundOff frees every voice and clears the output filter.
func (e *Engine) AllSoundOff() {
	for i := range e.voices {
		e.voices[i].kill()
	}
	e.dc.reset()
}

// RenderSample advances every active voice by one sample, frees the voices
// whose envelope finished and returns the DC blocked mix.
func (e *Engine) RenderSample(p *fox3osc.Params) float64 {
	if !e.running() {
		return 0
	}
	var mix float64
	for i := range e.voices {
		v := &e.voices[i]
		if !v.active {
			continue
		}
		mix += v.next(p, e.sampleRate)
		if v.env.state == envStateFinished {
			v.kill()
		}
	}
	return e.dc.process(mix)
}

func (e *Engine) Render(p *fox3osc.Params, buffer fox3osc.AudioBuffer) {
	if !e.running() {
		clear(buffer)
		return
	}
	for i := range buffer {
		buffer[i] = float32(e.RenderSample(p))
	}
}

func (e *Engine) ActiveVoices() (n int) {
	for i := range e.voices {
		if e.voices[i].active {
			n++
		}
	}
	return
}

// VoiceStates fills dst with the state of every voice slot. dst is grown if
// needed, so pass a slice of length Polyphony to avoid allocating.
func (e *Engine) VoiceStates(dst []VoiceState) []VoiceState {
	if len(dst) < len(e.voices) {
		dst = make([]VoiceState, len(e.voices))
	}
	dst = dst[:len(e.voices)]
	for i := range e.voices {
		v := &e.voices[i]
		dst[i] = VoiceState{Active: v.active, Note: v.note, Level: v.env.level, Released: v.env.releasing()}
	}
	return dst
}
