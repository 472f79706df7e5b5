package player_test

import (
	"math"
	"testing"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/engine"
	"github.com/bruv1700/fox3osc/player"
)

func testSequence() *player.Sequence {
	seq := &player.Sequence{}
	seq.Add(player.Event{Frame: 100, Kind: player.NoteOnEvent, Note: 60, Velocity: 1})
	seq.Add(player.Event{Frame: 128, Kind: player.NoteOnEvent, Note: 67, Velocity: 0.5})
	seq.Add(player.Event{Frame: 640, Kind: player.NoteOffEvent, Note: 60})
	seq.Add(player.Event{Frame: 1000, Kind: player.AllNotesOffEvent})
	return seq
}

func render(t *testing.T, p *player.Player, ctx player.ProcessContext, frames, blockSize int) fox3osc.AudioBuffer {
	t.Helper()
	out := make(fox3osc.AudioBuffer, frames)
	for i := 0; i < frames; i += blockSize {
		p.Process(out[i:min(i+blockSize, frames)], ctx)
	}
	return out
}

func newPlayer(params fox3osc.Params) (*player.Player, *player.Broker) {
	b := player.NewBroker()
	return player.NewPlayer(b, engine.New(engine.WithPolyphony(4)), params), b
}

func TestEventsAreSampleAccurate(t *testing.T) {
	params := fox3osc.DefaultParams()
	params.Envelope.Attack = 0
	p, _ := newPlayer(params)
	out := render(t, p, testSequence(), 4096, 4096)
	for i := 0; i < 100; i++ {
		if out[i] != 0 {
			t.Fatalf("sample %d is %v before the first note on", i, out[i])
		}
	}
	if out[101] == 0 {
		t.Fatalf("sample 101 is silent after a note on at frame 100")
	}
}

func TestBlockSizeDoesNotChangeOutput(t *testing.T) {
	params := fox3osc.DefaultParams()
	params.Oscillators[1] = fox3osc.Oscillator{Waveform: fox3osc.Saw, Level: 0.5}
	for _, blockSize := range []int{1, 37, 64, 500} {
		ref, _ := newPlayer(params)
		want := render(t, ref, testSequence(), 4096, 4096)
		p, _ := newPlayer(params)
		got := render(t, p, testSequence(), 4096, blockSize)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("block size %d: sample %d is %v, want %v", blockSize, i, got[i], want[i])
			}
		}
	}
}

func TestChannelFilter(t *testing.T) {
	p, b := newPlayer(fox3osc.DefaultParams())
	b.ToPlayer <- player.ChannelMsg{Channel: 3}
	seq := &player.Sequence{}
	seq.Add(player.Event{Kind: player.NoteOnEvent, Channel: 2, Note: 60, Velocity: 1})
	out := render(t, p, seq, 512, 128)
	if pk := out.Peak(); pk != 0 {
		t.Fatalf("note on another channel was played, peak %v", pk)
	}
	seq = &player.Sequence{}
	seq.Add(player.Event{Kind: player.NoteOnEvent, Channel: 3, Note: 60, Velocity: 1})
	out = render(t, p, seq, 512, 128)
	if pk := out.Peak(); pk == 0 {
		t.Fatalf("note on the selected channel was not played")
	}
}

func TestGain(t *testing.T) {
	params := fox3osc.DefaultParams()
	ref, _ := newPlayer(params)
	want := render(t, ref, testSequence(), 2048, 256)
	p, b := newPlayer(params)
	b.ToPlayer <- player.GainMsg{Gain: 0.5}
	got := render(t, p, testSequence(), 2048, 256)
	for i := range want {
		if math.Abs(float64(got[i]-want[i]/2)) > 1e-6 {
			t.Fatalf("sample %d is %v, want %v", i, got[i], want[i]/2)
		}
	}
}

func TestMessages(t *testing.T) {
	params := fox3osc.DefaultParams()
	p, b := newPlayer(params)
	b.ToPlayer <- player.NoteOnMsg{Note: 69, Velocity: 1}
	b.ToPlayer <- player.ParamMsg{ID: fox3osc.ParamLevel2, Value: 0.25}
	b.ToPlayer <- player.ParamMsg{ID: fox3osc.NumParams, Value: 1}
	out := render(t, p, &player.Sequence{}, 256, 256)
	if out.Peak() == 0 {
		t.Fatalf("NoteOnMsg did not start a note")
	}
	if got := p.Params().Oscillators[1].Level; got != 0.25 {
		t.Fatalf("got osc 2 level %v, want 0.25", got)
	}
	var alert player.Alert
	for len(b.ToHost) > 0 {
		msg := <-b.ToHost
		if a, ok := msg.Data.(player.Alert); ok {
			alert = a
		}
	}
	if alert.Name != "UnknownParam" || alert.Priority != player.Warning {
		t.Fatalf("got alert %+v, want an UnknownParam warning", alert)
	}
	params.Oscillators[0].Level = 7
	b.ToPlayer <- player.ParamsMsg{Params: params}
	b.ToPlayer <- player.NoteOffMsg{Note: 69}
	render(t, p, &player.Sequence{}, 1, 1)
	if got := p.Params().Oscillators[0].Level; got != 1 {
		t.Fatalf("ParamsMsg was not sanitized, osc 1 level %v", got)
	}
}

func TestLevelsAreReported(t *testing.T) {
	p, b := newPlayer(fox3osc.DefaultParams())
	render(t, p, testSequence(), 1024, 1024)
	var last player.MsgToHost
	for len(b.ToHost) > 0 {
		last = <-b.ToHost
	}
	if !last.HasLevels || last.ActiveVoices != 2 || last.Peak == 0 {
		t.Fatalf("got levels message %+v, want 2 active voices with a peak", last)
	}
	if last.VoiceLevels[0] == 0 || last.VoiceLevels[1] == 0 {
		t.Fatalf("got voice levels %v, want the first two voices sounding", last.VoiceLevels[:4])
	}
	if len(b.ToDetector) != 1 {
		t.Fatalf("got %d buffers for the detector, want 1", len(b.ToDetector))
	}
}

type crashingSynth struct {
	soundOffs int
}

func (s *crashingSynth) NoteOn(p *fox3osc.Params, note int, velocity float64) {}
func (s *crashingSynth) NoteOff(note int)                                     {}
func (s *crashingSynth) AllNotesOff()                                         {}
func (s *crashingSynth) AllSoundOff()                                         { s.soundOffs++ }
func (s *crashingSynth) SetSampleRate(rate float64)                           {}
func (s *crashingSynth) ActiveVoices() int                                    { return 0 }
func (s *crashingSynth) Render(p *fox3osc.Params, buffer fox3osc.AudioBuffer) {
	buffer[0] = 1
	panic("boom")
}

func TestCrashingSynthIsSilenced(t *testing.T) {
	b := player.NewBroker()
	synth := &crashingSynth{}
	p := player.NewPlayer(b, synth, fox3osc.DefaultParams())
	out := render(t, p, &player.Sequence{}, 64, 64)
	if pk := out.Peak(); pk != 0 {
		t.Fatalf("crashed block was not silenced, peak %v", pk)
	}
	var crashed, panicking bool
	for len(b.ToHost) > 0 {
		msg := <-b.ToHost
		if a, ok := msg.Data.(player.Alert); ok && a.Name == "PlayerCrash" && a.Priority == player.Error {
			crashed = true
		}
		panicking = msg.Panic
	}
	if !crashed || !panicking {
		t.Fatalf("got crash alert %v, panic %v, want both", crashed, panicking)
	}
	b.ToPlayer <- player.Panic(false)
	render(t, p, &player.Sequence{}, 1, 1)
	if synth.soundOffs != 1 {
		t.Fatalf("clearing the panic should free every voice, AllSoundOff called %d times", synth.soundOffs)
	}
}

func TestRenderSequence(t *testing.T) {
	params := fox3osc.DefaultParams()
	p, _ := newPlayer(params)
	seq := testSequence()
	tail := player.TailFrames(&params, engine.DefaultRate)
	out := player.RenderSequence(p, seq, tail, 0)
	if len(out) != seq.Frames()+tail+1 {
		t.Fatalf("got %d frames, want %d", len(out), seq.Frames()+tail+1)
	}
	if pk := out[len(out)-2:].Peak(); pk > 1e-3 {
		t.Fatalf("tail did not fade out, peak %v", pk)
	}
	ref, _ := newPlayer(params)
	want := render(t, ref, testSequence(), len(out), 4096)
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("sample %d is %v, want %v", i, out[i], want[i])
		}
	}
}
