package player

import (
	"fmt"
	"math"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/engine"
	"github.com/viterin/vek/vek32"
)

type (
	// Player renders a synth in the audio goroutine. It is controlled by
	// messages from Broker.ToPlayer and by the events of the ProcessContext,
	// typically MIDI input. All the messages the player sends are
	// non-blocking, so the audio goroutine can never deadlock.
	Player struct {
		synth       fox3osc.Synth
		params      fox3osc.Params
		broker      *Broker
		channel     int
		gain        float32
		panic       bool
		voiceLevels [engine.MaxPolyphony]float32
		states      []engine.VoiceState
	}

	// ProcessContext supplies the events of the block being processed.
	// NextEvent returns the events in order, with frames relative to the
	// start of the block. The last event returned before FinishBlock has not
	// been reached yet and must be returned again in the next block.
	ProcessContext interface {
		NextEvent(frame int) (event Event, ok bool)
		FinishBlock(frame int)
	}

	// Processor is anything that fills audio buffers block by block.
	Processor interface {
		Process(buffer fox3osc.AudioBuffer, context ProcessContext)
	}

	voiceStater interface {
		VoiceStates(dst []engine.VoiceState) []engine.VoiceState
	}
)

var _ Processor = (*Player)(nil)

// NewPlayer creates a player for synth, listening to every MIDI channel with
// unity gain.
func NewPlayer(broker *Broker, synth fox3osc.Synth, params fox3osc.Params) *Player {
	params.Sanitize()
	return &Player{
		synth:   synth,
		params:  params,
		broker:  broker,
		channel: Omni,
		gain:    1,
	}
}

// Params returns a copy of the current parameters. Only call it from the
// goroutine running Process.
func (p *Player) Params() fox3osc.Params { return p.params }

// Process renders audio to the whole buffer. Events are applied on the frame
// they fall on; events that are already late are applied immediately.
func (p *Player) Process(buffer fox3osc.AudioBuffer, context ProcessContext) {
	p.processMessages()
	frame := 0
	event, ok := context.NextEvent(frame)
	for {
		for ok && frame >= event.Frame {
			p.handleEvent(event)
			event, ok = context.NextEvent(frame)
		}
		n := len(buffer) - frame
		if delta := event.Frame - frame; ok && delta < n {
			n = delta
		}
		p.render(buffer[frame : frame+n])
		frame += n
		if frame >= len(buffer) {
			break
		}
	}
	if p.gain != 1 {
		vek32.MulNumber_Inplace(buffer, p.gain)
	}
	p.sendBuffer(buffer)
	p.send(buffer.Peak(), nil)
	context.FinishBlock(frame)
}

// render fills buf with the synth output. A crashing synth puts the player in
// panic, which outputs silence until the panic is cleared.
func (p *Player) render(buf fox3osc.AudioBuffer) {
	if p.panic || p.synth == nil {
		clear(buf)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			clear(buf)
			p.panic = true
			p.SendAlert("PlayerCrash", fmt.Sprintf("synth.Render: %v", r), Error)
		}
	}()
	p.synth.Render(&p.params, buf)
}

func (p *Player) handleEvent(e Event) {
	if p.panic || p.synth == nil {
		return
	}
	if p.channel != Omni && e.Channel != p.channel {
		return
	}
	switch e.Kind {
	case NoteOnEvent:
		p.synth.NoteOn(&p.params, e.Note, e.Velocity)
	case NoteOffEvent:
		p.synth.NoteOff(e.Note)
	case AllNotesOffEvent:
		p.synth.AllNotesOff()
	case AllSoundOffEvent:
		p.synth.AllSoundOff()
	}
}

func (p *Player) processMessages() {
loop:
	for {
		select {
		case msg := <-p.broker.ToPlayer:
			switch m := msg.(type) {
			case PanicMsg:
				if p.panic && !m.bool && p.synth != nil {
					p.synth.AllSoundOff()
				}
				p.panic = m.bool
			case NoteOnMsg:
				if !p.panic && p.synth != nil {
					p.synth.NoteOn(&p.params, m.Note, m.Velocity)
				}
			case NoteOffMsg:
				if !p.panic && p.synth != nil {
					p.synth.NoteOff(m.Note)
				}
			case ParamsMsg:
				p.params = m.Params
				p.params.Sanitize()
			case ParamMsg:
				if !p.params.SetParam(m.ID, m.Value) {
					p.SendAlert("UnknownParam", fmt.Sprintf("unknown parameter %v", m.ID), Warning)
				}
			case SampleRateMsg:
				if p.synth != nil {
					p.synth.SetSampleRate(m.Rate)
				}
			case GainMsg:
				if !math.IsNaN(float64(m.Gain)) {
					p.gain = max(m.Gain, 0)
				}
			case ChannelMsg:
				p.channel = m.Channel
			case *Event:
				p.handleEvent(*m)
			default:
				// ignore unknown messages
			}
		default:
			break loop
		}
	}
}

func (p *Player) SendAlert(name, message string, priority AlertPriority) {
	p.send(0, Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
	})
}

// sendBuffer lends a copy of the block to the detector.
func (p *Player) sendBuffer(buffer fox3osc.AudioBuffer) {
	bufPtr := p.broker.GetAudioBuffer()
	*bufPtr = append(*bufPtr, buffer...)
	if len(*bufPtr) == 0 || !TrySend(p.broker.ToDetector, MsgToDetector{Data: bufPtr}) {
		p.broker.PutAudioBuffer(bufPtr)
	}
}

func (p *Player) send(peak float32, message any) {
	msg := MsgToHost{
		HasLevels: true,
		Panic:     p.panic,
		Peak:      peak,
		Data:      message,
	}
	if p.synth != nil {
		msg.ActiveVoices = p.synth.ActiveVoices()
	}
	if vs, ok := p.synth.(voiceStater); ok {
		p.states = vs.VoiceStates(p.states)
		for i, s := range p.states {
			if i >= len(p.voiceLevels) {
				break
			}
			p.voiceLevels[i] = float32(s.Level)
		}
	}
	msg.VoiceLevels = p.voiceLevels
	TrySend(p.broker.ToHost, msg)
}
