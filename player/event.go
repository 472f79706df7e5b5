package player

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

type (
	// Event is a performance event. In processing, Frame is relative to the
	// start of the current buffer; in a Sequence, it is relative to the start
	// of the sequence.
	Event struct {
		Frame    int
		Kind     EventKind
		Channel  int
		Note     int
		Velocity float64 // 0..1
	}

	EventKind int
)

const (
	NoteOnEvent EventKind = iota
	NoteOffEvent
	AllNotesOffEvent
	AllSoundOffEvent
)

// Omni makes the player react to events on every channel.
const Omni = -1

const (
	ccAllSoundOff = 120
	ccAllNotesOff = 123
)

// EventFromMessage decodes the MIDI messages the synth reacts to: note on,
// note off and the all sound off and all notes off channel mode messages.
// A note on with velocity 0 decodes as a note off.
func EventFromMessage(msg midi.Message, frame int) (Event, bool) {
	var channel, key, velocity, controller, value uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		if velocity == 0 {
			return Event{Frame: frame, Kind: NoteOffEvent, Channel: int(channel), Note: int(key)}, true
		}
		return Event{Frame: frame, Kind: NoteOnEvent, Channel: int(channel), Note: int(key), Velocity: float64(velocity) / 127}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return Event{Frame: frame, Kind: NoteOffEvent, Channel: int(channel), Note: int(key)}, true
	case msg.GetControlChange(&channel, &controller, &value):
		switch controller {
		case ccAllSoundOff:
			return Event{Frame: frame, Kind: AllSoundOffEvent, Channel: int(channel)}, true
		case ccAllNotesOff:
			return Event{Frame: frame, Kind: AllNotesOffEvent, Channel: int(channel)}, true
		}
	}
	return Event{}, false
}

// Message encodes the event back into a MIDI message.
func (e Event) Message() midi.Message {
	ch := uint8(e.Channel & 0xF)
	switch e.Kind {
	case NoteOnEvent:
		vel := uint8(min(max(e.Velocity*127+0.5, 1), 127))
		return midi.NoteOn(ch, uint8(e.Note&0x7F), vel)
	case NoteOffEvent:
		return midi.NoteOff(ch, uint8(e.Note&0x7F))
	case AllSoundOffEvent:
		return midi.ControlChange(ch, ccAllSoundOff, 0)
	default:
		return midi.ControlChange(ch, ccAllNotesOff, 0)
	}
}

func (k EventKind) String() string {
	switch k {
	case NoteOnEvent:
		return "note on"
	case NoteOffEvent:
		return "note off"
	case AllNotesOffEvent:
		return "all notes off"
	case AllSoundOffEvent:
		return "all sound off"
	}
	return fmt.Sprintf("event(%d)", int(k))
}
