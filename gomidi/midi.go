// Package gomidi reads live MIDI input through rtmidi and delivers it to a
// player as frame-stamped events.
package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bruv1700/fox3osc/player"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// RTMIDIContext implements player.MIDIContext and player.ProcessContext.
	// Messages arrive in the rtmidi goroutine and are stamped with the frame
	// they were received on; the audio goroutine replays them with the same
	// spacing, drifting its clock slowly towards the incoming events.
	RTMIDIContext struct {
		driver        *rtmididrv.Driver
		currentIn     drivers.In
		stop          func()
		sampleRate    int
		events        chan timestampedMsg
		eventsBuf     []timestampedMsg
		eventIndex    int
		startFrame    int
		startFrameSet bool
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}

	timestampedMsg struct {
		frame int
		msg   midi.Message
	}
)

var ErrNoDriver = errors.New("no MIDI driver available")

// NewContext opens the rtmidi driver. If that fails, the context has no
// devices and Support reports MIDISupportNoDriver.
func NewContext(sampleRate int) *RTMIDIContext {
	m := RTMIDIContext{events: make(chan timestampedMsg, 1024), sampleRate: sampleRate}
	m.driver, _ = rtmididrv.New()
	return &m
}

func (m *RTMIDIContext) Inputs(yield func(player.MIDIInputDevice) bool) {
	if m.driver == nil {
		return
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return
	}
	for _, in := range ins {
		if !yield(RTMIDIDevice{context: m, in: in}) {
			break
		}
	}
}

func (m *RTMIDIContext) Support() player.MIDISupport {
	if m.driver == nil {
		return player.MIDISupportNoDriver
	}
	return player.MIDISupported
}

// Open opens the input device, closing the currently open one.
func (d RTMIDIDevice) Open() error {
	c := d.context
	if c.currentIn == d.in && d.in.IsOpen() {
		return nil
	}
	if c.driver == nil {
		return ErrNoDriver
	}
	c.closeInput()
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, c.HandleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.currentIn = d.in
	c.stop = stop
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return nil
	}
	return d.context.closeInput()
}

func (d RTMIDIDevice) IsOpen() bool   { return d.in.IsOpen() }
func (d RTMIDIDevice) String() string { return d.in.String() }

func (c *RTMIDIContext) closeInput() error {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if c.currentIn == nil {
		return nil
	}
	in := c.currentIn
	c.currentIn = nil
	if !in.IsOpen() {
		return nil
	}
	if err := in.Close(); err != nil {
		return fmt.Errorf("closing MIDI input failed: %w", err)
	}
	return nil
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.closeInput()
	c.driver.Close()
}

func (c *RTMIDIContext) HasDeviceOpen() bool {
	return c.currentIn != nil && c.currentIn.IsOpen()
}

// OpenBy opens the first input whose name starts with namePrefix, or the
// first input if takeFirst is set.
func (c *RTMIDIContext) OpenBy(namePrefix string, takeFirst bool) error {
	if namePrefix == "" && !takeFirst {
		return nil
	}
	for input := range c.Inputs {
		if takeFirst || strings.HasPrefix(input.String(), namePrefix) {
			return input.Open()
		}
	}
	if takeFirst {
		return errors.New("could not find any MIDI input")
	}
	return fmt.Errorf("could not find any MIDI input starting with %q", namePrefix)
}

// HandleMessage is the rtmidi listener. If the event queue is full, the
// message is dropped.
func (c *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	select {
	case c.events <- timestampedMsg{frame: int(int64(timestampms) * int64(c.sampleRate) / 1000), msg: msg}:
	default:
	}
}

func (c *RTMIDIContext) NextEvent(frame int) (event player.Event, ok bool) {
F:
	for {
		select {
		case msg := <-c.events:
			c.eventsBuf = append(c.eventsBuf, msg)
			if !c.startFrameSet {
				c.startFrame = msg.frame
				c.startFrameSet = true
			}
		default:
			break F
		}
	}
	if c.eventIndex > 0 {
		// the previous event was consumed at frame; if that was late, move
		// the clock towards it
		delta := frame + c.startFrame - c.eventsBuf[c.eventIndex-1].frame
		c.startFrame -= delta / 5
	}
	for c.eventIndex < len(c.eventsBuf) {
		m := c.eventsBuf[c.eventIndex]
		c.eventIndex++
		if e, ok := player.EventFromMessage(m.msg, m.frame-c.startFrame); ok {
			return e, true
		}
	}
	c.eventIndex = len(c.eventsBuf) + 1
	return player.Event{}, false
}

func (c *RTMIDIContext) FinishBlock(frame int) {
	c.startFrame += frame
	if c.eventIndex > 0 {
		copy(c.eventsBuf, c.eventsBuf[c.eventIndex-1:])
		c.eventsBuf = c.eventsBuf[:len(c.eventsBuf)-c.eventIndex+1]
		if len(c.eventsBuf) > 0 {
			// events left for the next block, move the clock towards them
			delta := c.startFrame - c.eventsBuf[0].frame
			c.startFrame -= delta / 5
		}
	}
	c.eventIndex = 0
}
