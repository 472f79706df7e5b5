package player

type (
	// MIDIContext lists the MIDI input devices of a driver.
	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

// NullMIDIContext is a MIDIContext without any devices, for builds without
// MIDI support. It is also an empty ProcessContext.
type NullMIDIContext struct{}

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }
func (m NullMIDIContext) NextEvent(frame int) (Event, bool)             { return Event{}, false }
func (m NullMIDIContext) FinishBlock(frame int)                         {}

func (s MIDISupport) String() string {
	switch s {
	case MIDISupportNotCompiled:
		return "not compiled"
	case MIDISupportNoDriver:
		return "no driver"
	}
	return "supported"
}
