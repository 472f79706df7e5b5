package player

import (
	"sync"
	"time"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/engine"
)

type (
	// Broker connects the player with the goroutines controlling it and with
	// the level detector. Each recipient has one channel. The broker also has
	// a sync.Pool of *fox3osc.AudioBuffers, so the player can hand rendered
	// audio to the detector without allocating a new buffer for every block.
	//
	// The detector goroutine is closed by sending to CloseDetector, which has
	// a capacity of 1; if the send would block, someone else has already asked
	// it to close. FinishedDetector is closed when the detector has returned:
	//    select {
	//      case <-FinishedDetector:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToPlayer   chan any
		ToHost     chan MsgToHost
		ToDetector chan MsgToDetector

		CloseDetector    chan struct{}
		FinishedDetector chan struct{}

		bufferPool sync.Pool
	}

	// MsgToHost is sent by the player after every block and by the detector
	// after every analysed chunk. The frequently sent data is not boxed, to
	// avoid allocations; everything else travels in Data.
	MsgToHost struct {
		HasLevels    bool
		Panic        bool
		ActiveVoices int
		Peak         float32 // peak of the last block, after gain
		VoiceLevels  [engine.MaxPolyphony]float32

		HasDetectorResult bool
		DetectorResult    DetectorResult

		Data any
	}

	// MsgToDetector carries a *fox3osc.AudioBuffer to analyse in Data. Reset
	// clears the detector history first.
	MsgToDetector struct {
		Reset bool
		Data  any
	}

	// NoteOnMsg and NoteOffMsg play notes directly, bypassing the channel
	// filter of the player.
	NoteOnMsg struct {
		Note     int
		Velocity float64
	}

	NoteOffMsg struct {
		Note int
	}

	// ParamsMsg replaces the whole parameter set. It is sanitized before use.
	ParamsMsg struct {
		Params fox3osc.Params
	}

	// ParamMsg changes a single parameter.
	ParamMsg struct {
		ID    fox3osc.ParamID
		Value float64
	}

	// PanicMsg{true} silences the player until PanicMsg{false} is received.
	// Clearing a panic also frees every voice.
	PanicMsg struct {
		bool
	}

	SampleRateMsg struct {
		Rate float64
	}

	GainMsg struct {
		Gain float32
	}

	// ChannelMsg selects the MIDI channel the player listens to; Omni
	// listens to all of them.
	ChannelMsg struct {
		Channel int
	}

	Alert struct {
		Name     string
		Message  string
		Priority AlertPriority
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

func NewBroker() *Broker {
	return &Broker{
		ToPlayer:         make(chan any, 1024),
		ToHost:           make(chan MsgToHost, 1024),
		ToDetector:       make(chan MsgToDetector, 1024),
		CloseDetector:    make(chan struct{}, 1),
		FinishedDetector: make(chan struct{}),
		bufferPool:       sync.Pool{New: func() any { return &fox3osc.AudioBuffer{} }},
	}
}

func Panic(b bool) PanicMsg { return PanicMsg{b} }

func (m PanicMsg) Panicking() bool { return m.bool }

// GetAudioBuffer returns an empty audio buffer from the buffer pool. Return
// it with PutAudioBuffer after use.
func (b *Broker) GetAudioBuffer() *fox3osc.AudioBuffer {
	return b.bufferPool.Get().(*fox3osc.AudioBuffer)
}

// PutAudioBuffer truncates the buffer, keeping its capacity, and returns it
// to the pool.
func (b *Broker) PutAudioBuffer(buf *fox3osc.AudioBuffer) {
	if len(*buf) > 0 {
		*buf = (*buf)[:0]
	}
	b.bufferPool.Put(buf)
}

// TrySend sends v to c if c is not full. It never blocks and reports whether
// the value was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received from c or t has passed. ok
// is false on timeout or if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
