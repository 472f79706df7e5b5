package fox3osc

import (
	"io"
	"math"

	"github.com/viterin/vek/vek32"
)

type (
	// AudioBuffer is a buffer of mono audio samples, nominally in [-1,1].
	AudioBuffer []float32

	// AudioSource fills buf with audio. Returning an error stops playback.
	AudioSource func(buf AudioBuffer) error

	// AudioContext is the low-level audio output device. Play starts
	// pulling audio from the source until the returned CloserWaiter is
	// closed or the source returns an error.
	AudioContext interface {
		Play(source AudioSource) CloserWaiter
		SampleRate() int
	}

	// CloserWaiter is a handle to a playing source. Wait blocks until the
	// source is exhausted or the handle is closed.
	CloserWaiter interface {
		io.Closer
		Wait()
	}
)

// Source returns an AudioSource that plays the buffer once and then returns
// io.EOF.
func (buffer AudioBuffer) Source() AudioSource {
	return func(buf AudioBuffer) error {
		n := copy(buf, buffer)
		buffer = buffer[n:]
		clear(buf[n:])
		if n == 0 {
			return io.EOF
		}
		return nil
	}
}

// Peak returns the largest absolute sample value of the buffer.
func (buffer AudioBuffer) Peak() float32 {
	if len(buffer) == 0 {
		return 0
	}
	return max(vek32.Max(buffer), -vek32.Min(buffer))
}

// RMS returns the root mean square of the buffer.
func (buffer AudioBuffer) RMS() float32 {
	if len(buffer) == 0 {
		return 0
	}
	return float32(math.Sqrt(float64(vek32.Dot(buffer, buffer)) / float64(len(buffer))))
}

// Gain multiplies every sample of the buffer by g in place.
func (buffer AudioBuffer) Gain(g float32) {
	if len(buffer) == 0 || g == 1 {
		return
	}
	vek32.MulNumber_Inplace(buffer, g)
}
