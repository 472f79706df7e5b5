package player

import (
	"github.com/bruv1700/fox3osc"
)

// DefaultBlockSize is the block size of offline rendering.
const DefaultBlockSize = 256

// RenderSequence renders seq from the start with p, continuing tail frames
// after the last event so that released notes can fade out.
func RenderSequence(p Processor, seq *Sequence, tail, blockSize int) fox3osc.AudioBuffer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	seq.Rewind()
	frames := seq.Frames() + max(tail, 0) + 1
	buffer := make(fox3osc.AudioBuffer, frames)
	for i := 0; i < frames; i += blockSize {
		p.Process(buffer[i:min(i+blockSize, frames)], seq)
	}
	return buffer
}

// TailFrames returns how many frames a note released at the end of a sequence
// keeps sounding with the given parameters.
func TailFrames(params *fox3osc.Params, sampleRate int) int {
	return int(params.Envelope.Release*float64(sampleRate)) + 1
}
