// Package oto plays audio sources through the oto v3 library as mono 32-bit
// float audio.
package oto

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bruv1700/fox3osc"
	"github.com/ebitengine/oto/v3"
)

type (
	// Context is an oto context. Only one can exist per process.
	Context struct {
		ctx        *oto.Context
		sampleRate int
	}

	// Output is a playing source.
	Output struct {
		player *oto.Player
		reader *reader
	}

	reader struct {
		source fox3osc.AudioSource
		buf    fox3osc.AudioBuffer
		mu     sync.Mutex
		err    error
		done   bool
	}
)

var _ fox3osc.AudioContext = (*Context)(nil)

const DefaultBufferSize = 20 * time.Millisecond

// NewContext creates the oto context and waits until the audio device is
// ready. A bufferSize of 0 uses DefaultBufferSize.
func NewContext(sampleRate int, bufferSize time.Duration) (*Context, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("cannot create oto context: invalid sample rate %d", sampleRate)
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, sampleRate: sampleRate}, nil
}

func (c *Context) SampleRate() int { return c.sampleRate }

// Play starts pulling audio from source in the oto goroutine.
func (c *Context) Play(source fox3osc.AudioSource) fox3osc.CloserWaiter {
	r := &reader{source: source}
	p := c.ctx.NewPlayer(r)
	p.Play()
	return &Output{player: p, reader: r}
}

// Suspend pauses all audio output of the context.
func (c *Context) Suspend() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (c *Context) Resume() error {
	if err := c.ctx.Resume(); err != nil {
		return fmt.Errorf("cannot resume oto context: %w", err)
	}
	return nil
}

func (r *reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return 0, io.EOF
	}
	n := len(p) / 4
	if cap(r.buf) < n {
		r.buf = make(fox3osc.AudioBuffer, n)
	}
	buf := r.buf[:n]
	if err := r.source(buf); err != nil {
		r.done = true
		if !errors.Is(err, io.EOF) {
			r.err = err
		}
		return 0, io.EOF
	}
	floatBufferToBytes(p, buf)
	return 4 * n, nil
}

func (r *reader) finish() {
	r.mu.Lock()
	r.done = true
	r.mu.Unlock()
}

// Err returns the error that stopped the source, if any.
func (o *Output) Err() error {
	o.reader.mu.Lock()
	defer o.reader.mu.Unlock()
	if o.reader.err != nil {
		return o.reader.err
	}
	return o.player.Err()
}

// Wait blocks until the source is exhausted and the buffered audio has been
// played.
func (o *Output) Wait() {
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
}

func (o *Output) Close() error {
	o.reader.finish()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
