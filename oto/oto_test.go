package oto

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/bruv1700/fox3osc"
)

func TestFloatBufferToBytes(t *testing.T) {
	in := []float32{0, 1, -0.5, 0.25}
	out := make([]byte, 4*len(in))
	floatBufferToBytes(out, in)
	for i, want := range in {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(out[4*i:])); got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestReaderEndsWithSource(t *testing.T) {
	r := &reader{source: fox3osc.AudioBuffer{0.5, 0.5, 0.5}.Source()}
	p := make([]byte, 16)
	n, err := r.Read(p)
	if n != 16 || err != nil {
		t.Fatalf("got %d bytes, %v, want 16 bytes", n, err)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(p[12:])); got != 0 {
		t.Fatalf("source should be zero padded, got %v", got)
	}
	if _, err := r.Read(p); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
	if r.err != nil {
		t.Fatalf("io.EOF should not be reported as an error, got %v", r.err)
	}
}

func TestReaderKeepsSourceError(t *testing.T) {
	boom := errors.New("boom")
	r := &reader{source: func(fox3osc.AudioBuffer) error { return boom }}
	if _, err := r.Read(make([]byte, 8)); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
	if !errors.Is(r.err, boom) {
		t.Fatalf("got %v, want the source error", r.err)
	}
}
