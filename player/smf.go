package player

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrInvalidSampleRate = errors.New("sample rate must be positive")

// ReadSMF reads a standard MIDI file and returns its note and channel mode
// events, merged from every track, stamped with frames at sampleRate.
func ReadSMF(r io.Reader, sampleRate int) (*Sequence, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	seq := &Sequence{}
	rd := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		frame := int(te.AbsMicroSeconds * int64(sampleRate) / 1e6)
		if e, ok := EventFromMessage(midi.Message(te.Message), frame); ok {
			seq.Events = append(seq.Events, e)
		}
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("could not read MIDI file: %w", err)
	}
	seq.Sort()
	return seq, nil
}

// ReadSMFFile is ReadSMF for a file on disk.
func ReadSMFFile(filename string, sampleRate int) (*Sequence, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", filename, err)
	}
	defer f.Close()
	seq, err := ReadSMF(f, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return seq, nil
}
