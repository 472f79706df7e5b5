package player

import (
	"cmp"
	"slices"
)

// Sequence is a list of events ordered by frame. It implements ProcessContext,
// so it can drive a Player offline.
type Sequence struct {
	Events  []Event
	pos     int
	offset  int
	pending bool
}

// Add inserts an event, keeping the events ordered. Events on the same frame
// keep their insertion order.
func (s *Sequence) Add(e Event) {
	i, _ := slices.BinarySearchFunc(s.Events, e.Frame, func(a Event, frame int) int {
		if a.Frame <= frame {
			return -1
		}
		return 1
	})
	s.Events = slices.Insert(s.Events, i, e)
}

// Sort orders the events by frame, keeping the order of simultaneous events.
func (s *Sequence) Sort() {
	slices.SortStableFunc(s.Events, func(a, b Event) int { return cmp.Compare(a.Frame, b.Frame) })
}

// Frames returns the frame of the last event.
func (s *Sequence) Frames() int {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Frame
}

// Rewind restarts the playback from the first event.
func (s *Sequence) Rewind() {
	s.pos, s.offset, s.pending = 0, 0, false
}

func (s *Sequence) NextEvent(frame int) (Event, bool) {
	if s.pos >= len(s.Events) {
		s.pending = false
		return Event{}, false
	}
	e := s.Events[s.pos]
	e.Frame -= s.offset
	s.pos++
	s.pending = true
	return e, true
}

// FinishBlock hands the last returned, not yet reached event to the next
// block.
func (s *Sequence) FinishBlock(frame int) {
	if s.pending {
		s.pos--
		s.pending = false
	}
	s.offset += frame
}
