package engine

// findVoice returns the slot playing or releasing note, or -1.
func (e *Engine) findVoice(note int) int {
	for i := range e.voices {
		v := &e.voices[i]
		if v.active && v.note == note {
			return i
		}
	}
	return -1
}

// allocate returns the slot for a new note: the lowest free slot if there is
// one, otherwise the oldest released voice, otherwise the oldest voice.
func (e *Engine) allocate() int {
	oldest := 0
	oldestReleased := false
	var age uint64
	for i := range e.voices {
		v := &e.voices[i]
		if !v.active {
			return i
		}
		released := v.env.releasing()
		if i == 0 || (released && !oldestReleased) || (released == oldestReleased && v.started < age) {
			oldest = i
			oldestReleased = released
			age = v.started
		}
	}
	return oldest
}
