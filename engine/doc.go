// Package engine implements the fox3osc voice engine: three oscillators per
// voice, oscillator 3 to oscillator 1 phase modulation, an ADSR envelope,
// microtonal tuning, voice allocation with stealing and a DC blocked mono
// output.
//
// Engine is driven sample by sample from a single goroutine. After New
// returns, no method allocates, blocks or takes a lock, so it can be called
// directly from an audio callback.
package engine
