package engine

// rand is the multiplicative congruential generator used for noise, random
// waveform resolution and seeding. The seed must be odd, otherwise the
// sequence collapses to zero.
type rand struct {
	seed uint32
}

const defaultSeed = 0xB00B5

func newRand(seed uint32) rand {
	return rand{seed: seed | 1}
}

func (r *rand) next() uint32 {
	r.seed *= 16007
	return r.seed
}

// float returns a value in (-1,1].
func (r *rand) float() float64 {
	return float64(int32(r.next())) / -2147483648.0
}

// intn returns a value in [0,n) from the high bits, the low bits of the
// generator being weak.
func (r *rand) intn(n int) int {
	return int(uint64(r.next()) * uint64(n) >> 32)
}
