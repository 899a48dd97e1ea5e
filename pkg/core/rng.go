package core

import "math/rand/v2"

// BitSource produces one biased random bit per call.
type BitSource interface {
	NextBit() bool
}

// bitMidpoint splits the byte range in half; draws at or above it are live.
const bitMidpoint = 128

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NextBit draws one byte and reports whether it falls in the upper half of
// its range.
func (r *RNG) NextBit() bool {
	return r.Byte() >= bitMidpoint
}

// Byte returns one pseudo-random byte.
func (r *RNG) Byte() uint8 {
	return uint8(r.r.Uint32())
}

// BitFunc adapts a plain function to BitSource.
type BitFunc func() bool

// NextBit calls f.
func (f BitFunc) NextBit() bool { return f() }
