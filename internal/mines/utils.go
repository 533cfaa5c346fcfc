package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// NewRand returns a PCG source seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type cellstack []Point

func (s *cellstack) push(p Point) {
	*s = append(*s, p)
}

func (s *cellstack) pop() Point {
	old := *s
	p := old[len(old)-1]
	*s = old[:len(old)-1]
	return p
}
