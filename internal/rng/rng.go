package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the uniform integer source consumed by Shuffle.
type Source interface {
	IntN(n int) int // [0, n)
}

// package-level math/rand/v2: auto-seeded, safe for concurrent use, not cryptographic
type defaultSource struct{}

func (defaultSource) IntN(n int) int { return rand.IntN(n) }

func Default() Source { return defaultSource{} }

// Replicable source (e.g. tests, CLI -seed). Not safe for concurrent use.
type seededSource struct{ r *rand.Rand }

func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) IntN(n int) int { return s.r.IntN(n) }

// NewSeed reads a fresh seed from crypto/rand, for callers that want to log
// the seed of an otherwise random run so it can be replayed.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := cryptoRand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
