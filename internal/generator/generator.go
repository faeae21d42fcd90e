// Package generator builds randomized study orders.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces random permutations.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Permutation returns a Fisher-Yates shuffle of [0, n).
func (g *Generator) Permutation(n int) []int {
	if n <= 0 {
		return nil
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}
