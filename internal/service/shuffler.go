// internal/service/shuffler.go
package service

import (
	"math/rand"
	"time"

	"go_hsk_flashcard/internal/model"
)

// Shuffler is the single source of randomness for permutations and question
// order. Tests construct it with a fixed seed for determinism.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler seeds from the clock.
func NewShuffler() *Shuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

func NewSeededShuffler(seed int64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewSource(seed))}
}

// Permutation returns a uniformly random permutation of [0, n).
func (s *Shuffler) Permutation(n int) []int {
	return s.rng.Perm(n)
}

// ShuffleWords shuffles the slice in place.
func (s *Shuffler) ShuffleWords(words []model.Word) {
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

// CoinFlip returns true with probability 1/2.
func (s *Shuffler) CoinFlip() bool {
	return s.rng.Intn(2) == 0
}
