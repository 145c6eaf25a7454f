package random

import (
	"math/rand"
	"time"
)

// Source is the randomness capability shared by the allocation engines. Implementations seeded with the same value must produce the same sequence
type Source interface {
	// Returns a uniformly distributed number in [0, 1)
	Float64() float64
	// Returns a uniformly distributed number in [0, n). It panics if n <= 0
	Intn(n int) int
	// Pseudo-randomizes the order of n elements using swap
	Shuffle(n int, swap func(i, j int))
}

type sourceImplementation struct {
	rng *rand.Rand
}

// Returns a deterministic source for the given seed
func NewSource(seed int64) Source {
	return &sourceImplementation{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // Allocation tie-breaking, not security sensitive
	}
}

// Returns a source seeded from the current time
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (source *sourceImplementation) Float64() float64 {
	return source.rng.Float64()
}

func (source *sourceImplementation) Intn(n int) int {
	return source.rng.Intn(n)
}

func (source *sourceImplementation) Shuffle(n int, swap func(i, j int)) {
	source.rng.Shuffle(n, swap)
}

// Returns a shuffled copy of values, the input slice is left untouched
func ShuffleSlice[T any](source Source, values []T) []T {
	shuffled := make([]T, len(values))
	copy(shuffled, values)
	source.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Returns a uniformly chosen element of values, ok is false when values is empty
func Sample[T any](source Source, values []T) (value T, ok bool) {
	if len(values) == 0 {
		return value, false
	}
	return values[source.Intn(len(values))], true
}

// Returns two different indices in [0, max). max must be at least 2
func TwoDistinctIndices(source Source, max int) (int, int) {
	first := source.Intn(max)
	second := (first + 1 + source.Intn(max-1)) % max
	return first, second
}

// Draws n elements from values without repetition. When n exceeds len(values) the pool is refilled, so repetitions only start once every element was drawn
func Choose[T any](source Source, values []T, n int) []T {
	chosen := make([]T, 0, n)
	if len(values) == 0 {
		return chosen
	}

	pool := make([]T, len(values))
	copy(pool, values)
	for range n {
		if len(pool) == 0 {
			pool = make([]T, len(values))
			copy(pool, values)
		}
		index := source.Intn(len(pool))
		chosen = append(chosen, pool[index])
		pool = append(pool[:index], pool[index+1:]...)
	}
	return chosen
}
