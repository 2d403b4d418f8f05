// Package engine holds the pure outcome generators. Every generator takes an
// injected randomness source so outcomes are deterministically replayable.
package engine

import (
	"math/rand"
	"time"
)

// Rand is the single randomness primitive the generators consume.
type Rand interface {
	// Next returns a uniform float in [0, 1).
	Next() float64
}

type seededRand struct {
	r *rand.Rand
}

func (s *seededRand) Next() float64 { return s.r.Float64() }

// NewRand returns a Rand seeded from the given value.
func NewRand(seed int64) Rand {
	return &seededRand{r: rand.New(rand.NewSource(seed))}
}

// NewTimeRand returns a Rand seeded from the wall clock. This is the
// production source; tests inject fixed sequences instead.
func NewTimeRand() Rand {
	return NewRand(time.Now().UnixNano())
}

// intn maps one draw onto [0, n). n must be > 0.
func intn(r Rand, n int) int {
	v := int(r.Next() * float64(n))
	if v >= n { // Next() can round up against float edges
		v = n - 1
	}
	return v
}

// between maps one draw onto [lo, hi).
func between(r Rand, lo, hi float64) float64 {
	return lo + r.Next()*(hi-lo)
}

// sample draws k distinct values from [lo, hi] without replacement.
func sample(r Rand, lo, hi, k int) []int {
	pool := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		pool = append(pool, n)
	}
	for i := 0; i < k; i++ {
		j := i + intn(r, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
