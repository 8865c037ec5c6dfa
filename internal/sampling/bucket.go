package sampling

import "sync"

// Sampler decides whether the next item is kept.
type Sampler interface {
	IsInBucket() bool
}

// bucket keeps weight items out of every hundred, spread evenly instead of at random
// so that tests exporting traffic stay reproducible.
type bucket struct {
	mu     sync.Mutex
	weight int
	credit int
}

// NewBucket is a factory method for a bucket keeping weight percent of the items.
func NewBucket(weight int) Sampler {
	if weight < 0 || weight > 100 {
		panic("weight must be between 0 and 100")
	}

	return &bucket{weight: weight}
}

// IsInBucket reports whether the current item is kept.
func (b *bucket) IsInBucket() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.credit += b.weight
	if b.credit < 100 {
		return false
	}

	b.credit -= 100
	return true
}
