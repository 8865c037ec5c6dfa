package storage

import "github.com/snapp-incubator/fetchmock/internal/sampling"

// Sampled only passes the logs picked by Sampler to Next.
type Sampled struct {
	Next    Storage
	Sampler sampling.Sampler
}

// Store is the action of storing
func (s Sampled) Store(l Log) error {
	if !s.Sampler.IsInBucket() {
		return nil
	}
	return s.Next.Store(l)
}
