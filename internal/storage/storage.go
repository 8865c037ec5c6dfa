package storage

import (
	"fmt"

	"github.com/snapp-incubator/fetchmock/internal/config"
	"github.com/snapp-incubator/fetchmock/internal/sampling"
)

// Storage defines the behavior of log storage
type Storage interface {
	// Store is the action of storing
	Store(Log) error
}

// New builds the Storage described by c. It returns nil when the export is disabled.
func New(c config.Storage) (Storage, error) {
	var s Storage

	switch c.Kind {
	case "", config.StorageNone:
		return nil, nil
	case config.StorageStdout:
		s = StdoutStorage{}
	case config.StorageElasticsearch:
		es, err := NewElastic(c.Elasticsearch)
		if err != nil {
			return nil, err
		}
		s = es
	default:
		return nil, fmt.Errorf("unknown storage kind %q", c.Kind)
	}

	if len(c.SkipJSONPaths) > 0 {
		s = Redacted{Next: s, Paths: c.SkipJSONPaths}
	}

	if c.SamplePercent > 0 && c.SamplePercent < 100 {
		s = Sampled{Next: s, Sampler: sampling.NewBucket(int(c.SamplePercent))}
	}

	return s, nil
}
