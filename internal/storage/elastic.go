package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/snapp-incubator/fetchmock/internal/config"
)

// ElasticStorage is the backend Storage interface that works with Elasticsearch
type ElasticStorage struct {
	ES    *elasticsearch.Client
	Index string
}

// NewElastic creates an ElasticStorage from the config.
func NewElastic(c config.Elasticsearch) (*ElasticStorage, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:              c.Addresses,
		Username:               c.Username,
		Password:               c.Password,
		CloudID:                c.CloudID,
		APIKey:                 c.APIKey,
		ServiceToken:           c.ServiceToken,
		CertificateFingerprint: c.CertificateFingerprint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create the elasticsearch client: %w", err)
	}

	return &ElasticStorage{ES: es, Index: c.Index}, nil
}

// Store is the action of storing
func (s ElasticStorage) Store(l Log) error {
	b, err := json.Marshal(&l)
	if err != nil {
		return fmt.Errorf("failed to marshal log to JSON: %w", err)
	}

	now := time.Now()
	r := esapi.IndexRequest{
		Index: fmt.Sprintf("%s-%d-%d-%d", s.Index, now.Year(), now.Month(), now.Day()),
		Body:  bytes.NewReader(b),
	}

	res, err := r.Do(context.Background(), s.ES)
	if err != nil {
		return fmt.Errorf("failed to index the log: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to index the log: %s", res.Status())
	}

	return nil
}
