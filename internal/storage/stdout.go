package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdoutStorage is a Storage implementation that outputs logs to stdout
type StdoutStorage struct {
	// Out replaces stdout when set.
	Out io.Writer
}

// Store outputs the log as JSON to stdout
func (s StdoutStorage) Store(l Log) error {
	b, err := json.Marshal(&l)
	if err != nil {
		return fmt.Errorf("failed to marshal log to JSON: %w", err)
	}

	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	_, err = fmt.Fprintln(out, string(b))
	if err != nil {
		return fmt.Errorf("failed to write log to stdout: %w", err)
	}

	return nil
}
