package storage

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Redacted removes the configured JSON paths from the payloads before passing
// the log to Next. Payloads which are not JSON are stored untouched.
type Redacted struct {
	Next  Storage
	Paths []string
}

// Store is the action of storing
func (r Redacted) Store(l Log) error {
	l.RequestPayload = redact(l.RequestPayload, r.Paths)
	l.ResponsePayload = redact(l.ResponsePayload, r.Paths)

	return r.Next.Store(l)
}

func redact(payload *string, paths []string) *string {
	if payload == nil || !gjson.Valid(*payload) {
		return payload
	}

	out := *payload
	for _, p := range paths {
		if !gjson.Get(out, p).Exists() {
			continue
		}

		v, err := sjson.Delete(out, p)
		if err != nil {
			continue
		}
		out = v
	}

	return &out
}
