package mock

import (
	"fmt"
	"sync"

	"github.com/mohae/deepcopy"
)

// Entry is one line of the request log.
type Entry struct {
	Request Request
	Outcome Outcome
}

// MissingResponse describes a request which was not served by a mock.
type MissingResponse struct {
	URL    string
	Method string
	Body   any
}

// Registry owns the descriptors of one test, their consumption state and the
// request log. Descriptors are copied on registration so the caller's values
// are never mutated.
type Registry struct {
	mu sync.Mutex

	descriptors []Descriptor
	// returned[i][s] is set once slot s of descriptor i has been served.
	returned [][]bool
	utilized []bool
	entries  []Entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register replaces the active descriptors. The request log is kept;
// consumption state restarts with the new descriptors.
func (r *Registry) Register(descs ...Descriptor) error {
	for i, d := range descs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
	}

	copied, _ := deepcopy.Copy(descs).([]Descriptor)

	returned := make([][]bool, len(copied))
	for i, d := range copied {
		returned[i] = make([]bool, len(d.MultipleResponses))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors = copied
	r.returned = returned
	r.utilized = make([]bool, len(copied))

	return nil
}

// Reset drops the descriptors, their consumption state and the request log.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors = nil
	r.returned = nil
	r.utilized = nil
	r.entries = nil
}

// Descriptors returns a copy of the active descriptors.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	return copyDescriptors(r.descriptors)
}

// RecordRequest appends req and its outcome to the request log.
func (r *Registry) RecordRequest(req Request, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recordLocked(req, o)
}

func (r *Registry) recordLocked(req Request, o Outcome) {
	r.entries = append(r.entries, Entry{Request: req, Outcome: o})
}

// Requests returns the request log in arrival order.
func (r *Registry) Requests() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry(nil), r.entries...)
}

// UtilizedDescriptors returns the descriptors selected at least once, in declaration order.
func (r *Registry) UtilizedDescriptors() []Descriptor {
	return r.filter(func(i int) bool { return r.utilized[i] })
}

// NotUtilizedDescriptors returns the descriptors never selected, along with the
// multi-response descriptors having an unconsumed slot.
func (r *Registry) NotUtilizedDescriptors() []Descriptor {
	return r.filter(func(i int) bool { return !r.utilized[i] || !r.allReturned(i) })
}

// DeepUtilizedDescriptors returns the descriptors selected at least once whose
// slots, if any, have all been consumed.
func (r *Registry) DeepUtilizedDescriptors() []Descriptor {
	return r.filter(func(i int) bool { return r.utilized[i] && r.allReturned(i) })
}

// RequestsMissingResponse returns the requests no descriptor matched.
func (r *Registry) RequestsMissingResponse() []MissingResponse {
	return r.requestsOf(Unmatched)
}

// ExhaustedRequests returns the requests which matched a descriptor whose
// multiple responses had all been returned.
func (r *Registry) ExhaustedRequests() []MissingResponse {
	return r.requestsOf(ExhaustedMultiple)
}

func (r *Registry) requestsOf(k Kind) []MissingResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []MissingResponse
	for _, e := range r.entries {
		if e.Outcome.Kind != k {
			continue
		}

		body, _ := e.Request.ParsedBody()
		out = append(out, MissingResponse{
			URL:    e.Request.URL,
			Method: normalizeMethod(e.Request.Method),
			Body:   body,
		})
	}
	return out
}

func (r *Registry) filter(keep func(i int) bool) []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Descriptor
	for i, d := range r.descriptors {
		if keep(i) {
			out = append(out, d)
		}
	}
	return copyDescriptors(out)
}

func (r *Registry) allReturned(i int) bool {
	for _, done := range r.returned[i] {
		if !done {
			return false
		}
	}
	return true
}

func copyDescriptors(descs []Descriptor) []Descriptor {
	if descs == nil {
		return nil
	}
	out, _ := deepcopy.Copy(descs).([]Descriptor)
	return out
}
