package mock

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidDescriptor is returned when a descriptor is declared incorrectly.
var ErrInvalidDescriptor = errors.New("invalid mock descriptor")

// Descriptor declares an expected request together with the response returned for it.
type Descriptor struct {
	// Method is case-insensitive and defaults to GET.
	Method string `yaml:"method,omitempty" json:"method,omitempty"`
	// Path is relative to Host or absolute.
	Path string `yaml:"path" json:"path"`
	// Host falls back to the default host of the config.
	Host string `yaml:"host,omitempty" json:"host,omitempty"`
	// RequestBody, when set, must deep-equal the JSON body of the request.
	RequestBody any `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	// ResponseBody is encoded as JSON; []byte and json.RawMessage are written as is.
	ResponseBody any               `yaml:"responseBody,omitempty" json:"responseBody,omitempty"`
	Status       int               `yaml:"status,omitempty" json:"status,omitempty"`
	Headers      map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Delay        time.Duration     `yaml:"delay,omitempty" json:"delay,omitempty"`
	// CatchParams makes the query string significant even when the config ignores it.
	CatchParams bool `yaml:"catchParams,omitempty" json:"catchParams,omitempty"`
	// MultipleResponses are returned one per matching request, in order.
	MultipleResponses []Response `yaml:"multipleResponses,omitempty" json:"multipleResponses,omitempty"`
}

// Response is the response part of a descriptor, and a slot of MultipleResponses.
type Response struct {
	ResponseBody any               `yaml:"responseBody,omitempty" json:"responseBody,omitempty"`
	Status       int               `yaml:"status,omitempty" json:"status,omitempty"`
	Headers      map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Delay        time.Duration     `yaml:"delay,omitempty" json:"delay,omitempty"`
}

// DefaultResponse is served for unmatched requests and exhausted descriptors.
func DefaultResponse() Response {
	return Response{Status: http.StatusOK}
}

// StatusCode returns the status, 200 when unset.
func (r Response) StatusCode() int {
	if r.Status == 0 {
		return http.StatusOK
	}
	return r.Status
}

// Encode returns the wire body, nil when there is none.
func (r Response) Encode() ([]byte, error) {
	switch b := r.ResponseBody.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	}

	b, err := json.Marshal(r.ResponseBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode the response body: %w", err)
	}
	return b, nil
}

// NormalizedMethod returns the upper-cased method, GET when unset.
func (d Descriptor) NormalizedMethod() string {
	return normalizeMethod(d.Method)
}

// Validate reports declarations the resolver cannot serve.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidDescriptor)
	}

	if len(d.MultipleResponses) > 0 && d.ResponseBody != nil {
		return fmt.Errorf("%w: %s %s declares both responseBody and multipleResponses", ErrInvalidDescriptor, d.NormalizedMethod(), d.Path)
	}

	if d.Status != 0 && (d.Status < 100 || d.Status > 599) {
		return fmt.Errorf("%w: %s %s has status %d", ErrInvalidDescriptor, d.NormalizedMethod(), d.Path, d.Status)
	}

	if d.Delay < 0 {
		return fmt.Errorf("%w: %s %s has a negative delay", ErrInvalidDescriptor, d.NormalizedMethod(), d.Path)
	}

	for i, r := range d.MultipleResponses {
		if r.Status != 0 && (r.Status < 100 || r.Status > 599) {
			return fmt.Errorf("%w: %s %s response %d has status %d", ErrInvalidDescriptor, d.NormalizedMethod(), d.Path, i, r.Status)
		}

		if r.Delay < 0 {
			return fmt.Errorf("%w: %s %s response %d has a negative delay", ErrInvalidDescriptor, d.NormalizedMethod(), d.Path, i)
		}
	}

	if d.RequestBody != nil {
		if _, err := normalizeJSON(d.RequestBody); err != nil {
			return fmt.Errorf("%w: %s %s request body: %v", ErrInvalidDescriptor, d.NormalizedMethod(), d.Path, err)
		}
	}

	return nil
}

// response returns the response of a descriptor without multiple responses.
func (d Descriptor) response() Response {
	return Response{
		ResponseBody: d.ResponseBody,
		Status:       d.Status,
		Headers:      d.Headers,
		Delay:        d.Delay,
	}
}

// slot returns the i-th of the multiple responses. A slot inherits the headers
// and the delay of its descriptor, its own values taking precedence.
func (d Descriptor) slot(i int) Response {
	s := d.MultipleResponses[i]

	if s.Delay == 0 {
		s.Delay = d.Delay
	}

	if len(d.Headers) > 0 {
		h := make(map[string]string, len(d.Headers)+len(s.Headers))
		for k, v := range d.Headers {
			h[k] = v
		}
		for k, v := range s.Headers {
			h[k] = v
		}
		s.Headers = h
	}

	return s
}

func normalizeMethod(m string) string {
	if m == "" {
		return http.MethodGet
	}
	return strings.ToUpper(m)
}
