package mock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// Request is the normalized view of an intercepted request.
type Request struct {
	URL    string
	Method string
	// Body is nil when the request has none.
	Body []byte
}

// NewRequest reads r into a Request. The body of r is consumed and closed, as
// an http.RoundTripper may do; r itself is not modified.
func NewRequest(r *http.Request) (Request, error) {
	req := Request{
		URL:    r.URL.String(),
		Method: normalizeMethod(r.Method),
	}

	if r.Body == nil || r.Body == http.NoBody {
		return req, nil
	}
	defer func() { _ = r.Body.Close() }()

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return req, fmt.Errorf("failed to read the request body: %w", err)
	}

	if len(b) > 0 {
		req.Body = b
	}

	return req, nil
}

// ParsedBody returns the body decoded as JSON, numbers as json.Number. Missing and malformed bodies are
// both reported as absent.
func (r Request) ParsedBody() (any, bool) {
	if len(bytes.TrimSpace(r.Body)) == 0 || !gjson.ValidBytes(r.Body) {
		return nil, false
	}

	v, err := decodeJSON(r.Body)
	if err != nil {
		return nil, false
	}

	return v, true
}
