package intercept

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/snapp-incubator/fetchmock/mock"
)

// newResponse synthesizes the wire response of r.
func newResponse(req *http.Request, r mock.Response) (*http.Response, []byte, error) {
	body, err := r.Encode()
	if err != nil {
		return nil, nil, err
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	for k, v := range r.Headers {
		h.Set(k, v)
	}

	status := r.StatusCode()
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, body, nil
}
