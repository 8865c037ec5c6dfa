package intercept

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/snapp-incubator/fetchmock/expect"
	"github.com/snapp-incubator/fetchmock/internal/config"
	"github.com/snapp-incubator/fetchmock/internal/logging"
	"github.com/snapp-incubator/fetchmock/internal/metrics"
	"github.com/snapp-incubator/fetchmock/internal/storage"
	"github.com/snapp-incubator/fetchmock/mock"
)

// ErrDisposed is returned by an Adapter used after Dispose.
var ErrDisposed = errors.New("the network mocker has been disposed")

// Adapter intercepts HTTP requests and answers them from the registered descriptors.
type Adapter struct {
	registry *mock.Registry
	resolver *mock.Resolver
	matcher  mock.Matcher
	storage  storage.Storage
	disposed atomic.Bool
}

// New creates an Adapter from the process-wide config overridden by opts.
func New(opts ...Option) (*Adapter, error) {
	o := options{cfg: config.Current()}
	for _, opt := range opts {
		opt(&o)
	}

	s := o.storage
	if !o.storageSet {
		var err error
		if s, err = storage.New(o.cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to create the traffic storage: %w", err)
		}
	}

	m := mock.Matcher{
		DefaultHost:       o.cfg.DefaultHost,
		HandleQueryParams: o.cfg.HandleQueryParams,
	}
	reg := mock.NewRegistry()
	res := mock.NewResolver(m, reg)
	res.Debug = o.cfg.Debug

	return &Adapter{
		registry: reg,
		resolver: res,
		matcher:  m,
		storage:  s,
	}, nil
}

// Register replaces the active descriptors.
func (a *Adapter) Register(descs ...mock.Descriptor) error {
	if a.disposed.Load() {
		return ErrDisposed
	}
	return a.registry.Register(descs...)
}

// Registry returns the registry holding the descriptors and the request log.
func (a *Adapter) Registry() *mock.Registry {
	return a.registry
}

// Matcher returns the matcher built from the config.
func (a *Adapter) Matcher() mock.Matcher {
	return a.matcher
}

// Expect returns the assertions over the intercepted traffic.
func (a *Adapter) Expect() *expect.Expectations {
	return expect.New(a.registry, a.matcher)
}

// Client returns an *http.Client whose requests are intercepted.
func (a *Adapter) Client() *http.Client {
	return &http.Client{Transport: a}
}

// Reset drops the descriptors and the request log.
func (a *Adapter) Reset() {
	a.registry.Reset()
}

// Dispose resets the adapter and makes it refuse any further request.
func (a *Adapter) Dispose() {
	a.disposed.Store(true)
	a.registry.Reset()
}

// RoundTrip resolves req. Requests without a mock get an empty 200 response;
// the only errors are reading the body, a canceled context while waiting for
// the delay, and using a disposed adapter.
func (a *Adapter) RoundTrip(req *http.Request) (*http.Response, error) {
	if a.disposed.Load() {
		return nil, ErrDisposed
	}

	observed, err := mock.NewRequest(req)
	if err != nil {
		return nil, err
	}

	o := a.resolver.Resolve(observed)
	metrics.ResolveCounter.WithLabelValues(o.Kind.String(), observed.Method).Inc()

	res, body, err := newResponse(req, o.Response)
	if err != nil {
		logging.L.Error("error in encoding the mocked response",
			zap.String("method", observed.Method),
			zap.String("url", observed.URL),
			zap.Error(err),
		)
		res, body, _ = newResponse(req, mock.DefaultResponse())
	}

	a.export(req, observed, o, res.StatusCode, body)

	if d := o.Response.Delay; d > 0 {
		metrics.DelayDuration.WithLabelValues(observed.Method).Observe(d.Seconds())

		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case <-t.C:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	return res, nil
}

// Handler returns an http.Handler answering like RoundTrip, to be served by an
// httptest.Server the code under test points at.
func (a *Adapter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := r.Clone(r.Context())
		req.URL.Host = r.Host
		req.URL.Scheme = "http"
		if r.TLS != nil {
			req.URL.Scheme = "https"
		}

		res, err := a.RoundTrip(req)
		if err != nil {
			if errors.Is(err, ErrDisposed) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			}
			return
		}
		defer func() { _ = res.Body.Close() }()

		for k, v := range res.Header {
			w.Header()[k] = v
		}
		w.WriteHeader(res.StatusCode)

		if _, err := io.Copy(w, res.Body); err != nil {
			logging.L.Error("error in writing the response to the response writer",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Error(err),
			)
		}
	})
}

func (a *Adapter) export(req *http.Request, observed mock.Request, o mock.Outcome, status int, body []byte) {
	if a.storage == nil {
		return
	}

	l := storage.Log{
		URL:                observed.URL,
		Method:             observed.Method,
		Headers:            req.Header,
		Outcome:            o.Kind.String(),
		ResponseStatusCode: status,
	}
	if o.Kind != mock.Unmatched {
		l.MockPath = o.Descriptor.Path
	}
	if observed.Body != nil {
		p := string(observed.Body)
		l.RequestPayload = &p
	}
	if body != nil {
		p := string(body)
		l.ResponsePayload = &p
	}

	if err := a.storage.Store(l); err != nil {
		logging.L.Warn("error in storing the intercepted request",
			zap.String("method", observed.Method),
			zap.String("url", observed.URL),
			zap.Error(err),
		)
	}
}
