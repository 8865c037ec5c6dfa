// Package wrap declares the network mocks of a component test fluently and
// hands the intercepting client to the code under test.
//
//	w := wrap.New(t, wrap.WithAdapterOptions(intercept.WithDefaultHost("my-host")))
//	err := w.WithNetwork(mock.Descriptor{Path: "/q", ResponseBody: "15"}).Mount(component)
//	expect.Require(t, w.Expect().ToHaveBeenFetched("/q"))
package wrap

import (
	"net/http"
	"testing"

	"github.com/snapp-incubator/fetchmock/expect"
	"github.com/snapp-incubator/fetchmock/intercept"
	"github.com/snapp-incubator/fetchmock/mock"
)

// Env is what a Mounter receives.
type Env struct {
	// Client intercepts every request against the declared mocks.
	Client *http.Client
	Props  map[string]any
	Mocker NetworkMocker
}

// Mounter mounts the component under test.
type Mounter interface {
	Mount(env Env) error
}

// MountFunc adapts a function to Mounter.
type MountFunc func(env Env) error

// Mount calls f.
func (f MountFunc) Mount(env Env) error {
	return f(env)
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithExtension makes ext available to this Wrapper only, taking precedence
// over the registered extensions.
func WithExtension(name string, ext Extension) Option {
	return func(w *Wrapper) { w.extensions[name] = ext }
}

// WithAdapterOptions configures the interception adapter.
func WithAdapterOptions(opts ...intercept.Option) Option {
	return func(w *Wrapper) { w.adapterOpts = append(w.adapterOpts, opts...) }
}

// Wrapper collects the mocks and props of one test.
type Wrapper struct {
	t           testing.TB
	adapter     *intercept.Adapter
	adapterOpts []intercept.Option
	extensions  map[string]Extension
	descriptors []mock.Descriptor
	props       map[string]any
}

// New creates a Wrapper with its own adapter, disposed when the test ends.
func New(t testing.TB, opts ...Option) *Wrapper {
	t.Helper()

	w := &Wrapper{
		t:          t,
		extensions: map[string]Extension{},
		props:      map[string]any{},
	}
	for _, opt := range opts {
		opt(w)
	}

	a, err := intercept.New(w.adapterOpts...)
	if err != nil {
		t.Fatalf("wrap: unable to create the network mocker: %v", err)
		return w
	}
	w.adapter = a
	t.Cleanup(a.Dispose)

	return w
}

// WithNetwork adds descriptors.
func (w *Wrapper) WithNetwork(descs ...mock.Descriptor) *Wrapper {
	w.descriptors = append(w.descriptors, descs...)
	return w
}

// WithProps merges props given to the Mounter.
func (w *Wrapper) WithProps(props map[string]any) *Wrapper {
	for k, v := range props {
		w.props[k] = v
	}
	return w
}

// With adds the descriptors produced by the extension registered under name.
func (w *Wrapper) With(name string, args ...any) *Wrapper {
	w.t.Helper()

	ext, ok := w.extensions[name]
	if !ok {
		ext, ok = lookupExtension(name)
	}
	if !ok {
		w.t.Fatalf("wrap: no extension named %q; register it with wrap.RegisterExtension or pass wrap.WithExtension to wrap.New", name)
		return w
	}

	if s, ok := ext.(NetworkMockerSetter); ok && w.adapter != nil {
		s.SetNetworkMocker(w.adapter)
	}

	descs, err := ext.AddResponses(args...)
	if err != nil {
		w.t.Fatalf("wrap: extension %q: %v", name, err)
		return w
	}

	return w.WithNetwork(descs...)
}

// Mount registers the collected descriptors and mounts m. Invalid descriptors
// fail the test; the error of m is returned.
func (w *Wrapper) Mount(m Mounter) error {
	w.t.Helper()

	if m == nil {
		w.t.Fatalf("wrap: Mount needs a component to mount")
		return nil
	}
	if w.adapter == nil {
		return intercept.ErrDisposed
	}

	if err := w.adapter.Register(w.descriptors...); err != nil {
		w.t.Fatalf("wrap: %v", err)
		return err
	}

	return m.Mount(Env{
		Client: w.adapter.Client(),
		Props:  w.props,
		Mocker: w.adapter,
	})
}

// Adapter returns the interception adapter of the wrapper.
func (w *Wrapper) Adapter() *intercept.Adapter {
	return w.adapter
}

// Expect returns the assertions over the intercepted traffic.
func (w *Wrapper) Expect() *expect.Expectations {
	return w.adapter.Expect()
}
