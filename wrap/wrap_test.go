package wrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"

	"github.com/snapp-incubator/fetchmock/expect"
	"github.com/snapp-incubator/fetchmock/intercept"
	"github.com/snapp-incubator/fetchmock/mock"
)

// newComponent is the component under test: it renders what it fetches from my-host.
func newComponent(client *http.Client) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/quantity", func(w http.ResponseWriter, req *http.Request) {
		res, err := client.Get("http://my-host/q")
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		defer func() { _ = res.Body.Close() }()

		var q string
		if err := json.NewDecoder(res.Body).Decode(&q); err != nil {
			q = "unknown"
		}
		_, _ = fmt.Fprintf(w, "quantity: %s", q)
	}).Methods(http.MethodGet)

	r.HandleFunc("/save", func(w http.ResponseWriter, req *http.Request) {
		res, err := client.Post("http://my-host/save", "application/json", req.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		defer func() { _ = res.Body.Close() }()

		w.WriteHeader(res.StatusCode)
	}).Methods(http.MethodPost)

	return r
}

type fakeTB struct {
	testing.TB
	fatals   []string
	cleanups []func()
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

type WrapTestSuite struct {
	suite.Suite

	wrapper   *Wrapper
	component http.Handler
}

func (s *WrapTestSuite) SetupTest() {
	s.wrapper = New(s.T(), WithAdapterOptions(intercept.WithDefaultHost("my-host"), intercept.WithStorage(nil)))
	s.component = nil
}

func (s *WrapTestSuite) mount() {
	err := s.wrapper.Mount(MountFunc(func(env Env) error {
		s.component = newComponent(env.Client)
		return nil
	}))
	s.Require().NoError(err)
}

func (s *WrapTestSuite) serve(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	s.component.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func (s *WrapTestSuite) TestFetchedQuantity() {
	require := s.Require()

	s.wrapper.WithNetwork(mock.Descriptor{Path: "/q", ResponseBody: "15"})
	s.mount()

	rec := s.serve(http.MethodGet, "/quantity", "")
	require.Equal(http.StatusOK, rec.Code)
	require.Equal("quantity: 15", rec.Body.String())

	expect.Require(s.T(), s.wrapper.Expect().ToHaveBeenFetched("/q"))
	expect.Require(s.T(), s.wrapper.Expect().ToHaveBeenFetchedTimes("/q", 1))
}

func (s *WrapTestSuite) TestSaveMatchesOnBody() {
	require := s.Require()

	saved := mock.Descriptor{Method: "post", Path: "/save", RequestBody: map[string]any{"quantity": "15"}, Status: http.StatusCreated}
	s.wrapper.WithNetwork(saved)
	s.mount()

	rec := s.serve(http.MethodPost, "/save", `{"quantity":"15"}`)
	require.Equal(http.StatusCreated, rec.Code)
	expect.Require(s.T(), s.wrapper.Expect().ToMatchNetworkRequests(saved))

	rec = s.serve(http.MethodPost, "/save", `{"quantity":"16"}`)
	require.Equal(http.StatusOK, rec.Code)

	r := s.wrapper.Expect().ToMatchNetworkRequests(saved)
	require.False(r.Pass)
	require.Contains(r.Message(), "missing a mocked response")

	expect.Require(s.T(), s.wrapper.Expect().ToHaveBeenFetchedWith("/save",
		expect.Method(http.MethodPost),
		expect.Body(map[string]any{"quantity": "16"}),
	))
}

func (s *WrapTestSuite) TestUnusedMock() {
	require := s.Require()

	used := mock.Descriptor{Path: "/q", ResponseBody: "15"}
	unused := mock.Descriptor{Path: "/never"}
	s.wrapper.WithNetwork(used, unused)
	s.mount()

	s.serve(http.MethodGet, "/quantity", "")

	r := s.wrapper.Expect().ToMatchNetworkRequests(used, unused)
	require.False(r.Pass)
	require.Contains(r.Message(), "mocked responses not being used")
	require.Contains(r.Message(), "/never")

	require.Equal([]mock.Descriptor{unused}, s.wrapper.Adapter().Registry().NotUtilizedDescriptors())
}

type countingExtension struct {
	mocker NetworkMocker
}

func (c *countingExtension) SetNetworkMocker(m NetworkMocker) {
	c.mocker = m
}

func (c *countingExtension) AddResponses(args ...any) ([]mock.Descriptor, error) {
	n, ok := args[0].(int)
	if !ok {
		return nil, errors.New("count expected")
	}
	return []mock.Descriptor{{Path: "/q", ResponseBody: fmt.Sprint(n)}}, nil
}

func (s *WrapTestSuite) TestExtension() {
	require := s.Require()

	ext := &countingExtension{}
	w := New(s.T(), WithExtension("count", ext), WithAdapterOptions(intercept.WithDefaultHost("my-host"), intercept.WithStorage(nil)))
	w.With("count", 42)

	require.NotNil(ext.mocker)

	err := w.Mount(MountFunc(func(env Env) error {
		s.component = newComponent(env.Client)
		return nil
	}))
	require.NoError(err)

	require.Equal("quantity: 42", s.serve(http.MethodGet, "/quantity", "").Body.String())
}

func (s *WrapTestSuite) TestFixturesExtension() {
	require := s.Require()

	path := filepath.Join(s.T().TempDir(), "mocks.yaml")
	require.NoError(os.WriteFile(path, []byte("mocks:\n  - path: /q\n    responseBody: \"7\"\n"), 0o600))

	s.wrapper.With("fixtures", path).WithProps(map[string]any{"title": "stock"})

	var props map[string]any
	err := s.wrapper.Mount(MountFunc(func(env Env) error {
		props = env.Props
		s.component = newComponent(env.Client)
		return nil
	}))
	require.NoError(err)

	require.Equal("stock", props["title"])
	require.Equal("quantity: 7", s.serve(http.MethodGet, "/quantity", "").Body.String())
}

func (s *WrapTestSuite) TestMountError() {
	boom := errors.New("boom")
	err := s.wrapper.Mount(MountFunc(func(Env) error { return boom }))
	s.Require().True(errors.Is(err, boom))
}

func (s *WrapTestSuite) TestMisuseIsFatal() {
	require := s.Require()

	tb := &fakeTB{TB: s.T()}
	w := New(tb, WithAdapterOptions(intercept.WithStorage(nil)))

	w.With("unknown")
	require.Len(tb.fatals, 1)
	require.Contains(tb.fatals[0], `no extension named "unknown"`)

	w.With("fixtures")
	require.Len(tb.fatals, 2)
	require.Contains(tb.fatals[1], "at least one file path")

	w.WithNetwork(mock.Descriptor{Path: "/list", ResponseBody: 1, MultipleResponses: []mock.Response{{}}})
	err := w.Mount(MountFunc(func(Env) error { return nil }))
	require.True(errors.Is(err, mock.ErrInvalidDescriptor))
	require.Len(tb.fatals, 3)

	require.Nil(w.Mount(nil))
	require.Len(tb.fatals, 4)
}

func (s *WrapTestSuite) TestCleanupDisposesAdapter() {
	require := s.Require()

	tb := &fakeTB{TB: s.T()}
	w := New(tb, WithAdapterOptions(intercept.WithStorage(nil)))
	require.Len(tb.cleanups, 1)

	client := w.Adapter().Client()
	for _, fn := range tb.cleanups {
		fn()
	}

	_, err := client.Get("http://my-host/q")
	require.True(errors.Is(err, intercept.ErrDisposed))
}

func (s *WrapTestSuite) TestRegisterExtensionTwicePanics() {
	s.Require().Panics(func() {
		RegisterExtension("fixtures", ExtensionFunc(fixtures))
	})
	s.Require().Panics(func() {
		RegisterExtension("nil", nil)
	})
}

func TestWrapTestSuite(t *testing.T) {
	suite.Run(t, new(WrapTestSuite))
}
