package expect

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/snapp-incubator/fetchmock/mock"
)

type ExpectTestSuite struct {
	suite.Suite

	registry *mock.Registry
	resolver *mock.Resolver
	expect   *Expectations
}

func (s *ExpectTestSuite) SetupTest() {
	m := mock.Matcher{DefaultHost: "my-host", HandleQueryParams: true}
	s.registry = mock.NewRegistry()
	s.resolver = mock.NewResolver(m, s.registry)
	s.expect = New(s.registry, m)
}

func (s *ExpectTestSuite) send(method, url, body string) {
	req := mock.Request{URL: url, Method: method}
	if body != "" {
		req.Body = []byte(body)
	}
	s.resolver.Resolve(req)
}

func (s *ExpectTestSuite) TestToHaveBeenFetched() {
	require := s.Require()

	s.send(http.MethodGet, "http://my-host/q?page=1", "")

	require.True(s.expect.ToHaveBeenFetched("/q").Pass)
	require.Empty(s.expect.ToHaveBeenFetched("/q").Message())
	require.False(s.expect.ToHaveBeenFetched("/q", CatchParams()).Pass)
	require.False(s.expect.ToHaveBeenFetched("/q", Host("other-host")).Pass)

	r := s.expect.ToHaveBeenFetched("/other")
	require.False(r.Pass)
	require.Contains(r.Message(), "expected my-host/other to have been fetched, but it was not")
	require.Contains(r.Message(), "GET http://my-host/q?page=1")
}

func (s *ExpectTestSuite) TestToHaveBeenFetchedTimes() {
	require := s.Require()

	s.send(http.MethodGet, "http://my-host/x", "")
	s.send(http.MethodPost, "http://my-host/x", `{"a":1}`)
	s.send(http.MethodGet, "http://my-host/y", "")

	require.True(s.expect.ToHaveBeenFetchedTimes("/x", 2).Pass)
	require.True(s.expect.ToHaveBeenFetchedTimes("/x", 1, Method("post")).Pass)
	require.True(s.expect.ToHaveBeenFetchedTimes("/z", 0).Pass)

	r := s.expect.ToHaveBeenFetchedTimes("/x", 3)
	require.False(r.Pass)
	require.Equal("expected my-host/x to have been fetched 3 time(s), but it was fetched 2 time(s)", r.Message())
}

func (s *ExpectTestSuite) TestToHaveBeenFetchedWith() {
	require := s.Require()

	s.send(http.MethodPost, "http://my-host/save", `{"quantity":"16","id":1}`)
	s.send(http.MethodPost, "http://my-host/save", `{"id":1,"quantity":"15"}`)
	s.send(http.MethodGet, "http://my-host/load", "")

	require.True(s.expect.ToHaveBeenFetchedWith("/save").Pass)
	require.True(s.expect.ToHaveBeenFetchedWith("/save", Method("post")).Pass)
	require.True(s.expect.ToHaveBeenFetchedWith("/save", Body(map[string]any{"quantity": "15", "id": 1})).Pass)
	require.True(s.expect.ToHaveBeenFetchedWith("/load", Method(http.MethodGet)).Pass)

	r := s.expect.ToHaveBeenFetchedWith("/missing")
	require.False(r.Pass)
	require.Contains(r.Message(), "expected my-host/missing to have been fetched, but it was not")

	r = s.expect.ToHaveBeenFetchedWith("/save", Method(http.MethodPut))
	require.False(r.Pass)
	require.Equal("expected my-host/save to have been fetched with method PUT, but it was fetched with POST", r.Message())

	r = s.expect.ToHaveBeenFetchedWith("/load", Body(map[string]any{"a": 1}))
	require.False(r.Pass)
	require.Equal("expected my-host/load to have been fetched with a body, but none was found", r.Message())

	r = s.expect.ToHaveBeenFetchedWith("/save", Body(map[string]any{"quantity": "17", "id": 1}))
	require.False(r.Pass)
	require.Contains(r.Message(), "expected my-host/save to have been fetched with body:")
	require.Contains(r.Message(), `"quantity": "17"`)
	require.Contains(r.Message(), "/quantity")
	require.Contains(r.Message(), `"15"`)
}

func (s *ExpectTestSuite) TestToMatchNetworkRequests() {
	require := s.Require()

	descs := []mock.Descriptor{
		{Path: "/q", ResponseBody: "15"},
		{Method: "post", Path: "/save", RequestBody: map[string]any{"quantity": "15"}},
		{Path: "/list", MultipleResponses: []mock.Response{{ResponseBody: 1}, {ResponseBody: 2}}},
	}
	require.NoError(s.registry.Register(descs...))

	s.send(http.MethodGet, "http://my-host/q", "")
	s.send(http.MethodPost, "http://my-host/save", `{"quantity":"15"}`)
	s.send(http.MethodGet, "http://my-host/list", "")

	r := s.expect.ToMatchNetworkRequests(descs...)
	require.False(r.Pass)
	require.Contains(r.Message(), "there are mocked responses not being used")
	require.Contains(r.Message(), "/list")

	s.send(http.MethodGet, "http://my-host/list", "")

	// Order does not matter, neither does the case of the method.
	require.True(s.expect.ToMatchNetworkRequests(descs[2], descs[0], mock.Descriptor{
		Method: "POST", Path: "/save", RequestBody: map[string]any{"quantity": "15"},
	}).Pass)

	r = s.expect.ToMatchNetworkRequests(descs[0], descs[1])
	require.False(r.Pass)
	require.Contains(r.Message(), "used but not expected")
}

func (s *ExpectTestSuite) TestToMatchNetworkRequestsMissingResponse() {
	require := s.Require()

	descs := []mock.Descriptor{{Method: "post", Path: "/save", RequestBody: map[string]any{"quantity": "15"}}}
	require.NoError(s.registry.Register(descs...))

	s.send(http.MethodPost, "http://my-host/save", `{"quantity":"16"}`)

	r := s.expect.ToMatchNetworkRequests(descs...)
	require.False(r.Pass)
	require.Contains(r.Message(), "missing a mocked response")
	require.Contains(r.Message(), `POST http://my-host/save {"quantity":"16"}`)
}

func (s *ExpectTestSuite) TestToMatchNetworkRequestsExhausted() {
	require := s.Require()

	descs := []mock.Descriptor{{Path: "/once", MultipleResponses: []mock.Response{{ResponseBody: 1}}}}
	require.NoError(s.registry.Register(descs...))

	s.send(http.MethodGet, "http://my-host/once", "")
	s.send(http.MethodGet, "http://my-host/once", "")

	r := s.expect.ToMatchNetworkRequests(descs...)
	require.False(r.Pass)
	require.Contains(r.Message(), "after all multiple responses of their mock had been returned")
	require.NotContains(r.Message(), "missing a mocked response")
}

type recorder struct {
	errors []string
	failed bool
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func (r *recorder) FailNow() {
	r.failed = true
}

func (s *ExpectTestSuite) TestAssertAndRequire() {
	require := s.Require()

	rec := &recorder{}
	require.True(Assert(rec, pass()))
	require.Empty(rec.errors)

	require.False(Assert(rec, fail("boom")))
	require.Len(rec.errors, 1)
	require.False(rec.failed)

	Require(rec, fail("boom"))
	require.True(rec.failed)
}

func TestExpectTestSuite(t *testing.T) {
	suite.Run(t, new(ExpectTestSuite))
}
