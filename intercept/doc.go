// Package intercept connects the resolver to real HTTP traffic.
//
// An Adapter is owned by one test. It is used as the transport of the
// *http.Client given to the code under test, or mounted as the handler of an
// httptest.Server. Each intercepted request is resolved synchronously; only the
// delivery of the response waits for the declared delay.
package intercept
