// Package mock holds the request matching and response resolution engine.
//
// A Registry owns the descriptors declared by one test and the log of the
// requests observed during it. A Resolver scans the descriptors in declaration
// order and picks the first one the Matcher accepts (first match wins, not best
// match), consuming multi-response slots exactly once. Resolution never fails:
// requests without a mock resolve to an empty 200 response and are recorded so
// that assertions can report them later.
package mock
