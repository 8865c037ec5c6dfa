// Package expect builds pass/fail verdicts over the traffic recorded by a
// mock.Registry. Every assertion returns a Result whose message is only
// rendered on failure; Assert and Require report failures through testify.
package expect
