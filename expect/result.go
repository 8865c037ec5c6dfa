package expect

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Result is the verdict of an assertion.
type Result struct {
	Pass    bool
	message func() string
}

// Message renders the failure message. It is empty for passing results.
func (r Result) Message() string {
	if r.Pass || r.message == nil {
		return ""
	}
	return r.message()
}

func pass() Result {
	return Result{Pass: true}
}

func fail(format string, args ...any) Result {
	return Result{message: func() string { return fmt.Sprintf(format, args...) }}
}

type tHelper interface {
	Helper()
}

// Assert reports a failing result to t and returns whether it passed.
func Assert(t assert.TestingT, r Result, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if r.Pass {
		return true
	}
	return assert.Fail(t, r.Message(), msgAndArgs...)
}

// Require is like Assert but stops the test on failure.
func Require(t require.TestingT, r Result, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if !Assert(t, r, msgAndArgs...) {
		t.FailNow()
	}
}
