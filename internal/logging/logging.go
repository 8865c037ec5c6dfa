package logging

import (
	"go.uber.org/zap"
)

var (
	// L is the default logger of the library. Diagnostics about unmatched and
	// exhausted mocks are written to it.
	L *zap.Logger
)

func init() {
	L, _ = zap.NewProduction(zap.WithCaller(false))
}

// Replace swaps L for the given logger and returns a function restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := L
	L = l
	return func() { L = prev }
}
