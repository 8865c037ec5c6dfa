package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplace(t *testing.T) {
	require := require.New(t)

	orig := L
	core, logs := observer.New(zap.InfoLevel)
	restore := Replace(zap.New(core))

	L.Info("unmatched request", zap.String("url", "my-host/q"))
	require.Equal(1, logs.Len())
	require.Equal("my-host/q", logs.All()[0].ContextMap()["url"])

	restore()
	require.Same(orig, L)
}
