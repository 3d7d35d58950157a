package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
}

func TestReplaceRoutesHelpersToNewCore(t *testing.T) {
	original := logger
	t.Cleanup(func() { Replace(original) })

	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))

	Warn("cache miss", zap.String("key", "weather:chapeco:sc:0"))
	Infof("fetched %d cities", 3)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "cache miss", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "weather:chapeco:sc:0", entries[0].ContextMap()["key"])
	assert.Equal(t, "fetched 3 cities", entries[1].Message)
}
