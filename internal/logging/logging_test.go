package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Level: "info", Format: "json"}.Validate())
	assert.NoError(t, Config{Level: "debug", Format: "console"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
	assert.Error(t, Config{Level: "chatty", Format: "json"}.Validate())
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = New(Config{Level: "warn", Format: "yaml"})
	assert.Error(t, err)
}

func TestNewTestRecordsEntries(t *testing.T) {
	l, logs := NewTest()
	l.Named("db").Debug("task created", zap.Uint("task_id", 7))

	entries := logs.FilterMessage("task created").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "db", entries[0].LoggerName)
	assert.Equal(t, uint64(7), entries[0].ContextMap()["task_id"])
}
