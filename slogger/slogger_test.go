package slogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, LevelDebug, LevelFromString("debug"))
	assert.Equal(t, LevelInfo, LevelFromString("INFO"))
	assert.Equal(t, LevelWarn, LevelFromString("warn"))
	assert.Equal(t, LevelError, LevelFromString("error"))
	assert.Equal(t, DefaultLevel, LevelFromString("bogus"))
	assert.Equal(t, DefaultLevel, LevelFromString(""))
}

func TestDevNull(t *testing.T) {
	logger := DevNull.With("key", "value")
	assert.NotNil(t, logger)
	logger.Debug("discarded")
	logger.Info("discarded")
	logger.Warn("discarded")
	logger.Error("discarded")
}

func TestNew(t *testing.T) {
	logger := New(LevelDebug)
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.With("a", 1))
}
