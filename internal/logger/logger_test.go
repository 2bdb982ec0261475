package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesLogDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "habit_tracker.log")

	l, err := New(Config{Level: "debug", File: file})
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Info("habit created", "id", 1)

	_, err = os.Stat(filepath.Dir(file))
	assert.NoError(t, err)
}

func TestNewDefaultsToInfo(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestDiscardDoesNotPanic(t *testing.T) {
	l := Discard()
	l.Error("dropped", "err", "boom")
}
