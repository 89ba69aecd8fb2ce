package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ezkey.log")

	log, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	Module(log, "session").Info("connected")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"module":"session"`)
	assert.Contains(t, string(data), `"msg":"connected"`)
}

func TestNewRejectsLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestModuleNil(t *testing.T) {
	assert.NotNil(t, Module(nil, "x"))
}
