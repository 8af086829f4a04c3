package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManagerAt(t.TempDir())
	m.logger = log.New(io.Discard)
	return m
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	m := newTestManager(t)

	config, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, ":root", config.Selector)
	assert.Equal(t, 4.5, config.DefaultMinContrast)
	assert.Equal(t, 20*time.Millisecond, config.UpdateWindow)
	assert.Equal(t, "info", config.LogLevel)

	// First load persists the defaults.
	_, err = os.Stat(m.configFile)
	assert.NoError(t, err)
}

func TestSaveAndReload(t *testing.T) {
	m := newTestManager(t)

	config := Default()
	config.Selector = ".theme"
	config.DefaultMinContrast = 7
	config.BakeIndirect = true
	require.NoError(t, m.Save(config))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, ".theme", loaded.Selector)
	assert.Equal(t, 7.0, loaded.DefaultMinContrast)
	assert.True(t, loaded.BakeIndirect)
}

func TestLoadFillsMissingFields(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.WriteFile(m.configFile, []byte(`{"selector": ".x"}`), 0600))

	config, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, ".x", config.Selector)
	assert.Equal(t, 4.5, config.DefaultMinContrast)
	assert.Equal(t, 20*time.Millisecond, config.UpdateWindow)
}

func TestLoadRejectsBrokenJSON(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.WriteFile(m.configFile, []byte("{nope"), 0600))

	_, err := m.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	m := newTestManager(t)

	assert.NoError(t, m.Validate(Default()))

	bad := Default()
	bad.DefaultMinContrast = 25
	assert.Error(t, m.Validate(bad))

	bad = Default()
	bad.LogLevel = "loud"
	assert.Error(t, m.Validate(bad))

	bad = Default()
	bad.Selector = ""
	assert.Error(t, m.Validate(bad))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	m := NewManagerAt(dir)
	m.logger = log.New(io.Discard)

	require.NoError(t, m.Save(Default()))
	_, err := os.Stat(filepath.Join(dir, "config.json"))
	assert.NoError(t, err)
}
