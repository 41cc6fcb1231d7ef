package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Disassembler.ShowPC)
	assert.True(t, cfg.Disassembler.ShowAsm)
	assert.False(t, cfg.Simulator.Execute)
	assert.Equal(t, "0x0", cfg.Simulator.DefaultEntry)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Simulator.Execute = true
	cfg.Simulator.DefaultEntry = "0x1000"
	require.NoError(t, cfg.SaveTo(path))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, got.Simulator.Execute)
	assert.Equal(t, "0x1000", got.Simulator.DefaultEntry)
}
