package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 2.5, cfg.Speed.BoostFactor)
	require.Equal(t, 3, cfg.Road.GantryCount)

	// A path that does not exist falls back to defaults.
	cfg, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`
speed:
  base: 0.8
road:
  laneWidth: 3.0
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.8, cfg.Speed.Base)
	require.Equal(t, 3.0, cfg.Road.LaneWidth)
	// Untouched values keep their defaults.
	require.Equal(t, 2.5, cfg.Speed.BoostFactor)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`
road:
  triggerThreshold: 50.0
`), 0644)
	require.NoError(t, err)

	_, err = Load(path)
	require.Error(t, err)

	path2 := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(path2, []byte("{not yaml"), 0644))
	_, err = Load(path2)
	require.Error(t, err)
}
