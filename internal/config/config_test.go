package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "epochs: 100\nlearning_rate: 0.1\noptimizer: adam\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Epochs)
	assert.Equal(t, float32(0.1), cfg.LearningRate)
	assert.Equal(t, "adam", cfg.Optimizer)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.BatchSize)
	assert.Equal(t, 4, cfg.Hidden)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "epochs: -5\n")
	_, err := Load(path)
	assert.Error(t, err)

	path = writeConfig(t, "optimizer: rmsprop\n")
	_, err = Load(path)
	assert.Error(t, err)

	path = writeConfig(t, "batch_size: [nonsense\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		Epochs:    10,
		Optimizer: "adam",
		Seed:      7,
		LossCSV:   "loss.csv",
	})

	assert.Equal(t, 10, cfg.Epochs)
	assert.Equal(t, "adam", cfg.Optimizer)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "loss.csv", cfg.LossCSV)
	// Zero-valued overrides leave the config untouched.
	assert.Equal(t, float32(0.5), cfg.LearningRate)
}

func TestValidateBounds(t *testing.T) {
	cfg := Default()
	cfg.Momentum = 1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LearningRate = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Hidden = 0
	assert.Error(t, cfg.Validate())
}
