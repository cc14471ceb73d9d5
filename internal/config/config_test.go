package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := getDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 560, cfg.SurfaceSide())
	assert.Equal(t, 10*time.Millisecond, cfg.Animation.Interval)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
window:
  height: 470
brush:
  default_size: 24
classifier:
  backend: linear
  model_path: /tmp/model.json
normalizer:
  resample: catmull-rom
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 400, cfg.SurfaceSide())
	assert.Equal(t, 24, cfg.Brush.DefaultSize)
	assert.Equal(t, []int{24, 32, 40}, cfg.Brush.Sizes)
	assert.Equal(t, "linear", cfg.Classifier.Backend)
	assert.Equal(t, "catmull-rom", cfg.Normalizer.Resample)
	assert.Equal(t, "Smart Desk", cfg.Window.Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{
			name:   "window shorter than margin",
			mutate: func(c *Config) { c.Window.Height = 50 },
			want:   ErrInvalidWindow,
		},
		{
			name:   "zero brush",
			mutate: func(c *Config) { c.Brush.Sizes = []int{0} },
			want:   ErrInvalidBrush,
		},
		{
			name:   "brush wider than surface",
			mutate: func(c *Config) { c.Brush.Sizes = []int{600} },
			want:   ErrInvalidBrush,
		},
		{
			name:   "default brush wider than surface",
			mutate: func(c *Config) { c.Brush.DefaultSize = 560 },
			want:   ErrInvalidBrush,
		},
		{
			name:   "zero default brush",
			mutate: func(c *Config) { c.Brush.DefaultSize = 0 },
			want:   ErrInvalidBrush,
		},
		{
			name:   "zero animation interval",
			mutate: func(c *Config) { c.Animation.Interval = 0 },
			want:   ErrInvalidTicker,
		},
		{
			name:   "negative animation interval",
			mutate: func(c *Config) { c.Animation.Interval = -time.Millisecond },
			want:   ErrInvalidTicker,
		},
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.Classifier.Backend = "pickle" },
			want:   ErrUnknownBackend,
		},
		{
			name:   "unknown resample",
			mutate: func(c *Config) { c.Normalizer.Resample = "lanczos" },
			want:   ErrUnknownSampler,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := getDefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoadRejectsZeroInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animation:\n  interval: 0s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTicker)
}
