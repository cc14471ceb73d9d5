package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrInvalidWindow  = errors.New("config: window too small for canvas")
	ErrInvalidBrush   = errors.New("config: brush sizes must be positive")
	ErrUnknownBackend = errors.New("config: unknown classifier backend")
	ErrUnknownSampler = errors.New("config: unknown resample filter")
	ErrInvalidTicker  = errors.New("config: animation interval must be positive")
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Window     WindowConfig     `mapstructure:"window"`
	Brush      BrushConfig      `mapstructure:"brush"`
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Animation  AnimationConfig  `mapstructure:"animation"`
	Export     ExportConfig     `mapstructure:"export"`
	Feed       FeedConfig       `mapstructure:"feed"`
}

type AppConfig struct {
	Mode string `mapstructure:"mode"`
}

type WindowConfig struct {
	Title  string  `mapstructure:"title"`
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
	// Margin is subtracted from Height to size the square drawing surface.
	Margin int `mapstructure:"margin"`
}

type BrushConfig struct {
	Sizes       []int `mapstructure:"sizes"`
	DefaultSize int   `mapstructure:"default_size"`
}

type NormalizerConfig struct {
	Resample string `mapstructure:"resample"`
}

type ClassifierConfig struct {
	Backend   string        `mapstructure:"backend"`
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	ModelPath string        `mapstructure:"model_path"`
}

type AnimationConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ExportConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

type FeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
	MDNS    bool `mapstructure:"mdns"`
}

// SurfaceSide is the side length in pixels of the square drawing surface.
func (c *Config) SurfaceSide() int {
	return int(c.Window.Height) - c.Window.Margin
}

// Validate checks values that would otherwise fail deep inside the UI.
func (c *Config) Validate() error {
	if c.SurfaceSide() <= 0 {
		return fmt.Errorf("%w: height %.0f, margin %d", ErrInvalidWindow, c.Window.Height, c.Window.Margin)
	}
	if len(c.Brush.Sizes) == 0 {
		return ErrInvalidBrush
	}
	if c.Brush.DefaultSize <= 0 || c.Brush.DefaultSize >= c.SurfaceSide() {
		return fmt.Errorf("%w: default %d", ErrInvalidBrush, c.Brush.DefaultSize)
	}
	for _, s := range c.Brush.Sizes {
		if s <= 0 || s >= c.SurfaceSide() {
			return fmt.Errorf("%w: got %d", ErrInvalidBrush, s)
		}
	}
	if c.Animation.Interval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTicker, c.Animation.Interval)
	}
	switch c.Classifier.Backend {
	case "http", "linear":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Classifier.Backend)
	}
	switch c.Normalizer.Resample {
	case "nearest", "approx-bilinear", "bilinear", "catmull-rom":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSampler, c.Normalizer.Resample)
	}
	return nil
}

// Load reads the YAML file at configPath on top of the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("smartdesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// New loads config.yaml from the working directory, or the defaults when
// the file is missing or unreadable.
func New() *Config {
	cfg, err := Load("config.yaml")
	if err != nil {
		return getDefaultConfig()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.mode", "debug")

	v.SetDefault("window.title", "Smart Desk")
	v.SetDefault("window.width", 780)
	v.SetDefault("window.height", 630)
	v.SetDefault("window.margin", 70)

	v.SetDefault("brush.sizes", []int{24, 32, 40})
	v.SetDefault("brush.default_size", 32)

	v.SetDefault("normalizer.resample", "nearest")

	v.SetDefault("classifier.backend", "http")
	v.SetDefault("classifier.url", "http://localhost:8000")
	v.SetDefault("classifier.timeout", 2*time.Second)
	v.SetDefault("classifier.model_path", "model/linear_model.json.gz")

	v.SetDefault("animation.interval", 10*time.Millisecond)

	v.SetDefault("export.jpeg_quality", 95)

	v.SetDefault("feed.enabled", false)
	v.SetDefault("feed.port", 8899)
	v.SetDefault("feed.mdns", true)
}

func getDefaultConfig() *Config {
	return &Config{
		App: AppConfig{Mode: "debug"},
		Window: WindowConfig{
			Title:  "Smart Desk",
			Width:  780,
			Height: 630,
			Margin: 70,
		},
		Brush: BrushConfig{
			Sizes:       []int{24, 32, 40},
			DefaultSize: 32,
		},
		Normalizer: NormalizerConfig{Resample: "nearest"},
		Classifier: ClassifierConfig{
			Backend:   "http",
			URL:       "http://localhost:8000",
			Timeout:   2 * time.Second,
			ModelPath: "model/linear_model.json.gz",
		},
		Animation: AnimationConfig{Interval: 10 * time.Millisecond},
		Export:    ExportConfig{JPEGQuality: 95},
		Feed: FeedConfig{
			Enabled: false,
			Port:    8899,
			MDNS:    true,
		},
	}
}
