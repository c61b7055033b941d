package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/internal/platform"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Downloader DownloaderConfig `yaml:"downloader"`
	History    HistoryConfig    `yaml:"history"`
	Fallback   FallbackConfig   `yaml:"fallback"`
	Log        LogConfig        `yaml:"log"`

	// Platforms replaces the built-in classifier table when non-empty.
	Platforms []platform.Rule `yaml:"platforms" ignored:"true"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
}

// StorageConfig holds configuration for the scratch downloads directory.
type StorageConfig struct {
	DownloadsPath string        `yaml:"downloads_path" envconfig:"DOWNLOADS_PATH"`
	MinFreeBytes  int64         `yaml:"min_free_bytes" envconfig:"MIN_FREE_BYTES"`
	OrphanTTL     time.Duration `yaml:"orphan_ttl" envconfig:"ORPHAN_TTL"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"SWEEP_INTERVAL"`
}

// DownloaderConfig holds configuration for the external downloader tool.
type DownloaderConfig struct {
	// Command is the tool invocation, e.g. "yt-dlp" or "python -m yt_dlp".
	Command         string        `yaml:"command" envconfig:"DOWNLOADER_COMMAND"`
	BundledDir      string        `yaml:"bundled_dir" envconfig:"DOWNLOADER_BUNDLED_DIR"`
	MetadataTimeout time.Duration `yaml:"metadata_timeout" envconfig:"DOWNLOADER_METADATA_TIMEOUT"`
	DownloadTimeout time.Duration `yaml:"download_timeout" envconfig:"DOWNLOADER_DOWNLOAD_TIMEOUT"`
	MaxConcurrent   int           `yaml:"max_concurrent" envconfig:"DOWNLOADER_MAX_CONCURRENT"`
	MaxOutputBytes  int64         `yaml:"max_output_bytes" envconfig:"DOWNLOADER_MAX_OUTPUT_BYTES"`
}

// HistoryConfig holds analysis history configuration.
type HistoryConfig struct {
	Capacity int `yaml:"capacity" envconfig:"HISTORY_CAPACITY"`
}

// FallbackConfig controls which platforms surface downloader errors
// instead of returning mock data.
type FallbackConfig struct {
	StrictPlatforms []string `yaml:"strict_platforms" envconfig:"FALLBACK_STRICT_PLATFORMS"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. A .env file in the working
// directory, if present, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables. Only variables that are set
	// take effect, so YAML values survive unset env.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when neither file nor environment
// sets a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3001,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			DownloadsPath: "downloads",
			MinFreeBytes:  512 << 20,
			OrphanTTL:     time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Downloader: DownloaderConfig{
			Command:         "yt-dlp",
			MetadataTimeout: 2 * time.Minute,
			DownloadTimeout: 20 * time.Minute,
			MaxConcurrent:   4,
			MaxOutputBytes:  20 << 20,
		},
		History: HistoryConfig{
			Capacity: 50,
		},
		Fallback: FallbackConfig{
			StrictPlatforms: []string{string(domain.PlatformInstagram)},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Downloader.Command) == "" {
		return fmt.Errorf("DOWNLOADER_COMMAND is required")
	}
	if c.Storage.DownloadsPath == "" {
		return fmt.Errorf("DOWNLOADS_PATH is required")
	}
	if c.History.Capacity <= 0 {
		return fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", c.History.Capacity)
	}
	if c.Storage.OrphanTTL > 0 && c.Storage.OrphanTTL <= c.Downloader.DownloadTimeout {
		return fmt.Errorf("ORPHAN_TTL (%s) must exceed DOWNLOADER_DOWNLOAD_TIMEOUT (%s)",
			c.Storage.OrphanTTL, c.Downloader.DownloadTimeout)
	}
	if c.Downloader.MaxConcurrent < 0 {
		return fmt.Errorf("DOWNLOADER_MAX_CONCURRENT must not be negative")
	}
	for _, name := range c.Fallback.StrictPlatforms {
		if _, ok := domain.ParsePlatform(strings.TrimSpace(name)); !ok {
			return fmt.Errorf("unknown strict platform %q", name)
		}
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	if len(c.Platforms) > 0 {
		if _, err := platform.NewClassifier(c.Platforms); err != nil {
			return fmt.Errorf("platforms: %w", err)
		}
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StrictPlatformSet returns the strict platform list as a set.
func (c *FallbackConfig) StrictPlatformSet() map[domain.Platform]bool {
	set := make(map[domain.Platform]bool, len(c.StrictPlatforms))
	for _, name := range c.StrictPlatforms {
		p, _ := domain.ParsePlatform(strings.TrimSpace(name))
		set[p] = true
	}
	return set
}
