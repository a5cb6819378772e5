package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoggerConfig holds the logging configuration.
type LoggerConfig struct {
	Level      string `json:"level"`       // e.g., "debug", "info", "warn", "error"
	Format     string `json:"format"`      // "text" or "json"
	FilePath   string `json:"file_path"`   // e.g., "logs/timelock-node.log"; empty logs to stdout only
	MaxSize    int    `json:"max_size"`    // megabytes before rotation
	MaxBackups int    `json:"max_backups"` // rotated files to keep
	MaxAge     int    `json:"max_age"`     // days to keep rotated files
	Compress   bool   `json:"compress"`
}

// DecoderConfig holds limits for the message decoding endpoints.
type DecoderConfig struct {
	MaxBatchSize      int   `json:"max_batch_size"`
	DescribeMultihash *bool `json:"describe_multihash"`
}

// Describe reports whether responses include multihash descriptors.
func (d DecoderConfig) Describe() bool {
	return d.DescribeMultihash == nil || *d.DescribeMultihash
}

// Config holds the application's configuration values.
type Config struct {
	ServerPort string        `json:"server_port"`
	Logger     LoggerConfig  `json:"logger"`
	Decoder    DecoderConfig `json:"decoder"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = ":8080"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "text"
	}
	if c.Logger.MaxSize == 0 {
		c.Logger.MaxSize = 100
	}
	if c.Decoder.MaxBatchSize == 0 {
		c.Decoder.MaxBatchSize = 100
	}
}

// LoadConfig reads the configuration from a file and returns a Config struct.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	config.applyDefaults()

	if config.Decoder.MaxBatchSize < 0 {
		return nil, errors.Errorf("decoder.max_batch_size must be positive, got %d", config.Decoder.MaxBatchSize)
	}

	return config, nil
}
