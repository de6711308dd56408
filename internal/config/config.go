package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level pmsledger.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Charges  ChargesConfig  `yaml:"charges"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// DefaultActor is recorded as postedBy when a request carries no X-Actor.
	DefaultActor string `yaml:"default_actor"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	TimeFormat string `yaml:"time_format"`
	Output     string `yaml:"output"`
}

// KafkaConfig enables transaction-posted events. No brokers means no events.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers,omitempty"`
	Topic   string   `yaml:"topic"`
}

type ChargesConfig struct {
	// MaxCatchUpPeriods caps how many past-due periods one schedule may post
	// in a single run.
	MaxCatchUpPeriods int `yaml:"max_catch_up_periods"`
}

// Default returns a Config with defaults for local use.
func Default() *Config {
	lc := logger.DefaultConfig()
	return &Config{
		Database: DatabaseConfig{Path: "pmsledger.db"},
		Server: ServerConfig{
			Addr:         ":8888",
			DefaultActor: "system",
		},
		Log: LogConfig{
			Level:      lc.Level,
			Format:     lc.Format,
			TimeFormat: lc.TimeFormat,
			Output:     lc.Output,
		},
		Kafka: KafkaConfig{
			Topic: "ledger.transactions",
		},
		Charges: ChargesConfig{
			MaxCatchUpPeriods: 12,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or missing), then .env and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Path, "PMS_DB")
	setString(&c.Server.Addr, "PMS_ADDR")
	setString(&c.Server.DefaultActor, "PMS_ACTOR")
	setString(&c.Log.Level, "PMS_LOG_LEVEL")
	setString(&c.Log.Format, "PMS_LOG_FORMAT")
	setString(&c.Log.Output, "PMS_LOG_OUTPUT")
	setString(&c.Kafka.Topic, "PMS_KAFKA_TOPIC")
	if v := os.Getenv("PMS_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = nil
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
	if v := os.Getenv("PMS_MAX_CATCH_UP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PMS_MAX_CATCH_UP: %w", err)
		}
		c.Charges.MaxCatchUpPeriods = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Server.DefaultActor == "" {
		return fmt.Errorf("server.default_actor is required")
	}
	if c.Charges.MaxCatchUpPeriods < 0 {
		return fmt.Errorf("charges.max_catch_up_periods must not be negative")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are set")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// LoggerConfig returns the logger configuration.
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		TimeFormat: c.Log.TimeFormat,
		Output:     c.Log.Output,
	}
}
