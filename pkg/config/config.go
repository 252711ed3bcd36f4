package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Dataset configuration
	Dataset DatasetConfig `mapstructure:"dataset"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// View configuration
	View ViewConfig `mapstructure:"view"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatasetConfig says where the graph dataset is fetched from.
type DatasetConfig struct {
	Driver   string        `mapstructure:"driver"` // file, http, neo4j, sqlite; empty infers from uri
	URI      string        `mapstructure:"uri"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Database string        `mapstructure:"database"`
	Repair   bool          `mapstructure:"repair"` // run JSON documents through jsonrepair first
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	// ParquetPath is the directory error records are flushed to. Empty
	// disables the parquet sink.
	ParquetPath string `mapstructure:"parquet_path"`
	BatchSize   int    `mapstructure:"batch_size"`
	// DBPath is a SQLite file error records are inserted into. Empty
	// disables the SQL sink.
	DBPath string `mapstructure:"db_path"`
}

// ViewConfig controls search and row ordering.
type ViewConfig struct {
	Language    string `mapstructure:"language"`
	SearchLimit int    `mapstructure:"search_limit"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Dataset defaults
	viper.SetDefault("dataset.driver", "")
	viper.SetDefault("dataset.uri", "./graph.json")
	viper.SetDefault("dataset.repair", false)
	viper.SetDefault("dataset.timeout", 30*time.Second)

	// Telemetry defaults; the sink stays off unless a path is configured
	viper.SetDefault("telemetry.parquet_path", "")
	viper.SetDefault("telemetry.batch_size", 100)
	viper.SetDefault("telemetry.db_path", "")

	// View defaults
	viper.SetDefault("view.language", "en")
	viper.SetDefault("view.search_limit", 0)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) error {
	// Dataset location
	if driver := os.Getenv("DATASET_DRIVER"); driver != "" {
		config.Dataset.Driver = driver
	}
	if uri := os.Getenv("DATASET_URI"); uri != "" {
		config.Dataset.URI = uri
	}

	// Neo4j credentials
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Dataset.URI = uri
		if config.Dataset.Driver == "" {
			config.Dataset.Driver = "neo4j"
		}
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Dataset.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Dataset.Password = pass
	}
	if db := os.Getenv("NEO4J_DATABASE"); db != "" {
		config.Dataset.Database = db
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		config.Server.Port = p
	}

	// Telemetry settings
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
	if path := os.Getenv("TELEMETRY_DB_PATH"); path != "" {
		config.Telemetry.DBPath = path
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Dataset.URI == "" {
		errs = append(errs, errors.New("dataset.uri is required"))
	}
	switch c.Dataset.Driver {
	case "", "file", "http", "neo4j", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("dataset.driver %q is not one of file, http, neo4j, sqlite", c.Dataset.Driver))
	}
	if c.Dataset.Timeout < 0 {
		errs = append(errs, errors.New("dataset.timeout cannot be negative"))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.View.SearchLimit < 0 {
		errs = append(errs, errors.New("view.search_limit cannot be negative"))
	}
	if c.Telemetry.BatchSize < 0 {
		errs = append(errs, errors.New("telemetry.batch_size cannot be negative"))
	}
	return errors.Join(errs...)
}
