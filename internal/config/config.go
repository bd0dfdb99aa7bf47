// Package config provides configuration management for statdex
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration of a statdex dataset and its command line
type Config struct {
	// Files
	DataFile        string `json:"data_file" yaml:"data_file"`                 // Dataset read on load
	ResultsFile     string `json:"results_file" yaml:"results_file"`           // Target of the distinct names sink
	MaxOpenAttempts int    `json:"max_open_attempts" yaml:"max_open_attempts"` // Candidate files tried before giving up

	// Required columns
	NameColumn          string `json:"name_column" yaml:"name_column"`
	AlternateNameColumn string `json:"alternate_name_column" yaml:"alternate_name_column"`
	HPColumn            string `json:"hp_column" yaml:"hp_column"`
	SpeedColumn         string `json:"speed_column" yaml:"speed_column"`

	// Queries
	TopK         int `json:"top_k" yaml:"top_k"`                 // Groups returned by ranking queries
	PreviewLines int `json:"preview_lines" yaml:"preview_lines"` // Head and tail lines shown by preview

	// Output
	ExportFormat  string `json:"export_format" yaml:"export_format"`   // csv, json, jsonl or parquet
	Compression   string `json:"compression" yaml:"compression"`       // Parquet codec
	CompressNames bool   `json:"compress_names" yaml:"compress_names"` // LZ4-compress the names sink

	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level"`   // debug, info, warn, error
	LogFormat string `json:"log_format" yaml:"log_format"` // text or json
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultDataFile        = "pokemon.csv"
	DefaultResultsFile     = "character_names.txt"
	DefaultMaxOpenAttempts = 2
	DefaultTopK            = 3
	DefaultPreviewLines    = 7
	DefaultExportFormat    = "csv"
	DefaultCompression     = "snappy"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

var (
	validExportFormats = []string{"csv", "json", "jsonl", "parquet"}
	validCompressions  = []string{"snappy", "gzip", "lz4", "zstd", "uncompressed"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validLogFormats    = []string{"text", "json"}
)

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		DataFile:        DefaultDataFile,
		ResultsFile:     DefaultResultsFile,
		MaxOpenAttempts: DefaultMaxOpenAttempts,

		NameColumn:          "name",
		AlternateNameColumn: "japanese_name",
		HPColumn:            "hp",
		SpeedColumn:         "speed",

		TopK:         DefaultTopK,
		PreviewLines: DefaultPreviewLines,

		ExportFormat:  DefaultExportFormat,
		Compression:   DefaultCompression,
		CompressNames: false,

		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.MaxOpenAttempts <= 0 {
		return fmt.Errorf("MaxOpenAttempts must be positive, got %d", c.MaxOpenAttempts)
	}

	if c.TopK <= 0 {
		return fmt.Errorf("TopK must be positive, got %d", c.TopK)
	}

	if c.PreviewLines < 0 {
		return fmt.Errorf("PreviewLines must be non-negative, got %d", c.PreviewLines)
	}

	for field, column := range map[string]string{
		"NameColumn":          c.NameColumn,
		"AlternateNameColumn": c.AlternateNameColumn,
		"HPColumn":            c.HPColumn,
		"SpeedColumn":         c.SpeedColumn,
	} {
		if strings.TrimSpace(column) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
	}

	if !oneOf(c.ExportFormat, validExportFormats) {
		return fmt.Errorf("ExportFormat must be one of %v, got %q", validExportFormats, c.ExportFormat)
	}

	if !oneOf(c.Compression, validCompressions) {
		return fmt.Errorf("Compression must be one of %v, got %q", validCompressions, c.Compression)
	}

	if !oneOf(c.LogLevel, validLogLevels) {
		return fmt.Errorf("LogLevel must be one of %v, got %q", validLogLevels, c.LogLevel)
	}

	if !oneOf(c.LogFormat, validLogFormats) {
		return fmt.Errorf("LogFormat must be one of %v, got %q", validLogFormats, c.LogFormat)
	}

	return nil
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.DataFile == "" {
		c.DataFile = defaults.DataFile
	}
	if c.ResultsFile == "" {
		c.ResultsFile = defaults.ResultsFile
	}
	if c.MaxOpenAttempts == 0 {
		c.MaxOpenAttempts = defaults.MaxOpenAttempts
	}
	if c.NameColumn == "" {
		c.NameColumn = defaults.NameColumn
	}
	if c.AlternateNameColumn == "" {
		c.AlternateNameColumn = defaults.AlternateNameColumn
	}
	if c.HPColumn == "" {
		c.HPColumn = defaults.HPColumn
	}
	if c.SpeedColumn == "" {
		c.SpeedColumn = defaults.SpeedColumn
	}
	if c.TopK == 0 {
		c.TopK = defaults.TopK
	}
	if c.PreviewLines == 0 {
		c.PreviewLines = defaults.PreviewLines
	}
	if c.ExportFormat == "" {
		c.ExportFormat = defaults.ExportFormat
	}
	if c.Compression == "" {
		c.Compression = defaults.Compression
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}

	// Note: CompressNames is intentionally not defaulted here
	// This allows distinguishing between explicitly set false and unset values

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromYAML loads configuration from YAML data
func LoadFromYAML(data []byte) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing YAML configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))

	var config Config
	switch ext {
	case ".json":
		config, err = LoadFromJSON(data)
	case ".yaml", ".yml":
		config, err = LoadFromYAML(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config, nil
}

// LoadFromEnv loads configuration from environment variables on top of base
func LoadFromEnv(base Config) Config {
	config := base

	stringVars := map[string]*string{
		"STATDEX_DATA_FILE":             &config.DataFile,
		"STATDEX_RESULTS_FILE":          &config.ResultsFile,
		"STATDEX_NAME_COLUMN":           &config.NameColumn,
		"STATDEX_ALTERNATE_NAME_COLUMN": &config.AlternateNameColumn,
		"STATDEX_HP_COLUMN":             &config.HPColumn,
		"STATDEX_SPEED_COLUMN":          &config.SpeedColumn,
		"STATDEX_EXPORT_FORMAT":         &config.ExportFormat,
		"STATDEX_COMPRESSION":           &config.Compression,
		"STATDEX_LOG_LEVEL":             &config.LogLevel,
		"STATDEX_LOG_FORMAT":            &config.LogFormat,
	}
	for name, target := range stringVars {
		if val := os.Getenv(name); val != "" {
			*target = val
		}
	}

	intVars := map[string]*int{
		"STATDEX_MAX_OPEN_ATTEMPTS": &config.MaxOpenAttempts,
		"STATDEX_TOP_K":             &config.TopK,
		"STATDEX_PREVIEW_LINES":     &config.PreviewLines,
	}
	for name, target := range intVars {
		if val := os.Getenv(name); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				*target = parsed
			}
		}
	}

	if val := os.Getenv("STATDEX_COMPRESS_NAMES"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.CompressNames = parsed
		}
	}

	return config
}
