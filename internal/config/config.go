// =============================================================================
// Pricing Data Generator - Configuration Module
// =============================================================================
//
// This module loads the generator configuration from a YAML file. Every
// setting has a default, so running without a config file reproduces the
// classic behavior: read *.csv from the working directory and write
// pricing_data.json next to them.
//
// EXAMPLE (config.yaml):
//   input_dir: ./price-lists
//   output_file: ./site/data/pricing_data.json
//   file_patterns: ["*.csv"]
//   include_workbooks: true
//   max_concurrency: 4
//   log_level: info
//   log_format: text
//   csv_settings:
//     delimiter: ","
//     encoding: Windows-1252
//     trim_space: true
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is used when --config is not given.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the generator configuration.
type MainConfig struct {
	// =========================================================================
	// INPUT / OUTPUT
	// =========================================================================

	// InputDir is the directory scanned for price lists.
	// Default: "."
	InputDir string `yaml:"input_dir"`

	// OutputFile is the path of the generated JSON document.
	// Default: "pricing_data.json"
	OutputFile string `yaml:"output_file"`

	// FilePatterns are glob patterns (relative to InputDir) selecting CSV
	// price lists.
	// Default: ["*.csv"]
	FilePatterns []string `yaml:"file_patterns"`

	// IncludeWorkbooks also selects "*.xlsx" workbooks as price lists.
	// Default: false
	IncludeWorkbooks bool `yaml:"include_workbooks"`

	// =========================================================================
	// PROCESSING
	// =========================================================================

	// MaxConcurrency is the number of price lists aggregated in parallel.
	// Set to 1 for sequential processing.
	// Default: 1
	MaxConcurrency int `yaml:"max_concurrency"`

	// CSVSettings controls how CSV price lists are read.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// =========================================================================
	// LOGGING
	// =========================================================================

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the single character separating fields.
	// "tab", "\t", "pipe" and "semicolon" are accepted as names.
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file.
	// Supported: "UTF-8", "UTF-16", "ISO-8859-1", "Windows-1252".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// TrimSpace trims surrounding whitespace from headers and values.
	// Default: true
	TrimSpace *bool `yaml:"trim_space"`
}

// ShouldTrim reports whether values are trimmed.
func (s CSVSettings) ShouldTrim() bool {
	return s.TrimSpace == nil || *s.TrimSpace
}

// Encodings lists the supported CSV encodings (canonical names).
var Encodings = []string{"UTF-8", "UTF-16", "ISO-8859-1", "Windows-1252"}

var logLevels = []string{"debug", "info", "warn", "error"}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: Whether a missing file is an error. The implicit default
//     config.yaml is optional; a path given on the command line is not.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// ParseMainConfig parses YAML configuration content.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "."
	}
	if config.OutputFile == "" {
		config.OutputFile = "pricing_data.json"
	}
	if len(config.FilePatterns) == 0 {
		config.FilePatterns = []string{"*.csv"}
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 1
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}
}

// Validate checks the configuration after defaults are applied. It is also
// called after command-line overrides.
func Validate(config *MainConfig) error {
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	if !containsFold(logLevels, config.LogLevel) {
		return fmt.Errorf("unknown log_level %q (want one of %s)", config.LogLevel, strings.Join(logLevels, ", "))
	}

	switch strings.ToLower(config.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want text or json)", config.LogFormat)
	}

	if _, err := DelimiterRune(config.CSVSettings.Delimiter); err != nil {
		return err
	}

	if CanonicalEncoding(config.CSVSettings.Encoding) == "" {
		return fmt.Errorf("unsupported csv encoding %q (want one of %s)",
			config.CSVSettings.Encoding, strings.Join(Encodings, ", "))
	}

	return nil
}

// DelimiterRune resolves the configured delimiter to a single rune.
func DelimiterRune(delimiter string) (rune, error) {
	switch strings.ToLower(delimiter) {
	case "\\t", "\t", "tab":
		return '\t', nil
	case "pipe":
		return '|', nil
	case "semicolon":
		return ';', nil
	case "comma":
		return ',', nil
	}

	runes := []rune(delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("csv delimiter must be a single character, got %q", delimiter)
	}
	if runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, fmt.Errorf("csv delimiter %q is not allowed", delimiter)
	}
	return runes[0], nil
}

// CanonicalEncoding maps an encoding name and its common aliases to one of
// Encodings, or "" if it is unsupported.
func CanonicalEncoding(name string) string {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "utf-8", "utf8":
		return "UTF-8"
	case "utf-16", "utf16":
		return "UTF-16"
	case "iso-8859-1", "latin1", "latin-1":
		return "ISO-8859-1"
	case "windows-1252", "cp1252":
		return "Windows-1252"
	}
	return ""
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
