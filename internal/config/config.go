package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/sweepsafe/internal/classifier"
)

// RulesConfig is the YAML form of the classifier thresholds.
type RulesConfig struct {
	// TempExtensions lists extensions treated as temporary or cache files
	TempExtensions []string `yaml:"temp_extensions"`

	// StaleAfterDays is the idle age after which any file is likely safe
	StaleAfterDays int `yaml:"stale_after_days"`

	// DormantAfterDays is the idle age after which a large file needs caution
	DormantAfterDays int `yaml:"dormant_after_days"`

	// LargeFileMB is the size, in MiB, from which a file counts as large
	LargeFileMB int64 `yaml:"large_file_mb"`
}

// Config represents sweepsafe configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Format is the default report format (table, csv, json, markdown, html)
	Format string `yaml:"format"`

	// Rules contains classifier thresholds
	Rules RulesConfig `yaml:"rules"`
}

const (
	bytesPerMB = 1024 * 1024

	// Largest values that still convert to classifier.Rules without overflow.
	maxRuleDays    = int(math.MaxInt64 / int64(classifier.Day))
	maxLargeFileMB = math.MaxInt64 / bytesPerMB
)

// DefaultConfig returns a Config matching the stock classifier rules
func DefaultConfig() *Config {
	defaults := classifier.DefaultRules()
	return &Config{
		LogLevel: "info",
		Format:   "table",
		Rules: RulesConfig{
			TempExtensions:   append([]string(nil), defaults.TempExtensions...),
			StaleAfterDays:   int(defaults.StaleAfter / classifier.Day),
			DormantAfterDays: int(defaults.DormantAfter / classifier.Day),
			LargeFileMB:      defaults.LargeFileBytes / bytesPerMB,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.Rules.StaleAfterDays != 0 {
		cfg.Rules.StaleAfterDays = fileCfg.Rules.StaleAfterDays
	}
	if fileCfg.Rules.DormantAfterDays != 0 {
		cfg.Rules.DormantAfterDays = fileCfg.Rules.DormantAfterDays
	}
	if fileCfg.Rules.LargeFileMB != 0 {
		cfg.Rules.LargeFileMB = fileCfg.Rules.LargeFileMB
	}

	// An explicit temp_extensions key replaces the defaults, even when empty.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if rulesSection, ok := rawMap["rules"].(map[string]interface{}); ok {
			if _, exists := rulesSection["temp_extensions"]; exists {
				cfg.Rules.TempExtensions = fileCfg.Rules.TempExtensions
			}
		}
	}

	return cfg, nil
}

// DefaultConfigPath returns <user config dir>/sweepsafe/config.yaml
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, "sweepsafe", "config.yaml"), nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, format *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if format != nil {
		c.Format = *format
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	validFormats := map[string]bool{
		"table":    true,
		"csv":      true,
		"json":     true,
		"markdown": true,
		"md":       true,
		"html":     true,
	}
	if !validFormats[strings.ToLower(strings.TrimSpace(c.Format))] {
		return fmt.Errorf("invalid format %q, must be one of: table, csv, json, markdown, html", c.Format)
	}

	if c.Rules.StaleAfterDays <= 0 || c.Rules.StaleAfterDays > maxRuleDays {
		return fmt.Errorf("rules.stale_after_days must be between 1 and %d, got %d", maxRuleDays, c.Rules.StaleAfterDays)
	}
	if c.Rules.DormantAfterDays <= 0 || c.Rules.DormantAfterDays > maxRuleDays {
		return fmt.Errorf("rules.dormant_after_days must be between 1 and %d, got %d", maxRuleDays, c.Rules.DormantAfterDays)
	}
	if c.Rules.LargeFileMB < 0 || c.Rules.LargeFileMB > maxLargeFileMB {
		return fmt.Errorf("rules.large_file_mb must be between 0 and %d, got %d", int64(maxLargeFileMB), c.Rules.LargeFileMB)
	}

	if err := c.ClassifierRules().Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	return nil
}

// ClassifierRules converts the YAML rule section into classifier.Rules
func (c *Config) ClassifierRules() classifier.Rules {
	return classifier.Rules{
		TempExtensions: append([]string(nil), c.Rules.TempExtensions...),
		StaleAfter:     classifier.Day * time.Duration(c.Rules.StaleAfterDays),
		DormantAfter:   classifier.Day * time.Duration(c.Rules.DormantAfterDays),
		LargeFileBytes: c.Rules.LargeFileMB * bytesPerMB,
	}
}

// RulesFromClassifier renders normalized classifier rules back into YAML form
func RulesFromClassifier(r classifier.Rules) RulesConfig {
	return RulesConfig{
		TempExtensions:   append([]string(nil), r.TempExtensions...),
		StaleAfterDays:   int(r.StaleAfter / classifier.Day),
		DormantAfterDays: int(r.DormantAfter / classifier.Day),
		LargeFileMB:      r.LargeFileBytes / bytesPerMB,
	}
}
