// Package config loads the optional .diregram.yaml lint configuration that
// can sit next to a document: per-code severity overrides, suppressions,
// the strict metadata-schema pass, and custom expression rules. Without a
// config file, verification output is exactly the core engine's.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultName is the config filename looked up next to a document.
const DefaultName = ".diregram.yaml"

// SeverityOff disables a code entirely in a severity override.
const SeverityOff = "off"

// Rule is a custom lint rule: when the condition evaluates true for a tree
// line, an issue with the rule's code, severity and message is reported.
type Rule struct {
	Code     string `yaml:"code"`
	Severity string `yaml:"severity,omitempty"`
	Message  string `yaml:"message"`
	When     string `yaml:"when"`
}

// Config is the parsed lint configuration.
type Config struct {
	// Severity maps an issue code to "error", "warning" or "off".
	Severity map[string]string `yaml:"severity,omitempty"`
	// Suppress lists issue codes filtered from the report.
	Suppress []string `yaml:"suppress,omitempty"`
	// Strict enables the metadata schema pass without the --strict flag.
	Strict bool `yaml:"strict,omitempty"`
	// Rules are custom expression rules evaluated per tree line.
	Rules []Rule `yaml:"rules,omitempty"`
}

// Load reads and strictly decodes a config file: unknown fields are
// rejected (yaml.v3 KnownFields), and severity values are validated.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil // empty file: empty config
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the path of the default config file in the document's
// directory, or "" when none exists.
func Find(docPath string) string {
	p := filepath.Join(filepath.Dir(docPath), DefaultName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Save writes the config back to path. Used by the triage command to
// persist suppressions.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) validate() error {
	for code, sev := range c.Severity {
		switch sev {
		case "error", "warning", SeverityOff:
		default:
			return fmt.Errorf("severity[%s]: invalid value %q (want error, warning or off)", code, sev)
		}
	}
	for i, r := range c.Rules {
		if r.Code == "" {
			return fmt.Errorf("rules[%d]: code is required", i)
		}
		if r.When == "" {
			return fmt.Errorf("rules[%d] (%s): when is required", i, r.Code)
		}
		switch r.Severity {
		case "", "error", "warning":
		default:
			return fmt.Errorf("rules[%d] (%s): invalid severity %q", i, r.Code, r.Severity)
		}
	}
	return nil
}
