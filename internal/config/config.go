// Package config loads the docxrst YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/docxrst/classify"
	"github.com/tsawler/docxrst/internal/logging"
	"github.com/tsawler/docxrst/model"
	"github.com/tsawler/docxrst/target"
)

// Config is the top-level docxrst configuration.
type Config struct {
	OutputDir  string            `yaml:"output_dir"`
	Workers    int               `yaml:"workers"`
	Scaffold   bool              `yaml:"scaffold"`
	Pandoc     PandocConfig      `yaml:"pandoc"`
	OCR        OCRConfig         `yaml:"ocr"`
	Labels     map[string]string `yaml:"labels"` // figure | table | code | math
	Classifier ClassifierConfig  `yaml:"classifier"`
	Log        LogConfig         `yaml:"log"`
}

// PandocConfig controls the first-pass converter.
type PandocConfig struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// OCRConfig controls alt-text generation.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

// ClassifierConfig overrides the code paragraph tables. Empty lists keep
// the built-in tables. IndentThreshold is used as given, including zero.
type ClassifierConfig struct {
	StyleKeywords   []string `yaml:"style_keywords"`
	MonospaceFonts  []string `yaml:"monospace_fonts"`
	IndentThreshold float64  `yaml:"indent_threshold"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

var labelKinds = map[string]model.TargetKind{
	"figure": model.TargetFigure,
	"table":  model.TargetTable,
	"code":   model.TargetCode,
	"math":   model.TargetMath,
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Workers: 1,
		Pandoc:  PandocConfig{Path: "pandoc"},
		OCR:     OCRConfig{Language: "eng"},
		Classifier: ClassifierConfig{
			IndentThreshold: classify.DefaultConfig().IndentThreshold,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that values are sane.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}
	if c.Classifier.IndentThreshold < 0 {
		return fmt.Errorf("classifier.indent_threshold must be >= 0")
	}
	for k := range c.Labels {
		if _, ok := labelKinds[strings.ToLower(k)]; !ok {
			return fmt.Errorf("labels: unknown target kind %q (use figure, table, code or math)", k)
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// TargetLabels returns the default labels with the configured overrides.
func (c *Config) TargetLabels() target.Labels {
	labels := target.DefaultLabels()
	for k, v := range c.Labels {
		if kind, ok := labelKinds[strings.ToLower(k)]; ok && v != "" {
			labels[kind] = v
		}
	}
	return labels
}

// ClassifierConfig returns the classifier tables with the configured
// overrides.
func (c *Config) ClassifierConfig() classify.Config {
	cc := classify.DefaultConfig()
	if len(c.Classifier.StyleKeywords) > 0 {
		cc.StyleKeywords = fold(c.Classifier.StyleKeywords)
	}
	if len(c.Classifier.MonospaceFonts) > 0 {
		cc.MonospaceFonts = fold(c.Classifier.MonospaceFonts)
	}
	cc.IndentThreshold = c.Classifier.IndentThreshold
	return cc
}

// fold case-folds keywords the way the classifier folds style and font
// names.
func fold(in []string) []string {
	caser := cases.Fold()
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = caser.String(s)
	}
	return out
}
