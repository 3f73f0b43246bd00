// Package config loads clonehound configuration from TOML, YAML, or JSON
// files, validating the raw document against an embedded schema before
// unmarshaling so typos surface as errors instead of silent defaults.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Config holds all configuration options for clonehound.
type Config struct {
	Analysis   AnalysisConfig  `koanf:"analysis"`
	Thresholds ThresholdConfig `koanf:"thresholds"`
	Exclude    ExcludeConfig   `koanf:"exclude"`
	Output     OutputConfig    `koanf:"output"`
}

// AnalysisConfig controls which finders run and extraction limits.
type AnalysisConfig struct {
	Exact       bool  `koanf:"exact"`
	Near        bool  `koanf:"near"`
	Structural  bool  `koanf:"structural"`
	MaxFileSize int64 `koanf:"max_file_size"` // bytes, 0 = no limit
}

// ThresholdConfig defines similarity thresholds.
type ThresholdConfig struct {
	NearSimilarity float64 `koanf:"near_similarity"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, yaml, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// schemaJSON is the validation schema for config documents. Top-level keys
// are closed so a misspelled section fails loudly.
const schemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "analysis": {
      "type": "object",
      "properties": {
        "exact": {"type": "boolean"},
        "near": {"type": "boolean"},
        "structural": {"type": "boolean"},
        "max_file_size": {"type": "integer", "minimum": 0}
      }
    },
    "thresholds": {
      "type": "object",
      "properties": {
        "near_similarity": {"type": "number", "exclusiveMinimum": 0, "maximum": 1}
      }
    },
    "exclude": {
      "type": "object",
      "properties": {
        "patterns": {"type": "array", "items": {"type": "string"}},
        "dirs": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "output": {
      "type": "object",
      "properties": {
        "format": {"type": "string", "enum": ["text", "json", "markdown", "yaml", "toon"]},
        "color": {"type": "boolean"},
        "verbose": {"type": "boolean"}
      }
    }
  }
}`

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Exact:       true,
			Near:        true,
			Structural:  true,
			MaxFileSize: 0,
		},
		Thresholds: ThresholdConfig{
			NearSimilarity: 0.8,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.bundle.js",
				"*.d.ts",
			},
			Dirs: []string{
				"node_modules",
				".git",
				"dist",
				"build",
				"coverage",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, picking the parser by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = koanfjson.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := validate(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the raw config document against the embedded schema.
func validate(raw map[string]interface{}) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", schemaDoc); err != nil {
		return err
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return err
	}

	return schema.Validate(doc)
}

// LoadOrDefault tries standard locations and falls back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"clonehound.toml",
		"clonehound.yaml",
		"clonehound.yml",
		"clonehound.json",
		".clonehound.toml",
		".clonehound.yaml",
		".clonehound.yml",
		".clonehound.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
