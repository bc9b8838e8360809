// Package config defines packkit's configuration model and file loading.
//
// Configuration lives in packkit.toml, packkit.yaml, or packkit.json; the
// loader dispatches on extension. Values not present in the file keep their
// defaults. Schema returns a JSON schema of the model for editor tooling
// and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/packkit/render"
)

// DefaultLogCount is how many commits the git log section covers.
const DefaultLogCount = 50

// Config is the complete packkit configuration.
type Config struct {
	// Output is the base output path. Split parts derive their names from
	// it. Empty means "packkit-output" plus the style's extension.
	Output string `json:"output,omitempty" toml:"output" yaml:"output"`

	// Style is the document format: xml, markdown, or plain.
	Style string `json:"style,omitempty" toml:"style" yaml:"style"`

	// Header is custom text placed at the top of every document.
	Header string `json:"header,omitempty" toml:"header" yaml:"header"`

	// LineNumbers prefixes embedded content lines with line numbers.
	LineNumbers bool `json:"lineNumbers,omitempty" toml:"line_numbers" yaml:"line_numbers"`

	// Tree toggles the directory listing section.
	Tree bool `json:"tree" toml:"tree" yaml:"tree"`

	// MaxBytes splits output into parts of at most this many bytes.
	MaxBytes int `json:"maxBytes,omitempty" toml:"max_bytes" yaml:"max_bytes"`

	// MaxTokens splits output into parts of at most this many tokens.
	// Takes precedence over MaxBytes when both are set.
	MaxTokens int `json:"maxTokens,omitempty" toml:"max_tokens" yaml:"max_tokens"`

	// Encoding is the tiktoken encoding for token budgets.
	Encoding string `json:"encoding,omitempty" toml:"encoding" yaml:"encoding"`

	// Workers bounds concurrent token estimation and file loading.
	Workers int `json:"workers,omitempty" toml:"workers" yaml:"workers"`

	// Include restricts the scan to paths matching these globs.
	Include []string `json:"include,omitempty" toml:"include" yaml:"include"`

	// Ignore adds extra ignore patterns in gitignore syntax.
	Ignore []string `json:"ignore,omitempty" toml:"ignore" yaml:"ignore"`

	// Gitignore toggles honoring the root's .gitignore.
	Gitignore bool `json:"gitignore" toml:"gitignore" yaml:"gitignore"`

	// DefaultIgnores toggles the built-in ignore set.
	DefaultIgnores bool `json:"defaultIgnores" toml:"default_ignores" yaml:"default_ignores"`

	// MaxFileSize caps the size of individual files loaded for embedding.
	MaxFileSize int64 `json:"maxFileSize,omitempty" toml:"max_file_size" yaml:"max_file_size"`

	// Diff embeds the work-tree and staged git diffs in the first part.
	Diff bool `json:"diff,omitempty" toml:"diff" yaml:"diff"`

	// Log embeds recent commit history in the first part.
	Log bool `json:"log,omitempty" toml:"log" yaml:"log"`

	// LogCount is how many commits the log section covers.
	LogCount int `json:"logCount,omitempty" toml:"log_count" yaml:"log_count"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Style:          string(render.XML),
		Tree:           true,
		Gitignore:      true,
		DefaultIgnores: true,
		LogCount:       DefaultLogCount,
	}
}

// Validate checks the configuration for contradictions. Zero budgets are
// valid and mean "single unsplit output".
func (c *Config) Validate() error {
	if _, err := render.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must be positive, got %d", c.MaxBytes)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	if c.LogCount < 0 {
		return fmt.Errorf("log_count must not be negative, got %d", c.LogCount)
	}
	return nil
}

// OutputPath returns the configured output path, or the default name for
// the configured style.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	style, _ := render.ParseStyle(c.Style)
	return "packkit-output" + style.Ext()
}

// Load reads a configuration file, layered over DefaultConfig. The format
// is chosen by extension: .toml, .yaml/.yml, or .json.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Find locates a config file in dir, trying packkit.toml, packkit.yaml,
// packkit.yml, then packkit.json. Returns "" when none exists.
func Find(dir string) string {
	for _, name := range []string{"packkit.toml", "packkit.yaml", "packkit.yml", "packkit.json"} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Schema returns the JSON schema of the configuration model, indented for
// direct output.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&Config{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return out, nil
}
