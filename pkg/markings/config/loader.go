package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a config document encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// FromFile loads a policy, args or templates document from path.
// The format follows the extension.
func FromFile(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the given format. The document must be a mapping;
// an empty document yields an empty Config.
func Decode(data []byte, format Format) (Config, error) {
	switch format {
	case FormatYAML:
		return FromYAML(data)
	case FormatJSON:
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FromYAML parses a YAML mapping into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses a JSON object into a Config.
func FromJSON(data []byte) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(nil), nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}
