package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RackPlan/internal/model"
)

// Format is the encoding of a configuration file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the encoding from a file extension; anything other than
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// DecodeConfig decodes a configuration on top of base, so fields absent from
// the input keep their base values. Unknown fields are rejected.
func DecodeConfig(r io.Reader, format Format, base model.Config) (model.Config, error) {
	cfg := base
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return model.Config{}, fmt.Errorf("invalid YAML configuration: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return model.Config{}, fmt.Errorf("invalid JSON configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfig reads a configuration file on top of base.
func LoadConfig(path string, base model.Config) (model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	cfg, err := DecodeConfig(bytes.NewReader(data), FormatFor(path), base)
	if err != nil {
		return model.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// EncodeConfig writes cfg in the given format.
func EncodeConfig(w io.Writer, format Format, cfg model.Config) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
}

// SaveConfig writes cfg to path, choosing the encoding from the extension.
// It creates any missing parent directories automatically.
func SaveConfig(path string, cfg model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	var buf bytes.Buffer
	if err := EncodeConfig(&buf, FormatFor(path), cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
