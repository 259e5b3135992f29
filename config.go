// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding.
type Format string

// Supported settings formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// LoadSettings reads settings from a TOML or YAML file. Keys absent from
// the file keep their DefaultSettings values; unknown keys are rejected.
func LoadSettings(path string) (Settings, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Settings{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("ink: open settings: %w", err)
	}
	defer f.Close()

	s, err := DecodeSettings(f, format)
	if err != nil {
		return Settings{}, fmt.Errorf("ink: load %s: %w", path, err)
	}
	return s, nil
}

// DecodeSettings decodes settings in the given format on top of
// DefaultSettings and validates the result.
func DecodeSettings(r io.Reader, format Format) (Settings, error) {
	s := DefaultSettings()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return Settings{}, fmt.Errorf("ink: decode toml: %s", strict.String())
			}
			return Settings{}, fmt.Errorf("ink: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("ink: decode yaml: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// EncodeSettings writes s in the given format.
func EncodeSettings(w io.Writer, s Settings, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("ink: encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("ink: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("ink: encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}
