// Package config loads optional exporter defaults from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config-path is given.
const DefaultPath = "~/.ocsf-export/config.yaml"

// NewService creates a new config service.
func NewService() Service {
	return &service{defaultPath: DefaultPath}
}

// Load reads the config file at path. When path is empty the default location
// is used and a missing file yields an empty config.
func (s *service) Load(path string) (*FileConfig, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = s.defaultPath
	}

	resolved, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", resolved, err)
	}

	cfg := &FileConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", resolved, err)
	}
	if cfg.PageSize < 0 || cfg.MaxItems < 0 {
		return nil, fmt.Errorf("invalid config %s: page_size and max_items must not be negative", resolved)
	}
	return cfg, nil
}

// ExpandHome resolves a leading "~" against the user's home directory.
func ExpandHome(p string) (string, error) {
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}
