package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the config file at path. A missing file is only tolerated when
// optional is set, in which case defaults are returned. Environment overrides
// are applied in both cases.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	f, err := os.Open(absPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", absPath, err)
		}
		cfg.Source = absPath
		cfg.resolvePaths(filepath.Dir(absPath))
	case errors.Is(err, os.ErrNotExist) && optional:
	default:
		return nil, fmt.Errorf("open config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		if cfg.Source != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Source, err)
		}
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) resolvePaths(base string) {
	c.Window.Title = os.ExpandEnv(c.Window.Title)
	c.Backend.Path = resolvePath(base, os.ExpandEnv(c.Backend.Path))
	c.Log.File = resolvePath(base, os.ExpandEnv(c.Log.File))
}

func resolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

func (c *Config) applyEnv() error {
	if value := os.Getenv("DESKSHELL_TITLE"); value != "" {
		c.Window.Title = value
	}
	if value := os.Getenv("DESKSHELL_BACKEND_PATH"); value != "" {
		c.Backend.Path = value
		c.Backend.Name = ""
	}
	if value := os.Getenv("DESKSHELL_BACKEND_DISABLED"); value != "" {
		disabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("DESKSHELL_BACKEND_DISABLED: %w", err)
		}
		c.Backend.Disabled = disabled
	}
	if value := os.Getenv("DESKSHELL_LOG_FILE"); value != "" {
		c.Log.File = value
	}
	return nil
}
