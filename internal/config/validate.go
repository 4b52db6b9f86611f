package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate reports configuration values the shell cannot act on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Window.Title) == "" {
		return fmt.Errorf("%s: must not be blank", field("window", "title"))
	}
	name := c.Backend.Name
	if name != "" {
		if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
			return fmt.Errorf("%s: %q must be a bare file name, use backend.path for paths", field("backend", "name"), name)
		}
		if name == "." || name == ".." {
			return fmt.Errorf("%s: %q is not a valid executable name", field("backend", "name"), name)
		}
	}
	if c.Backend.Name != "" && c.Backend.Path != "" {
		return fmt.Errorf("%s: cannot be combined with %s", field("backend", "path"), field("backend", "name"))
	}
	if c.Log.File != "" && strings.HasSuffix(c.Log.File, string(filepath.Separator)) {
		return fmt.Errorf("%s: %q names a directory", field("log", "file"), c.Log.File)
	}
	return nil
}

func field(section, name string) string {
	return section + "." + name
}
