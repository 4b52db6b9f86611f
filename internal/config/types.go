package config

import "github.com/Paintersrp/deskshell/internal/backend"

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = "deskshell.yaml"

// DefaultTitle is the main window title.
const DefaultTitle = "Sign Studio"

// Config is the shell configuration as read from deskshell.yaml.
type Config struct {
	Window  Window  `yaml:"window"`
	Backend Backend `yaml:"backend"`
	Log     Log     `yaml:"log"`

	// Source is the absolute path the config was loaded from, empty when
	// only defaults and overrides apply.
	Source string `yaml:"-"`
}

// Window configures the main window.
type Window struct {
	Title string `yaml:"title"`
}

// Backend configures the companion process.
type Backend struct {
	// Name is the executable base name looked up next to the shell.
	Name string `yaml:"name,omitempty"`
	// Path points at the executable directly. Relative paths are resolved
	// against the config file directory.
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled"`
}

// Log configures the optional supervisor event log.
type Log struct {
	File string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: Window{Title: DefaultTitle},
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Window.Title == "" {
		c.Window.Title = DefaultTitle
	}
}

// Launcher builds the backend launcher described by the configuration.
func (c *Config) Launcher() backend.Launcher {
	return backend.Launcher{
		Name: c.Backend.Name,
		Path: c.Backend.Path,
	}
}
