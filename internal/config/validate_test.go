package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bareName", mutate: func(c *Config) { c.Backend.Name = "server" }},
		{name: "blankTitle", mutate: func(c *Config) { c.Window.Title = "   " }, wantErr: "window.title"},
		{name: "nameWithSeparator", mutate: func(c *Config) { c.Backend.Name = "bin/server" }, wantErr: "bare file name"},
		{name: "dotName", mutate: func(c *Config) { c.Backend.Name = ".." }, wantErr: "not a valid executable name"},
		{name: "nameAndPath", mutate: func(c *Config) {
			c.Backend.Name = "server"
			c.Backend.Path = "/opt/server"
		}, wantErr: "cannot be combined"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
