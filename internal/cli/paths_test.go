package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		env  string
		set  string
		fn   func() (string, error)
		want string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/tmp/xdg-cache", cacheDir, filepath.Join("/tmp/xdg-cache", appName)},
		{"config default", "XDG_CONFIG_HOME", "", configDir, filepath.Join(home, ".config", appName)},
		{"config xdg", "XDG_CONFIG_HOME", "/tmp/xdg-config", configDir, filepath.Join("/tmp/xdg-config", appName)},
		{"config file", "XDG_CONFIG_HOME", "/tmp/xdg-config", defaultConfigPath, filepath.Join("/tmp/xdg-config", appName, "config.toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.set)
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
