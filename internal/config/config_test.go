package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes the working directory for the duration of the test. It stands
// in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "all defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "valid durations",
			mutate: func(c *Config) { c.Fetch.Timeout = "45s"; c.Compile.PassTimeout = "3m" },
		},
		{
			name:    "malformed fetch timeout",
			mutate:  func(c *Config) { c.Fetch.Timeout = "soon" },
			wantErr: true,
		},
		{
			name:    "negative pass timeout",
			mutate:  func(c *Config) { c.Compile.PassTimeout = "-1s" },
			wantErr: true,
		},
		{
			name:    "user agent too long",
			mutate:  func(c *Config) { c.Fetch.UserAgent = strings.Repeat("x", MaxUserAgentLength+1) },
			wantErr: true,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Images.Workers = -1 },
			wantErr: true,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Images.Workers = MaxWorkers + 1 },
			wantErr: true,
		},
		{
			name:   "workers at limit",
			mutate: func(c *Config) { c.Images.Workers = MaxWorkers },
		},
		{
			name:   "engine xelatex",
			mutate: func(c *Config) { c.Engine = "xelatex" },
		},
		{
			name:   "engine chrome",
			mutate: func(c *Config) { c.Engine = "chrome" },
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Engine = "groff" },
			wantErr: true,
		},
		{
			name:   "custom markers",
			mutate: func(c *Config) { c.Compile.FatalMarkers = []string{"PANIC"} },
		},
		{
			name:    "empty marker entry",
			mutate:  func(c *Config) { c.Compile.WarningMarkers = []string{""} },
			wantErr: true,
		},
		{
			name:    "marker too long",
			mutate:  func(c *Config) { c.Compile.FatalMarkers = []string{strings.Repeat("m", MaxMarkerLength+1)} },
			wantErr: true,
		},
		{
			name: "too many markers",
			mutate: func(c *Config) {
				for i := 0; i < MaxMarkers+1; i++ {
					c.Compile.FatalMarkers = append(c.Compile.FatalMarkers, "m")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Validate() = %v, want ErrInvalidValue", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "work.yaml")
		content := `
fetch:
  timeout: 10s
compile:
  binary: lualatex
  passTimeout: 90s
  singlePass: true
engine: xelatex
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Fetch.Timeout != "10s" {
			t.Errorf("Fetch.Timeout = %q", cfg.Fetch.Timeout)
		}
		if cfg.Compile.Binary != "lualatex" {
			t.Errorf("Compile.Binary = %q", cfg.Compile.Binary)
		}
		if !cfg.Compile.SinglePass {
			t.Error("Compile.SinglePass = false, want true")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "ghost.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("notAField: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("engine: groff\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("name resolved in current directory", func(t *testing.T) {
		// Changes the working directory, so no t.Parallel.
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "work.yml"), []byte("engine: chrome\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		chdir(t, dir)

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != "chrome" {
			t.Errorf("Engine = %q, want chrome", cfg.Engine)
		}
	})

	t.Run("unresolvable name", func(t *testing.T) {
		chdir(t, t.TempDir())
		_, err := LoadConfig("no-such-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"./work.yaml", true},
		{"/etc/web2pdf/work.yaml", true},
		{`C:\configs\work.yaml`, true},
	}
	for _, tt := range tests {
		tt := tt
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
