package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Export.DocumentName != "siteData.json" {
		t.Errorf("unexpected default document name %q", cfg.Export.DocumentName)
	}
	if cfg.Imaging.Quality != 0.95 {
		t.Errorf("unexpected default quality %v", cfg.Imaging.Quality)
	}
}

func TestLoadReadsFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[imaging]
quality = 0.8

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Imaging.Quality != 0.8 {
		t.Errorf("quality = %v, want 0.8", cfg.Imaging.Quality)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level should be lowercased, got %q", cfg.Logging.Level)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Errorf("output dir should be absolute, got %q", cfg.Paths.OutputDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero quality", func(c *Config) { c.Imaging.Quality = 0 }, "imaging.quality"},
		{"quality above one", func(c *Config) { c.Imaging.Quality = 1.5 }, "imaging.quality"},
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }, "paths.output_dir"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"document name with path", func(c *Config) { c.Export.DocumentName = "a/b.json" }, "export.document_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.normalize(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	} else if !exists {
		t.Fatal("sample config should be reported as existing")
	}
}
