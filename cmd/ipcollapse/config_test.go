package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ipcollapse.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error = %v", err)
	}
	if cfg.Gap != "0" || cfg.Format != formatCidr {
		t.Errorf("default config = %+v, want gap=0 format=cidr", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, "gap: 4k\nformat: range\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error = %v", err)
	}
	if cfg.Gap != "4k" {
		t.Errorf("cfg.Gap = %q, want %q", cfg.Gap, "4k")
	}
	if cfg.Format != formatRange {
		t.Errorf("cfg.Format = %q, want %q", cfg.Format, formatRange)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// 缺失的字段保留默认值。
	path := writeTempConfig(t, "gap: \"16\"\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error = %v", err)
	}
	if cfg.Gap != "16" {
		t.Errorf("cfg.Gap = %q, want %q", cfg.Gap, "16")
	}
	if cfg.Format != formatCidr {
		t.Errorf("cfg.Format = %q, want default %q", cfg.Format, formatCidr)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_gap", "gap: notanumber\n"},
		{"bad_format", "format: json\n"},
		{"bad_yaml", "gap: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)
			if _, err := loadConfig(path); err == nil {
				t.Errorf("loadConfig(%q) should fail", tt.content)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("loadConfig on missing file should fail")
	}
}
