package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"backline/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("BACKLINE_BAND_NAME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "backline")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.StorePath() != filepath.Join(wantData, "backline.db") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if cfg.Band.Name != "Band" {
		t.Fatalf("expected default band name, got %q", cfg.Band.Name)
	}
	if cfg.Stage.DepthBands != 3 {
		t.Fatalf("expected 3 depth bands by default, got %d", cfg.Stage.DepthBands)
	}
	if cfg.Stage.LabelBudget != 14 {
		t.Fatalf("expected label budget 14, got %d", cfg.Stage.LabelBudget)
	}
	if cfg.Rider.Language != "en" {
		t.Fatalf("unexpected rider language: %q", cfg.Rider.Language)
	}
	if cfg.Paths.IconDir != "" {
		t.Fatalf("expected no icon dir by default, got %q", cfg.Paths.IconDir)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.OutputDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "backline.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
			IconDir string `toml:"icon_dir"`
		} `toml:"paths"`
		Band struct {
			Name string `toml:"name"`
		} `toml:"band"`
		Rider struct {
			Language string `toml:"language"`
		} `toml:"rider"`
		Stage struct {
			DepthBands int `toml:"depth_bands"`
		} `toml:"stage"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Paths.IconDir = filepath.Join(tempDir, "icons")
	custom.Band.Name = "  Blackout  "
	custom.Rider.Language = "es-ES"
	custom.Stage.DepthBands = 2
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.IconDir != filepath.Join(tempDir, "icons") {
		t.Fatalf("unexpected icon dir %q", cfg.Paths.IconDir)
	}
	if cfg.Band.Name != "Blackout" {
		t.Fatalf("expected trimmed band name, got %q", cfg.Band.Name)
	}
	if cfg.Rider.Language != "es-ES" {
		t.Fatalf("expected canonical language tag, got %q", cfg.Rider.Language)
	}
	if cfg.Stage.DepthBands != 2 {
		t.Fatalf("expected 2 depth bands, got %d", cfg.Stage.DepthBands)
	}
}

func TestBandNameFallsBackToEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BACKLINE_BAND_NAME", "The Envs")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Band.Name != "The Envs" {
		t.Fatalf("expected band name from env, got %q", cfg.Band.Name)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"depth bands", func(c *config.Config) { c.Stage.DepthBands = 4 }, "stage.depth_bands"},
		{"label budget", func(c *config.Config) { c.Stage.LabelBudget = 2 }, "stage.label_budget"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"lookup timeout", func(c *config.Config) { c.Lookup.TimeoutSeconds = -1 }, "lookup.timeout_seconds"},
		{"lookup url", func(c *config.Config) { c.Lookup.DeezerBaseURL = "ftp://x" }, "lookup.deezer_base_url"},
		{"data dir", func(c *config.Config) { c.Paths.DataDir = "" }, "paths.data_dir"},
		{"ntfy topic", func(c *config.Config) { c.Notifications.NtfyTopic = "my-topic" }, "notifications.ntfy_topic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateSkipsLookupWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Lookup.Enabled = false
	cfg.Lookup.TimeoutSeconds = -5
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled lookup to skip validation, got %v", err)
	}
}

func TestLoadRejectsInvalidLanguage(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "backline.toml")
	if err := os.WriteFile(configPath, []byte("[rider]\nlanguage = \"not a tag!\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "rider.language") {
		t.Fatalf("expected rider.language error, got %v", err)
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Lookup.ResultLimit != 8 {
		t.Fatalf("unexpected sample result limit %d", cfg.Lookup.ResultLimit)
	}
}
