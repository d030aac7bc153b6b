package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"backline/internal/config"
	"backline/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithBandName("Night Shift"))
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("BACKLINE_BAND_NAME", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun runs the CLI and fails the test on error.
func mustRun(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, _, err := runCLI(t, env.configPath, args...)
	if err != nil {
		t.Fatalf("backline %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// addRecord runs an add command with --json and returns the new id.
func addRecord(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out := mustRun(t, env, append([]string{"--json"}, args...)...)
	var record struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if record.ID == "" {
		t.Fatalf("expected id in %q", out)
	}
	return record.ID
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\noutput_dir = %q\n\n[band]\nname = %q\n\n[rider]\nopen_after_export = false\n\n[lookup]\nenabled = false\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.OutputDir,
		cfg.Band.Name,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
