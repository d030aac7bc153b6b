package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	OutputDir string `toml:"output_dir"`
	IconDir   string `toml:"icon_dir"`
}

// Band identifies the act the rider is written for.
type Band struct {
	Name string `toml:"name"`
}

// Rider contains configuration for rider document generation and delivery.
type Rider struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	// Language is a BCP 47 tag used for the document lang attribute and the
	// cover date.
	Language        string `toml:"language"`
	OpenAfterExport bool   `toml:"open_after_export"`
	// Opener overrides the platform command used to hand the document to the
	// browser/print facility. Empty selects xdg-open, open, or start.
	Opener                string `toml:"opener"`
	SurfaceTimeoutSeconds int    `toml:"surface_timeout_seconds"`
}

// Stage contains configuration for the stage plot layout.
type Stage struct {
	DepthBands  int `toml:"depth_bands"`
	LabelBudget int `toml:"label_budget"`
}

// Lookup contains configuration for the music metadata lookup services.
type Lookup struct {
	Enabled        bool   `toml:"enabled"`
	ITunesBaseURL  string `toml:"itunes_base_url"`
	DeezerBaseURL  string `toml:"deezer_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ResultLimit    int    `toml:"result_limit"`
}

// Notifications contains configuration for ntfy push notifications. An empty
// topic disables them.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for backline.
//
// Configuration sections by subsystem:
//   - Paths: data (record store), logs, rider output, icon overrides
//   - Band: band name printed on the rider
//   - Rider: document text, language, delivery behaviour
//   - Stage: stage plot grid and label settings
//   - Lookup: iTunes/Deezer metadata lookup
//   - Notifications: ntfy topic for export results
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Band          Band          `toml:"band"`
	Rider         Rider         `toml:"rider"`
	Stage         Stage         `toml:"stage"`
	Lookup        Lookup        `toml:"lookup"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/backline/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("backline.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data, log, and output directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.OutputDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// StorePath returns the location of the record store database.
func (c *Config) StorePath() string {
	return filepath.Join(c.Paths.DataDir, "backline.db")
}

// LockPath returns the location of the record store write lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "backline.lock")
}

// LogPath returns the location of the persistent log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "backline.log")
}

// SurfaceTimeout returns how long a delivered rider surface is kept before
// it is swept.
func (c *Config) SurfaceTimeout() time.Duration {
	return time.Duration(c.Rider.SurfaceTimeoutSeconds) * time.Second
}

// LookupTimeout returns the HTTP timeout for metadata lookups.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Lookup.TimeoutSeconds) * time.Second
}

// NotifyTimeout returns the HTTP timeout for ntfy requests.
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
