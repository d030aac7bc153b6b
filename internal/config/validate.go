package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRider(); err != nil {
		return err
	}
	if err := c.validateStage(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateRider() error {
	if c.Rider.SurfaceTimeoutSeconds < 0 {
		return errors.New("rider.surface_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateStage() error {
	if c.Stage.DepthBands != 2 && c.Stage.DepthBands != 3 {
		return fmt.Errorf("stage.depth_bands must be 2 or 3, got %d", c.Stage.DepthBands)
	}
	if c.Stage.LabelBudget < 4 {
		return errors.New("stage.label_budget must be at least 4")
	}
	return nil
}

func (c *Config) validateLookup() error {
	if !c.Lookup.Enabled {
		return nil
	}
	if err := ensurePositiveMap(map[string]int{
		"lookup.timeout_seconds": c.Lookup.TimeoutSeconds,
		"lookup.result_limit":    c.Lookup.ResultLimit,
	}); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Lookup.ITunesBaseURL, "http") {
		return errors.New("lookup.itunes_base_url must be an http(s) URL")
	}
	if !strings.HasPrefix(c.Lookup.DeezerBaseURL, "http") {
		return errors.New("lookup.deezer_base_url must be an http(s) URL")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.NtfyTopic == "" {
		return nil
	}
	if !strings.HasPrefix(c.Notifications.NtfyTopic, "http") {
		return errors.New("notifications.ntfy_topic must be an http(s) URL")
	}
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		return errors.New("notifications.request_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
