package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBand()
	if err := c.normalizeRider(); err != nil {
		return err
	}
	c.normalizeStage()
	c.normalizeLookup()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	c.Paths.IconDir = strings.TrimSpace(c.Paths.IconDir)
	if c.Paths.IconDir != "" {
		if c.Paths.IconDir, err = expandPath(c.Paths.IconDir); err != nil {
			return fmt.Errorf("paths.icon_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeBand() {
	c.Band.Name = strings.TrimSpace(c.Band.Name)
	if c.Band.Name == "" || c.Band.Name == defaultBandName {
		if value, ok := os.LookupEnv("BACKLINE_BAND_NAME"); ok && strings.TrimSpace(value) != "" {
			c.Band.Name = strings.TrimSpace(value)
		}
	}
	if c.Band.Name == "" {
		c.Band.Name = defaultBandName
	}
}

func (c *Config) normalizeRider() error {
	c.Rider.Title = strings.TrimSpace(c.Rider.Title)
	if c.Rider.Title == "" {
		c.Rider.Title = defaultRiderTitle
	}
	c.Rider.Subtitle = strings.TrimSpace(c.Rider.Subtitle)
	c.Rider.Opener = strings.TrimSpace(c.Rider.Opener)
	lang := strings.TrimSpace(c.Rider.Language)
	if lang == "" {
		lang = defaultRiderLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("rider.language: %w", err)
	}
	c.Rider.Language = tag.String()
	if c.Rider.SurfaceTimeoutSeconds == 0 {
		c.Rider.SurfaceTimeoutSeconds = defaultSurfaceTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeStage() {
	if c.Stage.DepthBands == 0 {
		c.Stage.DepthBands = defaultDepthBands
	}
	if c.Stage.LabelBudget == 0 {
		c.Stage.LabelBudget = defaultLabelBudget
	}
}

func (c *Config) normalizeLookup() {
	c.Lookup.ITunesBaseURL = strings.TrimRight(strings.TrimSpace(c.Lookup.ITunesBaseURL), "/")
	if c.Lookup.ITunesBaseURL == "" {
		c.Lookup.ITunesBaseURL = defaultITunesBaseURL
	}
	c.Lookup.DeezerBaseURL = strings.TrimRight(strings.TrimSpace(c.Lookup.DeezerBaseURL), "/")
	if c.Lookup.DeezerBaseURL == "" {
		c.Lookup.DeezerBaseURL = defaultDeezerBaseURL
	}
	if c.Lookup.TimeoutSeconds == 0 {
		c.Lookup.TimeoutSeconds = defaultLookupTimeoutSeconds
	}
	if c.Lookup.ResultLimit == 0 {
		c.Lookup.ResultLimit = defaultLookupResultLimit
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds == 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNotifyTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
