package config

const (
	defaultDataDir               = "~/.local/share/backline"
	defaultLogDir                = "~/.local/share/backline/logs"
	defaultOutputDir             = "~/.local/share/backline/riders"
	defaultBandName              = "Band"
	defaultRiderTitle            = "Technical Rider"
	defaultRiderSubtitle         = "Stage plot · Input list · Equipment"
	defaultRiderLanguage         = "en"
	defaultSurfaceTimeoutSeconds = 120
	defaultDepthBands            = 3
	defaultLabelBudget           = 14
	defaultITunesBaseURL         = "https://itunes.apple.com"
	defaultDeezerBaseURL         = "https://api.deezer.com"
	defaultLookupTimeoutSeconds  = 10
	defaultLookupResultLimit     = 8
	defaultNotifyTimeoutSeconds  = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			OutputDir: defaultOutputDir,
		},
		Band: Band{
			Name: defaultBandName,
		},
		Rider: Rider{
			Title:                 defaultRiderTitle,
			Subtitle:              defaultRiderSubtitle,
			Language:              defaultRiderLanguage,
			OpenAfterExport:       true,
			SurfaceTimeoutSeconds: defaultSurfaceTimeoutSeconds,
		},
		Stage: Stage{
			DepthBands:  defaultDepthBands,
			LabelBudget: defaultLabelBudget,
		},
		Lookup: Lookup{
			Enabled:        true,
			ITunesBaseURL:  defaultITunesBaseURL,
			DeezerBaseURL:  defaultDeezerBaseURL,
			TimeoutSeconds: defaultLookupTimeoutSeconds,
			ResultLimit:    defaultLookupResultLimit,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNotifyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
