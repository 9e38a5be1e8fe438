package config

const (
	defaultDataDir          = "~/.local/share/turndown"
	defaultLogDir           = "~/.local/share/turndown/logs"
	defaultConnectAttempts  = 3
	defaultConnectBackoffMS = 500
	defaultCooldownMinutes  = 120
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFacilityCode     = "main"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Database: Database{
			ConnectAttempts: defaultConnectAttempts,
			ConnectBackoff:  defaultConnectBackoffMS,
		},
		Facility: Facility{
			Code: defaultFacilityCode,
		},
		Housekeeping: Housekeeping{
			CooldownMinutes: defaultCooldownMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
