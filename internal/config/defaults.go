package config

const (
	defaultOutputDir    = "~/siteforge/out"
	defaultLogDir       = "~/.local/share/siteforge/logs"
	defaultDocumentName = "siteData.json"
	defaultQuality      = 0.95
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Export: Export{
			DocumentName:      defaultDocumentName,
			OverwriteExisting: true,
		},
		Imaging: Imaging{
			Quality: defaultQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
