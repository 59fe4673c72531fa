package config

const (
	defaultServerAddr          = "127.0.0.1:8080"
	defaultMaxBodyBytes        = 64 * 1024 * 1024
	defaultReadTimeoutSeconds  = 30
	defaultWriteTimeoutSeconds = 60
	defaultLogFormat           = "console"
	defaultLogOutput           = "stdout"
	defaultMaxTableCells       = 25_000_000
	defaultPassageMinTokens    = 0
	defaultMaxDocumentBytes    = 50 * 1024 * 1024
	defaultHistoryEnabled      = true
	defaultHistoryPath         = "~/.local/share/docsim/history.db"
	defaultHistoryLimit        = 20
)

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Server: Server{
			Addr:                defaultServerAddr,
			MaxBodyBytes:        defaultMaxBodyBytes,
			ReadTimeoutSeconds:  defaultReadTimeoutSeconds,
			WriteTimeoutSeconds: defaultWriteTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
		Engine: Engine{
			MaxTableCells:    defaultMaxTableCells,
			PassageMinTokens: defaultPassageMinTokens,
			MaxDocumentBytes: defaultMaxDocumentBytes,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
			Limit:   defaultHistoryLimit,
		},
	}
}
