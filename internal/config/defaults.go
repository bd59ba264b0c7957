package config

const (
	DefaultPort          = 8000
	DefaultWorkers       = 2
	DefaultMaxBufferSize = 25 * 1024 * 1024
	DefaultTimeout       = 120
	DefaultMaxDiagnostic = 1024 * 1024
)

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			Workers:         DefaultWorkers,
			MaxBufferSize:   DefaultMaxBufferSize,
			ShutdownTimeout: 30,
			CORSOrigins:     []string{"*"},
		},
		Converter: ConverterConfig{
			Pandoc:             "pandoc",
			Timeout:            DefaultTimeout,
			MaxDiagnosticBytes: DefaultMaxDiagnostic,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
