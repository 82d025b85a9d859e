package logging

// Config defines the structure for the logging section of shelf.yml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info",
	// "warn", "error"). Can be overridden by the SHELF_LOG_LEVEL
	// environment variable.
	Level string `yaml:"level" toml:"level"`

	// ReportCaller, if true, includes the file, line, and function name in
	// the log output. Can be enabled with SHELF_LOG_CALLER=true.
	ReportCaller bool `yaml:"report_caller" toml:"report_caller"`

	// File configures logging to a file.
	File FileSinkConfig `yaml:"file" toml:"file"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format" toml:"format"`

	// Show limits log display to the listed components. When empty, all
	// components not in Hide are shown.
	Show []string `yaml:"show" toml:"show"`

	// Hide suppresses log display for the listed components. Ignored when
	// Show is non-empty.
	Hide []string `yaml:"hide" toml:"hide"`
}

// IsComponentVisible reports whether a component's log lines should be
// displayed under the given config's show/hide filters.
func IsComponentVisible(component string, cfg *Config) bool {
	if cfg == nil {
		return true
	}
	if len(cfg.Show) > 0 {
		for _, c := range cfg.Show {
			if c == component {
				return true
			}
		}
		return false
	}
	for _, c := range cfg.Hide {
		if c == component {
			return false
		}
	}
	return true
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	// Path is the full path to the log file. When empty, logs go to
	// .shelf/logs/<component>.log under the working directory.
	Path string `yaml:"path" toml:"path"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `yaml:"preset" toml:"preset"`
	// DisableTimestamp removes the timestamp from the text formats.
	DisableTimestamp bool `yaml:"disable_timestamp" toml:"disable_timestamp"`
	// DisableComponent removes the component name from the text formats.
	DisableComponent bool `yaml:"disable_component" toml:"disable_component"`
	// Stderr controls when log output goes to stderr: "auto" (default,
	// only when stderr is a terminal and no file sink is active), "always",
	// or "never".
	Stderr string `yaml:"stderr" toml:"stderr"`
}
