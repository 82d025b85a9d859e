package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggersMu sync.Mutex
	loggers   = make(map[string]*logrus.Entry)
	current   Config
)

// Configure sets the logging configuration used by subsequent NewLogger
// calls. Loggers created earlier keep their settings; call it before any
// component logs, typically right after config load.
func Configure(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	current = cfg
}

// NewLogger creates and returns a pre-configured logger for a specific
// component. It uses a singleton pattern per component to avoid
// re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	cfg := current
	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if env := os.Getenv("SHELF_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("SHELF_LOG_CALLER") == "true" || cfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format})
	}

	// Configure Output Sinks
	var writers []io.Writer

	if cfg.File.Enabled {
		path := cfg.File.Path
		if path == "" {
			if cwd, err := os.Getwd(); err == nil {
				path = filepath.Join(cwd, ".shelf", "logs", component+".log")
			}
		} else {
			path = expandPath(path)
		}
		if path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
				if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
					writers = append(writers, file)
				} else {
					logger.Warnf("Failed to open log file %s: %v", path, err)
				}
			}
		}
	}

	switch cfg.Format.Stderr {
	case "never":
	case "always":
		writers = append(writers, os.Stderr)
	default:
		// "auto": stderr only when it is a terminal and no file sink took
		// the stream. Keeps TUI screens clean while still surfacing logs
		// during plain CLI use.
		if len(writers) == 0 || isatty.IsTerminal(os.Stderr.Fd()) {
			writers = append(writers, os.Stderr)
		}
	}

	if len(writers) == 0 {
		logger.SetOutput(io.Discard)
	} else if len(writers) == 1 {
		logger.SetOutput(writers[0])
	} else {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// SilenceAll reroutes every existing component logger to the given writer.
// The TUI uses it to keep the alternate screen clean while a program runs.
func SilenceAll(w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, entry := range loggers {
		entry.Logger.SetOutput(w)
	}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
