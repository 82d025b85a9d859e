package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerSingleton(t *testing.T) {
	a := NewLogger("singleton-test")
	b := NewLogger("singleton-test")
	if a != b {
		t.Error("NewLogger should return the same entry per component")
	}
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "feed failed",
		Data:    logrus.Fields{"component": "picker", "scope": "main"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	s := string(out)

	for _, want := range []string{"2026-03-14 09:26:53", "[WARN]", "[picker]", "feed failed", "scope=main"} {
		if !strings.Contains(s, want) {
			t.Errorf("formatted output missing %q: %s", want, s)
		}
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("formatted output should end with a newline")
	}
}

func TestTextFormatterDisables(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "hello",
		Data:    logrus.Fields{"component": "library"},
	}

	out, _ := f.Format(entry)
	s := string(out)
	if strings.Contains(s, "library") {
		t.Errorf("component should be suppressed: %s", s)
	}
	if strings.Contains(s, time.Now().Format("2006")) {
		t.Errorf("timestamp should be suppressed: %s", s)
	}
}

func TestSilenceAll(t *testing.T) {
	entry := NewLogger("silence-test")
	var buf bytes.Buffer
	SilenceAll(&buf)
	entry.Warn("captured")
	if !strings.Contains(buf.String(), "captured") {
		t.Error("SilenceAll should reroute existing loggers")
	}
}

func TestIsComponentVisible(t *testing.T) {
	tests := []struct {
		name      string
		component string
		cfg       *Config
		expected  bool
	}{
		{"nil config", "library", nil, true},
		{"no filters", "library", &Config{}, true},
		{"show whitelist hit", "library", &Config{Show: []string{"library", "picker"}}, true},
		{"show whitelist miss", "watcher", &Config{Show: []string{"library"}}, false},
		{"hide blacklist hit", "watcher", &Config{Hide: []string{"watcher"}}, false},
		{"hide blacklist miss", "library", &Config{Hide: []string{"watcher"}}, true},
		{"show wins over hide", "library", &Config{Show: []string{"library"}, Hide: []string{"library"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComponentVisible(tt.component, tt.cfg); got != tt.expected {
				t.Errorf("IsComponentVisible(%q) = %v, expected %v", tt.component, got, tt.expected)
			}
		})
	}
}
