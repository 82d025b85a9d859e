// Package logviewer is a scrolling log pane that tails shelf's component log
// files live.
package logviewer

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"

	"github.com/grovetools/shelf/tui/theme"
	"github.com/grovetools/shelf/tui/utils/scrollbar"
)

// LogLineMsg is sent when a new log line is received.
type LogLineMsg struct {
	Component string
	Line      string
	NoPrefix  bool // If true, formatLogLine will not add a component prefix
}

// Model is the TUI component for viewing logs.
type Model struct {
	viewport   viewport.Model
	tails      []*tail.Tail
	mu         sync.Mutex
	follow     bool
	ready      bool
	width      int
	height     int
	logChannel chan LogLineMsg
	lines      []string
}

// New creates a new log viewer model.
func New(width, height int) Model {
	vp := viewport.New(width, height-1) // Leave space for a status bar
	return Model{
		viewport:   vp,
		follow:     true,
		width:      width,
		height:     height,
		logChannel: make(chan LogLineMsg, 100),
		lines:      []string{},
	}
}

// Start begins tailing the specified log files, keyed by component name.
func (m *Model) Start(files map[string]string) tea.Cmd {
	m.Stop() // Stop any existing tails
	m.mu.Lock()
	defer m.mu.Unlock()

	for component, path := range files {
		config := tail.Config{
			Follow:   true,
			ReOpen:   true,
			Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
			Logger:   stdlog.New(io.Discard, "", 0),
		}
		t, err := tail.TailFile(path, config)
		if err != nil {
			continue
		}
		m.tails = append(m.tails, t)

		go func(c string, t *tail.Tail) {
			for line := range t.Lines {
				m.logChannel <- LogLineMsg{Component: c, Line: line.Text}
			}
		}(component, t)
	}

	return m.waitForLogLine()
}

// Stop halts all tailing operations.
func (m *Model) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tails {
		t.Stop()
	}
	m.tails = nil
}

// setWrappedContent wraps the content to the viewport's current width.
func (m *Model) setWrappedContent() {
	if !m.ready {
		return
	}

	// Wrap to viewport width - 1 to leave room for the scrollbar.
	wrapWidth := m.viewport.Width - 1
	if wrapWidth < 1 {
		wrapWidth = 1
	}

	wrapStyle := lipgloss.NewStyle().Width(wrapWidth)

	var wrappedLines []string
	for _, line := range m.lines {
		wrappedLines = append(wrappedLines, wrapStyle.Render(line))
	}

	m.viewport.SetContent(strings.Join(wrappedLines, "\n"))
}

// SetContent displays static content, stopping any live tailing.
func (m *Model) SetContent(content string) {
	m.Stop()
	m.lines = strings.Split(content, "\n")
	m.setWrappedContent()
	m.viewport.GotoBottom()
}

// Clear stops tailing and clears the viewer's content.
func (m *Model) Clear() {
	m.Stop()
	m.lines = []string{}
	m.viewport.SetContent("")
}

// GotoTop scrolls to the top of the log content.
func (m *Model) GotoTop() {
	m.viewport.GotoTop()
}

// GotoBottom scrolls to the bottom of the log content.
func (m *Model) GotoBottom() {
	m.viewport.GotoBottom()
}

// GetScrollInfo returns current scroll position information.
func (m *Model) GetScrollInfo() (currentLine, totalLines int) {
	totalLines = len(m.lines)
	if totalLines == 0 {
		return 0, 0
	}
	currentLine = m.viewport.YOffset + 1
	return currentLine, totalLines
}

func (m *Model) waitForLogLine() tea.Cmd {
	return func() tea.Msg {
		return <-m.logChannel
	}
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 1
		m.ready = true
		m.setWrappedContent()
	case LogLineMsg:
		m.lines = append(m.lines, formatLogLine(msg.Component, msg.Line, msg.NoPrefix))
		m.setWrappedContent()
		if m.follow {
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.waitForLogLine())
	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.follow = !m.follow
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the log viewer with a scrollbar overlaid on the right.
func (m Model) View() string {
	if !m.ready {
		return "Initializing log viewer..."
	}

	content := m.viewport.View()
	lines := strings.Split(content, "\n")
	bar := scrollbar.Generate(&m.viewport, len(lines))

	var result []string
	for i := 0; i < len(lines); i++ {
		scrollbarChar := " "
		if i < len(bar) {
			scrollbarChar = bar[i]
		}
		result = append(result, lines[i]+scrollbarChar)
	}

	return strings.Join(result, "\n")
}

// IsFollowing returns whether the log viewer is in follow mode.
func (m Model) IsFollowing() bool {
	return m.follow
}

// formatLogLine is a simplified log formatter for the TUI component.
func formatLogLine(component, line string, noPrefix bool) string {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line), &logMap); err != nil {
		if noPrefix {
			return line
		}
		return fmt.Sprintf("[%s] %s", theme.DefaultTheme.Accent.Render(component), line)
	}

	msg, _ := logMap["msg"].(string)
	level, _ := logMap["level"].(string)
	ts, _ := logMap["time"].(string)

	var timeStr string
	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}
	if !parsedTime.IsZero() {
		timeStr = parsedTime.Format("15:04:05")
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal":
		levelStyle = theme.DefaultTheme.Error
	case "warning":
		levelStyle = theme.DefaultTheme.Warning
	default:
		levelStyle = theme.DefaultTheme.Info
	}

	var parts []string
	if timeStr != "" {
		parts = append(parts, timeStr)
	}
	if !noPrefix {
		parts = append(parts, fmt.Sprintf("[%s]", theme.DefaultTheme.Accent.Render(component)))
	}
	parts = append(parts, levelStyle.Render(strings.ToUpper(level))+":")
	parts = append(parts, msg)

	return strings.Join(parts, " ")
}
