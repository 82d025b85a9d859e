package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/shelf/logging"
	"github.com/grovetools/shelf/tui"
	"github.com/grovetools/shelf/tui/components/logviewer"
	"github.com/grovetools/shelf/tui/theme"
)

// logsApp is the bubbletea program for `logs --tui`. It wraps the logviewer
// component with a status line and quit handling.
type logsApp struct {
	viewer logviewer.Model
	files  map[string]string
}

func (a logsApp) Init() tea.Cmd {
	return a.viewer.Start(a.files)
}

func (a logsApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			a.viewer.Stop()
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.viewer, cmd = a.viewer.Update(msg)
	return a, cmd
}

func (a logsApp) View() string {
	follow := "following"
	if !a.viewer.IsFollowing() {
		follow = "paused"
	}
	current, total := a.viewer.GetScrollInfo()
	status := theme.DefaultTheme.Muted.Render(
		fmt.Sprintf(" %d/%d lines %s %s  f follow  q quit", current, total, theme.IconBullet, follow))
	return a.viewer.View() + "\n" + status
}

// runLogsTUI tails the given component log files in an alternate-screen viewer.
func runLogsTUI(files map[string]string) error {
	tui.InitializeTUI()
	app := logsApp{viewer: logviewer.New(80, 24), files: files}
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Reroute live CLI logging into the viewer so the alternate screen
	// stays clean.
	logging.SilenceAll(logviewer.NewStreamWriter(p, "shelf-cli"))

	_, err := p.Run()
	return err
}
