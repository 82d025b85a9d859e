package cmd

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/shelf/cli"
	"github.com/grovetools/shelf/config"
	"github.com/grovetools/shelf/logging"
	"github.com/grovetools/shelf/pkg/library"
	"github.com/grovetools/shelf/pkg/picker"
	"github.com/grovetools/shelf/tui"
	"github.com/grovetools/shelf/tui/components/collectionpicker"
)

// pickerApp is the top-level program wrapping the picker component. It quits
// when the session finishes.
type pickerApp struct {
	picker collectionpicker.Model
}

func (a pickerApp) Init() tea.Cmd {
	return a.picker.Init()
}

func (a pickerApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if _, done := msg.(collectionpicker.DoneMsg); done {
		return a, tea.Quit
	}
	return a, cmd
}

func (a pickerApp) View() string {
	return a.picker.View()
}

// runPicker opens a picker session over the store and runs it as a
// full-screen TUI. The returned DoneMsg carries the outcome.
func runPicker(cmd *cobra.Command, store *library.Store, cfg *config.Config, mode picker.Mode, preselected []string) (collectionpicker.DoneMsg, error) {
	logger := cli.GetLogger(cmd)

	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	if cfg.Picker != nil {
		exclude = append(exclude, cfg.Picker.Exclude...)
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if cfg.Picker != nil && cfg.Picker.WatchExternal {
		watch = true
	}
	if watch {
		if err := store.Watch(); err != nil {
			logger.WithError(err).Warn("Could not watch the library file for external writes")
		}
	}

	session := picker.New(store, picker.Launch{
		Scope:       resolveScope(cmd, cfg),
		Exclude:     exclude,
		Preselected: preselected,
		Mode:        mode,
	})
	defer session.Close()

	if err := session.Start(cmd.Context()); err != nil {
		logger.WithError(err).Warn("Initial library load failed; starting with an empty tree")
	}

	tui.InitializeTUI()
	logging.SilenceAll(io.Discard)
	model := collectionpicker.New(session, collectionpicker.LoadKeyMap(cfg))
	p := tea.NewProgram(pickerApp{picker: model}, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return collectionpicker.DoneMsg{}, err
	}
	return final.(pickerApp).picker.Result(), nil
}
