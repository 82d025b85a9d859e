// Package keymap provides the shared keybindings for shelf's terminal
// surfaces, with config-driven overrides.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/shelf/config"
)

// Base contains the standard keybindings used across shelf TUIs.
// Prioritizes vim-style navigation and standard actions.
type Base struct {
	// Navigation - vim style takes precedence
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding // gg sequence
	Bottom   key.Binding // G

	// Core actions
	Quit    key.Binding
	Help    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Refresh key.Binding

	// Selection
	Select     key.Binding
	SelectNone key.Binding

	// Fold operations
	FoldOpen     key.Binding // zo
	FoldClose    key.Binding // zc
	FoldToggle   key.Binding // za
	FoldOpenAll  key.Binding // zR
	FoldCloseAll key.Binding // zM
}

// NewBase creates a new Base keymap with the default vim-style bindings.
func NewBase() Base {
	return DefaultVim()
}

// DefaultVim returns the default vim-style keymap
func DefaultVim() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("gg"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),

		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "none"),
		),

		FoldOpen: key.NewBinding(
			key.WithKeys("zo"),
			key.WithHelp("zo", "open fold"),
		),
		FoldClose: key.NewBinding(
			key.WithKeys("zc"),
			key.WithHelp("zc", "close fold"),
		),
		FoldToggle: key.NewBinding(
			key.WithKeys("za"),
			key.WithHelp("za", "toggle fold"),
		),
		FoldOpenAll: key.NewBinding(
			key.WithKeys("zR"),
			key.WithHelp("zR", "open all"),
		),
		FoldCloseAll: key.NewBinding(
			key.WithKeys("zM"),
			key.WithHelp("zM", "close all"),
		),
	}
}

// Load builds a Base keymap with any overrides from the config's keys
// section applied.
func Load(cfg *config.Config) Base {
	base := DefaultVim()
	if cfg != nil {
		ApplyOverrides(&base, cfg.Keys)
	}
	return base
}

// ShortHelp returns the compact help line shown at the bottom of a TUI.
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Confirm, k.Quit}
}

// FullHelp returns the expanded help columns.
func (k Base) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Select, k.SelectNone, k.Confirm, k.Back},
		{k.FoldToggle, k.FoldOpen, k.FoldClose, k.FoldOpenAll, k.FoldCloseAll},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Sections organizes the bindings for structured help rendering.
func (k Base) Sections() []Section {
	return []Section{
		NavigationSection(k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom),
		SelectionSection(k.Select, k.SelectNone, k.Confirm),
		FoldSection(k.FoldToggle, k.FoldOpen, k.FoldClose, k.FoldOpenAll, k.FoldCloseAll),
		SystemSection(k.Refresh, k.Help, k.Back, k.Quit),
	}
}
