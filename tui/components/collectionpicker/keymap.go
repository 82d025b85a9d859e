package collectionpicker

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/shelf/config"
	"github.com/grovetools/shelf/tui/keymap"
)

// KeyMap is the picker's keybinding set. It is the shared Base keymap; the
// picker uses its navigation, selection, and fold bindings.
type KeyMap struct {
	keymap.Base
}

// DefaultKeyMap returns the default bindings for the picker.
func DefaultKeyMap() KeyMap {
	return KeyMap{Base: keymap.NewBase()}
}

// LoadKeyMap builds the picker bindings with config overrides applied.
func LoadKeyMap(cfg *config.Config) KeyMap {
	return KeyMap{Base: keymap.Load(cfg)}
}

// sequenceBindings are the multi-key bindings the picker waits on.
func (k KeyMap) sequenceBindings() []key.Binding {
	return []key.Binding{k.Top, k.FoldOpen, k.FoldClose, k.FoldToggle, k.FoldOpenAll, k.FoldCloseAll}
}
