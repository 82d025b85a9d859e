package keymap

import "github.com/charmbracelet/bubbles/key"

// Standard section names - use these for consistency across shelf's TUIs.
const (
	SectionNavigation = "Navigation"
	SectionSelection  = "Selection"
	SectionFold       = "Fold"
	SectionSystem     = "System"
)

// Section represents a logical grouping of keybindings for structured help display.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// NewSection creates a section with a custom name.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

// NavigationSection creates a Navigation section with the specified bindings.
func NavigationSection(bindings ...key.Binding) Section {
	return Section{Name: SectionNavigation, Bindings: bindings}
}

// SelectionSection creates a Selection section with the specified bindings.
func SelectionSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSelection, Bindings: bindings}
}

// FoldSection creates a Fold section with the specified bindings.
func FoldSection(bindings ...key.Binding) Section {
	return Section{Name: SectionFold, Bindings: bindings}
}

// SystemSection creates a System section with the specified bindings.
func SystemSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSystem, Bindings: bindings}
}

// FilterEnabled returns a new slice containing only enabled bindings.
func (s Section) FilterEnabled() []key.Binding {
	var result []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			result = append(result, b)
		}
	}
	return result
}

// IsEmpty returns true if the section has no enabled bindings.
func (s Section) IsEmpty() bool {
	for _, b := range s.Bindings {
		if b.Enabled() {
			return false
		}
	}
	return true
}
