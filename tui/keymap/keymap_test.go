package keymap

import (
	"testing"

	"github.com/grovetools/shelf/config"
)

func TestDefaultVimBindings(t *testing.T) {
	km := DefaultVim()

	if got := km.Up.Keys(); got[0] != "k" {
		t.Errorf("Expected Up bound to k, got %v", got)
	}
	if got := km.Top.Keys(); got[0] != "gg" {
		t.Errorf("Expected Top bound to gg, got %v", got)
	}
	if got := km.FoldToggle.Keys(); got[0] != "za" {
		t.Errorf("Expected FoldToggle bound to za, got %v", got)
	}
}

func TestLoadAppliesConfigOverrides(t *testing.T) {
	cfg := &config.Config{
		Keys: map[string][]string{
			"select": {"x"},
			"quit":   {"ctrl+q"},
		},
	}

	km := Load(cfg)

	if got := km.Select.Keys(); len(got) != 1 || got[0] != "x" {
		t.Errorf("Expected Select overridden to [x], got %v", got)
	}
	if got := km.Quit.Keys(); len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("Expected Quit overridden to [ctrl+q], got %v", got)
	}
	if got := km.Down.Keys(); got[0] != "j" {
		t.Errorf("Expected Down unchanged, got %v", got)
	}
}

func TestLoadNilConfig(t *testing.T) {
	km := Load(nil)
	if got := km.Up.Keys(); got[0] != "k" {
		t.Errorf("Expected defaults with nil config, got %v", got)
	}
}

func TestSections(t *testing.T) {
	km := NewBase()
	sections := km.Sections()

	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(sections))
	}
	if sections[0].Name != SectionNavigation {
		t.Errorf("Expected first section %q, got %q", SectionNavigation, sections[0].Name)
	}
	for _, s := range sections {
		if s.IsEmpty() {
			t.Errorf("Section %q should not be empty", s.Name)
		}
	}
}
