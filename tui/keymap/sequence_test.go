package keymap

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSequenceState_Update(t *testing.T) {
	s := NewSequenceState()

	if buf := s.Update(keyMsg('g')); buf != "g" {
		t.Errorf("Expected buffer='g', got %q", buf)
	}
	if buf := s.Update(keyMsg('g')); buf != "gg" {
		t.Errorf("Expected buffer='gg', got %q", buf)
	}

	s.Clear()
	if buf := s.Buffer(); buf != "" {
		t.Errorf("Expected empty buffer after Clear, got %q", buf)
	}
}

func TestSequenceState_Timeout(t *testing.T) {
	s := &SequenceState{timeout: 10 * time.Millisecond}

	s.Update(keyMsg('z'))
	time.Sleep(20 * time.Millisecond)

	if buf := s.Update(keyMsg('o')); buf != "o" {
		t.Errorf("Expected stale buffer cleared, got %q", buf)
	}
}

func TestMatches(t *testing.T) {
	top := key.NewBinding(key.WithKeys("gg"))

	if !Matches("gg", top) {
		t.Error("Expected 'gg' to match")
	}
	if Matches("g", top) {
		t.Error("Expected 'g' not to match")
	}
}

func TestIsPrefix(t *testing.T) {
	foldOpen := key.NewBinding(key.WithKeys("zo"))
	foldClose := key.NewBinding(key.WithKeys("zc"))

	if !IsPrefix("z", foldOpen) {
		t.Error("Expected 'z' to be a prefix of 'zo'")
	}
	if IsPrefix("zo", foldOpen) {
		t.Error("A complete match is not a prefix")
	}
	if IsPrefix("", foldOpen) {
		t.Error("Empty buffer is not a prefix")
	}
	if !IsPrefixOfAny("z", foldOpen, foldClose) {
		t.Error("Expected 'z' to be a prefix of a fold binding")
	}
}
