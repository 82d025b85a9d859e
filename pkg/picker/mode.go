package picker

import "fmt"

type modeKind int

const (
	modeSingle modeKind = iota
	modeMultiple
)

// Mode fixes a session's selection behavior at launch. Single mode carries a
// fixed display title and finalizes on the first selection; Multiple mode
// derives its title from the selection count and finalizes only on Confirm.
type Mode struct {
	kind       modeKind
	fixedTitle string
}

// Single returns the single-selection mode with the given fixed title, e.g.
// "Move to Collection".
func Single(fixedTitle string) Mode {
	return Mode{kind: modeSingle, fixedTitle: fixedTitle}
}

// Multiple returns the multiple-selection mode.
func Multiple() Mode {
	return Mode{kind: modeMultiple}
}

// IsSingle reports whether the mode finalizes on first selection.
func (m Mode) IsSingle() bool {
	return m.kind == modeSingle
}

// title derives the display title from the selection count.
func (m Mode) title(selected int) string {
	if m.kind == modeSingle {
		return m.fixedTitle
	}
	switch selected {
	case 0:
		return "No Collections Selected"
	case 1:
		return "1 Collection Selected"
	default:
		return fmt.Sprintf("%d Collections Selected", selected)
	}
}
