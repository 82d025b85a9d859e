// Package collectionpicker renders a picker.Session as a Bubble Tea
// component: a scrollable collection tree with fold controls, checkbox
// selection in multiple mode, and a live title that tracks the selection.
package collectionpicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/shelf/pkg/collection"
	"github.com/grovetools/shelf/pkg/picker"
	"github.com/grovetools/shelf/tui/keymap"
	"github.com/grovetools/shelf/tui/theme"
)

// DoneMsg is sent when the session has finished: a pick in single mode, a
// confirm in multiple mode, or a cancel. The result fields mirror the
// session's one-shot channels.
type DoneMsg struct {
	Canceled bool
	Node     *collection.Node // single mode pick
	Keys     []string         // multiple mode confirmed set
}

// sessionUpdatedMsg signals that the session's rows or title changed.
type sessionUpdatedMsg struct{}

type singleResultMsg struct {
	node collection.Node
}

type multiResultMsg struct {
	keys []string
}

// Model is the Bubble Tea model for the collection picker.
type Model struct {
	session *picker.Session
	keys    KeyMap
	seq     *keymap.SequenceState

	viewport viewport.Model
	rows     []collection.Row
	cursor   int
	width    int
	height   int
	ready    bool
	showHelp bool

	// Result of a finished session, captured before DoneMsg is emitted.
	result DoneMsg
	done   bool
}

// New creates a picker component over a started session.
func New(session *picker.Session, keys KeyMap) Model {
	return Model{
		session: session,
		keys:    keys,
		seq:     keymap.NewSequenceState(),
		rows:    session.Rows(),
	}
}

// SetSize sets the size of the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	contentHeight := height - 3 // title and help line
	if contentHeight < 1 {
		contentHeight = 1
	}
	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = contentHeight
	} else {
		m.viewport = viewport.New(width, contentHeight)
		m.ready = true
	}
	m.updateContent()
}

// Result returns the finished session's outcome. Valid after DoneMsg.
func (m Model) Result() DoneMsg {
	return m.result
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenUpdates(), m.listenResult())
}

// listenUpdates waits for the next coalesced session change.
func (m Model) listenUpdates() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		<-session.Updates()
		return sessionUpdatedMsg{}
	}
}

// listenResult waits for the session's one-shot outcome channels.
func (m Model) listenResult() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		select {
		case n := <-session.SingleResult():
			return singleResultMsg{node: n}
		case keys := <-session.MultiResult():
			return multiResultMsg{keys: keys}
		case <-session.NavBack():
			return DoneMsg{Canceled: true}
		}
	}
}

// awaitNavBack consumes the NavBack signal that follows a result.
func (m Model) awaitNavBack() tea.Cmd {
	session := m.session
	result := m.result
	return func() tea.Msg {
		<-session.NavBack()
		return result
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case sessionUpdatedMsg:
		m.reload()
		return m, m.listenUpdates()

	case singleResultMsg:
		node := msg.node
		m.result = DoneMsg{Node: &node}
		m.done = true
		return m, m.awaitNavBack()

	case multiResultMsg:
		m.result = DoneMsg{Keys: msg.keys}
		m.done = true
		return m, m.awaitNavBack()

	case DoneMsg:
		if msg.Canceled {
			m.result = msg
		}
		m.done = true
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Multi-key sequences (gg, zo, zc, za, zR, zM) buffer until they
	// either match or stop being a prefix of any sequence binding.
	buf := m.seq.Update(msg)
	switch {
	case keymap.Matches(buf, m.keys.Top):
		m.seq.Clear()
		m.cursor = 0
		m.updateContent()
		return m, nil
	case keymap.Matches(buf, m.keys.FoldOpen):
		m.seq.Clear()
		return m, m.setFold(true)
	case keymap.Matches(buf, m.keys.FoldClose):
		m.seq.Clear()
		return m, m.setFold(false)
	case keymap.Matches(buf, m.keys.FoldToggle):
		m.seq.Clear()
		if row, ok := m.currentRow(); ok && row.HasChildren {
			m.session.ToggleExpanded(row.Node.ID)
		}
		return m, nil
	case keymap.Matches(buf, m.keys.FoldOpenAll):
		m.seq.Clear()
		m.session.ExpandAll()
		return m, nil
	case keymap.Matches(buf, m.keys.FoldCloseAll):
		m.seq.Clear()
		m.session.CollapseAll()
		return m, nil
	case keymap.IsPrefixOfAny(buf, m.keys.sequenceBindings()...):
		return m, nil
	}
	m.seq.Clear()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.updateContent()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.updateContent()
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.viewport.Height / 2
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.updateContent()

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.viewport.Height / 2
		if m.cursor > len(m.rows)-1 {
			m.cursor = len(m.rows) - 1
		}
		m.updateContent()

	case key.Matches(msg, m.keys.Bottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.updateContent()
		}

	case key.Matches(msg, m.keys.Select):
		if row, ok := m.currentRow(); ok {
			m.session.Select(row.Node.ID)
		}

	case key.Matches(msg, m.keys.SelectNone):
		for _, k := range m.session.Selected() {
			m.session.Deselect(k)
		}

	case key.Matches(msg, m.keys.Confirm):
		if m.session.Mode().IsSingle() {
			if row, ok := m.currentRow(); ok {
				m.session.Select(row.Node.ID)
			}
		} else {
			m.session.Confirm()
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.session.Cancel()
	}

	return m, nil
}

// setFold changes the fold state of the row under the cursor.
func (m *Model) setFold(expanded bool) tea.Cmd {
	if row, ok := m.currentRow(); ok && row.HasChildren {
		m.session.SetExpanded(row.Node.ID, expanded)
	}
	return nil
}

func (m *Model) currentRow() (collection.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return collection.Row{}, false
	}
	return m.rows[m.cursor], true
}

// reload re-reads the session snapshot, keeping the cursor on the same node
// when it survived the change.
func (m *Model) reload() {
	var cursorID collection.NodeID
	if row, ok := m.currentRow(); ok {
		cursorID = row.Node.ID
	}

	m.rows = m.session.Rows()

	// Try to restore cursor position
	restored := false
	for i, row := range m.rows {
		if row.Node.ID == cursorID {
			m.cursor = i
			restored = true
			break
		}
	}
	if !restored {
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	}

	m.updateContent()
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	lines := make([]string, 0, len(m.rows))
	for i, row := range m.rows {
		lines = append(lines, m.renderRow(row, i == m.cursor))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	// Auto-scroll to keep cursor visible
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// renderRow renders a single tree row: indent, fold glyph, checkbox in
// multiple mode, label, and a muted item count.
func (m *Model) renderRow(row collection.Row, underCursor bool) string {
	t := theme.DefaultTheme
	var b strings.Builder

	b.WriteString(strings.Repeat("  ", row.Depth))

	switch {
	case row.HasChildren && row.Expanded:
		b.WriteString(theme.IconExpanded + " ")
	case row.HasChildren:
		b.WriteString(theme.IconCollapsed + " ")
	default:
		b.WriteString("  ")
	}

	selected := row.Node.ID.Kind == collection.KindCollection &&
		m.session.IsSelected(row.Node.ID.Key)
	if !m.session.Mode().IsSingle() {
		if row.Node.ID.Kind == collection.KindCollection {
			if selected {
				b.WriteString(theme.IconChecked + " ")
			} else {
				b.WriteString(theme.IconUnchecked + " ")
			}
		} else {
			b.WriteString("  ")
		}
	}

	label := row.Node.Label
	if selected {
		label = t.SelectedRow.Render(label)
	}
	b.WriteString(label)

	if row.Node.ItemCount > 0 {
		b.WriteString(" " + t.Count.Render(fmt.Sprintf("(%d)", row.Node.ItemCount)))
	}

	line := b.String()
	if underCursor {
		line = t.Cursor.Render(line)
	}
	return line
}

func (m Model) View() string {
	if !m.ready {
		return "Loading collections..."
	}

	title := theme.DefaultTheme.Title.Render(m.session.Title())

	if len(m.rows) == 0 {
		empty := theme.DefaultTheme.Muted.Render("No collections")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty, m.helpView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), m.helpView())
}

func (m Model) helpView() string {
	t := theme.DefaultTheme
	if m.showHelp {
		var sections []string
		for _, s := range m.keys.Sections() {
			var parts []string
			for _, b := range s.FilterEnabled() {
				parts = append(parts, fmt.Sprintf("%s %s", t.Bold.Render(b.Help().Key), b.Help().Desc))
			}
			sections = append(sections, t.Muted.Render(s.Name+": ")+strings.Join(parts, "  "))
		}
		return strings.Join(sections, "\n")
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return t.Muted.Render(strings.Join(parts, " • "))
}
