package picker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/shelf/pkg/collection"
	"github.com/grovetools/shelf/pkg/library"
)

func openSeededStore(t *testing.T) *library.Store {
	t.Helper()
	s, err := library.Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	require.NoError(t, s.CreateCollection(ctx, "main", "a", "Alpha", ""))
	require.NoError(t, s.CreateCollection(ctx, "main", "b", "Beta", ""))
	require.NoError(t, s.CreateCollection(ctx, "main", "c", "Gamma", "b"))
	return s
}

func startSession(t *testing.T, store *library.Store, launch Launch) *Session {
	t.Helper()
	s := New(store, launch)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Close)
	return s
}

func rowKeys(rows []collection.Row) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Node.ID.Kind == collection.KindCollection {
			keys = append(keys, r.Node.ID.Key)
		}
	}
	return keys
}

func TestStartLoadsExpandedTree(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})

	keys := rowKeys(s.Rows())
	assert.Equal(t, []string{"a", "b", "c"}, keys, "picker opens fully expanded")
	assert.Equal(t, "No Collections Selected", s.Title())
}

func TestExclusionNeverEntersTree(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{
		Scope:   "main",
		Exclude: []string{"b"},
		Mode:    Multiple(),
	})

	assert.Equal(t, []string{"a"}, rowKeys(s.Rows()), "excluded key and descendants never appear")

	// Still true after a rebuild.
	require.NoError(t, store.CreateCollection(context.Background(), "main", "d", "Delta", "b"))
	require.Eventually(t, func() bool {
		for _, k := range rowKeys(s.Rows()) {
			if k == "b" || k == "c" || k == "d" {
				return false
			}
		}
		return len(rowKeys(s.Rows())) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMultipleSelectionScenario(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})

	assert.Equal(t, "No Collections Selected", s.Title())

	s.SelectKey("a")
	assert.Equal(t, "1 Collection Selected", s.Title())

	s.SelectKey("b")
	assert.Equal(t, "2 Collections Selected", s.Title())
	assert.Equal(t, []string{"a", "b"}, s.Selected())

	// The library loses "a" out from under the user.
	require.NoError(t, store.DeleteCollection(context.Background(), "main", "a"))

	require.Eventually(t, func() bool {
		sel := s.Selected()
		return len(sel) == 1 && sel[0] == "b" && s.Title() == "1 Collection Selected"
	}, 2*time.Second, 10*time.Millisecond, "stale selection should be pruned and title recomputed")
}

func TestReconciledSelectionAlwaysResolves(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})

	s.SelectKey("a")
	s.SelectKey("b")
	s.SelectKey("c")

	require.NoError(t, store.DeleteCollection(context.Background(), "main", "b"))

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.rebuilds == 0 {
			return false
		}
		for key := range s.selected {
			if _, ok := s.tree.LookupKey(key); !ok {
				return false
			}
		}
		// b's subtree went with it.
		return len(s.selected) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSelectionToggle(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})

	s.SelectKey("a")
	assert.True(t, s.IsSelected("a"))
	s.SelectKey("a")
	assert.False(t, s.IsSelected("a"), "selecting again toggles off")
	assert.Equal(t, "No Collections Selected", s.Title())

	s.SelectKey("ghost")
	assert.Empty(t, s.Selected(), "unknown keys are not selectable")

	// Pseudo-nodes are not toggleable in multiple mode.
	s.Select(collection.AllNode())
	assert.Empty(t, s.Selected())
}

func TestDeselect(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Preselected: []string{"a", "b"}, Mode: Multiple()})

	assert.Equal(t, "2 Collections Selected", s.Title())
	s.Deselect("a")
	assert.Equal(t, []string{"b"}, s.Selected())
	s.Deselect("a") // absent: no-op
	assert.Equal(t, "1 Collection Selected", s.Title())
}

func TestPreselectedPrunedAgainstInitialTree(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{
		Scope:       "main",
		Preselected: []string{"a", "vanished"},
		Mode:        Multiple(),
	})

	assert.Equal(t, []string{"a"}, s.Selected())
	assert.Equal(t, "1 Collection Selected", s.Title())
}

func TestSingleModeFinalizesOnSelect(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Single("Move to Collection")})

	assert.Equal(t, "Move to Collection", s.Title())

	s.SelectKey("b")

	select {
	case node := <-s.SingleResult():
		assert.Equal(t, collection.CollectionNode("b"), node.ID)
		assert.Equal(t, "Beta", node.Label)
	case <-time.After(time.Second):
		t.Fatal("single result never delivered")
	}
	select {
	case <-s.NavBack():
	case <-time.After(time.Second):
		t.Fatal("nav-back never delivered")
	}

	// Any further activity is inert: exactly one result per session.
	s.SelectKey("a")
	s.Confirm()
	select {
	case <-s.SingleResult():
		t.Fatal("second single result delivered")
	case <-s.NavBack():
		t.Fatal("second nav-back delivered")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSingleModeCanPickPseudoNode(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Single("Move to Collection")})

	s.Select(collection.AllNode())

	select {
	case node := <-s.SingleResult():
		assert.Equal(t, collection.AllNode(), node.ID)
	case <-time.After(time.Second):
		t.Fatal("single result never delivered")
	}
}

func TestConfirmEmitsSelectionOnce(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Preselected: []string{"c", "b"}, Mode: Multiple()})

	s.Confirm()

	select {
	case keys := <-s.MultiResult():
		assert.Equal(t, []string{"b", "c"}, keys)
	case <-time.After(time.Second):
		t.Fatal("multi result never delivered")
	}
	select {
	case <-s.NavBack():
	case <-time.After(time.Second):
		t.Fatal("nav-back never delivered")
	}

	// Selection set is unchanged by Confirm.
	assert.Equal(t, []string{"b", "c"}, s.Selected())

	s.Confirm()
	select {
	case <-s.MultiResult():
		t.Fatal("second confirm delivered a result")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConfirmIsNoopInSingleMode(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Single("Move")})

	s.Confirm()
	select {
	case <-s.MultiResult():
		t.Fatal("single mode must not emit a multi result")
	case <-s.NavBack():
		t.Fatal("confirm in single mode must not navigate back")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelNavigatesBackWithoutResult(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})

	s.Cancel()
	select {
	case <-s.NavBack():
	case <-time.After(time.Second):
		t.Fatal("cancel should deliver nav-back")
	}
	select {
	case <-s.MultiResult():
		t.Fatal("cancel must not deliver a result")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInitialNotificationsNeverRebuild(t *testing.T) {
	store := openSeededStore(t)
	s := New(store, Launch{Scope: "main", Mode: Multiple()})

	for i := 0; i < 5; i++ {
		s.apply(library.Notification{State: library.NotifyInitial})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, 0, s.rebuilds, "Initial notifications must not trigger rebuilds")
	assert.Equal(t, 5, s.initials)
}

func TestErroredKeepsLastGoodTree(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})
	before := rowKeys(s.Rows())

	s.apply(library.Notification{State: library.NotifyErrored, Err: assert.AnError})

	assert.Equal(t, before, rowKeys(s.Rows()), "errored feed must not disturb the display")
	s.SelectKey("a")
	assert.True(t, s.IsSelected("a"), "picker stays interactive after a feed failure")
}

func TestUpdatedRebuildPreservesCollapseState(t *testing.T) {
	store := openSeededStore(t)
	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})

	s.ToggleExpanded(collection.CollectionNode("b"))
	assert.NotContains(t, rowKeys(s.Rows()), "c", "collapsing b hides c")

	require.NoError(t, store.CreateCollection(context.Background(), "main", "d", "Delta", ""))

	require.Eventually(t, func() bool {
		keys := rowKeys(s.Rows())
		sawD, sawC := false, false
		for _, k := range keys {
			if k == "d" {
				sawD = true
			}
			if k == "c" {
				sawC = true
			}
		}
		return sawD && !sawC
	}, 2*time.Second, 10*time.Millisecond, "rebuild shows new node but keeps b collapsed")
}

func TestStartWithEmptyLibrary(t *testing.T) {
	store, err := library.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := startSession(t, store, Launch{Scope: "main", Mode: Multiple()})
	rows := s.Rows()
	require.Len(t, rows, 1, "empty library still shows the All Items node")
	assert.Equal(t, collection.AllNode(), rows[0].Node.ID)
}

func TestCloseIdempotentAndSynchronous(t *testing.T) {
	store := openSeededStore(t)
	s := New(store, Launch{Scope: "main", Mode: Multiple()})
	require.NoError(t, s.Start(context.Background()))

	s.Close()
	s.Close()

	// A mutation after Close must not reach the session.
	before := len(s.Rows())
	require.NoError(t, store.CreateCollection(context.Background(), "main", "late", "Late", ""))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, len(s.Rows()))
}

func TestCloseWithoutStart(t *testing.T) {
	store := openSeededStore(t)
	s := New(store, Launch{Scope: "main", Mode: Multiple()})
	s.Close() // must not hang or panic
}
