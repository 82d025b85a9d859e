package collection

import (
	"testing"

	"github.com/grovetools/shelf/pkg/library"
)

func testRecords() []library.CollectionRecord {
	return []library.CollectionRecord{
		{Key: "inbox", Name: "Inbox"},
		{Key: "work", Name: "Work"},
		{Key: "reports", Name: "Reports", ParentKey: "work"},
		{Key: "q3", Name: "Q3", ParentKey: "reports"},
		{Key: "personal", Name: "Personal"},
	}
}

func buildTest(t *testing.T, opts Options) *Tree {
	t.Helper()
	return Build("main", testRecords(), opts)
}

func snapshotIDs(rows []Row) []NodeID {
	ids := make([]NodeID, len(rows))
	for i, r := range rows {
		ids[i] = r.Node.ID
	}
	return ids
}

func containsID(rows []Row, id NodeID) bool {
	for _, r := range rows {
		if r.Node.ID == id {
			return true
		}
	}
	return false
}

func TestSnapshotCollapsedShowsOnlyTopLevel(t *testing.T) {
	tr := buildTest(t, Options{})

	rows := tr.Snapshot()
	want := []NodeID{AllNode(), CollectionNode("inbox"), CollectionNode("work"), CollectionNode("personal")}
	got := snapshotIDs(rows)
	if len(got) != len(want) {
		t.Fatalf("snapshot has %d rows, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
	for _, r := range rows {
		if r.Depth != 0 {
			t.Fatalf("collapsed snapshot should be flat, got depth %d for %v", r.Depth, r.Node.ID)
		}
	}
}

func TestSnapshotRequiresEveryAncestorExpanded(t *testing.T) {
	tr := buildTest(t, Options{})
	tr.ExpandAll()

	rows := tr.Snapshot()
	if !containsID(rows, CollectionNode("q3")) {
		t.Fatal("fully expanded snapshot should contain q3")
	}

	// Collapsing an intermediate ancestor removes the whole subtree.
	tr.SetExpanded(CollectionNode("reports"), false)
	rows = tr.Snapshot()
	if !containsID(rows, CollectionNode("reports")) {
		t.Fatal("reports itself should still be visible")
	}
	if containsID(rows, CollectionNode("q3")) {
		t.Fatal("q3 should disappear when reports is collapsed")
	}

	// Collapsing the root of the subtree hides descendants recursively.
	tr.SetExpanded(CollectionNode("reports"), true)
	tr.SetExpanded(CollectionNode("work"), false)
	rows = tr.Snapshot()
	if containsID(rows, CollectionNode("reports")) || containsID(rows, CollectionNode("q3")) {
		t.Fatal("collapsing work should hide reports and q3")
	}
}

func TestSnapshotDepthAndChildFlags(t *testing.T) {
	tr := buildTest(t, Options{})
	tr.ExpandAll()

	depths := map[NodeID]int{}
	hasChildren := map[NodeID]bool{}
	for _, r := range tr.Snapshot() {
		depths[r.Node.ID] = r.Depth
		hasChildren[r.Node.ID] = r.HasChildren
	}

	if depths[CollectionNode("work")] != 0 {
		t.Errorf("work depth = %d, want 0", depths[CollectionNode("work")])
	}
	if depths[CollectionNode("reports")] != 1 {
		t.Errorf("reports depth = %d, want 1", depths[CollectionNode("reports")])
	}
	if depths[CollectionNode("q3")] != 2 {
		t.Errorf("q3 depth = %d, want 2", depths[CollectionNode("q3")])
	}
	if !hasChildren[CollectionNode("work")] || hasChildren[CollectionNode("q3")] {
		t.Error("HasChildren flags wrong for work/q3")
	}
}

func TestExpandAllIdempotent(t *testing.T) {
	tr := buildTest(t, Options{})

	tr.ExpandAll()
	first := tr.Snapshot()
	tr.ExpandAll()
	second := tr.Snapshot()

	if len(first) != len(second) {
		t.Fatalf("snapshot length changed after second ExpandAll: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Node.ID != second[i].Node.ID || first[i].Expanded != second[i].Expanded {
			t.Fatalf("row %d differs after second ExpandAll", i)
		}
	}
}

func TestLookup(t *testing.T) {
	tr := buildTest(t, Options{})

	if n, ok := tr.Lookup(CollectionNode("q3")); !ok || n.Label != "Q3" {
		t.Fatalf("Lookup(q3) = %v, %v", n, ok)
	}
	if _, ok := tr.Lookup(CollectionNode("nope")); ok {
		t.Fatal("Lookup of unknown key should report not found")
	}
	if n, ok := tr.LookupKey("inbox"); !ok || n.Label != "Inbox" {
		t.Fatalf("LookupKey(inbox) = %v, %v", n, ok)
	}
	if _, ok := tr.Lookup(AllNode()); !ok {
		t.Fatal("the All Items node should always resolve")
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	tr := buildTest(t, Options{})
	before := tr.Len()

	tr.Toggle(CollectionNode("ghost"))
	tr.SetExpanded(CollectionNode("ghost"), true)

	if tr.Len() != before {
		t.Fatal("toggling an unknown identifier must not grow the tree")
	}
	if tr.Expanded(CollectionNode("ghost")) {
		t.Fatal("unknown identifier should stay collapsed")
	}
}

func TestAdoptExpansionPreservesSurvivors(t *testing.T) {
	old := buildTest(t, Options{})
	old.ExpandAll()
	old.SetExpanded(CollectionNode("work"), false)

	// Rebuild with one collection gone and one new.
	records := append(testRecords()[:4], library.CollectionRecord{Key: "archive", Name: "Archive"})
	next := Build("main", records, Options{})
	next.AdoptExpansion(old)

	if next.Expanded(CollectionNode("work")) {
		t.Fatal("surviving collapsed node should stay collapsed")
	}
	if !next.Expanded(CollectionNode("inbox")) {
		t.Fatal("surviving expanded node should stay expanded")
	}
	if !next.Expanded(CollectionNode("archive")) {
		t.Fatal("new node should come up expanded")
	}
}

func TestAdoptExpansionNilPrevExpandsAll(t *testing.T) {
	tr := buildTest(t, Options{})
	tr.AdoptExpansion(nil)
	for _, r := range tr.Snapshot() {
		if r.HasChildren && !r.Expanded {
			t.Fatalf("node %v should be expanded after AdoptExpansion(nil)", r.Node.ID)
		}
	}
}

func TestSnapshotToleratesDanglingChild(t *testing.T) {
	tr := buildTest(t, Options{})
	tr.ExpandAll()

	// Simulate a malformed builder output: a child reference that resolves
	// to nothing.
	n, _ := tr.Lookup(CollectionNode("personal"))
	n.Children = append(n.Children, CollectionNode("missing"))

	rows := tr.Snapshot()
	if containsID(rows, CollectionNode("missing")) {
		t.Fatal("dangling child must not render")
	}
	if !containsID(rows, CollectionNode("personal")) {
		t.Fatal("node with a dangling child should still render")
	}
}
