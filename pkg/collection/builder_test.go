package collection

import (
	"testing"

	"github.com/grovetools/shelf/pkg/library"
)

func TestBuildExcludesKeyAndDescendants(t *testing.T) {
	tr := Build("main", testRecords(), Options{Exclude: map[string]bool{"work": true}})
	tr.ExpandAll()

	for _, key := range []string{"work", "reports", "q3"} {
		if _, ok := tr.LookupKey(key); ok {
			t.Fatalf("excluded subtree member %q should not exist in the tree", key)
		}
	}
	if _, ok := tr.LookupKey("inbox"); !ok {
		t.Fatal("unrelated collections should survive exclusion")
	}
	if containsID(tr.Snapshot(), CollectionNode("reports")) {
		t.Fatal("descendant of an excluded key must never render")
	}
}

func TestBuildExcludesMidTreeDescendants(t *testing.T) {
	tr := Build("main", testRecords(), Options{Exclude: map[string]bool{"reports": true}})
	tr.ExpandAll()

	if _, ok := tr.LookupKey("work"); !ok {
		t.Fatal("parent of an excluded key should survive")
	}
	if _, ok := tr.LookupKey("q3"); ok {
		t.Fatal("descendant of an excluded key should not exist")
	}
}

func TestBuildDeterministicOrdering(t *testing.T) {
	a := Build("main", testRecords(), Options{})
	b := Build("main", testRecords(), Options{})
	a.ExpandAll()
	b.ExpandAll()

	ra, rb := a.Snapshot(), b.Snapshot()
	if len(ra) != len(rb) {
		t.Fatalf("snapshots differ in length: %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].Node.ID != rb[i].Node.ID {
			t.Fatalf("row %d differs between identical builds: %v vs %v", i, ra[i].Node.ID, rb[i].Node.ID)
		}
	}
	if ra[0].Node.ID != AllNode() {
		t.Fatalf("first row = %v, want the All Items node", ra[0].Node.ID)
	}
}

func TestBuildAllNodesStartCollapsed(t *testing.T) {
	tr := Build("main", testRecords(), Options{})
	for _, r := range tr.Snapshot() {
		if r.Expanded {
			t.Fatalf("node %v should start collapsed", r.Node.ID)
		}
	}
}

func TestBuildCountsFlag(t *testing.T) {
	records := []library.CollectionRecord{
		{Key: "a", Name: "A", ItemCount: 3},
		{Key: "b", Name: "B", ItemCount: 4},
	}

	without := Build("main", records, Options{})
	if n, _ := without.LookupKey("a"); n.ItemCount != 0 {
		t.Fatalf("counts disabled: ItemCount = %d, want 0", n.ItemCount)
	}
	if all, _ := without.Lookup(AllNode()); all.ItemCount != 0 {
		t.Fatalf("counts disabled: All ItemCount = %d, want 0", all.ItemCount)
	}

	with := Build("main", records, Options{WithCounts: true})
	if n, _ := with.LookupKey("a"); n.ItemCount != 3 {
		t.Fatalf("counts enabled: ItemCount = %d, want 3", n.ItemCount)
	}
	if all, _ := with.Lookup(AllNode()); all.ItemCount != 7 {
		t.Fatalf("counts enabled: All ItemCount = %d, want 7", all.ItemCount)
	}
}

func TestBuildOrphanIsUnreachableButRegistered(t *testing.T) {
	records := []library.CollectionRecord{
		{Key: "a", Name: "A"},
		{Key: "lost", Name: "Lost", ParentKey: "gone"},
	}
	tr := Build("main", records, Options{})
	tr.ExpandAll()

	if _, ok := tr.LookupKey("lost"); !ok {
		t.Fatal("orphan should still be registered in the node table")
	}
	if containsID(tr.Snapshot(), CollectionNode("lost")) {
		t.Fatal("orphan must not be reachable from the top-level sequence")
	}
}
