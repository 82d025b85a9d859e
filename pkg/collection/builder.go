package collection

import (
	"github.com/grovetools/shelf/pkg/library"
)

// AllItemsLabel is the display label of the synthetic top node.
const AllItemsLabel = "All Items"

// Options controls tree construction.
type Options struct {
	// Exclude lists collection keys to omit entirely. An excluded key takes
	// its whole subtree with it.
	Exclude map[string]bool
	// WithCounts controls whether item counts are carried onto nodes. The
	// picker disables this; counts are not displayed there.
	WithCounts bool
}

// Build converts a flat record set into a fresh Tree for the given scope.
// All nodes start collapsed. Node ordering is deterministic given the same
// record ordering: the synthetic "All Items" node first, then top-level
// collections in record order, children nested in record order under their
// parents.
//
// Records whose parent key is absent from the record set are registered but
// never referenced from the top-level sequence, leaving them unreachable
// rather than failing the build.
func Build(scope library.Scope, records []library.CollectionRecord, opts Options) *Tree {
	t := newTree()

	all := &Node{ID: AllNode(), Label: AllItemsLabel}
	if opts.WithCounts {
		for _, r := range records {
			all.ItemCount += r.ItemCount
		}
	}
	t.add(all, true)

	present := make(map[string]bool, len(records))
	for _, r := range records {
		if !excluded(r.Key, records, opts.Exclude) {
			present[r.Key] = true
		}
	}

	byParent := make(map[string][]library.CollectionRecord)
	for _, r := range records {
		if !present[r.Key] {
			continue
		}
		byParent[r.ParentKey] = append(byParent[r.ParentKey], r)
	}

	var attach func(r library.CollectionRecord, parent NodeID, topLevel bool) NodeID
	attach = func(r library.CollectionRecord, parent NodeID, topLevel bool) NodeID {
		n := &Node{
			ID:     CollectionNode(r.Key),
			Label:  r.Name,
			Parent: parent,
		}
		if opts.WithCounts {
			n.ItemCount = r.ItemCount
		}
		t.add(n, topLevel)
		for _, child := range byParent[r.Key] {
			n.Children = append(n.Children, attach(child, n.ID, false))
		}
		return n.ID
	}

	for _, r := range byParent[""] {
		attach(r, NodeID{}, true)
	}

	// Orphans: parent key set but not present (deleted, excluded, or a
	// malformed record set). Register them so the node table stays complete;
	// nothing references them, so they never render.
	for _, r := range records {
		if !present[r.Key] || r.ParentKey == "" {
			continue
		}
		if present[r.ParentKey] {
			continue
		}
		if _, ok := t.Lookup(CollectionNode(r.Key)); ok {
			continue
		}
		attach(r, CollectionNode(r.ParentKey), false)
	}

	return t
}

// excluded reports whether key or any of its ancestors is in the exclusion
// set. Ancestry is resolved over the raw record set; a cycle in parent keys
// terminates the walk and counts as not excluded.
func excluded(key string, records []library.CollectionRecord, exclude map[string]bool) bool {
	if len(exclude) == 0 {
		return false
	}
	parents := make(map[string]string, len(records))
	for _, r := range records {
		parents[r.Key] = r.ParentKey
	}
	seen := make(map[string]bool)
	for k := key; k != "" && !seen[k]; k = parents[k] {
		if exclude[k] {
			return true
		}
		seen[k] = true
	}
	return false
}
