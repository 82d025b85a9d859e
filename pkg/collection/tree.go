package collection

// Tree is an in-memory hierarchy of collection nodes with per-node
// expand/collapse state. It is a flat node table keyed by identifier plus an
// ordered top-level sequence; child links are identifiers, not pointers, so a
// dangling child reference simply never renders.
//
// A Tree is owned by a single goroutine at a time (the picker session
// serializes all access), so it carries no internal locking.
type Tree struct {
	order    []NodeID
	nodes    map[NodeID]*Node
	expanded map[NodeID]bool
}

// Row is one entry of a display snapshot: a node plus everything the display
// layer needs to render it at a list index.
type Row struct {
	Node        *Node
	Depth       int
	HasChildren bool
	Expanded    bool
}

func newTree() *Tree {
	return &Tree{
		nodes:    make(map[NodeID]*Node),
		expanded: make(map[NodeID]bool),
	}
}

// add registers a node. Nodes referenced from order or from a Children slice
// without being registered are unreachable, never an error.
func (t *Tree) add(n *Node, topLevel bool) {
	t.nodes[n.ID] = n
	t.expanded[n.ID] = false
	if topLevel {
		t.order = append(t.order, n.ID)
	}
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Lookup returns the node for the given identifier. The boolean is false when
// the identifier is unknown to this tree.
func (t *Tree) Lookup(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// LookupKey is Lookup for a collection key. Reconciliation works on string
// keys, so this avoids constructing identifiers at every call site.
func (t *Tree) LookupKey(key string) (*Node, bool) {
	return t.Lookup(CollectionNode(key))
}

// Expanded reports the expand flag for the given identifier. Unknown
// identifiers are collapsed.
func (t *Tree) Expanded(id NodeID) bool {
	return t.expanded[id]
}

// ExpandAll marks every registered node expanded. Idempotent.
func (t *Tree) ExpandAll() {
	for id := range t.nodes {
		t.expanded[id] = true
	}
}

// CollapseAll folds every node, leaving only top-level rows visible.
func (t *Tree) CollapseAll() {
	for id := range t.nodes {
		t.expanded[id] = false
	}
}

// SetExpanded sets the expand flag for one node. Unknown identifiers are
// ignored so the flags map never grows keys outside the node table.
func (t *Tree) SetExpanded(id NodeID, expanded bool) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	t.expanded[id] = expanded
}

// Toggle flips the expand flag for one node. Unknown identifiers are ignored.
func (t *Tree) Toggle(id NodeID) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	t.expanded[id] = !t.expanded[id]
}

// AdoptExpansion copies expand flags from a previous tree for every node that
// survives into this one. Nodes with no counterpart in prev are expanded, so
// a rebuild never collapses what the user is looking at while still showing
// new collections immediately. A nil prev expands everything.
func (t *Tree) AdoptExpansion(prev *Tree) {
	for id := range t.nodes {
		if prev == nil {
			t.expanded[id] = true
			continue
		}
		if _, ok := prev.nodes[id]; ok {
			t.expanded[id] = prev.expanded[id]
		} else {
			t.expanded[id] = true
		}
	}
}

// Snapshot produces the flattened display projection: a depth-first walk of
// the top-level sequence where a node's children are included only when the
// node's own flag is expanded. The result is fully materialized so the display
// layer has random access by index. Snapshot never mutates the tree.
func (t *Tree) Snapshot() []Row {
	rows := make([]Row, 0, len(t.nodes))
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		n, ok := t.nodes[id]
		if !ok {
			// Dangling reference from the builder; skip silently.
			return
		}
		expanded := t.expanded[id]
		rows = append(rows, Row{
			Node:        n,
			Depth:       depth,
			HasChildren: len(n.Children) > 0,
			Expanded:    expanded,
		})
		if !expanded {
			return
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, id := range t.order {
		walk(id, 0)
	}
	return rows
}
