package collection

// NodeKind discriminates the synthetic pseudo-nodes from real collections.
type NodeKind int

const (
	// KindNone is the zero value; it never identifies a real node.
	KindNone NodeKind = iota
	// KindAll is the synthetic "All Items" node at the top of every tree.
	KindAll
	// KindCollection is a user-created collection, identified by its key.
	KindCollection
	// KindUnsorted is the synthetic node for items not in any collection.
	KindUnsorted
)

// NodeID identifies a node in a tree. Equality is value equality on the
// struct; display labels never participate.
type NodeID struct {
	Kind NodeKind
	Key  string // set only for KindCollection
}

// AllNode returns the identifier of the synthetic "All Items" node.
func AllNode() NodeID {
	return NodeID{Kind: KindAll}
}

// CollectionNode returns the identifier for the collection with the given key.
func CollectionNode(key string) NodeID {
	return NodeID{Kind: KindCollection, Key: key}
}

// UnsortedNode returns the identifier of the synthetic "Unsorted" node.
func UnsortedNode() NodeID {
	return NodeID{Kind: KindUnsorted}
}

// IsZero reports whether the identifier is the zero value (no node).
func (id NodeID) IsZero() bool {
	return id.Kind == KindNone
}

// Node is one entry in a tree. Nodes are owned exclusively by the Tree that
// created them; callers must treat them as read-only.
type Node struct {
	ID       NodeID
	Label    string
	Parent   NodeID // zero for top-level nodes
	Children []NodeID
	// ItemCount is zero when the tree was built with counts disabled.
	ItemCount int
}
