package library

// Scope identifies which logical partition of the store a tree is drawn
// from. It is fixed for the lifetime of one picker session.
type Scope string

// CollectionRecord is the raw row shape the tree builder consumes. ParentKey
// is empty for top-level collections. ItemCount is populated only by the
// counting query variant.
type CollectionRecord struct {
	Key       string
	Name      string
	ParentKey string
	SortIndex int
	ItemCount int
}

// ItemRecord is one library item. CollectionKey is empty for unsorted items.
type ItemRecord struct {
	ID            string
	Title         string
	CollectionKey string
}
