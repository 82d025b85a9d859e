// Package picker owns the state of one collection-picking screen: a live
// tree of collections, the set of selected keys, and the derived display
// title. The underlying library may change while the picker is open; a
// single drain goroutine rebuilds the tree from each change notification and
// reconciles the selection against it, so stale selections are pruned rather
// than surfacing as errors.
package picker

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/shelf/logging"
	"github.com/grovetools/shelf/pkg/collection"
	"github.com/grovetools/shelf/pkg/library"
)

// Launch is the read-once configuration of a session.
type Launch struct {
	Scope       library.Scope
	Exclude     []string // collection keys never offered for selection
	Preselected []string // keys selected when the picker opens
	Mode        Mode
}

// Session serializes every mutation of picker state behind one mutex: select
// and confirm calls are synchronous, feed-driven rebuilds run on a single
// drain goroutine, and no two rebuild-reconcile cycles ever overlap.
type Session struct {
	store   *library.Store
	launch  Launch
	exclude map[string]bool
	logger  *logrus.Entry

	mu       sync.Mutex
	tree     *collection.Tree
	rows     []collection.Row
	selected map[string]bool
	title    string
	finished bool
	rebuilds int
	initials int

	sub       *library.Subscription
	drained   chan struct{}
	closeOnce sync.Once

	singleCh  chan collection.Node
	multiCh   chan []string
	backCh    chan struct{}
	updatesCh chan struct{}
}

// New creates a session. Call Start to load the tree and attach the feed,
// and Close to release the subscription.
func New(store *library.Store, launch Launch) *Session {
	exclude := make(map[string]bool, len(launch.Exclude))
	for _, k := range launch.Exclude {
		exclude[k] = true
	}
	s := &Session{
		store:     store,
		launch:    launch,
		exclude:   exclude,
		logger:    logging.NewLogger("picker"),
		selected:  make(map[string]bool),
		singleCh:  make(chan collection.Node, 1),
		multiCh:   make(chan []string, 1),
		backCh:    make(chan struct{}, 1),
		updatesCh: make(chan struct{}, 1),
		drained:   make(chan struct{}),
	}
	for _, k := range launch.Preselected {
		s.selected[k] = true
	}
	s.title = launch.Mode.title(len(s.selected))
	return s
}

// Start performs the initial synchronous load, then subscribes to the change
// feed and starts the drain goroutine. A failed load leaves the session
// interactive with an empty display; the error is returned for logging by
// the caller but the feed still attaches, so a later change can populate the
// tree. Start must be called exactly once.
func (s *Session) Start(ctx context.Context) error {
	records, err := s.store.Collections(ctx, s.launch.Scope)
	if err != nil {
		s.logger.WithError(err).Warn("initial library load failed; picker starts empty")
	} else {
		tree := collection.Build(s.launch.Scope, records, collection.Options{Exclude: s.exclude})
		tree.ExpandAll()
		s.mu.Lock()
		s.tree = tree
		s.reconcileLocked()
		s.rows = tree.Snapshot()
		s.mu.Unlock()
	}

	s.sub = s.store.Subscribe(s.launch.Scope)
	go s.drain()
	s.signalUpdate()
	return err
}

// drain consumes the feed until the subscription is closed. The very first
// notification is the subscribe-time snapshot we already loaded directly, so
// it never triggers a rebuild. Errored is terminal: the last good tree stays
// on display and the loop simply blocks until teardown.
func (s *Session) drain() {
	defer close(s.drained)
	for n := range s.sub.C() {
		s.apply(n)
	}
}

func (s *Session) apply(n library.Notification) {
	switch n.State {
	case library.NotifyInitial:
		s.mu.Lock()
		s.initials++
		s.mu.Unlock()

	case library.NotifyErrored:
		s.logger.WithError(n.Err).Warn("change feed failed; keeping last loaded tree")

	case library.NotifyUpdated:
		tree := collection.Build(s.launch.Scope, n.Records, collection.Options{Exclude: s.exclude})
		s.mu.Lock()
		tree.AdoptExpansion(s.tree)
		s.tree = tree
		s.reconcileLocked()
		s.rows = tree.Snapshot()
		s.rebuilds++
		s.mu.Unlock()
		s.signalUpdate()
	}
}

// reconcileLocked drops selected keys that no longer resolve in the current
// tree. The title is recomputed only when something was actually removed;
// the tree swap itself happens regardless. Caller holds s.mu.
func (s *Session) reconcileLocked() {
	if s.tree == nil {
		return
	}
	removed := 0
	for key := range s.selected {
		if _, ok := s.tree.LookupKey(key); !ok {
			delete(s.selected, key)
			removed++
		}
	}
	if removed > 0 {
		s.title = s.launch.Mode.title(len(s.selected))
		s.logger.WithField("removed", removed).Debug("pruned stale selections")
	}
}

// Select handles a pick on any visible node. In single mode the first select
// finalizes the session: the chosen node goes out on SingleResult, followed
// by one NavBack signal. In multiple mode a select toggles the key's
// membership and recomputes the title; pseudo-nodes are not toggleable.
func (s *Session) Select(id collection.NodeID) {
	s.mu.Lock()
	if s.finished || s.tree == nil {
		s.mu.Unlock()
		return
	}
	node, ok := s.tree.Lookup(id)
	if !ok {
		s.mu.Unlock()
		return
	}

	if s.launch.Mode.IsSingle() {
		s.finished = true
		s.mu.Unlock()
		s.singleCh <- *node
		s.backCh <- struct{}{}
		return
	}

	if id.Kind != collection.KindCollection {
		s.mu.Unlock()
		return
	}
	if s.selected[id.Key] {
		delete(s.selected, id.Key)
	} else {
		s.selected[id.Key] = true
	}
	s.title = s.launch.Mode.title(len(s.selected))
	s.mu.Unlock()
	s.signalUpdate()
}

// SelectKey is Select for a collection key.
func (s *Session) SelectKey(key string) {
	s.Select(collection.CollectionNode(key))
}

// Deselect removes a key from the selection set. No-op when absent or in
// single mode.
func (s *Session) Deselect(key string) {
	s.mu.Lock()
	if s.finished || s.launch.Mode.IsSingle() || !s.selected[key] {
		s.mu.Unlock()
		return
	}
	delete(s.selected, key)
	s.title = s.launch.Mode.title(len(s.selected))
	s.mu.Unlock()
	s.signalUpdate()
}

// Confirm finalizes a multiple-mode session: the selection set goes out on
// MultiResult (sorted for determinism), followed by one NavBack signal. The
// selection set itself is left untouched. No-op in single mode or after the
// session already finished.
func (s *Session) Confirm() {
	s.mu.Lock()
	if s.finished || s.launch.Mode.IsSingle() {
		s.mu.Unlock()
		return
	}
	s.finished = true
	keys := make([]string, 0, len(s.selected))
	for k := range s.selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.mu.Unlock()

	s.multiCh <- keys
	s.backCh <- struct{}{}
}

// Cancel emits the NavBack signal without a result. No-op after the session
// finished.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	s.mu.Unlock()
	s.backCh <- struct{}{}
}

// SetExpanded changes one node's expand flag and refreshes the snapshot.
func (s *Session) SetExpanded(id collection.NodeID, expanded bool) {
	s.mu.Lock()
	if s.tree == nil {
		s.mu.Unlock()
		return
	}
	s.tree.SetExpanded(id, expanded)
	s.rows = s.tree.Snapshot()
	s.mu.Unlock()
	s.signalUpdate()
}

// ExpandAll unfolds every node and refreshes the snapshot.
func (s *Session) ExpandAll() {
	s.mu.Lock()
	if s.tree == nil {
		s.mu.Unlock()
		return
	}
	s.tree.ExpandAll()
	s.rows = s.tree.Snapshot()
	s.mu.Unlock()
	s.signalUpdate()
}

// CollapseAll folds every node, leaving only top-level rows visible.
func (s *Session) CollapseAll() {
	s.mu.Lock()
	if s.tree == nil {
		s.mu.Unlock()
		return
	}
	s.tree.CollapseAll()
	s.rows = s.tree.Snapshot()
	s.mu.Unlock()
	s.signalUpdate()
}

// ToggleExpanded flips one node's expand flag and refreshes the snapshot.
func (s *Session) ToggleExpanded(id collection.NodeID) {
	s.mu.Lock()
	if s.tree == nil {
		s.mu.Unlock()
		return
	}
	s.tree.Toggle(id)
	s.rows = s.tree.Snapshot()
	s.mu.Unlock()
	s.signalUpdate()
}

// Rows returns the current display snapshot.
func (s *Session) Rows() []collection.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]collection.Row(nil), s.rows...)
}

// Mode returns the session's picking mode.
func (s *Session) Mode() Mode {
	return s.launch.Mode
}

// Title returns the current display title.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Selected returns the selected keys, sorted.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.selected))
	for k := range s.selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSelected reports whether a collection key is in the selection set.
func (s *Session) IsSelected(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[key]
}

// SingleResult delivers the chosen node in single mode, exactly once.
func (s *Session) SingleResult() <-chan collection.Node {
	return s.singleCh
}

// MultiResult delivers the confirmed key set in multiple mode, exactly once.
func (s *Session) MultiResult() <-chan []string {
	return s.multiCh
}

// NavBack signals "return to the previous screen", exactly once, after a
// result (or a cancel).
func (s *Session) NavBack() <-chan struct{} {
	return s.backCh
}

// Updates is a coalesced change signal: it fires after any snapshot, title,
// or selection change. Consumers re-read Rows and Title on receipt.
func (s *Session) Updates() <-chan struct{} {
	return s.updatesCh
}

func (s *Session) signalUpdate() {
	select {
	case s.updatesCh <- struct{}{}:
	default:
	}
}

// Close releases the feed subscription and waits for the drain goroutine.
// The unsubscribe is synchronous; no notification is processed once Close
// returns. Idempotent; safe on every exit path, including after a load
// failure.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.sub == nil {
			close(s.drained)
			return
		}
		s.sub.Close()
		<-s.drained
	})
}
