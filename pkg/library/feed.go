package library

import (
	"context"
	"time"
)

// NotifyState tags a feed notification.
type NotifyState int

const (
	// NotifyInitial carries the record snapshot delivered immediately on
	// subscribe. Consumers that already loaded directly should ignore it.
	NotifyInitial NotifyState = iota
	// NotifyUpdated signals that the record set changed; Records carries the
	// full new set.
	NotifyUpdated
	// NotifyErrored signals that the feed itself failed. Terminal for the
	// subscription; no further notifications follow.
	NotifyErrored
)

func (s NotifyState) String() string {
	switch s {
	case NotifyInitial:
		return "initial"
	case NotifyUpdated:
		return "updated"
	case NotifyErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Notification is one event on the change feed.
type Notification struct {
	State   NotifyState
	Records []CollectionRecord
	Err     error
}

// subBuffer bounds the per-subscription channel. Each Updated carries the
// full record set, so when a consumer falls behind the oldest pending
// notification is dropped in favor of the newest. Coalescing, not loss.
const subBuffer = 32

// Subscription is one consumer's handle on the change feed for a scope.
type Subscription struct {
	scope   Scope
	ch      chan Notification
	store   *Store
	errored bool
	done    bool
}

// C returns the notification channel. It is closed when the subscription or
// the store is closed.
func (sub *Subscription) C() <-chan Notification {
	return sub.ch
}

// Close detaches the subscription. It is synchronous: once Close returns, no
// further notification is delivered and the channel is closed. Safe to call
// more than once.
func (sub *Subscription) Close() {
	sub.store.mu.Lock()
	defer sub.store.mu.Unlock()
	if _, live := sub.store.subs[sub]; live {
		delete(sub.store.subs, sub)
		sub.closeLocked()
	}
}

// closeLocked closes the channel. Caller holds store.mu, which also guards
// every send, so close-after-send ordering is safe.
func (sub *Subscription) closeLocked() {
	if sub.done {
		return
	}
	sub.done = true
	close(sub.ch)
}

// deliverLocked pushes a notification, dropping the oldest pending one when
// the consumer is behind. Caller holds store.mu.
func (sub *Subscription) deliverLocked(n Notification) {
	if sub.done || sub.errored {
		return
	}
	if n.State == NotifyErrored {
		sub.errored = true
	}
	for {
		select {
		case sub.ch <- n:
			return
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
	}
}

// Subscribe opens a change feed on a scope. The first notification is
// Initial with the current record set (or Errored if the snapshot query
// fails); afterwards every committed mutation and every detected external
// write delivers Updated.
func (s *Store) Subscribe(scope Scope) *Subscription {
	sub := &Subscription{
		scope: scope,
		ch:    make(chan Notification, subBuffer),
		store: s,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	records, err := s.Collections(ctx, scope)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.done = true
		close(sub.ch)
		return sub
	}
	s.subs[sub] = struct{}{}
	if err != nil {
		sub.deliverLocked(Notification{State: NotifyErrored, Err: err})
	} else {
		sub.deliverLocked(Notification{State: NotifyInitial, Records: records})
	}
	return sub
}

// broadcast re-queries a scope and delivers Updated to its live
// subscriptions. Called after every committed mutation and by the file
// watcher. A failed re-query surfaces as Errored on the affected
// subscriptions, which is terminal for them; the store itself stays usable.
func (s *Store) broadcast(scope Scope) {
	s.mu.Lock()
	targets := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		if sub.scope == scope {
			targets = append(targets, sub)
		}
	}
	s.mu.Unlock()
	if len(targets) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	records, err := s.Collections(ctx, scope)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range targets {
		if _, live := s.subs[sub]; !live {
			continue
		}
		if err != nil {
			s.logger.WithError(err).Warn("change feed re-query failed")
			sub.deliverLocked(Notification{State: NotifyErrored, Err: err})
		} else {
			sub.deliverLocked(Notification{State: NotifyUpdated, Records: records})
		}
	}
}

// broadcastAll re-queries every scope that has at least one live
// subscription. Used by the file watcher, which cannot tell which scope an
// external write touched.
func (s *Store) broadcastAll() {
	s.mu.Lock()
	scopes := make(map[Scope]bool)
	for sub := range s.subs {
		scopes[sub.scope] = true
	}
	s.mu.Unlock()
	for scope := range scopes {
		s.broadcast(scope)
	}
}
