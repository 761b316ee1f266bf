// Package live implements the live collection subscription contract: a
// standing per-user query whose full, freshly sorted result set is pushed to
// every subscriber once on subscribe and again after every write touching
// that user's records.
package live

import (
	"sync"

	"budgetbox/internal/logger"
)

// Loader fetches the current sorted record set for a user. Each subscription
// invokes the loader independently; no snapshot is shared across streams.
type Loader[T any] func(userID string) ([]T, error)

// Notifier is the write-side of a hub. Services call Notify after every
// committed create, update, or delete.
type Notifier interface {
	Notify(userID string)
}

// Hub fans user-scoped change notifications out to subscriptions of one
// logical collection (transactions or bills).
type Hub[T any] struct {
	load Loader[T]

	mu   sync.Mutex
	subs map[string]map[*Subscription[T]]struct{}
}

// NewHub creates a hub over the given snapshot loader.
func NewHub[T any](load Loader[T]) *Hub[T] {
	return &Hub[T]{
		load: load,
		subs: make(map[string]map[*Subscription[T]]struct{}),
	}
}

// Subscribe opens an independent snapshot stream for userID. The current
// record set is delivered immediately; later snapshots follow every change.
// Callers must Unsubscribe when done or the stream goroutine leaks.
func (h *Hub[T]) Subscribe(userID string) (*Subscription[T], error) {
	initial, err := h.load(userID)
	if err != nil {
		return nil, err
	}

	s := &Subscription[T]{
		hub:       h,
		userID:    userID,
		snapshots: make(chan []T, 1),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription[T]]struct{})
	}
	h.subs[userID][s] = struct{}{}
	h.mu.Unlock()

	go s.run(initial)
	return s, nil
}

// Notify signals every subscription for userID that the collection changed.
// Signals coalesce: a subscriber that has not yet drained its previous
// snapshot receives a single fresh one covering all pending changes.
func (h *Hub[T]) Notify(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[userID] {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

func (h *Hub[T]) remove(s *Subscription[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.subs[s.userID]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.userID)
		}
	}
}

// Subscription is one consumer's snapshot stream.
type Subscription[T any] struct {
	hub    *Hub[T]
	userID string

	snapshots chan []T
	wake      chan struct{}
	done      chan struct{}
	once      sync.Once
}

// Snapshots returns the stream of full record sets. The channel is closed
// after Unsubscribe.
func (s *Subscription[T]) Snapshots() <-chan []T {
	return s.snapshots
}

// Unsubscribe stops the stream and releases the subscription. Safe to call
// multiple times.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.hub.remove(s)
	})
}

func (s *Subscription[T]) run(initial []T) {
	defer close(s.snapshots)

	pending := initial
	havePending := true
	for {
		if havePending {
			select {
			case s.snapshots <- pending:
				havePending = false
			case <-s.done:
				return
			}
		}

		select {
		case <-s.wake:
			snap, err := s.hub.load(s.userID)
			if err != nil {
				// Skip this push; the next change will retry the load.
				logger.Get().Errorw("live snapshot reload failed",
					"user_id", s.userID,
					"error", err,
				)
				continue
			}
			pending = snap
			havePending = true
		case <-s.done:
			return
		}
	}
}
