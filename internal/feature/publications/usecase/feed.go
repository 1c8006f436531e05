package usecase

import (
	"context"
	"sync"

	"foro_backend/internal/feature/publications/domain/entity"
)

// Feed fans publication snapshots out to any number of subscribers. Each
// subscriber channel holds at most one pending snapshot; a subscriber that
// has not drained yet simply has its stale snapshot replaced, so a slow
// consumer never blocks a writer.
type Feed struct {
	mu   sync.Mutex
	subs map[uint64]chan []entity.PublicationStats
	next uint64
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[uint64]chan []entity.PublicationStats)}
}

// Subscribe registers a subscriber primed with the initial snapshot. The
// returned channel closes when ctx is cancelled.
func (f *Feed) Subscribe(ctx context.Context, initial []entity.PublicationStats) <-chan []entity.PublicationStats {
	ch := make(chan []entity.PublicationStats, 1)
	ch <- initial

	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = ch
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish replaces every subscriber's pending snapshot with the given one.
func (f *Feed) Publish(snapshot []entity.PublicationStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		// Drop the undelivered snapshot, if any, then queue the new one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
