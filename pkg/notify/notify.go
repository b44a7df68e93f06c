// Package notify carries table-change notifications from writers to read
// models. The pending-count aggregator recomputes from scratch on every
// notification, so delivery only needs to be at-least-once.
package notify

import "sync"

// Tables whose mutations are announced on the bus.
const (
	TableEvents        = "events"
	TableFundraising   = "fundraising"
	TableAnnouncements = "announcements"
)

// Publisher is the write side of the bus.
type Publisher interface {
	Publish(table string)
}

// Bus is an in-process fan-out of table-change notifications.
type Bus struct {
	mu          sync.RWMutex
	subscribers []func(table string)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback invoked on every published change.
// Callbacks must not block; long work belongs on a queue.
func (b *Bus) Subscribe(fn func(table string)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish announces a change to the named table.
func (b *Bus) Publish(table string) {
	b.mu.RLock()
	subs := make([]func(string), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(table)
	}
}
