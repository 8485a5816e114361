package flow

import "sync"

// ChangeEvent announces that a statement mutated rows of a table.
type ChangeEvent struct {
	Table string
	Kind  StatementKind
}

// ChangeBus is the in-process change-notification channel between
// executors and live lists. Executors publish after a successful
// INSERT/UPDATE/DELETE; subscribers decide what to do with the event.
// Delivery is best-effort: a subscriber that is not keeping up drops
// events rather than blocking the publisher.
type ChangeBus struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]chan ChangeEvent
}

func NewChangeBus() *ChangeBus {
	return &ChangeBus{subs: map[string]map[int]chan ChangeEvent{}}
}

// Subscribe registers for change events on one table. The cancel function
// removes the subscription and closes the channel.
func (b *ChangeBus) Subscribe(table string) (<-chan ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ChangeEvent, 1)
	if b.subs[table] == nil {
		b.subs[table] = map[int]chan ChangeEvent{}
	}
	id := b.next
	b.next++
	b.subs[table][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, exists := b.subs[table][id]; exists {
			delete(b.subs[table], id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *ChangeBus) Publish(ev ChangeEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[ev.Table] {
		select {
		case ch <- ev:
		default:
		}
	}
}
