package storage

import "sync"

// Feed fans owner-scoped change notifications out to live
// subscribers. Writers publish after a successful session write;
// the view layer subscribes to drive its recomputation. Publish is
// non-blocking: each subscriber channel has capacity one, and a
// notification that finds the channel full is dropped, because the
// subscriber will recompute from the latest state anyway.
type Feed struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{} // ownerID -> subscribers
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers for change notifications scoped to ownerID.
// The returned cancel func must be called to release the
// subscription.
func (f *Feed) Subscribe(ownerID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	if f.subs[ownerID] == nil {
		f.subs[ownerID] = make(map[chan struct{}]struct{})
	}
	f.subs[ownerID][ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if set, ok := f.subs[ownerID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(f.subs, ownerID)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish notifies all of ownerID's subscribers that something
// changed. Never blocks.
func (f *Feed) Publish(ownerID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[ownerID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
