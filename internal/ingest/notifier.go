package ingest

import "sync"

// Change identifies what part of the stored data was invalidated. Zero
// values mean a full invalidation with no specific employee or date scope.
type Change struct {
	EmployeeID string
	Date       string
}

// Notifier delivers invalidation events to a single registered observer.
// There is exactly one consumer of these events, so this is an injected
// callback rather than a pub/sub registry.
type Notifier struct {
	mu       sync.Mutex
	observer func(Change)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// SetObserver registers the observer callback, replacing any previous one.
func (n *Notifier) SetObserver(fn func(Change)) {
	n.mu.Lock()
	n.observer = fn
	n.mu.Unlock()
}

// Notify invokes the observer synchronously. No registered observer is a
// no-op, not an error.
func (n *Notifier) Notify(c Change) {
	n.mu.Lock()
	fn := n.observer
	n.mu.Unlock()

	if fn != nil {
		fn(c)
	}
}
