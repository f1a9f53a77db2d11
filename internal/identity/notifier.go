package identity

import (
	"context"
	"sync"
)

// Change describes a transition of the signed-in identity. Either side may be nil (anonymous).
type Change struct {
	Previous *Identity
	Current  *Identity
}

// Kind classifies a change.
func (c Change) Kind() ChangeKind {
	switch {
	case c.Previous == nil && c.Current == nil:
		return Unchanged
	case c.Previous == nil:
		return SignedIn
	case c.Current == nil:
		return SignedOut
	case Same(c.Previous, c.Current):
		return Unchanged
	default:
		return Switched
	}
}

type ChangeKind int

const (
	Unchanged ChangeKind = iota
	SignedIn
	SignedOut
	Switched
)

func (k ChangeKind) String() string {
	switch k {
	case SignedIn:
		return "signed-in"
	case SignedOut:
		return "signed-out"
	case Switched:
		return "switched"
	default:
		return "unchanged"
	}
}

// Observer receives identity changes.
type Observer interface {
	OnIdentityChange(ctx context.Context, change Change)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, change Change)

func (f ObserverFunc) OnIdentityChange(ctx context.Context, change Change) {
	if f != nil {
		f(ctx, change)
	}
}

// Notifier fans identity changes out to subscribers, synchronously and in
// subscription order, so observers finish before the publisher returns.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	observers []subscription
}

type subscription struct {
	id       int
	observer Observer
}

// Subscribe registers o and returns a function that removes it.
func (n *Notifier) Subscribe(o Observer) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.observers = append(n.observers, subscription{id: id, observer: o})
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.observers {
			if s.id == id {
				n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers change to every current subscriber.
func (n *Notifier) Publish(ctx context.Context, change Change) {
	n.mu.Lock()
	observers := make([]Observer, 0, len(n.observers))
	for _, s := range n.observers {
		observers = append(observers, s.observer)
	}
	n.mu.Unlock()

	for _, o := range observers {
		o.OnIdentityChange(ctx, change)
	}
}
