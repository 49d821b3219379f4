// Package store implements the collection store: a durable mapping from a
// collection name to the serialized JSON array holding every record of that
// collection. Writes replace a collection in full and are followed by a
// change notification naming the collection, delivered to subscribers
// registered with OnChanged.
//
// The store is deliberately dumb. It does not parse records, assign ids, or
// merge updates; those belong to the repo package. Two writers replacing the
// same collection race and the last one wins.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// Listener receives the collections changed by a write.
type Listener func(keys []domain.Collection)

// Store is the contract shared by every collection store backend.
type Store interface {
	// Read returns the serialized array stored under key, or nil when the
	// key has never been written.
	Read(ctx context.Context, key domain.Collection) (json.RawMessage, error)

	// Write replaces the array stored under key and then notifies
	// subscribers with changed([key]).
	Write(ctx context.Context, key domain.Collection, data json.RawMessage) error

	// OnChanged subscribes fn to change notifications. The returned function
	// removes the subscription and is safe to call more than once.
	OnChanged(fn Listener) (cancel func())
}

// notifier fans change notifications out to subscribers. Listeners are
// invoked synchronously, outside the lock, in subscription order.
type notifier struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]Listener
	order     []uint64
}

func (n *notifier) subscribe(fn Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[uint64]Listener)
	}
	n.nextID++
	id := n.nextID
	n.listeners[id] = fn
	n.order = append(n.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.listeners, id)
			for i, v := range n.order {
				if v == id {
					n.order = append(n.order[:i], n.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (n *notifier) emit(keys ...domain.Collection) {
	n.mu.Lock()
	fns := make([]Listener, 0, len(n.order))
	for _, id := range n.order {
		fns = append(fns, n.listeners[id])
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(keys)
	}
}

// emptyArray is what a never-written collection decodes as.
var emptyArray = json.RawMessage("[]")

// OrEmpty returns data, or an empty JSON array when data is nil or blank.
func OrEmpty(data json.RawMessage) json.RawMessage {
	if len(data) == 0 {
		return emptyArray
	}
	return data
}
