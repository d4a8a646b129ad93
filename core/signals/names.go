package signals

import (
	"errors"
	"fmt"
	"sync"
)

// Names is a set of known signal or channel names. The dispatcher only reads
// it to decide whether to log a diagnostic; unknown names are never rejected.
//
// A new set always contains Wildcard, so connecting to "any signal" is not
// reported as unknown.
type Names struct {
	mu    sync.RWMutex
	order []Key
	set   map[Key]struct{}
}

// NewNames creates a set holding Wildcard and the given names.
//
// Example:
//
//	known := signals.NewNames("simple signal", "key args")
//	d := signals.New(signals.WithKnownSignals(known))
func NewNames(names ...any) *Names {
	n := &Names{set: make(map[Key]struct{})}
	n.add(Wildcard)
	for _, name := range names {
		n.add(KeyOf(name))
	}
	return n
}

// Add inserts names into the set. Names already present are ignored.
// Returns ErrInvalidArgument for nil or non-comparable names, after adding the valid ones.
func (n *Names) Add(names ...any) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var errs []error
	for _, name := range names {
		k := KeyOf(name)
		if k.IsNone() {
			errs = append(errs, fmt.Errorf("%w: name is nil", ErrInvalidArgument))
			continue
		}
		if err := k.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		n.add(k)
	}
	return errors.Join(errs...)
}

func (n *Names) add(k Key) {
	if _, ok := n.set[k]; ok {
		return
	}
	n.set[k] = struct{}{}
	n.order = append(n.order, k)
}

// Remove deletes names from the set. Every name that is not present is
// reported with ErrUnknownName; the others are still removed.
func (n *Names) Remove(names ...any) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var errs []error
	for _, name := range names {
		k := KeyOf(name)
		if k.validate() != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownName, k))
			continue
		}
		if _, ok := n.set[k]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownName, k))
			continue
		}
		delete(n.set, k)
		for i, o := range n.order {
			if o == k {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Contains reports whether name is in the set. A nil set contains everything.
func (n *Names) Contains(name any) bool {
	if n == nil {
		return true
	}
	k := KeyOf(name)
	if k.validate() != nil {
		return false
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.set[k]
	return ok
}

// List returns the names in insertion order.
func (n *Names) List() []Key {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]Key(nil), n.order...)
}

// Len returns the number of names, Wildcard included.
func (n *Names) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.set)
}
