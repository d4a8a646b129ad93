package signals

import (
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/signals/core/logger"
)

// keyBucket holds the receivers of one signal, grouped by sender or channel.
// order keeps the first-registration order of the keys.
type keyBucket struct {
	order     []Key
	receivers map[Key][]Receiver
}

// Registry maps signals and senders (or channels) to ordered lists of receivers
// and resolves emissions against wildcard registrations.
//
// Both map levels remember the order in which keys were first registered, so
// traversals over "every key" are deterministic. Registry is safe for
// concurrent use; Resolve returns a copy.
type Registry struct {
	mu      sync.RWMutex
	order   []Key
	signals map[Key]*keyBucket
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger configures structured logging for registry diagnostics.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		signals: make(map[Key]*keyBucket),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Connect appends receiver to the list registered for (signal, key), creating
// the intermediate buckets as needed. It performs no validation: keys must be
// comparable, which Dispatcher.Connect checks before calling it.
func (r *Registry) Connect(receiver Receiver, signal, key Key) {
	r.mu.Lock()
	bucket, ok := r.signals[signal]
	if !ok {
		bucket = &keyBucket{receivers: make(map[Key][]Receiver)}
		r.signals[signal] = bucket
		r.order = append(r.order, signal)
	}
	if _, ok := bucket.receivers[key]; !ok {
		bucket.order = append(bucket.order, key)
	}
	bucket.receivers[key] = append(bucket.receivers[key], receiver)
	r.mu.Unlock()

	r.logger.Debug("receiver connected",
		logger.Receiver(ReceiverName(receiver)),
		logger.Signal(signal),
		slog.String("key", key.String()))
}

// Resolve returns every receiver matching an emission of signal from key,
// where key is a sender or a channel.
//
// An Anonymous key is resolved as Wildcard. Exact matches precede wildcard
// matches in both dimensions, so the result is ordered as
// (signal, key), (signal, any), (any, key), (any, any), each group in
// registration order. A Wildcard signal or key visits every registered bucket
// in first-registration order.
func (r *Registry) Resolve(signal, key Key) []Receiver {
	if key.IsAnonymous() {
		key = Wildcard
	}

	r.mu.RLock()
	var buckets []*keyBucket
	if signal.IsWildcard() {
		for _, s := range r.order {
			buckets = append(buckets, r.signals[s])
		}
	} else {
		if b, ok := r.signals[signal]; ok {
			buckets = append(buckets, b)
		}
		if b, ok := r.signals[Wildcard]; ok {
			buckets = append(buckets, b)
		}
	}

	var receivers []Receiver
	for _, b := range buckets {
		if key.IsWildcard() {
			for _, k := range b.order {
				receivers = append(receivers, b.receivers[k]...)
			}
			continue
		}
		receivers = append(receivers, b.receivers[key]...)
		receivers = append(receivers, b.receivers[Wildcard]...)
	}
	r.mu.RUnlock()

	if len(receivers) == 0 && !signal.IsWildcard() {
		r.logger.Warn("no receivers found",
			logger.Signal(signal),
			slog.String("key", key.String()))
	}

	return receivers
}

// Connection describes the receivers registered for one (signal, key) pair.
type Connection struct {
	Signal    Key
	Key       Key
	Receivers []string
}

// Connections returns a snapshot of the registry in registration order.
func (r *Registry) Connections() []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Connection
	for _, s := range r.order {
		b := r.signals[s]
		for _, k := range b.order {
			names := make([]string, 0, len(b.receivers[k]))
			for _, rcv := range b.receivers[k] {
				names = append(names, ReceiverName(rcv))
			}
			out = append(out, Connection{Signal: s, Key: k, Receivers: names})
		}
	}
	return out
}

// Len returns the total number of registered connections, duplicates included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.signals {
		for _, rs := range b.receivers {
			n += len(rs)
		}
	}
	return n
}
