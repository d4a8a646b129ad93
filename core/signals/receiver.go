package signals

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"runtime"
	"strings"
)

// Payload is the keyword data sent with a signal. Each receiver consumes the
// subset of entries it declares.
type Payload map[string]any

// Clone returns a shallow copy of p. A nil payload clones to an empty one.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p)+2)
	maps.Copy(out, p)
	return out
}

// Receiver is invoked for every signal it is connected to.
// Use Bind or BindStruct to build receivers that consume only part of the payload.
type Receiver interface {
	Receive(ctx context.Context, payload Payload) error
}

// ReceiverFunc adapts a plain function to the Receiver interface.
// The function gets the full payload, including sender and channel.
type ReceiverFunc func(ctx context.Context, payload Payload) error

// Receive calls f(ctx, payload).
func (f ReceiverFunc) Receive(ctx context.Context, payload Payload) error {
	return f(ctx, payload)
}

// namedReceiver attaches a display name used in logs and errors.
type namedReceiver struct {
	name string
	next Receiver
}

func (r *namedReceiver) Name() string { return r.name }

func (r *namedReceiver) Receive(ctx context.Context, payload Payload) error {
	return r.next.Receive(ctx, payload)
}

// Named wraps r so that ReceiverName reports name.
//
// Example:
//
//	d.Connect(signals.Named("audit", auditReceiver), signals.OnSignal("user created"))
func Named(name string, r Receiver) Receiver {
	return &namedReceiver{name: name, next: r}
}

// ReceiverName returns a human readable name for r. Receivers that implement
// Name() string report that name, functions report their symbol name.
func ReceiverName(r Receiver) string {
	if r == nil {
		return "<nil>"
	}
	if n, ok := r.(interface{ Name() string }); ok {
		return n.Name()
	}
	if f, ok := r.(ReceiverFunc); ok {
		return funcName(f)
	}
	return fmt.Sprintf("%T", r)
}

// funcName resolves the symbol name of a function value.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Sprintf("%T", fn)
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return fmt.Sprintf("%T", fn)
	}
	name := rf.Name()
	// Trim the import path, keep package.Func.
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// isNilReceiver reports whether r cannot be called: a nil interface, a
// typed nil function or pointer, or a Named wrapper around one of those.
func isNilReceiver(r Receiver) bool {
	if r == nil {
		return true
	}
	if n, ok := r.(*namedReceiver); ok {
		return n == nil || isNilReceiver(n.next)
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Invoke calls r with payload through the middleware chain. It is the safe
// call used by Dispatcher.Send: bound receivers check their own arguments, so
// a missing parameter surfaces here as a *MissingArgumentError.
func Invoke(ctx context.Context, r Receiver, payload Payload, middleware ...Middleware) error {
	if isNilReceiver(r) {
		return fmt.Errorf("%w: receiver is nil", ErrInvalidArgument)
	}
	return chainMiddleware(r, middleware).Receive(ctx, payload)
}
