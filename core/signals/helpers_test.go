package signals_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/signals/core/signals"
)

// callLog records receiver calls in order.
type callLog struct {
	mu       sync.Mutex
	calls    []string
	payloads []signals.Payload
}

func (l *callLog) receiver(name string) signals.Receiver {
	return signals.Named(name, signals.ReceiverFunc(func(ctx context.Context, payload signals.Payload) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.calls = append(l.calls, name)
		l.payloads = append(l.payloads, payload)
		return nil
	}))
}

func (l *callLog) failing(name string, err error) signals.Receiver {
	return signals.Named(name, signals.ReceiverFunc(func(ctx context.Context, payload signals.Payload) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.calls = append(l.calls, name)
		return err
	}))
}

func (l *callLog) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (l *callLog) last() signals.Payload {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.payloads) == 0 {
		return nil
	}
	return l.payloads[len(l.payloads)-1]
}

func (l *callLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
	l.payloads = nil
}

func receiverNames(rs []signals.Receiver) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, signals.ReceiverName(r))
	}
	return out
}

// syncBuffer is a bytes.Buffer safe for use as a log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type sender struct {
	name string
}

func (s *sender) String() string { return s.name }
