package signals_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrymomot/signals/core/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("logs start and completion", func(t *testing.T) {
		t.Parallel()
		log, buf := newTestLogger()
		var l callLog

		d := signals.New(signals.WithMiddleware(signals.LoggingMiddleware(log)))
		require.NoError(t, d.Connect(l.receiver("audit"), signals.OnSignal("user created")))
		require.NoError(t, d.Send(context.Background(), "user created", nil))

		out := buf.String()
		assert.Contains(t, out, "receiver started")
		assert.Contains(t, out, "receiver completed")
		assert.Contains(t, out, "receiver=audit")
		assert.Contains(t, out, `signal="user created"`)
		assert.Contains(t, out, "result=success")
		assert.NotContains(t, out, "receiver failed")
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()
		log, buf := newTestLogger()
		var l callLog
		boom := errors.New("boom")

		d := signals.New(signals.WithMiddleware(signals.LoggingMiddleware(log)))
		require.NoError(t, d.Connect(l.failing("audit", boom), signals.OnSignal("S")))

		err := d.Send(context.Background(), "S", nil)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, buf.String(), "receiver failed")
		assert.Contains(t, buf.String(), "error=boom")
		assert.Contains(t, buf.String(), "result=failure")
	})

	t.Run("keeps the receiver name", func(t *testing.T) {
		t.Parallel()
		log, _ := newTestLogger()
		var l callLog

		wrapped := signals.LoggingMiddleware(log)(l.receiver("audit"))
		assert.Equal(t, "audit", signals.ReceiverName(wrapped))
	})
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()
		err := signals.Invoke(context.Background(), nil, signals.Payload{})
		assert.ErrorIs(t, err, signals.ErrInvalidArgument)

		err = signals.Invoke(context.Background(), signals.Named("ghost", nil), signals.Payload{})
		assert.ErrorIs(t, err, signals.ErrInvalidArgument)
	})

	t.Run("applies middleware", func(t *testing.T) {
		t.Parallel()
		var l callLog
		tag := func(next signals.Receiver) signals.Receiver {
			return signals.ReceiverFunc(func(ctx context.Context, p signals.Payload) error {
				p["tagged"] = true
				return next.Receive(ctx, p)
			})
		}

		require.NoError(t, signals.Invoke(context.Background(), l.receiver("r"), signals.Payload{}, tag))
		assert.Equal(t, true, l.last()["tagged"])
	})
}
