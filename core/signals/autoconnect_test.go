package signals_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrymomot/signals/core/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyArgs struct {
	Sender any            `signal:"sender"`
	Kwarg1 string         `signal:"kwarg1"`
	Rest   map[string]any `signal:",rest"`
}

type autoReceiver struct {
	calls []string
	last  keyArgs
}

func (r *autoReceiver) OnSimpleSignal(ctx context.Context, p signals.Payload) error {
	r.calls = append(r.calls, "simple signal")
	return nil
}

func (r *autoReceiver) OnKeyArgs(ctx context.Context, in keyArgs) error {
	r.calls = append(r.calls, "key args")
	r.last = in
	return nil
}

// Wrong shape, skipped.
func (r *autoReceiver) OnIgnored(s string) {}

// Prefix not followed by an upper-case letter, skipped.
func (r *autoReceiver) Once(ctx context.Context, p signals.Payload) error { return nil }

func (r *autoReceiver) HandleCustom(ctx context.Context, p signals.Payload) error {
	r.calls = append(r.calls, "custom")
	return nil
}

func TestAutoConnect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("connects prefixed methods to any sender", func(t *testing.T) {
		t.Parallel()
		d := signals.New()
		r := &autoReceiver{}

		require.NoError(t, signals.AutoConnect(d, r))

		var got []string
		for _, c := range d.Connections() {
			got = append(got, c.Signal.String())
			assert.Equal(t, signals.Wildcard, c.Key)
		}
		assert.ElementsMatch(t, []string{"simple signal", "key args"}, got)

		require.NoError(t, d.Send(ctx, "simple signal", nil))
		require.NoError(t, d.Send(ctx, "key args", signals.Payload{"kwarg1": "C", "kwarg2": "A"}, signals.SentBy("S")))
		assert.Equal(t, []string{"simple signal", "key args"}, r.calls)
		assert.Equal(t, "S", r.last.Sender)
		assert.Equal(t, "C", r.last.Kwarg1)
		assert.Equal(t, map[string]any{"kwarg2": "A"}, r.last.Rest)
	})

	t.Run("missing argument surfaces from send", func(t *testing.T) {
		t.Parallel()
		d := signals.New()
		require.NoError(t, signals.AutoConnect(d, &autoReceiver{}))

		err := d.Send(ctx, "key args", nil)
		require.ErrorIs(t, err, signals.ErrMissingArgument)
		assert.Contains(t, err.Error(), "OnKeyArgs")
	})

	t.Run("senders and channels", func(t *testing.T) {
		t.Parallel()
		d := signals.New()
		r := &autoReceiver{}

		require.NoError(t, signals.AutoConnect(d, r,
			signals.WithSenders(map[string][]any{"simple signal": {"A", "B"}}),
			signals.WithChannels(map[string][]any{"key args": {"news"}}),
		))
		assert.Len(t, d.Connections(), 3)

		require.NoError(t, d.Send(ctx, "simple signal", nil, signals.SentBy("C")))
		assert.Empty(t, r.calls)

		require.NoError(t, d.Send(ctx, "simple signal", nil, signals.SentBy("B")))
		require.NoError(t, d.Send(ctx, "key args", signals.Payload{"kwarg1": "x"}, signals.ToChannel("news")))
		assert.Equal(t, []string{"simple signal", "key args"}, r.calls)
	})

	t.Run("custom prefix", func(t *testing.T) {
		t.Parallel()
		d := signals.New()
		r := &autoReceiver{}

		require.NoError(t, signals.AutoConnect(d, r, signals.WithMethodPrefix("Handle")))
		conns := d.Connections()
		require.Len(t, conns, 1)
		assert.Equal(t, signals.KeyOf("custom"), conns[0].Signal)
		assert.True(t, strings.HasSuffix(conns[0].Receivers[0], "HandleCustom"))
	})

	t.Run("nil target", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, signals.AutoConnect(signals.New(), nil), signals.ErrInvalidArgument)
	})

	t.Run("invalid sender is reported", func(t *testing.T) {
		t.Parallel()
		log, buf := newTestLogger()
		d := signals.New(signals.WithLogger(log))
		err := signals.AutoConnect(d, &autoReceiver{},
			signals.WithSenders(map[string][]any{"simple signal": {nil}}))
		assert.ErrorIs(t, err, signals.ErrInvalidArgument)
		assert.Len(t, d.Connections(), 1)
		assert.Contains(t, buf.String(), "auto-connect incomplete")
		assert.Contains(t, buf.String(), "errors.")
	})
}
