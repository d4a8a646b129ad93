package signals

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/dmitrymomot/signals/core/logger"
	"github.com/google/uuid"
)

// Dispatcher connects receivers to signals and delivers emitted signals to
// every matching receiver, synchronously and in resolution order.
//
// There is no process-wide dispatcher: create one with New and pass it to
// producers and consumers.
//
// Example:
//
//	d := signals.New(signals.WithLogger(logger))
//
//	d.Connect(signals.MustBind(onUserCreated, signals.Arg("sender"), signals.Arg("email")),
//	    signals.OnSignal("user created"))
//
//	err := d.Send(ctx, "user created", signals.Payload{"email": "user@example.com"},
//	    signals.SentBy(userService))
type Dispatcher struct {
	registry      *Registry
	knownSignals  *Names
	knownChannels *Names
	middleware    []Middleware
	logger        *slog.Logger

	signalsSent      atomic.Int64
	receiversInvoked atomic.Int64
	receiversFailed  atomic.Int64
}

// Stats provides delivery counters for observability and debugging.
type Stats struct {
	SignalsSent      int64
	ReceiversInvoked int64
	ReceiversFailed  int64
	Connections      int
}

// New creates a dispatcher with an empty registry.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.registry = NewRegistry(WithRegistryLogger(d.logger))
	return d
}

// Connect registers r for the signal, sender and channel selected by opts.
// Defaults are any signal, any sender and no channel.
//
// Connect fails with ErrInvalidArgument, registering nothing, when r is nil,
// when the sender is explicitly nil or when a key is nil or not comparable.
// When a channel is given the receiver is keyed by the channel; a non-wildcard
// sender is then ignored and a warning is logged.
func (d *Dispatcher) Connect(r Receiver, opts ...ConnectOption) error {
	cfg := connectConfig{signal: Wildcard, sender: Wildcard}
	for _, opt := range opts {
		opt(&cfg)
	}

	if isNilReceiver(r) {
		return fmt.Errorf("%w: receiver is not callable", ErrInvalidArgument)
	}
	if cfg.sender.IsNone() {
		return fmt.Errorf("%w: cannot connect to anonymous signals explicitly", ErrInvalidArgument)
	}
	if cfg.signal.IsNone() {
		return fmt.Errorf("%w: signal is nil", ErrInvalidArgument)
	}
	for _, k := range []Key{cfg.signal, cfg.sender, cfg.channel} {
		if err := k.validate(); err != nil {
			return err
		}
	}

	name := ReceiverName(r)
	key := cfg.sender
	if !cfg.channel.IsNone() {
		if !cfg.sender.IsWildcard() {
			d.logger.Warn("sender ignored, receiver connected to channel",
				logger.Receiver(name),
				logger.Signal(cfg.signal),
				logger.Channel(cfg.channel),
				logger.Sender(cfg.sender))
		}
		key = cfg.channel
	}

	if d.knownSignals != nil && !d.knownSignals.Contains(cfg.signal) {
		d.logger.Warn("connecting unknown signal",
			logger.Signal(cfg.signal),
			logger.Receiver(name))
	}
	if !cfg.channel.IsNone() && d.knownChannels != nil && !d.knownChannels.Contains(cfg.channel) {
		d.logger.Warn("connecting unknown channel",
			logger.Channel(cfg.channel),
			logger.Receiver(name))
	}

	d.registry.Connect(r, cfg.signal, key)
	return nil
}

// Send emits signal with payload and calls every matching receiver in
// resolution order, in the caller's goroutine.
//
// Each receiver gets its own copy of payload extended with "sender" and, when
// a channel is given, "channel". Concrete senders and channels are forwarded
// as their raw value, sentinels as the Key.
//
// The first receiver error stops delivery and is returned; later receivers are
// not called. Sending a signal nobody listens to is not an error. A Wildcard
// sender is logged and replaced with Anonymous.
func (d *Dispatcher) Send(ctx context.Context, signal any, payload Payload, opts ...SendOption) error {
	sig, cfg, err := d.prepareSend(signal, opts)
	if err != nil {
		return err
	}

	// Check if context is already cancelled before starting
	if err := ctx.Err(); err != nil {
		return err
	}

	if d.knownSignals != nil && !d.knownSignals.Contains(sig) {
		d.logger.WarnContext(ctx, "sending unknown signal",
			logger.Signal(sig),
			logger.Sender(cfg.sender))
	}
	if cfg.sender.IsWildcard() {
		d.logger.WarnContext(ctx, "wildcard is not a valid sender, the signal is sent anonymously instead",
			logger.Signal(sig))
		cfg.sender = Anonymous
	}

	id := uuid.New().String()
	d.logger.DebugContext(ctx, "sending signal",
		logger.EmissionID(id),
		logger.Signal(sig),
		logger.Sender(cfg.sender),
		logger.Channel(cfg.channel))

	receivers := d.registry.Resolve(sig, cfg.matchKey())

	out := payload.Clone()
	out["sender"] = cfg.sender.external()
	if !cfg.channel.IsNone() {
		out["channel"] = cfg.channel.external()
	}

	ctx = withEmissionMeta(ctx, id, sig, cfg.sender, cfg.channel)
	d.signalsSent.Add(1)

	for _, r := range receivers {
		d.receiversInvoked.Add(1)
		if err := Invoke(ctx, r, out.Clone(), d.middleware...); err != nil {
			d.receiversFailed.Add(1)
			return fmt.Errorf("signal %s: receiver %s: %w", sig, ReceiverName(r), err)
		}
	}

	return nil
}

// Receivers returns the receivers a Send with the same arguments would call,
// without calling them.
func (d *Dispatcher) Receivers(signal any, opts ...SendOption) ([]Receiver, error) {
	sig, cfg, err := d.prepareSend(signal, opts)
	if err != nil {
		return nil, err
	}
	if cfg.sender.IsWildcard() {
		cfg.sender = Anonymous
	}
	return d.registry.Resolve(sig, cfg.matchKey()), nil
}

func (d *Dispatcher) prepareSend(signal any, opts []SendOption) (Key, sendConfig, error) {
	sig := KeyOf(signal)
	if sig.IsNone() {
		return Key{}, sendConfig{}, fmt.Errorf("%w: signal is nil", ErrInvalidArgument)
	}

	cfg := sendConfig{sender: Anonymous}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sender.IsNone() {
		cfg.sender = Anonymous
	}

	for _, k := range []Key{sig, cfg.sender, cfg.channel} {
		if err := k.validate(); err != nil {
			return Key{}, sendConfig{}, err
		}
	}
	return sig, cfg, nil
}

// matchKey is the second registry key: the channel if set, else the sender.
func (c sendConfig) matchKey() Key {
	if !c.channel.IsNone() {
		return c.channel
	}
	return c.sender
}

// Connections returns a snapshot of the registered connections.
func (d *Dispatcher) Connections() []Connection {
	return d.registry.Connections()
}

// Dump writes the registered connections as a table, one row per
// (signal, sender or channel) pair.
func (d *Dispatcher) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGNAL\tSENDER/CHANNEL\tRECEIVERS")
	for _, c := range d.registry.Connections() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Signal, c.Key, strings.Join(c.Receivers, ", "))
	}
	return tw.Flush()
}

// Stats returns current delivery counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		SignalsSent:      d.signalsSent.Load(),
		ReceiversInvoked: d.receiversInvoked.Load(),
		ReceiversFailed:  d.receiversFailed.Load(),
		Connections:      d.registry.Len(),
	}
}
