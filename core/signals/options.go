package signals

import "log/slog"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures structured logging for dispatcher diagnostics.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithKnownSignals sets the known-signal set consulted for diagnostics.
// Without it no unknown-signal warnings are logged.
//
// Example:
//
//	known := signals.NewNames("user created", "user deleted")
//	d := signals.New(signals.WithKnownSignals(known))
func WithKnownSignals(names *Names) Option {
	return func(d *Dispatcher) {
		d.knownSignals = names
	}
}

// WithKnownChannels sets the known-channel set consulted for diagnostics.
func WithKnownChannels(names *Names) Option {
	return func(d *Dispatcher) {
		d.knownChannels = names
	}
}

// WithMiddleware sets middleware applied to every receiver invocation, in the
// order provided.
func WithMiddleware(middleware ...Middleware) Option {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, middleware...)
	}
}

// ConnectOption configures a Connect call.
type ConnectOption func(*connectConfig)

type connectConfig struct {
	signal  Key
	sender  Key
	channel Key
}

// OnSignal limits the connection to one signal. Default is Wildcard.
func OnSignal(signal any) ConnectOption {
	return func(c *connectConfig) {
		c.signal = KeyOf(signal)
	}
}

// FromSender limits the connection to one sender. Default is Wildcard.
// An explicit nil sender is rejected by Connect.
func FromSender(sender any) ConnectOption {
	return func(c *connectConfig) {
		c.sender = KeyOf(sender)
	}
}

// OnChannel connects to a channel instead of a sender. The sender, if any,
// is then ignored for matching.
func OnChannel(channel any) ConnectOption {
	return func(c *connectConfig) {
		c.channel = KeyOf(channel)
	}
}

// SendOption configures a Send call.
type SendOption func(*sendConfig)

type sendConfig struct {
	sender  Key
	channel Key
}

// SentBy sets the sender of the signal. Default is Anonymous.
func SentBy(sender any) SendOption {
	return func(c *sendConfig) {
		c.sender = KeyOf(sender)
	}
}

// ToChannel sends the signal on a channel. Matching then uses the channel
// instead of the sender, which is still forwarded in the payload.
func ToChannel(channel any) SendOption {
	return func(c *sendConfig) {
		c.channel = KeyOf(channel)
	}
}
