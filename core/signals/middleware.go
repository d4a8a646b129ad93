package signals

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/signals/core/logger"
)

// Middleware wraps a Receiver to add cross-cutting behaviour.
type Middleware func(Receiver) Receiver

// middlewareReceiver keeps the wrapped receiver's name visible to logs.
type middlewareReceiver struct {
	name string
	fn   func(ctx context.Context, payload Payload) error
}

func (r *middlewareReceiver) Name() string {
	return r.name
}

func (r *middlewareReceiver) Receive(ctx context.Context, payload Payload) error {
	return r.fn(ctx, payload)
}

// chainMiddleware applies middleware so the first one becomes the outermost wrapper.
func chainMiddleware(r Receiver, middleware []Middleware) Receiver {
	for i := len(middleware) - 1; i >= 0; i-- {
		r = middleware[i](r)
	}
	return r
}

// LoggingMiddleware logs receiver execution with timing.
//
// Example:
//
//	d := signals.New(
//	    signals.WithMiddleware(signals.LoggingMiddleware(logger)),
//	)
func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(next Receiver) Receiver {
		name := ReceiverName(next)
		return &middlewareReceiver{
			name: name,
			fn: func(ctx context.Context, payload Payload) error {
				start := time.Now()
				log.DebugContext(ctx, "receiver started",
					logger.Receiver(name),
					logger.Signal(SignalFrom(ctx)))

				err := next.Receive(ctx, payload)
				duration := time.Since(start)

				if err != nil {
					log.ErrorContext(ctx, "receiver failed",
						logger.Receiver(name),
						logger.Signal(SignalFrom(ctx)),
						logger.Duration(duration),
						logger.Result("failure"),
						logger.Error(err))
				} else {
					log.DebugContext(ctx, "receiver completed",
						logger.Receiver(name),
						logger.Signal(SignalFrom(ctx)),
						logger.Duration(duration),
						logger.Result("success"))
				}

				return err
			},
		}
	}
}
