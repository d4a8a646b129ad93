package signals

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/signals/core/logger"
)

// DefaultMethodPrefix marks the methods AutoConnect turns into receivers.
const DefaultMethodPrefix = "On"

// AutoOption configures AutoConnect.
type AutoOption func(*autoConfig)

type autoConfig struct {
	prefix   string
	senders  map[string][]any
	channels map[string][]any
}

// WithMethodPrefix changes the method name prefix. Default is "On".
func WithMethodPrefix(prefix string) AutoOption {
	return func(c *autoConfig) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithSenders restricts signals to specific senders, keyed by signal name.
func WithSenders(senders map[string][]any) AutoOption {
	return func(c *autoConfig) {
		c.senders = senders
	}
}

// WithChannels connects signals to specific channels, keyed by signal name.
func WithChannels(channels map[string][]any) AutoOption {
	return func(c *autoConfig) {
		c.channels = channels
	}
}

// AutoConnect connects every exported method of target whose name starts with
// the prefix. The rest of the method name becomes the signal name:
// OnKeyArgs handles "key args".
//
// Methods must look like func(context.Context, Payload) error or
// func(context.Context, T) error where T is a struct bound as in BindStruct.
// Prefixed methods of any other shape are skipped.
//
// Each method is connected to every sender listed for its signal in
// WithSenders and every channel listed in WithChannels; with neither, it is
// connected to any sender.
//
// Example:
//
//	type Audit struct{}
//
//	func (Audit) OnUserCreated(ctx context.Context, in struct {
//	    Sender any    `signal:"sender"`
//	    Email  string `signal:"email"`
//	}) error {
//	    return nil
//	}
//
//	err := signals.AutoConnect(d, Audit{})
func AutoConnect(d *Dispatcher, target any, opts ...AutoOption) error {
	cfg := autoConfig{prefix: DefaultMethodPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}

	if target == nil {
		return fmt.Errorf("%w: auto-connect target is nil", ErrInvalidArgument)
	}

	v := reflect.ValueOf(target)
	t := v.Type()
	typeName := t.String()

	var errs []error
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		signal, ok := signalFromMethod(cfg.prefix, method.Name)
		if !ok {
			continue
		}

		name := typeName + "." + method.Name
		receiver, err := bindMethod(name, v.Method(i))
		if err != nil {
			d.logger.Debug("method skipped",
				slog.String("method", name),
				logger.Error(err))
			continue
		}

		senders := cfg.senders[signal]
		channels := cfg.channels[signal]

		for _, sender := range senders {
			errs = append(errs, d.Connect(receiver, OnSignal(signal), FromSender(sender)))
		}
		for _, channel := range channels {
			errs = append(errs, d.Connect(receiver, OnSignal(signal), OnChannel(channel)))
		}
		if len(senders) == 0 && len(channels) == 0 {
			errs = append(errs, d.Connect(receiver, OnSignal(signal)))
		}
	}

	if err := errors.Join(errs...); err != nil {
		d.logger.Warn("auto-connect incomplete",
			slog.String("target", typeName),
			logger.Errors(errs...))
		return err
	}
	return nil
}

// signalFromMethod derives the signal name from a method name:
// OnKeyArgs -> "key args". The prefix must be followed by an upper-case letter.
func signalFromMethod(prefix, method string) (string, bool) {
	rest, ok := strings.CutPrefix(method, prefix)
	if !ok || rest == "" {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(r) {
		return "", false
	}
	return strings.ReplaceAll(snakeCase(rest), "_", " "), true
}
