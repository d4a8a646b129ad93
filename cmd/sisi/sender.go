package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/signals/core/signals"
)

type demoSender struct {
	name string
	d    *signals.Dispatcher
	out  io.Writer
}

func (s *demoSender) String() string {
	return "sender(" + s.name + ")"
}

func (s *demoSender) sendSimpleSignal(ctx context.Context) error {
	fmt.Fprintln(s.out, "[SENDER] send simple signal")
	if err := s.d.Send(ctx, "simple signal", nil, signals.SentBy(s)); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "[SENDER] send simple signal anonymously")
	if err := s.d.Send(ctx, "simple signal", nil); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "[SENDER] send simple signal with an invalid sender")
	return s.d.Send(ctx, "simple signal", nil, signals.SentBy(signals.Wildcard))
}

func (s *demoSender) sendPosArgsSignal(ctx context.Context) error {
	fmt.Fprintln(s.out, "[SENDER] send pos args signal with two args")
	return s.d.Send(ctx, "pos args", signals.Payload{"arg1": "A", "arg2": "B"}, signals.SentBy(s))
}

func (s *demoSender) sendKeyArgsSignal(ctx context.Context) error {
	fmt.Fprintln(s.out, "[SENDER] send key args signal with no args")
	err := s.d.Send(ctx, "key args", nil, signals.SentBy(s))
	if !errors.Is(err, signals.ErrMissingArgument) {
		return fmt.Errorf("expected a missing argument error, got %v", err)
	}
	fmt.Fprintf(s.out, "As expected: %v\n\n", err)

	fmt.Fprintln(s.out, "[SENDER] send key args signal with one custom arg")
	if err := s.d.Send(ctx, "key args", signals.Payload{"kwarg1": "C"}, signals.SentBy(s)); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "[SENDER] send key args signal with three custom args")
	return s.d.Send(ctx, "key args",
		signals.Payload{"kwarg2": "A", "kwarg3": "B", "kwarg1": "C"},
		signals.SentBy(s))
}
