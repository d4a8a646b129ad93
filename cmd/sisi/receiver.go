package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrymomot/signals/core/signals"
)

// demoReceiver handles the demo signals. AutoConnect picks up every On* method.
type demoReceiver struct {
	out io.Writer
}

type simpleSignal struct {
	Sender any `signal:"sender"`
}

func (r *demoReceiver) OnSimpleSignal(ctx context.Context, in simpleSignal) error {
	fmt.Fprintf(r.out, "[RECEIVER] received %q signal from %v\n\n", signals.SignalFrom(ctx), in.Sender)
	return nil
}

type posArgs struct {
	Sender any `signal:"sender"`
	Arg1   any `signal:"arg1"`
	Arg2   any `signal:"arg2"`
}

func (r *demoReceiver) OnPosArgs(ctx context.Context, in posArgs) error {
	fmt.Fprintf(r.out, "[RECEIVER] received %q signal from %v\n", signals.SignalFrom(ctx), in.Sender)
	fmt.Fprintln(r.out, "args received:", in.Arg1, in.Arg2)
	fmt.Fprintln(r.out)
	return nil
}

type keyArgs struct {
	Sender any            `signal:"sender"`
	Kwarg1 string         `signal:"kwarg1"`
	Rest   map[string]any `signal:",rest"`
}

func (r *demoReceiver) OnKeyArgs(ctx context.Context, in keyArgs) error {
	fmt.Fprintf(r.out, "[RECEIVER] received %q signal from %v\n", signals.SignalFrom(ctx), in.Sender)
	fmt.Fprintln(r.out, "args received:")
	fmt.Fprintln(r.out, "kwarg1:", in.Kwarg1)
	fmt.Fprintln(r.out, "rest:", in.Rest)
	fmt.Fprintln(r.out)
	return nil
}
