// Package signals provides an in-process publish/subscribe dispatcher.
// Producers send named signals, optionally tagged with a sender or a channel,
// and receivers registered for a matching combination of signal, sender and
// channel are called synchronously with a keyword payload.
//
// # Core Components
//
// Key identifies a signal, a sender or a channel. Besides concrete values it
// has two sentinels: Wildcard matches any concrete value in its slot and
// Anonymous is the sender of signals sent without one.
//
// Registry maps signals and senders (or channels) to ordered receiver lists
// and resolves an emission against exact and wildcard registrations.
//
// Dispatcher validates Connect calls and orchestrates Send: it resolves the
// receivers, adds sender and channel to the payload and calls every receiver
// in order.
//
// Bind and BindStruct build receivers that declare only the payload entries
// they consume. The declaration is checked once, when the receiver is built.
//
// # Basic Usage
//
//	d := signals.New(signals.WithLogger(logger))
//
//	onKeyArgs := signals.MustBind(func(ctx context.Context, args signals.Args) error {
//		fmt.Println("from", args.Get("sender"), "kwarg1:", args.Get("kwarg1"), "rest:", args.Rest())
//		return nil
//	}, signals.Arg("sender"), signals.Arg("kwarg1"), signals.Rest("kwargs"))
//
//	if err := d.Connect(onKeyArgs, signals.OnSignal("key args")); err != nil {
//		return err
//	}
//
//	err := d.Send(ctx, "key args", signals.Payload{"kwarg1": "C", "kwarg2": "A"},
//		signals.SentBy(sender))
//
// # Resolution Order
//
// For a concrete signal S sent by sender A, receivers are called in this order,
// each group in registration order:
//
//	(S, A)  (S, any)  (any, A)  (any, any)
//
// A signal sent anonymously reaches every receiver of S, whatever sender they
// registered for. A Wildcard signal reaches every registered signal.
//
// # Channels
//
// A channel takes the place of the sender as the second matching key:
//
//	d.Connect(r, signals.OnSignal("news"), signals.OnChannel("sports"))
//	d.Send(ctx, "news", payload, signals.ToChannel("sports"), signals.SentBy(editor))
//
// The sender is still forwarded in the payload.
//
// # Typed Receivers
//
// BindStruct decodes the payload into a struct. Fields are matched by the
// `signal` tag or the snake_case field name:
//
//	type KeyArgs struct {
//		Sender any            `signal:"sender"`
//		Kwarg1 string         `signal:"kwarg1"`
//		Note   string         `signal:"note,optional"`
//		Extra  map[string]any `signal:",rest"`
//	}
//
//	r := signals.MustBindStruct(func(ctx context.Context, in KeyArgs) error {
//		return nil
//	})
//
// # Error Handling
//
// Connect returns ErrInvalidArgument for nil receivers, an explicitly nil
// sender or keys that cannot be compared. During Send, a receiver missing a
// required entry fails with a *MissingArgumentError (errors.Is
// ErrMissingArgument). The first receiver error stops delivery and is returned
// to the caller of Send.
//
// Unknown signals, empty resolutions and a Wildcard used as sender are logged
// as warnings; they never fail an operation.
//
// # Concurrency
//
// Send runs every receiver to completion in the caller's goroutine. The
// registry and name sets are guarded by locks, and receivers may connect new
// receivers while a signal is being delivered; those are picked up by the
// next Send.
package signals
