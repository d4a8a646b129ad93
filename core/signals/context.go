package signals

import "context"

type emissionIDCtx struct{}

// WithEmissionID attaches an emission ID to the context.
func WithEmissionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, emissionIDCtx{}, id)
}

// EmissionID extracts the emission ID from the context.
// Returns empty string if not present.
func EmissionID(ctx context.Context) string {
	if id, ok := ctx.Value(emissionIDCtx{}).(string); ok {
		return id
	}
	return ""
}

type signalCtx struct{}

// WithSignal attaches the signal being delivered to the context.
func WithSignal(ctx context.Context, signal Key) context.Context {
	return context.WithValue(ctx, signalCtx{}, signal)
}

// SignalFrom extracts the signal from the context.
// Returns the None key if not present.
func SignalFrom(ctx context.Context) Key {
	if k, ok := ctx.Value(signalCtx{}).(Key); ok {
		return k
	}
	return Key{}
}

type senderCtx struct{}

// WithSender attaches the sender of the signal to the context.
func WithSender(ctx context.Context, sender Key) context.Context {
	return context.WithValue(ctx, senderCtx{}, sender)
}

// SenderFrom extracts the sender from the context.
// Returns the None key if not present.
func SenderFrom(ctx context.Context) Key {
	if k, ok := ctx.Value(senderCtx{}).(Key); ok {
		return k
	}
	return Key{}
}

type channelCtx struct{}

// WithChannel attaches the channel of the signal to the context.
func WithChannel(ctx context.Context, channel Key) context.Context {
	return context.WithValue(ctx, channelCtx{}, channel)
}

// ChannelFrom extracts the channel from the context.
// Returns the None key if the signal was not sent on a channel.
func ChannelFrom(ctx context.Context) Key {
	if k, ok := ctx.Value(channelCtx{}).(Key); ok {
		return k
	}
	return Key{}
}

// withEmissionMeta attaches all emission metadata to the context.
func withEmissionMeta(ctx context.Context, id string, signal, sender, channel Key) context.Context {
	ctx = WithEmissionID(ctx, id)
	ctx = WithSignal(ctx, signal)
	ctx = WithSender(ctx, sender)
	if !channel.IsNone() {
		ctx = WithChannel(ctx, channel)
	}
	return ctx
}
