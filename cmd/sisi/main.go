package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/signals/core/config"
	"github.com/dmitrymomot/signals/core/logger"
	"github.com/dmitrymomot/signals/core/signals"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	known := signals.NewNames("simple signal", "pos args", "key args")
	log.Info("known signals", slog.Any("signals", known.List()))

	d := signals.New(
		signals.WithLogger(log),
		signals.WithKnownSignals(known),
		signals.WithMiddleware(signals.LoggingMiddleware(log)),
	)

	if err := signals.AutoConnect(d, &demoReceiver{out: os.Stdout}); err != nil {
		log.Error("Failed to connect receivers", logger.Component("autoconnect"), logger.Error(err))
		os.Exit(1)
	}

	sender := &demoSender{name: "testmsg", d: d, out: os.Stdout}

	os.Stdout.WriteString("\nStart signaling tests\n\n")
	for _, run := range []func(context.Context) error{
		sender.sendSimpleSignal,
		sender.sendPosArgsSignal,
		sender.sendKeyArgsSignal,
	} {
		if err := run(ctx); err != nil {
			log.Error("Signaling test failed", logger.Component("demo"), logger.Error(err))
			os.Exit(1)
		}
	}

	if err := d.Dump(os.Stdout); err != nil {
		log.Error("Failed to dump connections", logger.Error(err))
		os.Exit(1)
	}

	stats := d.Stats()
	log.Info("Done",
		logger.Count("signals_sent", int(stats.SignalsSent)),
		logger.Count("receivers_invoked", int(stats.ReceiversInvoked)),
		logger.Count("receivers_failed", int(stats.ReceiversFailed)),
	)
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			if id := signals.EmissionID(ctx); id != "" {
				return logger.EmissionID(id), true
			}
			return slog.Attr{}, false
		}),
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		opts = append(opts, logger.WithLevel(level))
	}
	switch cfg.LogFormat {
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	}
	return logger.New(opts...)
}
