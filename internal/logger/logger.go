package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

type Options struct {
	Development bool
	AppName     string
	Environment string
	SentryDSN   string // optional; errors are forwarded when set

	Output io.Writer // defaults to stdout
}

// New builds a logger from opts.
// Development: Text format with Debug level
// Production: JSON format with Info level
// The returned flush func drains buffered Sentry events and is safe to call
// when Sentry is disabled.
func New(opts Options) (*slog.Logger, func()) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handlers []slog.Handler
	if opts.Development {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	flush := func() {}

	// Sentry only receives errors
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			Environment:      opts.Environment,
			ServerName:       opts.AppName,
			TracesSampleRate: 0.2,
		})
		if err != nil {
			slog.New(handlers[0]).Warn("sentry disabled", "error", err)
		} else {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	log := slog.New(handler)
	if opts.AppName != "" {
		log = log.With("app", opts.AppName)
	}

	return log, flush
}

// Init builds the logger and installs it as the slog default.
func Init(opts Options) func() {
	log, flush := New(opts)
	Log = log
	slog.SetDefault(log)
	return flush
}
