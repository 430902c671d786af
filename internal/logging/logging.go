package logging

import (
	"io"
	"time"

	"authors-probe/internal/config"

	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
)

var (
	sentryInit      = sentry.Init
	sentryFlush     = sentry.Flush
	newSentryWriter = sentryzerolog.NewWithHub
)

// NewLogger creates a zerolog logger writing to out: pretty console output in
// development, JSON plus a Sentry writer in production. The returned func flushes
// Sentry and must be called before the process exits.
func NewLogger(cfg *config.Config, out io.Writer) (zerolog.Logger, func()) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	if !cfg.IsEnvProd() {
		return consoleLogger(out, level), func() {}
	}

	logger := consoleLogger(out, level)
	if err := sentryInit(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.Version,
		AttachStacktrace: true,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Sentry, using console only")
		return logger, func() {}
	}

	// the writer shares the hub sentry.Init configured instead of building a
	// second client
	sentryWriter, err := newSentryWriter(sentry.CurrentHub(), sentryzerolog.Options{
		Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
		WithBreadcrumbs: true,
		FlushTimeout:    3 * time.Second,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Sentry writer, using console only")
		return logger, func() { sentryFlush(2 * time.Second) }
	}

	// Production: JSON output + Sentry writer
	multiWriter := zerolog.MultiLevelWriter(out, sentryWriter)
	logger = zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Caller().
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Logger()

	return logger, func() {
		sentryWriter.Close()
		sentryFlush(2 * time.Second)
	}
}

func consoleLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}
