package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

var Logger = zerolog.Nop()

// Init initializes the global logger
func Init(serviceName string, isDevelopment bool) zerolog.Logger {
	return InitWithWriter(os.Stdout, serviceName, isDevelopment)
}

// InitWithWriter is Init writing to out instead of stdout.
func InitWithWriter(out io.Writer, serviceName string, isDevelopment bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := out
	if isDevelopment {
		// Pretty print for development
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	// Set as global logger
	log.Logger = Logger
	return Logger
}

// WithContext returns a logger with trace information from context
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Logger.With().Logger()

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		l = l.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return &l
}

// SetLevel sets the global log level. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
