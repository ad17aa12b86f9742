package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger wraps zerolog.Logger to implement the Logger interface.
type ZeroLogger struct {
	zlog   *zerolog.Logger
	redact *Redactor
}

var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger writing JSON to stdout at the given level.
// If pretty is true, output is formatted for human readability instead.
// Unknown levels fall back to info.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithWriter(level, pretty, os.Stdout)
}

// NewWithWriter is New with an explicit output writer, used mainly by tests.
func NewWithWriter(level string, pretty bool, out io.Writer) *ZeroLogger {
	var l zerolog.Logger
	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(out).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l, redact: NewRedactor(nil)}
}

// WithFields returns a logger with additional fields attached to all entries.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	if l.redact != nil {
		fields = l.redact.Fields(fields)
	}
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log, redact: l.redact}
}

// Debug creates a debug-level log event.
func (l *ZeroLogger) Debug() LogEvent {
	return &event{e: l.zlog.Debug(), redact: l.redact}
}

// Info creates an info-level log event.
func (l *ZeroLogger) Info() LogEvent {
	return &event{e: l.zlog.Info(), redact: l.redact}
}

// Warn creates a warn-level log event.
func (l *ZeroLogger) Warn() LogEvent {
	return &event{e: l.zlog.Warn(), redact: l.redact}
}

// Error creates an error-level log event.
func (l *ZeroLogger) Error() LogEvent {
	return &event{e: l.zlog.Error(), redact: l.redact}
}

// event adapts zerolog events to the LogEvent interface, applying redaction
// to string fields whose keys look sensitive.
type event struct {
	e      *zerolog.Event
	redact *Redactor
}

func (ev *event) Msg(msg string) {
	ev.e.Msg(msg)
}

func (ev *event) Msgf(format string, args ...any) {
	ev.e.Msg(fmt.Sprintf(format, args...))
}

func (ev *event) Err(err error) LogEvent {
	return &event{e: ev.e.Err(err), redact: ev.redact}
}

func (ev *event) Str(key, value string) LogEvent {
	if ev.redact != nil {
		value = ev.redact.Value(key, value)
	}
	return &event{e: ev.e.Str(key, value), redact: ev.redact}
}

func (ev *event) Int(key string, value int) LogEvent {
	return &event{e: ev.e.Int(key, value), redact: ev.redact}
}

func (ev *event) Int64(key string, value int64) LogEvent {
	return &event{e: ev.e.Int64(key, value), redact: ev.redact}
}

func (ev *event) Dur(key string, d time.Duration) LogEvent {
	return &event{e: ev.e.Dur(key, d), redact: ev.redact}
}

func (ev *event) Interface(key string, i any) LogEvent {
	if ev.redact != nil {
		i = ev.redact.Any(key, i)
	}
	return &event{e: ev.e.Interface(key, i), redact: ev.redact}
}

func (ev *event) Bytes(key string, val []byte) LogEvent {
	return &event{e: ev.e.Bytes(key, val), redact: ev.redact}
}
