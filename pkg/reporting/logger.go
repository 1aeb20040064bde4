package reporting

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel names a logging threshold.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects between machine-readable and console output.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// LoggerConfig configures the fuzz run's diagnostic logger.
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// Logger carries run progress and IO diagnostics. Differential findings
// never go through it: those are structured Problem records (pkg/oracle),
// aggregated and rendered by the problem table instead.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger builds a Logger writing to cfg.Output (stderr when nil), as
// console text or JSON lines per cfg.Format.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == LogFormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(string(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return &Logger{zl: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// Debug logs at debug level with alternating key/value fields.
func (l *Logger) Debug(msg string, kv ...interface{}) { emit(l.zl.Debug(), msg, kv) }

// Info logs at info level with alternating key/value fields.
func (l *Logger) Info(msg string, kv ...interface{}) { emit(l.zl.Info(), msg, kv) }

// Warn logs at warn level with alternating key/value fields.
func (l *Logger) Warn(msg string, kv ...interface{}) { emit(l.zl.Warn(), msg, kv) }

// Error logs at error level with alternating key/value fields.
func (l *Logger) Error(msg string, kv ...interface{}) { emit(l.zl.Error(), msg, kv) }

func emit(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
