package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the zerolog output.
type Config struct {
	Level  string    // debug, info, warn, error; default info
	Format string    // console or json; default console
	Out    io.Writer // default os.Stderr
}

// ZerologAdapter implements Logger using zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerolog builds a zerolog-backed Logger from cfg.
func NewZerolog(cfg Config) (*ZerologAdapter, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return nil, fmt.Errorf("unsupported log format %q (must be console or json)", cfg.Format)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &ZerologAdapter{logger: logger}, nil
}

// NewZerologAdapterWithLogger creates an adapter wrapping an existing zerolog.Logger.
func NewZerologAdapterWithLogger(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// ParseLevel maps a level name to a zerolog level. The empty string is info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "off", "disabled":
		return zerolog.Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) { emit(z.logger.Debug(), msg, fields) }
func (z *ZerologAdapter) Info(msg string, fields ...Field)  { emit(z.logger.Info(), msg, fields) }
func (z *ZerologAdapter) Warn(msg string, fields ...Field)  { emit(z.logger.Warn(), msg, fields) }
func (z *ZerologAdapter) Error(msg string, fields ...Field) { emit(z.logger.Error(), msg, fields) }

// Logger returns the underlying zerolog.Logger.
func (z *ZerologAdapter) Logger() zerolog.Logger {
	return z.logger
}

func emit(event *zerolog.Event, msg string, fields []Field) {
	if event == nil {
		return
	}
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// addField adds a Field to a zerolog.Event.
func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case []string:
		return event.Strs(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case uint64:
		return event.Uint64(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case time.Duration:
		return event.Dur(f.Key, v)
	case error:
		return event.AnErr(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}
