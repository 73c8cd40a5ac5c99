package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key–value args are attached as
// fields; a trailing key without a value is stored under "!BADKEY" the same
// way slog does it.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(w io.Writer, level string) *ZerologLogger {
	l := zerolog.New(w).
		Level(zerologLevel(level)).
		With().
		Timestamp().
		Logger()
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(pairs(args)).Logger()}
}

func (z *ZerologLogger) emit(e *zerolog.Event, msg string, args []any) {
	// nil when the level is disabled
	if e == nil {
		return
	}
	e.Fields(pairs(args)).Msg(msg)
}

func pairs(args []any) map[string]any {
	m := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			m["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			m[key] = err.Error()
			continue
		}
		m[key] = args[i+1]
	}
	return m
}

func zerologLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
