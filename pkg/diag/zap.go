package diag

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapSink writes events to logger. Event fields become zap fields sorted
// by key.
func NewZapSink(logger *zap.Logger) Sink {
	if logger == nil {
		return Nop
	}
	return SinkFunc(func(event Event) {
		fields := make([]zap.Field, 0, len(event.Fields)+1)
		if event.Code != "" {
			fields = append(fields, zap.String("code", event.Code))
		}
		keys := make([]string, 0, len(event.Fields))
		for key := range event.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fields = append(fields, zap.Any(key, event.Fields[key]))
		}
		if ce := logger.Check(zapLevel(event.Level), event.Message); ce != nil {
			ce.Write(fields...)
		}
	})
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
