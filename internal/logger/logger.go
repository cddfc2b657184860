package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the process logger. format "console" selects a human
// readable encoder; anything else logs JSON lines to stdout.
func Init(level string, format string) {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if format == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	log = zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl))
	log.Info("logger initialized", zap.String("level", lvl.String()))
}

// Zap returns the underlying logger.
func Zap() *zap.Logger {
	return log
}

// Sync flushes buffered entries.
func Sync() {
	_ = log.Sync()
}

func toFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func Debug(msg string, fields map[string]any) {
	log.Debug(msg, toFields(fields)...)
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, toFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, toFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, toFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, toFields(fields)...)
}
