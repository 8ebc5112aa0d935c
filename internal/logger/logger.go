// Package logger holds the process-wide zap logger. It is silent until
// --verbose turns it on, after which lines go to stderr as
// "[LEVEL] name msg {fields}".
//
// Core services use the printf helpers. Adapters that attach fields take
// a named logger from L.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type state struct {
	verbose bool
	out     io.Writer
	log     *zap.Logger
}

var (
	mu  sync.RWMutex
	cur = state{out: os.Stderr, log: zap.NewNop()}
)

// SetVerbose switches debug output on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	cur.verbose = v
	cur.log = build(cur)
}

// IsVerbose reports whether debug output is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cur.verbose
}

// SetOutput redirects log lines, for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	cur.out = w
	cur.log = build(cur)
}

// L returns the current logger. Fetch it per use: SetVerbose replaces it.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return cur.log
}

// Debug logs a formatted debug line.
func Debug(format string, args ...any) { L().Sugar().Debugf(format, args...) }

// Info logs a formatted info line.
func Info(format string, args ...any) { L().Sugar().Infof(format, args...) }

// Warn logs a formatted warning.
func Warn(format string, args ...any) { L().Sugar().Warnf(format, args...) }

func build(s state) *zap.Logger {
	if !s.verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString("[" + l.CapitalString() + "]") },
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(s.out)), zapcore.DebugLevel))
}
