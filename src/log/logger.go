// MIT License
//
// # Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/log/logger.go
package logger

import (
	"bytes"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level of the log message.
type LogLevel int

// Log level constants starting from 0 with iota.
const (
	DEBUG LogLevel = iota // Detailed debug information.
	INFO                  // General informational messages.
	WARN                  // Warnings about potential issues.
	ERROR                 // Error messages.
)

func (lvl LogLevel) zapLevel() zapcore.Level {
	switch lvl {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LogBuffer is a thread-safe bytes.Buffer that mirrors everything
// written to stdout, so tests and operators can retrieve recent log
// output with GetLogs without re-parsing stdout.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (l *LogBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

// String returns the current contents of the buffer.
func (l *LogBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// atom is the dynamic level shared by every derived logger, so SetLevel
// changes verbosity for all subsequent calls without rebuilding core.
var atom = zap.NewAtomicLevel()

var buffer = &LogBuffer{}

var base = newBase()

var sugar = base.Sugar()

func newBase() *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(buffer)),
		atom,
	)
	return zap.New(core)
}

// SetLevel sets the global logging level. Messages below this level
// will be ignored.
func SetLevel(lvl LogLevel) {
	atom.SetLevel(lvl.zapLevel())
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) { sugar.Infof(format, args...) }

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) { sugar.Warnf(format, args...) }

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }

// Fatalf logs a formatted message at zap's fatal level (above ERROR) and
// then terminates the program.
func Fatalf(format string, args ...any) { sugar.Fatalf(format, args...) }

// Debug logs a DEBUG level message.
func Debug(format string, args ...any) { sugar.Debugf(format, args...) }

// Info logs an INFO level message.
func Info(format string, args ...any) { sugar.Infof(format, args...) }

// Warn logs a WARN level message.
func Warn(format string, args ...any) { sugar.Warnf(format, args...) }

// Error logs an ERROR level message.
func Error(format string, args ...any) { sugar.Errorf(format, args...) }

// With returns a child logger carrying the given structured fields, for
// call sites that want zap's structured form instead of the printf-style
// helpers above.
func With(fields ...zap.Field) *zap.Logger {
	return base.With(fields...)
}

// Sync flushes any buffered log entries. Callers should defer it from
// main.
func Sync() error {
	return base.Sync()
}

// GetLogs returns the log content accumulated in the in-memory buffer.
func GetLogs() string {
	return buffer.String()
}
