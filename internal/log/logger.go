// Package log is the application logger. It wraps logrus behind a small
// package-level API so call sites stay terse.
package log

import (
	"io"
	"os"
	"sync/atomic"

	"darkarchiver/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to JSON formatted lines.
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile tees output to stdout and the file at path. Failure to open the
// file leaves output on stdout.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.base.WithError(err).Warn("could not open log file")
			return
		}
		l.file = f
		l.base.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// Logger is a configured logrus instance.
type Logger struct {
	base *logrus.Logger
	file *os.File
}

// NewLogger creates a text logger on stdout unless options say otherwise.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		DisableColors:    true,
		DisableQuote:     true,
		QuoteEmptyFields: true,
	})
	l := &Logger{base: base}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns an entry carrying fields.
func (l *Logger) With(fields ...Field) *Entry {
	return (&Entry{e: logrus.NewEntry(l.base)}).With(fields...)
}

func (l *Logger) Info(msg string)                           { l.With().Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.With().Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.With().Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.With().Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.With().Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.With().Errorf(format, args...) }
func (l *Logger) Debug(msg string)                          { l.With().Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.With().Debugf(format, args...) }

// Entry is a log line under construction.
type Entry struct {
	e *logrus.Entry
}

// With adds more fields.
func (e *Entry) With(fields ...Field) *Entry {
	if len(fields) == 0 {
		return e
	}
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return &Entry{e: e.e.WithFields(lf)}
}

func (e *Entry) Info(msg string)                           { e.e.Info(msg) }
func (e *Entry) Infof(format string, args ...interface{})  { e.e.Infof(format, args...) }
func (e *Entry) Warn(msg string)                           { e.e.Warn(msg) }
func (e *Entry) Warnf(format string, args ...interface{})  { e.e.Warnf(format, args...) }
func (e *Entry) Error(msg string)                          { e.e.Error(msg) }
func (e *Entry) Errorf(format string, args ...interface{}) { e.e.Errorf(format, args...) }

// Debug logs only when debug output is enabled.
func (e *Entry) Debug(msg string) {
	if isDebug.Load() {
		e.e.Debug(msg)
	}
}

// Debugf logs only when debug output is enabled.
func (e *Entry) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		e.e.Debugf(format, args...)
	}
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles debug lines for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// IsDebug reports whether debug lines are emitted.
func IsDebug() bool {
	return isDebug.Load()
}

func Info(msg string)                           { logger.Info(msg) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warn(msg string)                           { logger.Warn(msg) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Error(msg string)                          { logger.Error(msg) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
func Debug(msg string)                          { logger.Debug(msg) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// LogWithFields starts an entry on the package logger.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError starts an entry describing err, including its kind and the
// path, param or transfer endpoints when err carries them.
func LogWithError(err error) *Entry {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}
	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var transferErr *errors.TransferError
	switch {
	case errors.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
	case errors.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	case errors.As(err, &transferErr):
		fields = append(fields, F("source", transferErr.Source()), F("dest", transferErr.Dest()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}
