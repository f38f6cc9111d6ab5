package log

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Logger is a leveled logger whose allowed level can be changed while it
// is in use. It is also a plain go-kit log.Logger, so it can be handed to
// anything that takes one, including level.Warn and friends. Only the
// leveled methods add a caller; code logging through Log should bind its
// own with log.With(logger, "caller", log.DefaultCaller).
type Logger interface {
	log.Logger
	AllowDebug()
	AllowInfo()
	SetLevel(name string)
	Debug(keyvals ...interface{}) error
	Info(keyvals ...interface{}) error
	Warn(keyvals ...interface{}) error
	Error(keyvals ...interface{}) error
	Fatal(keyvals ...interface{}) error
}

type logger struct {
	// swapLogger stores the leveled logger, using go-kit's SwapLogger to
	// ensure that updates to the logger are atomic and avoid race
	// conditions. All logging should be done through swapLogger.
	swapLogger *log.SwapLogger
	// baseLogger stores the un-leveled logger. Writes should not be done
	// directly to this logger.
	baseLogger log.Logger
}

func (l *logger) AllowDebug() {
	l.allowedLevel(level.AllowDebug(), "debug")
}

func (l *logger) AllowInfo() {
	l.allowedLevel(level.AllowInfo(), "info")
}

// SetLevel sets the allowed level by name. See LevelOption for the names
// understood; anything else allows info.
func (l *logger) SetLevel(name string) {
	l.allowedLevel(LevelOption(name, level.AllowInfo()), strings.ToLower(name))
}

func (l *logger) allowedLevel(lev level.Option, name string) {
	newLogger := level.NewFilter(l.baseLogger, lev)
	l.swapLogger.Swap(newLogger)
	l.Debug(
		"msg", "allowed log level set",
		"allowed_level", name,
	)
}

// withCaller binds the caller of a leveled method. The depth skips the
// valuer, the context's Log and the leveled method itself.
func (l *logger) withCaller() log.Logger {
	return log.With(l.swapLogger, "caller", log.Caller(4))
}

func (l *logger) Log(keyvals ...interface{}) error {
	return l.swapLogger.Log(keyvals...)
}

func (l *logger) Debug(keyvals ...interface{}) error {
	return level.Debug(l.withCaller()).Log(keyvals...)
}

func (l *logger) Info(keyvals ...interface{}) error {
	return level.Info(l.withCaller()).Log(keyvals...)
}

func (l *logger) Warn(keyvals ...interface{}) error {
	return level.Warn(l.withCaller()).Log(keyvals...)
}

func (l *logger) Error(keyvals ...interface{}) error {
	return level.Error(l.withCaller()).Log(keyvals...)
}

// Fatal logs at an Error level, and then exits with error code 1.
func (l *logger) Fatal(keyvals ...interface{}) error {
	level.Error(l.withCaller()).Log(keyvals...)
	os.Exit(1)
	// never hit
	return nil
}

// LevelOption maps a level name to a go-kit filter option. Both the
// go-kit names (error, warn, info, debug, none) and the java.util.logging
// names (SEVERE, WARNING, INFO, FINE, FINER, FINEST) are accepted, in any
// case. Unknown names return fallback.
func LevelOption(name string, fallback level.Option) level.Option {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "severe", "error":
		return level.AllowError()
	case "warning", "warn":
		return level.AllowWarn()
	case "info":
		return level.AllowInfo()
	case "fine", "finer", "finest", "debug", "all":
		return level.AllowDebug()
	case "off", "none":
		return level.AllowNone()
	}
	return fallback
}

func NewLogger(w io.Writer) Logger {
	base := log.NewJSONLogger(log.NewSyncWriter(w))
	base = log.With(base, "ts", log.DefaultTimestampUTC)

	l := &logger{
		swapLogger: new(log.SwapLogger),
		baseLogger: base,
	}
	l.swapLogger.Swap(level.NewFilter(l.baseLogger, level.AllowInfo()))

	return l
}
