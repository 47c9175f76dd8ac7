package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger struct {
	ZeroLogger *zerolog.Logger
}

// Log is the process wide logger used by commands and clients.
var Log Logger

func init() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	Log.ZeroLogger = &logger
}

func event(e *zerolog.Event, msg string, err []error) {
	if len(err) == 1 && err[0] != nil {
		e = e.Err(err[0])
	}
	e.Msg(msg)
}

func (l *Logger) Debug(msg string, err ...error) {
	event(l.ZeroLogger.Debug(), msg, err)
}

func (l *Logger) Debugf(msg string, args ...interface{}) {
	l.ZeroLogger.Debug().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Info(msg string, err ...error) {
	event(l.ZeroLogger.Info(), msg, err)
}

func (l *Logger) Infof(msg string, args ...interface{}) {
	l.ZeroLogger.Info().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Warn(msg string, err ...error) {
	event(l.ZeroLogger.Warn(), msg, err)
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	l.ZeroLogger.Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, err ...error) {
	event(l.ZeroLogger.Error(), msg, err)
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	l.ZeroLogger.Error().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Fatal(msg string, err ...error) {
	event(l.ZeroLogger.Fatal(), msg, err)
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	l.ZeroLogger.Fatal().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Panic(msg string, err ...error) {
	event(l.ZeroLogger.Panic(), msg, err)
}

// DoConfigureLogger sets the global level and output. Logs go to stderr (pretty printed when asked)
// and are additionally appended to logPath when it is set.
func DoConfigureLogger(logPath string, logLevel string, prettyLogging bool) error {
	var out io.Writer = os.Stderr
	if prettyLogging {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	if logPath != "" {
		file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("error opening log file %s: %w", logPath, err)
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	Log.ZeroLogger = &logger

	switch strings.ToLower(logLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return nil
}
