package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ParseLevel maps a configured level name to a logrus level. Unknown names
// fall back to info.
func ParseLevel(l string) log.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	case "panic":
		return log.PanicLevel
	default:
		return log.InfoLevel
	}
}

// Setup builds the process logger. An empty file logs to stdout; format is
// "json" or "text".
func Setup(level, format, file string) (*log.Logger, error) {
	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
	}

	var formatter log.Formatter = &log.TextFormatter{DisableColors: file != "", FullTimestamp: true, PadLevelText: true}
	if strings.EqualFold(format, "json") {
		formatter = &log.JSONFormatter{}
	}

	return &log.Logger{
		Out:       out,
		Level:     ParseLevel(level),
		Formatter: formatter,
		Hooks:     make(log.LevelHooks),
		ExitFunc:  os.Exit,
	}, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	l := log.New()
	l.Out = io.Discard
	return l
}
