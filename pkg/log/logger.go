package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a logger verbosity level
type Level int

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	currentLevel   = Notice
)

// Logger is the leveled logging interface used across the renderer
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a logger tagged with the given module name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink, keeping the current level.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	logging.SetBackend(leveledBackend)
	SetLevel(currentLevel)
}

// SetLevel sets the verbosity of every logger.
func SetLevel(level Level) {
	backendLevel, ok := backendLevels[level]
	if !ok {
		level, backendLevel = Debug, logging.DEBUG
	}
	currentLevel = level
	leveledBackend.SetLevel(backendLevel, "")
}

// VerbosityLevel maps a count of -v flags to a level: none is Notice, one is
// Info and two or more is Debug.
func VerbosityLevel(verbose int) Level {
	switch {
	case verbose <= 0:
		return Notice
	case verbose == 1:
		return Info
	default:
		return Debug
	}
}

func init() {
	SetSink(os.Stderr)
}
