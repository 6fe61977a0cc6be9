package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Logger provides centralized logging for the entire application
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	file   *os.File
}

var globalLogger *Logger

// init creates the global logger with colored console output by default
func init() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	globalLogger = &Logger{
		logger: slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})),
		level: level,
	}
}

// Configure replaces the global logger. Format "json" writes structured JSON,
// anything else writes colored text. Level is one of debug, info, warn, error.
func Configure(w io.Writer, format, level string) {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lv,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
		})
	}

	closeFile()
	globalLogger = &Logger{
		logger: slog.New(handler),
		level:  lv,
	}
	if f, ok := w.(*os.File); ok && f != os.Stderr && f != os.Stdout {
		globalLogger.file = f
	}
}

// SetFileOutput configures the logger to write JSON lines to the specified file
func SetFileOutput(filename string) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	Configure(file, "json", globalLogger.level.Level().String())
	return nil
}

// SetLevel changes the minimum level of the global logger.
func SetLevel(level string) {
	if globalLogger != nil {
		globalLogger.level.Set(ParseLevel(level))
	}
}

// ParseLevel maps a level name to a slog level; unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying logger for packages that take a *slog.Logger.
func Slog() *slog.Logger {
	return globalLogger.logger
}

// Standard logging methods
func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Error(msg, args...)
	}
}

// Close closes the log file if one was configured
func Close() {
	closeFile()
}

func closeFile() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
		globalLogger.file = nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
