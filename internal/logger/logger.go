// Package logger is a minimal leveled printf logger shared by the whole
// process. Library packages log sparingly; the CLI owns the level and the
// destination.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders severities from most to least verbose.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a case-insensitive level name to its Level. Unrecognized
// names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

var std = struct {
	sync.Mutex
	level Level
	out   io.Writer
}{level: LevelInfo, out: os.Stdout}

// SetLevel selects the minimum severity that gets written.
func SetLevel(level string) {
	std.Lock()
	std.level = ParseLevel(level)
	std.Unlock()
}

// SetOutput redirects log output. The default is stdout.
func SetOutput(w io.Writer) {
	std.Lock()
	std.out = w
	std.Unlock()
}

func emit(level Level, format string, v ...any) {
	std.Lock()
	defer std.Unlock()

	if level < std.level {
		return
	}
	fmt.Fprintf(std.out, "%s [%s] %s\n",
		time.Now().Format(time.RFC3339), level, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) { emit(LevelDebug, format, v...) }
func Info(format string, v ...any)  { emit(LevelInfo, format, v...) }
func Warn(format string, v ...any)  { emit(LevelWarn, format, v...) }
func Error(format string, v ...any) { emit(LevelError, format, v...) }
