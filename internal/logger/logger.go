package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Logger is the console logger used by every report unit.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Section(title string)
	SetOutput(out io.Writer)
	SetVerbose(enabled bool)
	SetQuiet(enabled bool)
	IsVerbose() bool
	IsQuiet() bool
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelSuccess
	levelWarn
	levelError
)

type decoration struct {
	icon  string
	plain string
	color string
}

const (
	blueColor   = "\033[34m"
	greenColor  = "\033[32m"
	yellowColor = "\033[33m"
	redColor    = "\033[31m"
	grayColor   = "\033[90m"
	cyanColor   = "\033[36m"
	resetColor  = "\033[0m"
)

var decorations = map[level]decoration{
	levelDebug:   {icon: "🔍", plain: "DEBUG", color: grayColor},
	levelInfo:    {icon: "ℹ️", plain: "INFO", color: blueColor},
	levelSuccess: {icon: "✓", plain: "SUCCESS", color: greenColor},
	levelWarn:    {icon: "⚠", plain: "WARN", color: yellowColor},
	levelError:   {icon: "✗", plain: "ERROR", color: redColor},
}

const sectionWidth = 70

// ConsoleLogger writes human-readable lines to stdout (errors to stderr).
type ConsoleLogger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	tty     bool
	verbose bool
	quiet   bool
}

var (
	instance Logger
	once     sync.Once
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	once.Do(func() {
		instance = &ConsoleLogger{
			out:    os.Stdout,
			errOut: os.Stderr,
			tty:    term.IsTerminal(int(os.Stdout.Fd())),
		}
	})
	return instance
}

func SetVerbose(verbose bool) { GetLogger().SetVerbose(verbose) }
func IsVerbose() bool         { return GetLogger().IsVerbose() }
func SetQuiet(quiet bool)     { GetLogger().SetQuiet(quiet) }
func IsQuiet() bool           { return GetLogger().IsQuiet() }

func Info(format string, args ...any)    { GetLogger().Info(format, args...) }
func Debug(format string, args ...any)   { GetLogger().Debug(format, args...) }
func Success(format string, args ...any) { GetLogger().Success(format, args...) }
func Warn(format string, args ...any)    { GetLogger().Warn(format, args...) }
func Error(format string, args ...any)   { GetLogger().Error(format, args...) }
func Section(title string)               { GetLogger().Section(title) }

func (l *ConsoleLogger) SetOutput(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
	l.errOut = out
	l.tty = false
}

func (l *ConsoleLogger) SetVerbose(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = enabled
}

func (l *ConsoleLogger) IsVerbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

func (l *ConsoleLogger) SetQuiet(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quiet = enabled
}

func (l *ConsoleLogger) IsQuiet() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quiet
}

func (l *ConsoleLogger) Info(format string, args ...any)    { l.emit(levelInfo, format, args...) }
func (l *ConsoleLogger) Debug(format string, args ...any)   { l.emit(levelDebug, format, args...) }
func (l *ConsoleLogger) Success(format string, args ...any) { l.emit(levelSuccess, format, args...) }
func (l *ConsoleLogger) Warn(format string, args ...any)    { l.emit(levelWarn, format, args...) }
func (l *ConsoleLogger) Error(format string, args ...any)   { l.emit(levelError, format, args...) }

// Section prints a banner line separating the phases of a report run.
func (l *ConsoleLogger) Section(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.quiet {
		return
	}
	rule := strings.Repeat("-", sectionWidth)
	if l.tty {
		fmt.Fprintf(l.out, "%s%s\n%s\n%s%s\n", cyanColor, rule, title, rule, resetColor)
		return
	}
	fmt.Fprintf(l.out, "%s\n%s\n%s\n", rule, title, rule)
}

func (l *ConsoleLogger) emit(lvl level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case lvl == levelDebug && !l.verbose:
		return
	case lvl != levelError && lvl != levelDebug && l.quiet:
		return
	}

	d := decorations[lvl]
	prefix := d.plain
	if l.tty {
		prefix = d.icon
	}
	if lvl == levelDebug {
		prefix = fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04:05.000"), prefix)
	}

	out := l.out
	if lvl == levelError {
		out = l.errOut
	}

	msg := fmt.Sprintf(format, args...)
	if l.tty {
		fmt.Fprintf(out, "%s%s %s%s\n", d.color, prefix, msg, resetColor)
		return
	}
	fmt.Fprintf(out, "%s %s\n", prefix, msg)
}
