// Package logging provides structured logging for the chart generators
// using bolt.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
)

var (
	defaultLogger *bolt.Logger
	once          sync.Once
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json or console).
	Format string `yaml:"format" json:"format"`

	// NoColor disables color output for console format.
	NoColor bool `yaml:"no_color" json:"no_color"`

	// Output is the output destination. Defaults to stderr.
	Output io.Writer `yaml:"-" json:"-"`
}

// DefaultConfig returns console logging at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

func parseLevel(s string) bolt.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "warn", "warning":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// ValidLevel reports whether s names a level parseLevel understands.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// New builds a logger from config without touching the default logger.
func New(config Config) *bolt.Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	var handler bolt.Handler
	if config.Format == "json" {
		handler = bolt.NewJSONHandler(output)
	} else {
		handler = bolt.NewConsoleHandler(output)
	}
	return bolt.New(handler).SetLevel(parseLevel(config.Level))
}

// Init initializes the default logger. Only the first call has an effect.
func Init(config Config) {
	once.Do(func() {
		defaultLogger = New(config)
	})
}

// Get returns the default logger, initializing it if necessary.
func Get() *bolt.Logger {
	Init(DefaultConfig())
	return defaultLogger
}

// SetLevel changes the level of the default logger.
func SetLevel(level string) {
	Get().SetLevel(parseLevel(level))
}

// Event wraps a bolt.Event so Fields can be applied in a chain.
type Event struct {
	event *bolt.Event
}

// With wraps e for field application.
func With(e *bolt.Event) *Event {
	return &Event{event: e}
}

// Add applies fields to the event.
func (l *Event) Add(fields ...Field) *Event {
	for _, f := range fields {
		l.event = f(l.event)
	}
	return l
}

// Msg sends the event with a message.
func (l *Event) Msg(msg string) {
	l.event.Msg(msg)
}

// Debug starts a debug event on the default logger.
func Debug() *Event { return &Event{event: Get().Debug()} }

// Info starts an info event on the default logger.
func Info() *Event { return &Event{event: Get().Info()} }

// Warn starts a warn event on the default logger.
func Warn() *Event { return &Event{event: Get().Warn()} }

// Error starts an error event on the default logger.
func Error() *Event { return &Event{event: Get().Error()} }
