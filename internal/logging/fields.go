package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Chart adds the chart name, usually the output stem.
func Chart(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("chart", name)
	}
}

// Kind adds the chart kind.
func Kind(kind string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("kind", kind)
	}
}

// Format adds an output format.
func Format(format string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("format", format)
	}
}

// Path adds a file path.
func Path(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", path)
	}
}

// Formula adds a formula expression.
func Formula(expr string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("formula", expr)
	}
}

// Version adds a sample version.
func Version(v int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("version", v)
	}
}

// Count adds a named count.
func Count(key string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field. A nil error adds nothing.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with a custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
