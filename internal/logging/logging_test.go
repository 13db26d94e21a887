package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/stretchr/testify/assert"
)

func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(Config{Level: "trace", Format: "json", Output: buf}), buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	assert.Equal(t, "info", config.Level)
	assert.Equal(t, "console", config.Format)
	assert.Equal(t, os.Stderr, config.Output)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"WARN", bolt.WARN},
		{"warning", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO},
		{"", bolt.INFO},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input), tt.input)
	}
	assert.True(t, ValidLevel("Debug"))
	assert.False(t, ValidLevel("verbose"))
}

func TestFields(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	With(logger.Info()).Add(
		Chart("line_chart_01"),
		Kind("line"),
		Format("png"),
		Path("out/line_chart_01.png"),
		Formula("sin(x)"),
		Version(2),
		Count("skipped", 3),
		Duration(150*time.Millisecond),
		ErrorField(errors.New("boom")),
		Str("custom", "value"),
	).Msg("saved")

	out := buf.String()
	for _, want := range []string{
		`"chart":"line_chart_01"`,
		`"kind":"line"`,
		`"format":"png"`,
		`"path":"out/line_chart_01.png"`,
		`"formula":"sin(x)"`,
		`"version":2`,
		`"skipped":3`,
		`"duration_ms":150`,
		`"error":"boom"`,
		`"custom":"value"`,
		"saved",
	} {
		assert.Contains(t, out, want)
	}
}

func TestErrorField_Nil(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	With(logger.Info()).Add(ErrorField(nil)).Msg("ok")
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := New(Config{Level: "warn", Format: "json", Output: buf})
	With(logger.Info()).Msg("hidden")
	With(logger.Warn()).Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
