package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, LevelWarn)

	Debug("debug line")
	Info("info line")
	Warn("warn line", "tag", "clientinfo")
	Error("error line", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "[WARN] warn line tag=clientinfo")
	assert.Contains(t, out, "[ERROR] error line err=boom")
}

func TestFormatKVs(t *testing.T) {
	buf := capture(t, LevelDebug)

	Info("parsed", "summary", "Flight to Lisbon", "count", 3, "dangling")

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, `[INFO] parsed summary="Flight to Lisbon" count=3`), line)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" Warn ":  LevelWarn,
		"warning": LevelWarn,
		"ERROR":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
