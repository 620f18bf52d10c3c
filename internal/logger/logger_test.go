package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})
	return &buf
}

func TestSetLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("warn")
	Infof("hidden %d", 1)
	Warnf("visible %d", 2)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible 2")
}

func TestInfoBlock(t *testing.T) {
	buf := captureOutput(t)
	InfoBlock("第一行\n第二行\n")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "第一行")
	assert.Contains(t, lines[1], "第二行")
}

func TestInfoBlock_Empty(t *testing.T) {
	buf := captureOutput(t)
	InfoBlock("   \n  ")
	assert.Empty(t, buf.String())
}
