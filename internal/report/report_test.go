package report

import (
	"os"
	"testing"

	"tracer/internal/trace"
	"tracer/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	infected := []string{"64c0a6f2-9900-44d7-ac44-17d8b3e388e0", "1a57a4a3-0815-48a2-98be-00375fa5bda8"}
	result := trace.Run(types.ContactList{
		{Agent1: infected[0], Agent2: "X"},
		{Agent1: infected[0], Agent2: "Y"},
	}, infected)

	path, err := w.Write(result, "test-run")
	require.NoError(t, err)
	assert.FileExists(t, path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)
	assert.Contains(t, html, "64c0a6f2")
	assert.Contains(t, html, "直接接触统计")
}

func TestWriter_NilResult(t *testing.T) {
	w := NewWriter(t.TempDir())
	_, err := w.Write(nil, "x")
	assert.Error(t, err)
}

func TestShortIDs(t *testing.T) {
	assert.Equal(t, []string{"64c0a6f2", "ab"}, shortIDs([]string{"64c0a6f2-9900-44d7-ac44-17d8b3e388e0", "ab"}))
}
