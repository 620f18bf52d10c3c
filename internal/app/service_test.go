package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"tracer/internal/contacts"
	"tracer/internal/report"
	"tracer/internal/store/runlog"
	"tracer/internal/store/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	infectedA = "64c0a6f2-9900-44d7-ac44-17d8b3e388e0"
	infectedB = "1a57a4a3-0815-48a2-98be-00375fa5bda8"
)

func writeContacts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact_list")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTraceRunner_Execute(t *testing.T) {
	infected := []string{infectedA, infectedB}

	t.Run("computes and caches the result", func(t *testing.T) {
		path := writeContacts(t, fmt.Sprintf(
			`[{"agent_1": %q, "agent_2": "X"}, {"agent_1": %q, "agent_2": "Y"}]`,
			infectedA, infectedB))
		runner := NewTraceRunner(contacts.NewLoader(path, false), infected)

		result, err := runner.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"X"}, result.Contacts(infectedA))
		assert.Equal(t, []string{"Y"}, result.Contacts(infectedB))

		latest := runner.LatestResult()
		require.NotNil(t, latest)
		assert.Equal(t, []string{"X"}, latest[infectedA])
	})

	t.Run("load failure leaves no result", func(t *testing.T) {
		runner := NewTraceRunner(contacts.NewLoader(filepath.Join(t.TempDir(), "nope"), false), infected)
		_, err := runner.Execute(context.Background())
		assert.ErrorIs(t, err, contacts.ErrNotFound)
		assert.Nil(t, runner.LatestResult())
	})

	t.Run("persists run and exposures", func(t *testing.T) {
		path := writeContacts(t, fmt.Sprintf(
			`[{"agent_1": %q, "agent_2": "X"}, {"agent_1": %q, "agent_2": "X"}]`,
			infectedA, infectedA))
		st, err := sqlite.NewSqliteStore(filepath.Join(t.TempDir(), "tracer.db"))
		require.NoError(t, err)
		runner := NewTraceRunner(contacts.NewLoader(path, false), infected).WithStore(st)
		defer runner.Close()

		_, err = runner.Execute(context.Background())
		require.NoError(t, err)

		latest, err := st.Runs().Latest(context.Background())
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, 2, latest.ContactCount)
		assert.Equal(t, 2, latest.InfectedCount)

		rows, err := st.Runs().Exposures(context.Background(), latest.RunID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, infectedA, rows[0].InfectedID)
		assert.Equal(t, "X", rows[0].ContactID)
	})

	t.Run("records failures in the run log", func(t *testing.T) {
		rl, err := runlog.NewRunLogStore(filepath.Join(t.TempDir(), "runlog.db"))
		require.NoError(t, err)
		badPath := writeContacts(t, `not json`)
		runner := NewTraceRunner(contacts.NewLoader(badPath, false), infected).WithRunLog(rl)
		defer runner.Close()

		_, err = runner.Execute(context.Background())
		assert.ErrorIs(t, err, contacts.ErrParse)

		entries, err := runner.RunLogEntries(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "failed", entries[0].Status)
		assert.Equal(t, "parse", entries[0].ErrorClass)
	})

	t.Run("writes the report", func(t *testing.T) {
		path := writeContacts(t, fmt.Sprintf(`[{"agent_1": %q, "agent_2": "X"}]`, infectedA))
		reportDir := t.TempDir()
		runner := NewTraceRunner(contacts.NewLoader(path, false), infected).
			WithReport(report.NewWriter(reportDir))

		_, err := runner.Execute(context.Background())
		require.NoError(t, err)

		matches, err := filepath.Glob(filepath.Join(reportDir, "trace_*.html"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}

func TestErrorClass(t *testing.T) {
	assert.Equal(t, "not_found", errorClass(fmt.Errorf("wrap: %w", contacts.ErrNotFound)))
	assert.Equal(t, "parse", errorClass(fmt.Errorf("wrap: %w", contacts.ErrParse)))
	assert.Equal(t, "missing_field", errorClass(fmt.Errorf("wrap: %w", contacts.ErrMissingField)))
	assert.Equal(t, "other", errorClass(errors.New("boom")))
}
