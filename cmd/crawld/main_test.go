package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/crawld/cmd/crawld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes one CLI invocation against the database at dbPath.
func runCLI(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), append([]string{"--db", dbPath}, args...), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestCLI_seed_and_status(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "crawld.db")

	stdout, stderr, err := runCLI(t, dbPath, "seed", "https://example.com/")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Seeded https://example.com/")
	assert.Empty(t, stderr)

	stdout, _, err = runCLI(t, dbPath, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pending: 1")
	assert.Contains(t, stdout, "total:   1")
}

func TestCLI_seed_rejects_duplicates(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "crawld.db")

	_, _, err := runCLI(t, dbPath, "seed", "https://example.com/")
	require.NoError(t, err)

	_, stderr, err := runCLI(t, dbPath, "seed", "https://example.com/")
	require.Error(t, err)
	assert.Contains(t, stderr, "already known")
}

func TestCLI_pause_and_resume_lifecycle(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "crawld.db")

	for _, u := range []string{"https://example.com/docs/1", "https://example.com/docs/2", "https://example.com/blog/1"} {
		_, _, err := runCLI(t, dbPath, "seed", u)
		require.NoError(t, err)
	}

	stdout, _, err := runCLI(t, dbPath, "pause-prefix", "https://example.com/docs", "--reason", "maintenance")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Paused 2 URLs")

	stdout, _, err = runCLI(t, dbPath, "paused")
	require.NoError(t, err)
	assert.Contains(t, stdout, "https://example.com/docs/1")
	assert.Contains(t, stdout, "https://example.com/docs/2")
	assert.NotContains(t, stdout, "blog")

	stdout, _, err = runCLI(t, dbPath, "resume-prefix", "https://example.com/docs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Resumed 2 URLs")

	stdout, _, err = runCLI(t, dbPath, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pending: 3")
	assert.Contains(t, stdout, "paused:  0")
}

func TestCLI_pending_filters_by_prefix(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "crawld.db")

	for _, u := range []string{"https://example.com/a", "https://example.com/b", "https://other.com/c"} {
		_, _, err := runCLI(t, dbPath, "seed", u)
		require.NoError(t, err)
	}

	stdout, _, err := runCLI(t, dbPath, "pending", "https://example.com/")
	require.NoError(t, err)
	assert.Contains(t, stdout, "https://example.com/a")
	assert.Contains(t, stdout, "https://example.com/b")
	assert.NotContains(t, stdout, "other.com")
}

func TestCLI_stats(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "crawld.db")

	_, _, err := runCLI(t, dbPath, "seed", "https://example.com/")
	require.NoError(t, err)
	_, _, err = runCLI(t, dbPath, "pause", "https://example.com/", "--reason", "hold")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, dbPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total URLs: 1")
	assert.Contains(t, stdout, "Earliest seed: https://example.com/")
	assert.Contains(t, stdout, "Top paused hosts")
	assert.Contains(t, stdout, "example.com")
}

func TestCLI_requires_a_command(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestCLI_help_does_not_error(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)
}
