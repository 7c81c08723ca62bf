package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semih007/gradecalc/internal/records"
	"github.com/semih007/gradecalc/internal/scoring"
)

// runCLI executes one command against a database file shared by the test.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	c := &cli{}
	defer func() {
		require.NoError(t, c.close())
	}()

	rootCmd := newRootCommand(c)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "absent.toml"),
		"--dsn", filepath.Join(dir, "grades.db"),
	}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCalcCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "calc", "--midterm", "70", "--final", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Average:   64.00")
	assert.Contains(t, out, "Threshold: 30")
	assert.Contains(t, out, "Status:    Passed")

	out, err = runCLI(t, dir, "calc", "--midterm", "100", "--final", "32", "--threshold", "35")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed — below final threshold")
	assert.Contains(t, out, "below the 35 threshold")

	_, err = runCLI(t, dir, "calc", "--midterm", "abc", "--final", "60")
	assert.ErrorIs(t, err, scoring.ErrInvalidScore)

	out, err = runCLI(t, dir, "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "35")
	assert.Contains(t, lines[2], "Passed")

	out, err = runCLI(t, dir, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared")

	out, err = runCLI(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No calculations yet")
}

func TestCoursesCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "courses", "add", "Math", "--midterm", "80", "--final", "32")
	require.NoError(t, err)
	id := regexp.MustCompile(`\(([^)]+)\)`).FindStringSubmatch(out)
	require.Len(t, id, 2, out)

	_, err = runCLI(t, dir, "courses", "add", "  ")
	assert.ErrorIs(t, err, records.ErrEmptyCourseName)

	out, err = runCLI(t, dir, "courses", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "51.20")
	assert.Contains(t, out, "Passed")

	out, err = runCLI(t, dir, "courses", "list", "--threshold", "35")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed — below final threshold")

	_, err = runCLI(t, dir, "courses", "update", id[1], "--final", "")
	require.NoError(t, err)
	out, err = runCLI(t, dir, "courses", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "Not graded")

	_, err = runCLI(t, dir, "courses", "update", "missing", "--name", "X")
	assert.ErrorIs(t, err, records.ErrCourseNotFound)

	_, err = runCLI(t, dir, "courses", "delete", id[1])
	require.NoError(t, err)
	out, err = runCLI(t, dir, "courses", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved courses")
}

func TestThresholdCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "threshold", "show")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	out, err = runCLI(t, dir, "threshold", "set", "35")
	require.NoError(t, err)
	assert.Contains(t, out, "now 35")

	_, err = runCLI(t, dir, "threshold", "set", "abc")
	assert.ErrorIs(t, err, scoring.ErrInvalidScore)

	out, err = runCLI(t, dir, "threshold", "show")
	require.NoError(t, err)
	assert.Equal(t, "35\n", out)

	out, err = runCLI(t, dir, "calc", "--midterm", "100", "--final", "32")
	require.NoError(t, err)
	assert.Contains(t, out, "Threshold: 35")
}

func TestServiceClosedAfterFailedCommand(t *testing.T) {
	dir := t.TempDir()

	c := &cli{}
	rootCmd := newRootCommand(c)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(dir, "absent.toml"),
		"--dsn", filepath.Join(dir, "grades.db"),
		"calc", "--midterm", "abc", "--final", "60",
	})

	err := rootCmd.Execute()
	require.ErrorIs(t, err, scoring.ErrInvalidScore)
	require.NotNil(t, c.service, "service stays open until the caller closes it")

	require.NoError(t, c.close())
	assert.Nil(t, c.service)
	assert.NoError(t, c.close())
}
