// internal/store/sqlite/store_test.go
package sqlite

import (
	"context"
	"log"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semih007/gradecalc/internal/store"
	"github.com/semih007/gradecalc/migrations"
)

// setupTestDB creates an in-memory SQLite database with the shipped schema
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", migrations.FS)
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func TestBlobOperations(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "grade_history")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "grade_history", `[{"id":"1"}]`))

		got, err := s.Get(ctx, "grade_history")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "grade_history", `[]`))

		got, err := s.Get(ctx, "grade_history")
		require.NoError(t, err)
		assert.Equal(t, `[]`, got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "user_default_limit", "35"))

		got, err := s.Get(ctx, "user_default_limit")
		require.NoError(t, err)
		assert.Equal(t, "35", got)

		got, err = s.Get(ctx, "grade_history")
		require.NoError(t, err)
		assert.Equal(t, `[]`, got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "grade_history"))
		require.NoError(t, s.Delete(ctx, "grade_history"))

		_, err := s.Get(ctx, "grade_history")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMigrationsAreRepeatable(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, s.ApplyMigrations(migrations.FS, translateToSQLite))
}

func TestMigrationsFailOnBrokenSQL(t *testing.T) {
	broken := fstest.MapFS{
		"001_broken.sql": &fstest.MapFile{Data: []byte("CREATE TABLE (;")},
	}

	_, err := NewSQLiteStore(":memory:", broken)
	assert.Error(t, err)
}

func TestTranslateToSQLite(t *testing.T) {
	got := translateToSQLite("CREATE TABLE t (a BIGINT NOT NULL, b TEXT)")
	assert.Equal(t, "CREATE TABLE t (a INTEGER NOT NULL, b TEXT)", got)
}
