package postgres

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/semih007/gradecalc/internal/store"
	"github.com/semih007/gradecalc/migrations"
)

// setupTestDB starts a throwaway Postgres and applies the schema
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, migrations.FS)
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		container.Terminate(ctx)
	}

	return s, cleanup
}

func TestMain(m *testing.M) {
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func TestBlobOperations(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "saved_courses")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("upsert", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "saved_courses", `[{"id":"a","name":"Math"}]`))
		require.NoError(t, s.Set(ctx, "saved_courses", `[]`))

		got, err := s.Get(ctx, "saved_courses")
		require.NoError(t, err)
		assert.Equal(t, `[]`, got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "saved_courses"))
		require.NoError(t, s.Delete(ctx, "saved_courses"))

		_, err := s.Get(ctx, "saved_courses")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestToDollarPlaceholders(t *testing.T) {
	assert.Equal(t,
		"SELECT * FROM blobs WHERE blob_key = $1 AND value = $2",
		toDollarPlaceholders("SELECT * FROM blobs WHERE blob_key = ? AND value = ?"),
	)
}
