package store

import "strings"

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
	DBTypeRedis    DatabaseType = "redis"
)

// TypeFromDSN picks the backend from the DSN scheme. Anything that is not
// postgres or redis is treated as a SQLite path.
func TypeFromDSN(dsn string) DatabaseType {
	switch {
	case strings.HasPrefix(dsn, "postgres"):
		return DBTypePostgres
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return DBTypeRedis
	default:
		return DBTypeSQLite
	}
}

// Blob is one row of the blobs table.
type Blob struct {
	Key       string `db:"blob_key"`
	Value     string `db:"value"`
	UpdatedAt int64  `db:"updated_at"`
}
