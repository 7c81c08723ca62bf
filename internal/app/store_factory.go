package app

import (
	"fmt"

	"github.com/semih007/gradecalc/internal/store"
	"github.com/semih007/gradecalc/internal/store/postgres"
	"github.com/semih007/gradecalc/internal/store/redis"
	"github.com/semih007/gradecalc/internal/store/sqlite"
)

func NewStore(config *Config) (store.BlobStore, error) {
	dsn := config.Database.DSN

	switch store.TypeFromDSN(dsn) {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dsn, config.Migrations())
	case store.DBTypeRedis:
		return redis.NewRedisStore(dsn)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(dsn, config.Migrations())
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}
