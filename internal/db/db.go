package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPostgres connects to Postgres, or returns nil when no DSN is
// configured so the service can run without persistence in development.
func InitPostgres(ctx context.Context, dsn string) *pgxpool.Pool {
	if dsn == "" {
		log.Println("DATABASE_URL not set, skipping Postgres connection")
		return nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to ping Postgres: %v", err)
	}
	log.Println("Connected to Postgres")
	return pool
}
