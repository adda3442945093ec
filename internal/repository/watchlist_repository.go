package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

// ErrAlreadyExists is returned when adding a symbol that is already active.
var ErrAlreadyExists = errors.New("symbol already on watchlist")

// ErrNotFound is returned when removing a symbol that is not active.
var ErrNotFound = errors.New("symbol not on watchlist")

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WatchlistRepository persists the user's symbol list. Removal is a soft
// delete; the partial unique index enforces case-insensitive uniqueness among
// active rows only, so a removed symbol can be re-added as a fresh row.
type WatchlistRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewWatchlistRepository(pool PgxPool, tracer trace.Tracer) *WatchlistRepository {
	return &WatchlistRepository{pool: pool, tracer: tracer}
}

func (r *WatchlistRepository) RunMigrations(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS watchlist (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE UNIQUE INDEX IF NOT EXISTS watchlist_active_symbol_idx
			ON watchlist (UPPER(symbol)) WHERE is_active;
	`)
	return err
}

func (r *WatchlistRepository) Add(ctx context.Context, symbol, name string) (*domain.WatchlistEntry, error) {
	ctx, span := r.tracer.Start(ctx, "watchlist-repo.add")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if name == "" {
		name = symbol
	}

	entry := &domain.WatchlistEntry{Symbol: symbol, Name: name, IsActive: true}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO watchlist (symbol, name) VALUES ($1, $2)
		 RETURNING id, added_at`,
		symbol, name,
	).Scan(&entry.ID, &entry.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return entry, nil
}

func (r *WatchlistRepository) List(ctx context.Context) ([]domain.WatchlistEntry, error) {
	ctx, span := r.tracer.Start(ctx, "watchlist-repo.list")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, symbol, name, added_at
		 FROM watchlist
		 WHERE is_active
		 ORDER BY added_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WatchlistEntry
	for rows.Next() {
		e := domain.WatchlistEntry{IsActive: true}
		if err := rows.Scan(&e.ID, &e.Symbol, &e.Name, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *WatchlistRepository) Remove(ctx context.Context, symbol string) error {
	ctx, span := r.tracer.Start(ctx, "watchlist-repo.remove")
	defer span.End()

	tag, err := r.pool.Exec(ctx,
		`UPDATE watchlist SET is_active = FALSE
		 WHERE UPPER(symbol) = UPPER($1) AND is_active`,
		strings.TrimSpace(symbol),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
