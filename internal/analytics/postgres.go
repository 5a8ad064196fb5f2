package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists analytics events to PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE link_created_events (
//	    code        TEXT        NOT NULL,
//	    path        TEXT        NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    client_ip   TEXT,
//	    user_agent  TEXT
//	);
//
//	CREATE TABLE link_resolved_events (
//	    code        TEXT        NOT NULL,
//	    path        TEXT        NOT NULL,
//	    resolved_at TIMESTAMPTZ NOT NULL,
//	    client_ip   TEXT,
//	    user_agent  TEXT,
//	    referrer    TEXT
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed analytics store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error {
	query := `
		INSERT INTO link_created_events (code, path, created_at, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code,
		event.Path,
		event.CreatedAt,
		event.ClientIP,
		event.UserAgent,
	)

	return err
}

func (p *PostgresStore) SaveLinkResolved(ctx context.Context, event *LinkResolvedEvent) error {
	query := `
		INSERT INTO link_resolved_events (code, path, resolved_at, client_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code,
		event.Path,
		event.ResolvedAt,
		event.ClientIP,
		event.UserAgent,
		event.Referrer,
	)

	return err
}

var _ Store = (*PostgresStore)(nil)
