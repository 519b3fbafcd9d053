package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/scopelock/leadflow/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS pending_approvals (
	job_id      TEXT PRIMARY KEY,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	approved_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS leads (
	id         TEXT PRIMARY KEY,
	job_id     TEXT NOT NULL,
	platform   TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL,
	budget     TEXT NOT NULL DEFAULT '',
	decision   TEXT NOT NULL,
	reason     TEXT NOT NULL DEFAULT '',
	urgency    INT NOT NULL DEFAULT 0,
	pain       INT NOT NULL DEFAULT 0,
	confidence INT NOT NULL DEFAULT 0,
	link       TEXT NOT NULL DEFAULT '',
	feed_name  TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pending_approvals_created_at ON pending_approvals(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_decision ON leads(decision);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) PutApproval(ctx context.Context, pa model.PendingApproval) error {
	payload, err := json.Marshal(pa)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal approval")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO pending_approvals (job_id, payload, created_at, approved_at)
		 VALUES ($1, $2, $3, NULL)
		 ON CONFLICT (job_id) DO UPDATE SET payload = EXCLUDED.payload, created_at = EXCLUDED.created_at`,
		pa.JobID, payload, pa.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "postgres: put approval")
}

func (s *PostgresStore) GetApproval(ctx context.Context, jobID string) (*model.PendingApproval, error) {
	var payload []byte
	var approvedAt *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT payload, approved_at FROM pending_approvals WHERE job_id = $1`, jobID,
	).Scan(&payload, &approvedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get approval")
	}

	var pa model.PendingApproval
	if err := json.Unmarshal(payload, &pa); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal approval")
	}
	pa.ApprovedAt = approvedAt
	return &pa, nil
}

func (s *PostgresStore) MarkApproved(ctx context.Context, jobID string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE pending_approvals SET approved_at = $1 WHERE job_id = $2`, at.UTC(), jobID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: mark approved")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteApproval(ctx context.Context, jobID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM pending_approvals WHERE job_id = $1`, jobID,
	)
	return eris.Wrap(err, "postgres: delete approval")
}

func (s *PostgresStore) ApprovalCount(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pending_approvals`).Scan(&n)
	return n, eris.Wrap(err, "postgres: approval count")
}

func (s *PostgresStore) PurgeExpired(ctx context.Context, ttl time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM pending_approvals WHERE created_at < $1`, time.Now().UTC().Add(-ttl),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: purge expired")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) InsertLead(ctx context.Context, rec model.LeadRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (id, job_id, platform, title, budget, decision, reason, urgency, pain, confidence, link, feed_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.JobID, rec.Platform, rec.Title, rec.Budget, string(rec.Decision), rec.Reason,
		rec.Urgency, rec.Pain, rec.Confidence, rec.Link, rec.FeedName, rec.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "postgres: insert lead")
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.LeadRecord, error) {
	query := `SELECT id, job_id, platform, title, budget, decision, reason, urgency, pain, confidence, link, feed_name, created_at
		FROM leads`
	var args []any
	if filter.Decision != "" {
		query += ` WHERE decision = $1`
		args = append(args, string(filter.Decision))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		if len(args) == 0 {
			query += ` LIMIT $1`
		} else {
			query += ` LIMIT $2`
		}
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var out []model.LeadRecord
	for rows.Next() {
		var rec model.LeadRecord
		var decision string
		if err := rows.Scan(&rec.ID, &rec.JobID, &rec.Platform, &rec.Title, &rec.Budget, &decision,
			&rec.Reason, &rec.Urgency, &rec.Pain, &rec.Confidence, &rec.Link, &rec.FeedName, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		rec.Decision = model.Decision(decision)
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate leads")
}
