package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/scopelock/leadflow/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS pending_approvals (
	job_id      TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	created_at  DATETIME NOT NULL,
	approved_at DATETIME
);

CREATE TABLE IF NOT EXISTS leads (
	id         TEXT PRIMARY KEY,
	job_id     TEXT NOT NULL,
	platform   TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL,
	budget     TEXT NOT NULL DEFAULT '',
	decision   TEXT NOT NULL,
	reason     TEXT NOT NULL DEFAULT '',
	urgency    INTEGER NOT NULL DEFAULT 0,
	pain       INTEGER NOT NULL DEFAULT 0,
	confidence INTEGER NOT NULL DEFAULT 0,
	link       TEXT NOT NULL DEFAULT '',
	feed_name  TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pending_approvals_created_at ON pending_approvals(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_decision ON leads(decision);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) PutApproval(ctx context.Context, pa model.PendingApproval) error {
	payload, err := json.Marshal(pa)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal approval")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pending_approvals (job_id, payload, created_at, approved_at)
		 VALUES (?, ?, ?, NULL)
		 ON CONFLICT(job_id) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		pa.JobID, string(payload), pa.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "sqlite: put approval")
}

func (s *SQLiteStore) GetApproval(ctx context.Context, jobID string) (*model.PendingApproval, error) {
	var payload string
	var approvedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, approved_at FROM pending_approvals WHERE job_id = ?`, jobID,
	).Scan(&payload, &approvedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get approval")
	}

	var pa model.PendingApproval
	if err := json.Unmarshal([]byte(payload), &pa); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal approval")
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		pa.ApprovedAt = &t
	}
	return &pa, nil
}

func (s *SQLiteStore) MarkApproved(ctx context.Context, jobID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pending_approvals SET approved_at = ? WHERE job_id = ?`, at.UTC(), jobID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: mark approved")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteApproval(ctx context.Context, jobID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_approvals WHERE job_id = ?`, jobID,
	)
	return eris.Wrap(err, "sqlite: delete approval")
}

func (s *SQLiteStore) ApprovalCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_approvals`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: approval count")
}

func (s *SQLiteStore) PurgeExpired(ctx context.Context, ttl time.Duration) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_approvals WHERE created_at < ?`, time.Now().UTC().Add(-ttl),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return int(n), nil
}

func (s *SQLiteStore) InsertLead(ctx context.Context, rec model.LeadRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, job_id, platform, title, budget, decision, reason, urgency, pain, confidence, link, feed_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.JobID, rec.Platform, rec.Title, rec.Budget, string(rec.Decision), rec.Reason,
		rec.Urgency, rec.Pain, rec.Confidence, rec.Link, rec.FeedName, rec.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "sqlite: insert lead")
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.LeadRecord, error) {
	query := `SELECT id, job_id, platform, title, budget, decision, reason, urgency, pain, confidence, link, feed_name, created_at
		FROM leads`
	var args []any
	if filter.Decision != "" {
		query += ` WHERE decision = ?`
		args = append(args, string(filter.Decision))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.LeadRecord
	for rows.Next() {
		var rec model.LeadRecord
		var decision string
		if err := rows.Scan(&rec.ID, &rec.JobID, &rec.Platform, &rec.Title, &rec.Budget, &decision,
			&rec.Reason, &rec.Urgency, &rec.Pain, &rec.Confidence, &rec.Link, &rec.FeedName, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		rec.Decision = model.Decision(decision)
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate leads")
}
