package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository/models"
)

// Schema creates the snapshot table; safe to run on every start.
const Schema = `
	CREATE TABLE IF NOT EXISTS dashboard_snapshots (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		project_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_dashboard_snapshots_created_at
		ON dashboard_snapshots (created_at);
`

const timeLayout = time.RFC3339Nano

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores a snapshot. Timestamps are kept as UTC text so they sort
// lexically.
func (s *SnapshotRepository) Save(ctx context.Context, snap models.Snapshot) error {
	const query = `
		INSERT INTO dashboard_snapshots (id, created_at, project_count, failed_count, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		snap.ID,
		snap.CreatedAt.UTC().Format(timeLayout),
		snap.ProjectCount,
		snap.FailedCount,
		snap.Payload,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Latest returns the most recent snapshot, or nil when the table is empty.
func (s *SnapshotRepository) Latest(ctx context.Context) (*models.Snapshot, error) {
	const query = `
		SELECT id, created_at, project_count, failed_count, payload
		FROM dashboard_snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`

	var snap models.Snapshot
	var created string
	err := s.db.QueryRowContext(ctx, query).Scan(&snap.ID, &created, &snap.ProjectCount, &snap.FailedCount, &snap.Payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of snapshot %s: %w", snap.ID, err)
	}
	return &snap, nil
}

// Prune keeps the newest keep snapshots and reports how many were removed.
func (s *SnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	const query = `
		DELETE FROM dashboard_snapshots
		WHERE id NOT IN (
			SELECT id FROM dashboard_snapshots
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)
	`
	res, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return n, nil
}
