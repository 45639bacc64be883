package postgres

import (
	"context"
	"database/sql"
	"time"

	"cat-care-diary/internal/domain/triage"
)

// SnapshotsRepo persiste los snapshots de triage como blobs JSON en
// una tabla key-value, un row por (cat_id, key). Solo el último estado.
type SnapshotsRepo struct {
	db *sql.DB
}

func NewSnapshotsRepo(db *sql.DB) triage.SnapshotRepo {
	return &SnapshotsRepo{db: db}
}

func (r *SnapshotsRepo) Get(ctx context.Context, catID, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT value FROM triage_snapshots
		WHERE cat_id = $1 AND snap_key = $2
	`, catID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return value, err
}

func (r *SnapshotsRepo) Put(ctx context.Context, catID, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO triage_snapshots (cat_id, snap_key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cat_id, snap_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, catID, key, value, time.Now())
	return err
}

func (r *SnapshotsRepo) Delete(ctx context.Context, catID, key string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM triage_snapshots
		WHERE cat_id = $1 AND snap_key = $2
	`, catID, key)
	return err
}
