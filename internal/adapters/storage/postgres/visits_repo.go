package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cat-care-diary/internal/domain/vetvisits"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) Create(ctx context.Context, v vetvisits.Visit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_visits (
			id, cat_id, visited_on,
			clinic, reason, diagnosis, treatment, notes,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID,
		v.CatID,
		v.VisitedOn,
		v.Clinic,
		v.Reason,
		v.Diagnosis,
		v.Treatment,
		v.Notes,
		v.CreatedAt,
	)
	return err
}

func (r *VisitsRepo) ListByCat(ctx context.Context, catID string) ([]vetvisits.Visit, error) {
	catID = strings.TrimSpace(catID)
	if catID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cat_id, visited_on,
			clinic, reason, diagnosis, treatment, notes,
			created_at
		FROM vet_visits
		WHERE cat_id = $1
		ORDER BY visited_on DESC, created_at DESC
	`, catID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vetvisits.Visit, 0)
	for rows.Next() {
		var v vetvisits.Visit
		if err := rows.Scan(
			&v.ID,
			&v.CatID,
			&v.VisitedOn,
			&v.Clinic,
			&v.Reason,
			&v.Diagnosis,
			&v.Treatment,
			&v.Notes,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}
