package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cat-care-diary/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

// daily_records tiene UNIQUE (cat_id, record_date); el upsert lo maneja
// el servicio (GetByDate + Create/Update), acá solo reflejamos filas.

func (r *RecordsRepo) Create(ctx context.Context, rec records.DailyRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_records (
			id, cat_id, record_date,
			urination_count, defecation_count,
			food_intake, water_intake, activity,
			vomited, vomit_count, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		rec.ID,
		rec.CatID,
		rec.Date,
		rec.UrinationCount,
		rec.DefecationCount,
		rec.FoodIntake,
		rec.WaterIntake,
		rec.Activity,
		rec.Vomited,
		rec.VomitCount,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.DailyRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE daily_records
		SET
			urination_count = $3,
			defecation_count = $4,
			food_intake = $5,
			water_intake = $6,
			activity = $7,
			vomited = $8,
			vomit_count = $9,
			notes = $10,
			updated_at = $11
		WHERE cat_id = $1 AND record_date = $2
	`,
		rec.CatID,
		rec.Date,
		rec.UrinationCount,
		rec.DefecationCount,
		rec.FoodIntake,
		rec.WaterIntake,
		rec.Activity,
		rec.Vomited,
		rec.VomitCount,
		rec.Notes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const recordColumns = `
	id, cat_id, record_date,
	urination_count, defecation_count,
	food_intake, water_intake, activity,
	vomited, vomit_count, notes,
	created_at, updated_at
`

func (r *RecordsRepo) GetByDate(ctx context.Context, catID, date string) (records.DailyRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM daily_records
		WHERE cat_id = $1 AND record_date = $2
	`, catID, date)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return records.DailyRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *RecordsRepo) ListByCat(ctx context.Context, catID, monthPrefix string) ([]records.DailyRecord, error) {
	catID = strings.TrimSpace(catID)
	if catID == "" {
		return nil, nil
	}

	query := `
		SELECT ` + recordColumns + `
		FROM daily_records
		WHERE cat_id = $1
	`
	args := []any{catID}
	if monthPrefix != "" {
		query += ` AND record_date LIKE $2`
		args = append(args, monthPrefix+"%")
	}
	query += ` ORDER BY record_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.DailyRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func scanRecord(row rowScanner) (records.DailyRecord, error) {
	var rec records.DailyRecord
	err := row.Scan(
		&rec.ID,
		&rec.CatID,
		&rec.Date,
		&rec.UrinationCount,
		&rec.DefecationCount,
		&rec.FoodIntake,
		&rec.WaterIntake,
		&rec.Activity,
		&rec.Vomited,
		&rec.VomitCount,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}
