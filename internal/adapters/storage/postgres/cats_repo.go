package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"cat-care-diary/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

func (r *CatsRepo) Create(ctx context.Context, p cats.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cats (
			id, owner_user_id,
			name, gender, neutered, breed,
			birth_date, estimated_age_months,
			weight_kg, body_condition_score,
			food_type, lifestyle, medical_history,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Gender,
		p.Neutered,
		p.Breed,
		toNullDate(p.BirthDate),
		toNullInt(p.EstimatedAgeMonths),
		p.WeightKg,
		p.BodyConditionScore,
		p.FoodType,
		p.Lifestyle,
		joinConditions(p.MedicalHistory),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *CatsRepo) Update(ctx context.Context, p cats.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET
			name = $2,
			gender = $3,
			neutered = $4,
			breed = $5,
			birth_date = $6,
			estimated_age_months = $7,
			weight_kg = $8,
			body_condition_score = $9,
			food_type = $10,
			lifestyle = $11,
			medical_history = $12,
			updated_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Gender,
		p.Neutered,
		p.Breed,
		toNullDate(p.BirthDate),
		toNullInt(p.EstimatedAgeMonths),
		p.WeightKg,
		p.BodyConditionScore,
		p.FoodType,
		p.Lifestyle,
		joinConditions(p.MedicalHistory),
		p.UpdatedAt,
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

func (r *CatsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	// el puntero de activo cae por FK ON DELETE CASCADE
	return nil
}

const catColumns = `
	id, owner_user_id,
	name, gender, neutered, breed,
	birth_date, estimated_age_months,
	weight_kg, body_condition_score,
	food_type, lifestyle, medical_history,
	created_at, updated_at
`

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cats.Profile{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE id = $1
	`, id)

	p, err := scanCat(row)
	if err == sql.ErrNoRows {
		return cats.Profile{}, ErrNotFound
	}
	return p, err
}

func (r *CatsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Profile, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Profile, 0)
	for rows.Next() {
		p, err := scanCat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *CatsRepo) SetActiveCat(ctx context.Context, ownerUserID, catID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO active_cats (owner_user_id, cat_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_user_id)
		DO UPDATE SET cat_id = EXCLUDED.cat_id, updated_at = EXCLUDED.updated_at
	`, ownerUserID, catID, time.Now())
	return err
}

func (r *CatsRepo) GetActiveCat(ctx context.Context, ownerUserID string) (string, error) {
	var catID string
	err := r.db.QueryRowContext(ctx, `
		SELECT cat_id FROM active_cats WHERE owner_user_id = $1
	`, ownerUserID).Scan(&catID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return catID, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCat(row rowScanner) (cats.Profile, error) {
	var p cats.Profile
	var bd sql.NullTime
	var months sql.NullInt64
	var history string

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Gender,
		&p.Neutered,
		&p.Breed,
		&bd,
		&months,
		&p.WeightKg,
		&p.BodyConditionScore,
		&p.FoodType,
		&p.Lifestyle,
		&history,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return cats.Profile{}, err
	}

	if bd.Valid {
		t := bd.Time
		// ojo: birth_date es date, pgx lo puede mapear a time.Time midnight UTC
		p.BirthDate = &t
	}
	if months.Valid {
		m := int(months.Int64)
		p.EstimatedAgeMonths = &m
	}
	p.MedicalHistory = splitConditions(history)

	return p, nil
}

// medical_history se guarda como texto separado por comas; es un set
// chico de flags, no amerita tabla aparte
func joinConditions(cs []cats.Condition) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ",")
}

func splitConditions(s string) []cats.Condition {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]cats.Condition, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, cats.Condition(p))
		}
	}
	return out
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
