package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-care-diary/internal/domain/records"
)

type recordsRepo struct {
	mu sync.RWMutex
	// clave: catID + "|" + fecha; la unicidad por día sale gratis
	byCatDate map[string]records.DailyRecord
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		byCatDate: make(map[string]records.DailyRecord),
	}
}

func recordKey(catID, date string) string {
	return catID + "|" + date
}

func (r *recordsRepo) Create(ctx context.Context, rec records.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	key := recordKey(rec.CatID, rec.Date)
	if _, exists := r.byCatDate[key]; exists {
		return errors.New("record already exists for date")
	}
	r.byCatDate[key] = rec
	return nil
}

func (r *recordsRepo) Update(ctx context.Context, rec records.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(rec.CatID, rec.Date)
	if _, exists := r.byCatDate[key]; !exists {
		return ErrNotFound
	}
	r.byCatDate[key] = rec
	return nil
}

func (r *recordsRepo) GetByDate(ctx context.Context, catID, date string) (records.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byCatDate[recordKey(catID, date)]
	if !ok {
		return records.DailyRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *recordsRepo) ListByCat(ctx context.Context, catID, monthPrefix string) ([]records.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.DailyRecord, 0)
	for _, rec := range r.byCatDate {
		if rec.CatID != catID {
			continue
		}
		if monthPrefix != "" && !strings.HasPrefix(rec.Date, monthPrefix) {
			continue
		}
		out = append(out, rec)
	}

	// fecha descendente; el formato YYYY-MM-DD ordena lexicográficamente
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	return out, nil
}
