package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-care-diary/internal/domain/vetvisits"
)

type visitsRepo struct {
	mu    sync.RWMutex
	byCat map[string][]vetvisits.Visit
}

func NewVisitsRepo() vetvisits.Repository {
	return &visitsRepo{
		byCat: make(map[string][]vetvisits.Visit),
	}
}

func (r *visitsRepo) Create(ctx context.Context, v vetvisits.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("visit id required")
	}
	r.byCat[v.CatID] = append(r.byCat[v.CatID], v)
	return nil
}

func (r *visitsRepo) ListByCat(ctx context.Context, catID string) ([]vetvisits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byCat[catID]
	out := make([]vetvisits.Visit, len(src))
	copy(out, src)

	sort.Slice(out, func(i, j int) bool {
		if out[i].VisitedOn != out[j].VisitedOn {
			return out[i].VisitedOn > out[j].VisitedOn
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
