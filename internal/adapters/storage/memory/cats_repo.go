package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-care-diary/internal/domain/cats"
)

var (
	ErrNotFound = errors.New("not found")
)

type catsRepo struct {
	mu            sync.RWMutex
	byID          map[string]cats.Profile
	activeByOwner map[string]string
}

func NewCatsRepo() cats.Repository {
	return &catsRepo{
		byID:          make(map[string]cats.Profile),
		activeByOwner: make(map[string]string),
	}
}

func (r *catsRepo) Create(ctx context.Context, p cats.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("cat already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *catsRepo) Update(ctx context.Context, p cats.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *catsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.byID[id]
	if !exists {
		return ErrNotFound
	}
	delete(r.byID, id)

	// si era el activo, soltamos el puntero
	if r.activeByOwner[p.OwnerUserID] == id {
		delete(r.activeByOwner, p.OwnerUserID)
	}
	return nil
}

func (r *catsRepo) GetByID(ctx context.Context, id string) (cats.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return cats.Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *catsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Profile, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *catsRepo) SetActiveCat(ctx context.Context, ownerUserID, catID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[catID]
	if !ok || p.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	r.activeByOwner[ownerUserID] = catID
	return nil
}

func (r *catsRepo) GetActiveCat(ctx context.Context, ownerUserID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.activeByOwner[ownerUserID], nil
}
