package memory

import (
	"context"
	"sync"

	"cat-care-diary/internal/domain/triage"
)

type snapshotsRepo struct {
	mu sync.RWMutex
	// clave: catID + "|" + key => blob JSON
	data map[string][]byte
}

func NewSnapshotsRepo() triage.SnapshotRepo {
	return &snapshotsRepo{
		data: make(map[string][]byte),
	}
}

func snapKey(catID, key string) string {
	return catID + "|" + key
}

func (r *snapshotsRepo) Get(ctx context.Context, catID, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.data[snapKey(catID, key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *snapshotsRepo) Put(ctx context.Context, catID, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := make([]byte, len(value))
	copy(b, value)
	r.data[snapKey(catID, key)] = b
	return nil
}

func (r *snapshotsRepo) Delete(ctx context.Context, catID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, snapKey(catID, key))
	return nil
}
