package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

var ErrPhotoNotFound = errors.New("photo not found")

// memoryStore guarda fotos en RAM. Solo dev/tests.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]storedPhoto // catID => key => photo
	now  func() time.Time
	seq  int
}

type storedPhoto struct {
	meta Photo
	body []byte
}

func NewMemoryStore() Store {
	return &memoryStore{
		data: map[string]map[string]storedPhoto{},
		now:  time.Now,
	}
}

func (s *memoryStore) List(ctx context.Context, catID string) ([]Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Photo, 0)
	for _, p := range s.data[catID] {
		out = append(out, p.meta)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (s *memoryStore) Put(ctx context.Context, catID, fileName, contentType string, body io.Reader) (Photo, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return Photo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	now := s.now()
	p := Photo{
		Key:         fmt.Sprintf("%s/%d-%s", catID, s.seq, fileName),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(b)),
		UploadedAt:  now,
	}

	if s.data[catID] == nil {
		s.data[catID] = map[string]storedPhoto{}
	}
	s.data[catID][p.Key] = storedPhoto{meta: p, body: b}
	return p, nil
}

func (s *memoryStore) Delete(ctx context.Context, catID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[catID][key]; !ok {
		return ErrPhotoNotFound
	}
	delete(s.data[catID], key)
	return nil
}
