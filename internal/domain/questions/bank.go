package questions

import (
	"context"
	"strings"
	"sync"

	"cat-care-diary/internal/platform/logger"
)

// Source provee el set completo de preguntas (embebido o remoto).
type Source interface {
	Load(ctx context.Context) ([]Question, error)
}

// Bank cachea las preguntas con estado loaded/not-loaded explícito.
// Nada de estado a nivel módulo: se instancia y se inyecta donde haga
// falta, y los tests pueden resetearlo entre corridas.
type Bank struct {
	source Source
	log    logger.Logger

	mu      sync.RWMutex
	loaded  bool
	ordered []Question
	byID    map[string]Question
}

func NewBank(source Source, log logger.Logger) *Bank {
	if log == nil {
		log = logger.Nop()
	}
	return &Bank{
		source: source,
		log:    log,
		byID:   map[string]Question{},
	}
}

// Load carga el banco si aún no está cargado. Idempotente.
func (b *Bank) Load(ctx context.Context) error {
	b.mu.RLock()
	done := b.loaded
	b.mu.RUnlock()
	if done {
		return nil
	}

	qs, err := b.source.Load(ctx)
	if err != nil {
		b.log.Error("question bank load failed", map[string]any{"err": err.Error()})
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ordered = qs
	b.byID = make(map[string]Question, len(qs))
	for _, q := range qs {
		b.byID[q.ID] = q
	}
	b.loaded = true
	return nil
}

func (b *Bank) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Reset vuelve al estado not-loaded (para tests).
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded = false
	b.ordered = nil
	b.byID = map[string]Question{}
}

func (b *Bank) Get(id string) (Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.byID[id]
	return q, ok
}

// All devuelve el banco completo en orden de autor.
func (b *Bank) All() []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Question, len(b.ordered))
	copy(out, b.ordered)
	return out
}

// FollowUps devuelve las preguntas de seguimiento de una categoría,
// en orden de autor. Se distinguen del onboarding por el prefijo "fu_".
func (b *Bank) FollowUps(cat Category) []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Question, 0, 4)
	for _, q := range b.ordered {
		if q.Category == cat && strings.HasPrefix(q.ID, "fu_") {
			out = append(out, q)
		}
	}
	return out
}
