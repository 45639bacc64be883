package vetvisits

import "context"

type Repository interface {
	Create(ctx context.Context, v Visit) error
	// ListByCat devuelve las visitas ordenadas por fecha descendente.
	ListByCat(ctx context.Context, catID string) ([]Visit, error)
}
