package cats

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Profile, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Profile, error)

	// Puntero de gato activo por cuenta.
	SetActiveCat(ctx context.Context, ownerUserID, catID string) error
	GetActiveCat(ctx context.Context, ownerUserID string) (string, error)
}
