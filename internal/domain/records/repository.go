package records

import "context"

type Repository interface {
	Create(ctx context.Context, rec DailyRecord) error
	Update(ctx context.Context, rec DailyRecord) error
	GetByDate(ctx context.Context, catID, date string) (DailyRecord, error)
	// ListByCat devuelve registros ordenados por fecha descendente.
	// monthPrefix opcional ("YYYY-MM") filtra al mes.
	ListByCat(ctx context.Context, catID, monthPrefix string) ([]DailyRecord, error)
}
