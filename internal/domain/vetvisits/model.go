package vetvisits

import "time"

// Visit es una entrada libre del log de visitas a la clínica.
// Lista append-only: sin edición ni borrado.
type Visit struct {
	ID    string
	CatID string

	VisitedOn string // YYYY-MM-DD

	Clinic    string
	Reason    string
	Diagnosis string
	Treatment string
	Notes     string

	CreatedAt time.Time
}
