package questions

import (
	"time"

	"cat-care-diary/internal/domain/cats"
)

// Umbrales de edad de los slots de onboarding.
const (
	seniorWaterAge    = 7
	seniorMobilityAge = 10
)

// Generate arma el cuestionario de onboarding: 5 slots fijos, cada uno
// elegido por un predicado simple sobre el perfil. Siempre devuelve los
// slots en orden 1..5; un id ausente en el banco se saltea en silencio
// (nunca panic/throw). Banco sin cargar => lista vacía; el caller debe
// tratarla como "no se puede continuar", no como "sin síntomas".
func Generate(b *Bank, p cats.Profile, now time.Time) []Question {
	if b == nil || !b.Loaded() {
		return []Question{}
	}

	age := p.AgeYears(now)
	ids := make([]string, 0, 5)

	// Slot 1: urinario
	if p.Gender == cats.GenderMale || p.HasCondition(cats.ConditionUrinary) {
		ids = append(ids, "q1_urinary_male")
	} else {
		ids = append(ids, "q1_urinary_general")
	}

	// Slot 2: agua
	if age >= seniorWaterAge || p.HasCondition(cats.ConditionUrinary) || p.HasCondition(cats.ConditionCKD) {
		ids = append(ids, "q2_water_senior")
	} else {
		ids = append(ids, "q2_water_general")
	}

	// Slot 3: vómito (canónica)
	ids = append(ids, "q3_vomiting")

	// Slot 4: movilidad/actividad
	if age >= seniorMobilityAge || p.HasCondition(cats.ConditionMusculoskeletal) {
		ids = append(ids, "q4_mobility_senior")
	} else {
		ids = append(ids, "q4_activity_general")
	}

	// Slot 5: apetito (canónica)
	ids = append(ids, "q5_appetite")

	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := b.Get(id); ok {
			out = append(out, q)
		}
	}
	return out
}
