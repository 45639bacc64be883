package cats

import "time"

// Gender define el sexo del gato.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Breed define las razas de gato principales.
type Breed string

const (
	BreedKoreanShorthair Breed = "korean_shorthair"
	BreedPersian         Breed = "persian"
	BreedSiamese         Breed = "siamese"
	BreedMaineCoon       Breed = "maine_coon"
	BreedBengal          Breed = "bengal"
	BreedRussianBlue     Breed = "russian_blue"
	BreedSphynx          Breed = "sphynx"
	BreedOther           Breed = "other"
)

// FoodType define el tipo de alimentación.
type FoodType string

const (
	FoodDry   FoodType = "dry"
	FoodWet   FoodType = "wet"
	FoodMixed FoodType = "mixed"
)

// Condition es un flag de historial médico del perfil.
// Son los flags que consumen el generador de preguntas y el evaluador.
type Condition string

const (
	ConditionUrinary         Condition = "urinary"         // cistitis, cálculos, FLUTD previo
	ConditionCKD             Condition = "ckd"             // enfermedad renal crónica diagnosticada
	ConditionMusculoskeletal Condition = "musculoskeletal" // artrosis, displasia, lesiones
	ConditionGI              Condition = "gi"              // gastritis, IBD
	ConditionOther           Condition = "other"
)

// Profile representa el perfil estático de un gato.
// Un perfil por gato; varios perfiles pueden convivir por cuenta,
// con un puntero de "gato activo".
type Profile struct {
	ID          string
	OwnerUserID string

	Name     string
	Gender   Gender
	Neutered bool
	Breed    string

	// Edad: BirthDate manda; si falta, EstimatedAgeMonths; si falta, default.
	BirthDate          *time.Time
	EstimatedAgeMonths *int

	WeightKg           float64
	BodyConditionScore int // 1..9, 0 = sin dato

	FoodType  FoodType
	Lifestyle string // indoor, outdoor, mixed (texto libre)

	MedicalHistory []Condition

	CreatedAt time.Time
	UpdatedAt time.Time
}

const defaultAgeYears = 5

// AgeYears deriva la edad en años:
// - floor((now - BirthDate) / 365 días) si hay fecha de nacimiento
// - EstimatedAgeMonths / 12 (floor) si hay estimación
// - defaultAgeYears si no hay nada
func (p Profile) AgeYears(now time.Time) int {
	if p.BirthDate != nil && !p.BirthDate.IsZero() {
		days := int(now.Sub(*p.BirthDate).Hours() / 24)
		if days < 0 {
			return 0
		}
		return days / 365
	}
	if p.EstimatedAgeMonths != nil {
		if *p.EstimatedAgeMonths < 0 {
			return 0
		}
		return *p.EstimatedAgeMonths / 12
	}
	return defaultAgeYears
}

// HasCondition chequea un flag de historial médico.
func (p Profile) HasCondition(c Condition) bool {
	for _, mc := range p.MedicalHistory {
		if mc == c {
			return true
		}
	}
	return false
}
