package triage

import (
	"context"
	"time"

	"cat-care-diary/internal/domain/questions"
)

// Answers mapea id de pregunta => value de la opción elegida.
type Answers map[string]string

// FollowUpPlan es la salida del evaluador de sospecha: la categoría
// ganadora, su puntaje, el resumen de razones y las preguntas de
// seguimiento. Ausente (nil) si ninguna categoría pasó el umbral.
type FollowUpPlan struct {
	Category      questions.Category   `json:"category"`
	Score         int                  `json:"score"`
	ReasonSummary string               `json:"reason_summary"`
	Questions     []questions.Question `json:"questions"`
	CreatedAt     time.Time            `json:"created_at"`
}

// RiskLevel es uno de tres niveles.
type RiskLevel string

const (
	RiskNormal  RiskLevel = "normal"
	RiskCaution RiskLevel = "caution"
	RiskCheck   RiskLevel = "check"
)

// KoreanLabel refleja el nivel en la etiqueta que ve el usuario.
func (l RiskLevel) KoreanLabel() string {
	switch l {
	case RiskCheck:
		return "검진 필요"
	case RiskCaution:
		return "주의"
	default:
		return "정상"
	}
}

// RiskStatus es la clasificación final. Es función pura de
// (perfil, respuestas, plan, respuestas de seguimiento); el timestamp
// es solo metadata y no participa en ningún branch.
type RiskStatus struct {
	Level           RiskLevel          `json:"level"`
	Label           string             `json:"label"`
	Summary         string             `json:"summary"`
	Category        questions.Category `json:"category,omitempty"`
	Recommendations []string           `json:"recommendations"`
	LastUpdatedAt   time.Time          `json:"last_updated_at"`
}

// SnapshotRepo es el storage key-value inyectable (JSON in/out) donde
// se persisten respuestas, plan y el último RiskStatus, namespaced por
// gato. Cualquier store persistente puede implementarlo sin tocar la
// lógica de negocio.
type SnapshotRepo interface {
	Get(ctx context.Context, catID, key string) ([]byte, error)
	Put(ctx context.Context, catID, key string, value []byte) error
	Delete(ctx context.Context, catID, key string) error
}

// Keys de snapshot. Solo se guarda el último estado (sin historial).
const (
	SnapOnboardingAnswers = "onboarding_answers"
	SnapFollowUpPlan      = "follow_up_plan"
	SnapFollowUpAnswers   = "follow_up_answers"
	SnapRiskStatus        = "risk_status"
)
