package triage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/domain/questions"
	"cat-care-diary/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoPlan       = errors.New("no follow-up plan")
	ErrNoRisk       = errors.New("no risk status")
)

type Service struct {
	bank      *questions.Bank
	snapshots SnapshotRepo
	log       logger.Logger
	now       func() time.Time
}

func NewService(bank *questions.Bank, snapshots SnapshotRepo, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		bank:      bank,
		snapshots: snapshots,
		log:       log,
		now:       time.Now,
	}
}

// SubmitOnboarding guarda las respuestas, corre el evaluador y recalcula
// el riesgo. Pisa cualquier pase anterior: plan y respuestas de
// seguimiento previas quedan descartadas.
func (s *Service) SubmitOnboarding(ctx context.Context, p cats.Profile, answers Answers) (*FollowUpPlan, RiskStatus, error) {
	if len(answers) == 0 {
		return nil, RiskStatus{}, ErrInvalidInput
	}

	// El banco puede no estar: el plan sale igual con Questions vacío.
	if err := s.bank.Load(ctx); err != nil {
		s.log.Warn("follow-up bank unavailable", map[string]any{
			"cat_id": p.ID,
			"err":    err.Error(),
		})
	}

	now := s.now()
	plan := Evaluate(p, answers, s.bank, now)
	risk := Compute(p, answers, plan, nil, now)

	if err := s.putJSON(ctx, p.ID, SnapOnboardingAnswers, answers); err != nil {
		return nil, RiskStatus{}, err
	}
	if plan != nil {
		if err := s.putJSON(ctx, p.ID, SnapFollowUpPlan, plan); err != nil {
			return nil, RiskStatus{}, err
		}
	} else {
		_ = s.snapshots.Delete(ctx, p.ID, SnapFollowUpPlan)
	}
	_ = s.snapshots.Delete(ctx, p.ID, SnapFollowUpAnswers)
	if err := s.putJSON(ctx, p.ID, SnapRiskStatus, risk); err != nil {
		return nil, RiskStatus{}, err
	}

	return plan, risk, nil
}

// Plan devuelve el plan de seguimiento vigente, o ErrNoPlan.
func (s *Service) Plan(ctx context.Context, catID string) (*FollowUpPlan, error) {
	var plan FollowUpPlan
	if !s.getJSON(ctx, catID, SnapFollowUpPlan, &plan) {
		return nil, ErrNoPlan
	}
	return &plan, nil
}

// SubmitFollowUp guarda las respuestas de seguimiento y recalcula el
// riesgo contra el plan vigente.
func (s *Service) SubmitFollowUp(ctx context.Context, p cats.Profile, answers Answers) (RiskStatus, error) {
	if len(answers) == 0 {
		return RiskStatus{}, ErrInvalidInput
	}

	plan, err := s.Plan(ctx, p.ID)
	if err != nil {
		return RiskStatus{}, err
	}

	var onboarding Answers
	s.getJSON(ctx, p.ID, SnapOnboardingAnswers, &onboarding)

	risk := Compute(p, onboarding, plan, answers, s.now())

	if err := s.putJSON(ctx, p.ID, SnapFollowUpAnswers, answers); err != nil {
		return RiskStatus{}, err
	}
	if err := s.putJSON(ctx, p.ID, SnapRiskStatus, risk); err != nil {
		return RiskStatus{}, err
	}
	return risk, nil
}

// Risk devuelve el último snapshot de riesgo, o ErrNoRisk.
func (s *Service) Risk(ctx context.Context, catID string) (RiskStatus, error) {
	var risk RiskStatus
	if !s.getJSON(ctx, catID, SnapRiskStatus, &risk) {
		return RiskStatus{}, ErrNoRisk
	}
	return risk, nil
}

// ClearForCat borra los snapshots del gato (al eliminar el perfil).
func (s *Service) ClearForCat(ctx context.Context, catID string) {
	for _, key := range []string{SnapOnboardingAnswers, SnapFollowUpPlan, SnapFollowUpAnswers, SnapRiskStatus} {
		_ = s.snapshots.Delete(ctx, catID, key)
	}
}

func (s *Service) putJSON(ctx context.Context, catID, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.snapshots.Put(ctx, catID, key, b)
}

// getJSON lee y decodifica un snapshot. Data ausente o corrupta se
// trata como "no hay" (defensivo, nunca panic); devuelve false.
func (s *Service) getJSON(ctx context.Context, catID, key string, out any) bool {
	b, err := s.snapshots.Get(ctx, catID, key)
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.log.Warn("corrupt snapshot ignored", map[string]any{
			"cat_id": catID,
			"key":    key,
			"err":    err.Error(),
		})
		return false
	}
	return true
}
