package vetvisits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	VisitedOn string
	Clinic    string
	Reason    string
	Diagnosis string
	Treatment string
	Notes     string
}

func (s *Service) Add(ctx context.Context, catID string, in AddInput) (Visit, error) {
	if strings.TrimSpace(catID) == "" {
		return Visit{}, ErrInvalidInput
	}
	visitedOn := strings.TrimSpace(in.VisitedOn)
	if visitedOn == "" {
		visitedOn = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", visitedOn); err != nil {
		return Visit{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Clinic) == "" && strings.TrimSpace(in.Reason) == "" {
		return Visit{}, ErrInvalidInput
	}

	v := Visit{
		ID:        uuid.NewString(),
		CatID:     catID,
		VisitedOn: visitedOn,
		Clinic:    strings.TrimSpace(in.Clinic),
		Reason:    strings.TrimSpace(in.Reason),
		Diagnosis: strings.TrimSpace(in.Diagnosis),
		Treatment: strings.TrimSpace(in.Treatment),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

func (s *Service) ListByCat(ctx context.Context, catID string) ([]Visit, error) {
	return s.repo.ListByCat(ctx, catID)
}
