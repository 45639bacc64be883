package cats

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
	ErrForbidden    = errors.New("not the owner")
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

type CreateInput struct {
	Name               string
	Gender             string
	Neutered           bool
	Breed              string
	BirthDate          *time.Time
	EstimatedAgeMonths *int
	WeightKg           float64
	BodyConditionScore int
	FoodType           string
	Lifestyle          string
	MedicalHistory     []string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Profile, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Profile{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Profile{}, ErrInvalidInput
	}
	if in.BodyConditionScore < 0 || in.BodyConditionScore > 9 {
		return Profile{}, ErrInvalidInput
	}

	gender := Gender(strings.TrimSpace(in.Gender))
	if gender == "" {
		gender = GenderUnknown
	}

	now := s.now()
	p := Profile{
		ID:                 uuid.NewString(),
		OwnerUserID:        ownerUserID,
		Name:               strings.TrimSpace(in.Name),
		Gender:             gender,
		Neutered:           in.Neutered,
		Breed:              strings.TrimSpace(in.Breed),
		BirthDate:          in.BirthDate,
		EstimatedAgeMonths: in.EstimatedAgeMonths,
		WeightKg:           in.WeightKg,
		BodyConditionScore: in.BodyConditionScore,
		FoodType:           FoodType(strings.TrimSpace(in.FoodType)),
		Lifestyle:          strings.TrimSpace(in.Lifestyle),
		MedicalHistory:     parseConditions(in.MedicalHistory),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}

	// El primer gato de la cuenta queda activo automáticamente.
	if active, err := s.repo.GetActiveCat(ctx, ownerUserID); err != nil || active == "" {
		_ = s.repo.SetActiveCat(ctx, ownerUserID, p.ID)
	}

	return p, nil
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	Name               *string
	Gender             *string
	Neutered           *bool
	Breed              *string
	BirthDate          *time.Time
	ClearBirthDate     bool
	EstimatedAgeMonths *int
	WeightKg           *float64
	BodyConditionScore *int
	FoodType           *string
	Lifestyle          *string
	MedicalHistory     []string // nil = no tocar, vacío = limpiar
}

func (s *Service) Update(ctx context.Context, id, requesterUserID string, in UpdateInput) (Profile, error) {
	p, err := s.ownedProfile(ctx, id, requesterUserID)
	if err != nil {
		return Profile{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Profile{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Gender != nil {
		p.Gender = Gender(strings.TrimSpace(*in.Gender))
	}
	if in.Neutered != nil {
		p.Neutered = *in.Neutered
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.ClearBirthDate {
		p.BirthDate = nil
	} else if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.EstimatedAgeMonths != nil {
		p.EstimatedAgeMonths = in.EstimatedAgeMonths
	}
	if in.WeightKg != nil {
		p.WeightKg = *in.WeightKg
	}
	if in.BodyConditionScore != nil {
		if *in.BodyConditionScore < 0 || *in.BodyConditionScore > 9 {
			return Profile{}, ErrInvalidInput
		}
		p.BodyConditionScore = *in.BodyConditionScore
	}
	if in.FoodType != nil {
		p.FoodType = FoodType(strings.TrimSpace(*in.FoodType))
	}
	if in.Lifestyle != nil {
		p.Lifestyle = strings.TrimSpace(*in.Lifestyle)
	}
	if in.MedicalHistory != nil {
		p.MedicalHistory = parseConditions(in.MedicalHistory)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Delete borra el perfil. Solo lo inicia el dueño; nunca se borra solo.
func (s *Service) Delete(ctx context.Context, id, requesterUserID string) error {
	if _, err := s.ownedProfile(ctx, id, requesterUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Profile, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// SetActiveCat mueve el puntero de gato activo; valida ownership.
func (s *Service) SetActiveCat(ctx context.Context, ownerUserID, catID string) error {
	if _, err := s.ownedProfile(ctx, catID, ownerUserID); err != nil {
		return err
	}
	return s.repo.SetActiveCat(ctx, ownerUserID, catID)
}

func (s *Service) GetActiveCat(ctx context.Context, ownerUserID string) (Profile, error) {
	id, err := s.repo.GetActiveCat(ctx, ownerUserID)
	if err != nil || id == "" {
		return Profile{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ownedProfile(ctx context.Context, id, requesterUserID string) (Profile, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(requesterUserID) == "" {
		return Profile{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if p.OwnerUserID != requesterUserID {
		return Profile{}, ErrForbidden
	}
	return p, nil
}

func parseConditions(in []string) []Condition {
	out := make([]Condition, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		out = append(out, Condition(s))
	}
	return out
}
