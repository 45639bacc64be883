package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
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

type SaveInput struct {
	Date            string
	UrinationCount  int
	DefecationCount int
	FoodIntake      string
	WaterIntake     string
	Activity        string
	Vomited         bool
	VomitCount      int
	Notes           string
}

// Save hace upsert por fecha: si ya hay registro para (gato, fecha) lo
// reemplaza conservando ID y CreatedAt originales; si no, crea uno
// nuevo. Último write gana; no hay protección de escritores
// concurrentes más allá del repo.
func (s *Service) Save(ctx context.Context, catID string, in SaveInput) (DailyRecord, error) {
	if strings.TrimSpace(catID) == "" {
		return DailyRecord{}, ErrInvalidInput
	}
	date := strings.TrimSpace(in.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return DailyRecord{}, ErrInvalidInput
	}
	if in.UrinationCount < 0 || in.DefecationCount < 0 || in.VomitCount < 0 {
		return DailyRecord{}, ErrInvalidInput
	}
	if in.Vomited && in.VomitCount == 0 {
		in.VomitCount = 1
	}

	now := s.now()
	rec := DailyRecord{
		CatID:           catID,
		Date:            date,
		UrinationCount:  in.UrinationCount,
		DefecationCount: in.DefecationCount,
		FoodIntake:      IntakeLevel(strings.TrimSpace(in.FoodIntake)),
		WaterIntake:     IntakeLevel(strings.TrimSpace(in.WaterIntake)),
		Activity:        ActivityLevel(strings.TrimSpace(in.Activity)),
		Vomited:         in.Vomited,
		VomitCount:      in.VomitCount,
		Notes:           strings.TrimSpace(in.Notes),
		UpdatedAt:       now,
	}

	existing, err := s.repo.GetByDate(ctx, catID, date)
	if err == nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, rec); err != nil {
			return DailyRecord{}, err
		}
		return rec, nil
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	if err := s.repo.Create(ctx, rec); err != nil {
		return DailyRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByDate(ctx context.Context, catID, date string) (DailyRecord, error) {
	return s.repo.GetByDate(ctx, catID, strings.TrimSpace(date))
}

func (s *Service) ListByCat(ctx context.Context, catID, monthPrefix string) ([]DailyRecord, error) {
	return s.repo.ListByCat(ctx, catID, strings.TrimSpace(monthPrefix))
}

// MonthlySummary agrega el mes (month = "YYYY-MM").
func (s *Service) MonthlySummary(ctx context.Context, catID, month string) (MonthlySummary, error) {
	month = strings.TrimSpace(month)
	if _, err := time.Parse("2006-01", month); err != nil {
		return MonthlySummary{}, ErrInvalidInput
	}

	recs, err := s.repo.ListByCat(ctx, catID, month)
	if err != nil {
		return MonthlySummary{}, err
	}

	sum := MonthlySummary{Month: month, RecordedDays: len(recs)}
	if len(recs) == 0 {
		return sum, nil
	}

	var uri, defe int
	for _, r := range recs {
		uri += r.UrinationCount
		defe += r.DefecationCount
		if r.Vomited {
			sum.VomitDays++
		}
		if r.FoodIntake == IntakeNone || r.FoodIntake == IntakeLess {
			sum.LowAppetiteDay++
		}
		if r.WaterIntake == IntakeNone || r.WaterIntake == IntakeLess {
			sum.LowWaterDays++
		}
		if r.Activity == ActivityLow {
			sum.LowActivityDay++
		}
	}
	sum.AvgUrination = float64(uri) / float64(len(recs))
	sum.AvgDefecation = float64(defe) / float64(len(recs))
	return sum, nil
}
