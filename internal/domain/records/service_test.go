package records

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byKey map[string]DailyRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byKey: map[string]DailyRecord{}}
}

func (r *testRepo) key(catID, date string) string { return catID + "|" + date }

func (r *testRepo) Create(ctx context.Context, rec DailyRecord) error {
	k := r.key(rec.CatID, rec.Date)
	if _, ok := r.byKey[k]; ok {
		return errors.New("repo: already exists")
	}
	r.byKey[k] = rec
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec DailyRecord) error {
	k := r.key(rec.CatID, rec.Date)
	if _, ok := r.byKey[k]; !ok {
		return errRepoNotFound
	}
	r.byKey[k] = rec
	return nil
}

func (r *testRepo) GetByDate(ctx context.Context, catID, date string) (DailyRecord, error) {
	rec, ok := r.byKey[r.key(catID, date)]
	if !ok {
		return DailyRecord{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByCat(ctx context.Context, catID, monthPrefix string) ([]DailyRecord, error) {
	out := make([]DailyRecord, 0)
	for _, rec := range r.byKey {
		if rec.CatID != catID {
			continue
		}
		if monthPrefix != "" && !strings.HasPrefix(rec.Date, monthPrefix) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Save_CreatesNewRecord(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 5, 21, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rec, err := svc.Save(context.Background(), "cat-1", SaveInput{
		Date:           "2026-03-05",
		UrinationCount: 3,
		FoodIntake:     "normal",
		WaterIntake:    "normal",
		Activity:       "normal",
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if rec.CreatedAt != now || rec.UpdatedAt != now {
		t.Fatalf("expected timestamps = now")
	}
}

func TestService_Save_UpsertKeepsIDAndCreatedAt(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	now2 := now1.Add(10 * time.Hour)

	svc.now = func() time.Time { return now1 }
	first, err := svc.Save(context.Background(), "cat-1", SaveInput{
		Date:           "2026-03-05",
		UrinationCount: 2,
	})
	if err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	second, err := svc.Save(context.Background(), "cat-1", SaveInput{
		Date:           "2026-03-05",
		UrinationCount: 4,
		Vomited:        true,
	})
	if err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same id on upsert, got %s vs %s", first.ID, second.ID)
	}
	if second.CreatedAt != now1 {
		t.Fatalf("expected CreatedAt preserved")
	}
	if second.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt bumped")
	}
	if second.UrinationCount != 4 {
		t.Fatalf("expected counts replaced, got %d", second.UrinationCount)
	}

	// sigue habiendo un solo registro para la fecha
	if len(repo.byKey) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.byKey))
	}
}

func TestService_Save_VomitedImpliesCount(t *testing.T) {
	svc := NewService(newTestRepo())

	rec, err := svc.Save(context.Background(), "cat-1", SaveInput{
		Date:    "2026-03-05",
		Vomited: true,
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if rec.VomitCount != 1 {
		t.Fatalf("expected vomit count 1, got %d", rec.VomitCount)
	}
}

func TestService_Save_RejectsBadInput(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []SaveInput{
		{Date: "05-03-2026"},
		{Date: ""},
		{Date: "2026-03-05", UrinationCount: -1},
		{Date: "2026-03-05", VomitCount: -2},
	}
	for i, in := range cases {
		if _, err := svc.Save(context.Background(), "cat-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_MonthlySummary_Aggregates(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	seed := []SaveInput{
		{Date: "2026-03-01", UrinationCount: 2, DefecationCount: 1, FoodIntake: "normal", WaterIntake: "less", Activity: "normal"},
		{Date: "2026-03-02", UrinationCount: 4, DefecationCount: 1, FoodIntake: "less", WaterIntake: "normal", Activity: "low", Vomited: true},
		{Date: "2026-04-01", UrinationCount: 9, DefecationCount: 9},
	}
	for _, in := range seed {
		if _, err := svc.Save(context.Background(), "cat-1", in); err != nil {
			t.Fatalf("seed save error: %v", err)
		}
	}

	sum, err := svc.MonthlySummary(context.Background(), "cat-1", "2026-03")
	if err != nil {
		t.Fatalf("MonthlySummary error: %v", err)
	}
	if sum.RecordedDays != 2 {
		t.Fatalf("expected 2 recorded days, got %d", sum.RecordedDays)
	}
	if sum.AvgUrination != 3 {
		t.Fatalf("expected avg urination 3, got %v", sum.AvgUrination)
	}
	if sum.VomitDays != 1 || sum.LowAppetiteDay != 1 || sum.LowWaterDays != 1 || sum.LowActivityDay != 1 {
		t.Fatalf("unexpected aggregates: %+v", sum)
	}
}

func TestService_MonthlySummary_BadMonth(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.MonthlySummary(context.Background(), "cat-1", "032026"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
