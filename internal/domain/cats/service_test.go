package cats

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID   map[string]Profile
	active map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Profile{}, active: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Profile) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Profile, error) {
	out := make([]Profile, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) SetActiveCat(ctx context.Context, ownerUserID, catID string) error {
	r.active[ownerUserID] = catID
	return nil
}

func (r *testRepo) GetActiveCat(ctx context.Context, ownerUserID string) (string, error) {
	return r.active[ownerUserID], nil
}

// -------------------------
// Tests
// -------------------------

func TestProfile_AgeYears_BirthDateWins(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	bd := now.AddDate(-3, -2, 0)
	months := 120
	p := Profile{BirthDate: &bd, EstimatedAgeMonths: &months}

	if got := p.AgeYears(now); got != 3 {
		t.Fatalf("expected 3 from birth date, got %d", got)
	}
}

func TestProfile_AgeYears_FloorsPartialYears(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// 6 años y 11 meses => 6
	bd := now.AddDate(-7, 1, 0)
	p := Profile{BirthDate: &bd}
	if got := p.AgeYears(now); got != 6 {
		t.Fatalf("expected floor to 6, got %d", got)
	}
}

func TestProfile_AgeYears_EstimatedMonthsFallback(t *testing.T) {
	now := time.Now()

	months := 30
	p := Profile{EstimatedAgeMonths: &months}
	if got := p.AgeYears(now); got != 2 {
		t.Fatalf("expected 30 months => 2 years, got %d", got)
	}
}

func TestProfile_AgeYears_DefaultWhenUnknown(t *testing.T) {
	if got := (Profile{}).AgeYears(time.Now()); got != defaultAgeYears {
		t.Fatalf("expected default age %d, got %d", defaultAgeYears, got)
	}
}

func TestProfile_AgeYears_FutureBirthDateIsZero(t *testing.T) {
	now := time.Now()
	bd := now.AddDate(0, 6, 0)
	p := Profile{BirthDate: &bd}
	if got := p.AgeYears(now); got != 0 {
		t.Fatalf("expected 0 for future birth date, got %d", got)
	}
}

func TestService_Create_FirstCatBecomesActive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p1, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "나비"})
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	if repo.active["owner-1"] != p1.ID {
		t.Fatalf("expected first cat active")
	}

	// el segundo no mueve el puntero
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "치즈"}); err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}
	if repo.active["owner-1"] != p1.ID {
		t.Fatalf("expected active pointer unchanged after second cat")
	}
}

func TestService_Create_RejectsEmptyName(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_PartialAndClearBirthDate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	bd := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "나비",
		Gender:    "female",
		BirthDate: &bd,
		WeightKg:  4.2,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newWeight := 4.5
	updated, err := svc.Update(context.Background(), p.ID, "owner-1", UpdateInput{
		WeightKg:       &newWeight,
		ClearBirthDate: true,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.WeightKg != 4.5 {
		t.Fatalf("expected weight updated, got %v", updated.WeightKg)
	}
	if updated.BirthDate != nil {
		t.Fatalf("expected birth date cleared")
	}
	// lo no tocado se conserva
	if updated.Name != "나비" || updated.Gender != GenderFemale {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestService_Update_OtherOwnerForbidden(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "나비"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	name := "hacked"
	if _, err := svc.Update(context.Background(), p.ID, "owner-2", UpdateInput{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_SetActiveCat_ValidatesOwnership(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "나비"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.SetActiveCat(context.Background(), "owner-2", p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
