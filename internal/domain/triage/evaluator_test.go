package triage

import (
	"context"
	"strings"
	"testing"
	"time"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/domain/questions"
)

func testBank(t *testing.T) *questions.Bank {
	t.Helper()
	b := questions.NewBank(questions.NewStaticSource(), nil)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("bank load: %v", err)
	}
	return b
}

func youngFemale() cats.Profile {
	months := 24
	return cats.Profile{
		Name:               "나비",
		Gender:             cats.GenderFemale,
		EstimatedAgeMonths: &months,
	}
}

var evalNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestEvaluate_AllNormal_NoPlan(t *testing.T) {
	plan := Evaluate(youngFemale(), Answers{
		"q1_urinary_general":  "normal",
		"q2_water_general":    "normal",
		"q3_vomiting":         "never",
		"q4_activity_general": "normal",
		"q5_appetite":         "normal",
	}, testBank(t), evalNow)

	if plan != nil {
		t.Fatalf("expected nil plan below threshold, got %+v", plan)
	}
}

func TestEvaluate_SinglePoint_BelowThreshold(t *testing.T) {
	// Solo q5 picky (+1 GI): no alcanza el umbral de 2
	plan := Evaluate(youngFemale(), Answers{
		"q5_appetite": "picky",
	}, testBank(t), evalNow)

	if plan != nil {
		t.Fatalf("expected nil plan with a single point, got %+v", plan)
	}
}

func TestEvaluate_DailyVomiting_GIPlan(t *testing.T) {
	plan := Evaluate(youngFemale(), Answers{
		"q3_vomiting": "daily",
	}, testBank(t), evalNow)

	if plan == nil {
		t.Fatalf("expected a plan")
	}
	if plan.Category != questions.CategoryGI {
		t.Fatalf("expected GI, got %s", plan.Category)
	}
	if plan.Score != 3 {
		t.Fatalf("expected score 3, got %d", plan.Score)
	}
	if len(plan.Questions) != 3 {
		t.Fatalf("expected 3 GI follow-ups, got %d", len(plan.Questions))
	}
	if plan.CreatedAt != evalNow {
		t.Fatalf("expected CreatedAt = now")
	}
}

func TestEvaluate_MaleFrequentUrination_FLUTD(t *testing.T) {
	months := 24
	p := cats.Profile{
		Gender:             cats.GenderMale,
		EstimatedAgeMonths: &months,
	}

	// macho (+1) + q1 often (+2) = 3
	plan := Evaluate(p, Answers{
		"q1_urinary_male": "often",
	}, testBank(t), evalNow)

	if plan == nil {
		t.Fatalf("expected a plan")
	}
	if plan.Category != questions.CategoryFLUTD {
		t.Fatalf("expected FLUTD, got %s", plan.Category)
	}
	if plan.Score != 3 {
		t.Fatalf("expected score 3, got %d", plan.Score)
	}
	if plan.ReasonSummary == "" || !strings.Contains(plan.ReasonSummary, ", ") {
		t.Fatalf("expected joined reason summary, got %q", plan.ReasonSummary)
	}
}

func TestEvaluate_CKDHistory_Plus2(t *testing.T) {
	months := 24
	p := cats.Profile{
		Gender:             cats.GenderFemale,
		EstimatedAgeMonths: &months,
		MedicalHistory:     []cats.Condition{cats.ConditionCKD},
	}

	// solo la historia clínica alcanza el umbral
	plan := Evaluate(p, Answers{"q2_water_senior": "normal"}, testBank(t), evalNow)
	if plan == nil {
		t.Fatalf("expected a plan from CKD history alone")
	}
	if plan.Category != questions.CategoryCKD || plan.Score != 2 {
		t.Fatalf("expected CKD score 2, got %s %d", plan.Category, plan.Score)
	}
}

func TestEvaluate_SeniorAges_AddProfilePoints(t *testing.T) {
	bd := evalNow.AddDate(-11, 0, -10)
	p := cats.Profile{Gender: cats.GenderFemale, BirthDate: &bd}

	// 11 años: CKD +1 (>=7), PAIN +1 (>=10); q4 often empuja PAIN a 3
	plan := Evaluate(p, Answers{
		"q4_mobility_senior": "often",
	}, testBank(t), evalNow)

	if plan == nil {
		t.Fatalf("expected a plan")
	}
	if plan.Category != questions.CategoryPAIN {
		t.Fatalf("expected PAIN, got %s", plan.Category)
	}
	if plan.Score != 3 {
		t.Fatalf("expected score 3, got %d", plan.Score)
	}
}

func TestEvaluate_Tie_FixedCategoryOrderWins(t *testing.T) {
	// FLUTD 2 (historia urinaria +1, q1 more +1) empata con CKD 2
	// (q2 much_more +2); gana FLUTD por orden fijo
	months := 24
	p := cats.Profile{
		Gender:             cats.GenderFemale,
		EstimatedAgeMonths: &months,
		MedicalHistory:     []cats.Condition{cats.ConditionUrinary},
	}

	plan := Evaluate(p, Answers{
		"q1_urinary_male": "more",
		"q2_water_senior": "much_more",
	}, testBank(t), evalNow)

	if plan == nil {
		t.Fatalf("expected a plan")
	}
	if plan.Category != questions.CategoryFLUTD {
		t.Fatalf("tie should resolve to FLUTD, got %s", plan.Category)
	}
	if plan.Score != 2 {
		t.Fatalf("expected score 2, got %d", plan.Score)
	}
}

func TestEvaluate_UnloadedBank_PlanWithEmptyQuestions(t *testing.T) {
	b := questions.NewBank(questions.NewStaticSource(), nil)

	plan := Evaluate(youngFemale(), Answers{"q3_vomiting": "daily"}, b, evalNow)
	if plan == nil {
		t.Fatalf("expected a plan even without bank")
	}
	if plan.Questions == nil || len(plan.Questions) != 0 {
		t.Fatalf("expected empty (non-nil) questions, got %#v", plan.Questions)
	}
}

func TestEvaluate_MuchValue_CountsAsStrongWaterSignal(t *testing.T) {
	// la variante senior tiene "much" además de "much_more"
	plan := Evaluate(youngFemale(), Answers{
		"q2_water_senior": "much",
	}, testBank(t), evalNow)

	if plan == nil {
		t.Fatalf("expected a plan")
	}
	if plan.Category != questions.CategoryCKD || plan.Score != 2 {
		t.Fatalf("expected CKD 2, got %s %d", plan.Category, plan.Score)
	}
}
