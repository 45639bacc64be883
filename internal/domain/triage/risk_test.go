package triage

import (
	"reflect"
	"testing"
	"time"

	"cat-care-diary/internal/domain/questions"
)

var riskNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func flutdPlan() *FollowUpPlan {
	return &FollowUpPlan{
		Category:  questions.CategoryFLUTD,
		Score:     3,
		Questions: []questions.Question{},
		CreatedAt: riskNow,
	}
}

func TestCompute_NoPlan_AllNormal_IsNormal(t *testing.T) {
	risk := Compute(youngFemale(), Answers{
		"q1_urinary_general": "normal",
		"q3_vomiting":        "never",
	}, nil, nil, riskNow)

	if risk.Level != RiskNormal {
		t.Fatalf("expected normal, got %s", risk.Level)
	}
	if risk.Label != "정상" {
		t.Fatalf("expected 정상, got %s", risk.Label)
	}
	if risk.Category != "" {
		t.Fatalf("expected no category, got %s", risk.Category)
	}
	if len(risk.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(risk.Recommendations))
	}
}

func TestCompute_NoPlan_StrongOnboardingAnswer_IsCaution(t *testing.T) {
	// much_more quedó bajo el umbral de plan (p.ej. +2 sin llegar por
	// redondeo de perfil) pero sigue siendo señal de caution
	for _, v := range []string{"daily", "much_more", "often"} {
		risk := Compute(youngFemale(), Answers{"q2_water_general": v}, nil, nil, riskNow)
		if risk.Level != RiskCaution {
			t.Fatalf("value %s: expected caution, got %s", v, risk.Level)
		}
		if risk.Label != "주의" {
			t.Fatalf("value %s: expected 주의, got %s", v, risk.Label)
		}
	}
}

func TestCompute_PlanPending_IsCautionWithCategory(t *testing.T) {
	risk := Compute(youngFemale(), Answers{}, flutdPlan(), nil, riskNow)

	if risk.Level != RiskCaution {
		t.Fatalf("expected caution while plan pending, got %s", risk.Level)
	}
	if risk.Category != questions.CategoryFLUTD {
		t.Fatalf("expected FLUTD category, got %s", risk.Category)
	}
}

func TestCompute_TwoStrongFollowUps_IsCheck(t *testing.T) {
	risk := Compute(youngFemale(), Answers{}, flutdPlan(), Answers{
		"fu_flutd_1": "yes",
		"fu_flutd_2": "clear",
		"fu_flutd_3": "no",
	}, riskNow)

	if risk.Level != RiskCheck {
		t.Fatalf("expected check, got %s", risk.Level)
	}
	if risk.Label != "검진 필요" {
		t.Fatalf("expected 검진 필요, got %s", risk.Label)
	}
	if risk.Category != questions.CategoryFLUTD {
		t.Fatalf("expected FLUTD, got %s", risk.Category)
	}
}

func TestCompute_TwoUnknowns_IsObservationCaution(t *testing.T) {
	risk := Compute(youngFemale(), Answers{}, flutdPlan(), Answers{
		"fu_flutd_1": "unknown",
		"fu_flutd_2": "unknown",
		"fu_flutd_3": "no",
	}, riskNow)

	if risk.Level != RiskCaution {
		t.Fatalf("expected caution, got %s", risk.Level)
	}
	if !reflect.DeepEqual(risk.Recommendations, observationRecs) {
		t.Fatalf("expected observation recommendations, got %v", risk.Recommendations)
	}
}

func TestCompute_OneStrong_IsCategoryCaution(t *testing.T) {
	risk := Compute(youngFemale(), Answers{}, flutdPlan(), Answers{
		"fu_flutd_1": "yes",
		"fu_flutd_2": "no",
		"fu_flutd_3": "no",
	}, riskNow)

	if risk.Level != RiskCaution {
		t.Fatalf("expected caution, got %s", risk.Level)
	}
	if !reflect.DeepEqual(risk.Recommendations, recommendationTable[recKey{questions.CategoryFLUTD, RiskCaution}]) {
		t.Fatalf("expected FLUTD caution recommendations, got %v", risk.Recommendations)
	}
}

func TestCompute_AllFollowUpsNegative_IsNormal(t *testing.T) {
	risk := Compute(youngFemale(), Answers{}, flutdPlan(), Answers{
		"fu_flutd_1": "no",
		"fu_flutd_2": "no",
		"fu_flutd_3": "no",
	}, riskNow)

	if risk.Level != RiskNormal {
		t.Fatalf("expected normal, got %s", risk.Level)
	}
	// normal mantiene la categoría del plan como contexto
	if risk.Category != questions.CategoryFLUTD {
		t.Fatalf("expected FLUTD context, got %s", risk.Category)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	fu := Answers{"fu_flutd_1": "yes", "fu_flutd_2": "unknown"}

	a := Compute(youngFemale(), Answers{}, flutdPlan(), fu, riskNow)
	b := Compute(youngFemale(), Answers{}, flutdPlan(), fu, riskNow)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs produced different statuses:\n%+v\n%+v", a, b)
	}
	if a.LastUpdatedAt != riskNow {
		t.Fatalf("expected LastUpdatedAt = now")
	}
}

func TestCompute_CheckRecommendations_PerCategory(t *testing.T) {
	for _, cat := range []questions.Category{
		questions.CategoryFLUTD,
		questions.CategoryCKD,
		questions.CategoryGI,
		questions.CategoryPAIN,
	} {
		plan := &FollowUpPlan{Category: cat, Score: 3, CreatedAt: riskNow}
		risk := Compute(youngFemale(), Answers{}, plan, Answers{
			"a": "yes", "b": "yes",
		}, riskNow)

		if risk.Level != RiskCheck {
			t.Fatalf("%s: expected check, got %s", cat, risk.Level)
		}
		want := recommendationTable[recKey{cat, RiskCheck}]
		if !reflect.DeepEqual(risk.Recommendations, want) {
			t.Fatalf("%s: wrong recommendations %v", cat, risk.Recommendations)
		}
	}
}
