package triage

import (
	"fmt"
	"time"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/domain/questions"
)

// Values de onboarding que disparan caution sin plan (regla 1).
var strongOnboardingValues = map[string]bool{
	"daily":     true,
	"much_more": true,
	"often":     true,
}

// Values de seguimiento que cuentan como respuesta "fuerte" (regla 4).
var strongFollowUpValues = map[string]bool{
	"yes":   true,
	"clear": true,
	"often": true,
	"daily": true,
}

// Compute clasifica el riesgo. Tabla de decisión evaluada de arriba
// hacia abajo, gana el primer match:
//  1. sin plan + alguna respuesta fuerte de onboarding => caution
//  2. sin plan => normal
//  3. plan sin responder => caution
//  4. plan respondido: fuertes>=2 => check; unknown>=2 => caution
//     (observación); fuertes>=1 => caution (por categoría); sino normal.
//
// Determinística dados los inputs; now solo alimenta LastUpdatedAt.
func Compute(p cats.Profile, onboarding Answers, plan *FollowUpPlan, followUp Answers, now time.Time) RiskStatus {
	name := p.Name
	if name == "" {
		name = "우리 아이"
	}

	if plan == nil {
		for _, v := range onboarding {
			if strongOnboardingValues[v] {
				return status(RiskCaution, "",
					fmt.Sprintf("%s의 답변 중 지켜봐야 할 항목이 있어요.", name),
					cautionGenericRecs, now)
			}
		}
		return status(RiskNormal, "",
			fmt.Sprintf("%s의 컨디션은 안정적으로 보여요.", name),
			normalRecs, now)
	}

	if followUp == nil {
		return status(RiskCaution, plan.Category,
			fmt.Sprintf("%s의 %s 관련 추가 확인이 필요해요.", name, plan.Category.KoreanLabel()),
			recsFor(plan.Category, RiskCaution), now)
	}

	strong, unknown := 0, 0
	for _, v := range followUp {
		if strongFollowUpValues[v] {
			strong++
		}
		if v == "unknown" {
			unknown++
		}
	}

	switch {
	case strong >= 2:
		return status(RiskCheck, plan.Category,
			fmt.Sprintf("%s의 %s 증상이 뚜렷해요. 검진을 권장해요.", name, plan.Category.KoreanLabel()),
			recsFor(plan.Category, RiskCheck), now)
	case unknown >= 2:
		return status(RiskCaution, plan.Category,
			fmt.Sprintf("%s의 상태를 며칠 더 관찰해 주세요.", name),
			observationRecs, now)
	case strong >= 1:
		return status(RiskCaution, plan.Category,
			fmt.Sprintf("%s에게 %s 관련 주의 신호가 있어요.", name, plan.Category.KoreanLabel()),
			recsFor(plan.Category, RiskCaution), now)
	default:
		return status(RiskNormal, plan.Category,
			fmt.Sprintf("%s의 컨디션은 안정적으로 보여요.", name),
			normalRecs, now)
	}
}

func status(level RiskLevel, cat questions.Category, summary string, recs []string, now time.Time) RiskStatus {
	out := make([]string, len(recs))
	copy(out, recs)
	return RiskStatus{
		Level:           level,
		Label:           level.KoreanLabel(),
		Summary:         summary,
		Category:        cat,
		Recommendations: out,
		LastUpdatedAt:   now,
	}
}

// normal siempre usa estos dos, sin importar la categoría.
var normalRecs = []string{
	"지금처럼 일상 기록을 이어가 주세요.",
	"물그릇과 화장실을 깨끗하게 유지해 주세요.",
}

var observationRecs = []string{
	"2~3일 동안 해당 증상을 집중 관찰해 주세요.",
	"변화가 보이면 바로 다시 체크해 주세요.",
}

var cautionGenericRecs = []string{
	"눈에 띈 변화를 며칠 더 지켜봐 주세요.",
	"증상이 이어지면 정밀 체크를 진행해 주세요.",
}

type recKey struct {
	cat   questions.Category
	level RiskLevel
}

// Tabla estática por (categoría, nivel).
var recommendationTable = map[recKey][]string{
	{questions.CategoryFLUTD, RiskCaution}: {
		"화장실 횟수와 소변량을 매일 기록해 주세요.",
		"물을 더 마실 수 있게 급수 위치를 늘려 주세요.",
	},
	{questions.CategoryFLUTD, RiskCheck}: {
		"소변을 못 보는 상태가 하루 이상이면 응급이에요.",
		"가까운 병원에서 비뇨기 검사를 받아 보세요.",
	},
	{questions.CategoryCKD, RiskCaution}: {
		"음수량과 소변량을 일주일간 기록해 주세요.",
		"체중 변화를 주기적으로 확인해 주세요.",
	},
	{questions.CategoryCKD, RiskCheck}: {
		"혈액검사(SDMA, 크레아티닌)를 권장해요.",
		"신장 수치 확인을 위해 병원 방문을 예약해 주세요.",
	},
	{questions.CategoryGI, RiskCaution}: {
		"식사량과 구토 횟수를 기록해 주세요.",
		"사료를 급하게 바꾸지 말아 주세요.",
	},
	{questions.CategoryGI, RiskCheck}: {
		"반복 구토는 탈수로 이어질 수 있어요. 진료를 받아 보세요.",
		"구토물 사진을 찍어 두면 진료에 도움이 돼요.",
	},
	{questions.CategoryPAIN, RiskCaution}: {
		"점프 실패나 절뚝임이 있는지 지켜봐 주세요.",
		"높은 곳에 오르는 경로에 계단을 놓아 주세요.",
	},
	{questions.CategoryPAIN, RiskCheck}: {
		"관절 통증이 의심돼요. 정형 검진을 받아 보세요.",
		"통증이 보일 때 영상을 찍어 두면 진료에 도움이 돼요.",
	},
}

func recsFor(cat questions.Category, level RiskLevel) []string {
	if recs, ok := recommendationTable[recKey{cat, level}]; ok {
		return recs
	}
	return cautionGenericRecs
}
