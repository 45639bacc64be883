package triage

import (
	"sort"
	"strings"
	"time"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/domain/questions"
)

// Umbral mínimo para pedir seguimiento.
const suspicionThreshold = 2

// Edades que suman puntos de perfil.
const (
	seniorAge  = 7
	elderlyAge = 10
)

type categoryScore struct {
	category questions.Category
	score    int
	reasons  []string
}

func (c *categoryScore) add(points int, reason string) {
	c.score += points
	c.reasons = append(c.reasons, reason)
}

// Evaluate recorre perfil + respuestas de onboarding y acumula puntajes
// por categoría. Si la categoría top no llega al umbral devuelve nil
// (sin seguimiento). El desempate es el orden fijo FLUTD, CKD, GI, PAIN
// vía sort estable sobre el array inicial; ese orden es intencional y
// hay tests que lo fijan.
//
// Si el banco de seguimiento no está disponible, el plan igual se
// devuelve con Questions vacío; el caller tiene que tolerarlo.
func Evaluate(p cats.Profile, answers Answers, bank *questions.Bank, now time.Time) *FollowUpPlan {
	scores := []*categoryScore{
		{category: questions.CategoryFLUTD},
		{category: questions.CategoryCKD},
		{category: questions.CategoryGI},
		{category: questions.CategoryPAIN},
	}
	byCat := map[questions.Category]*categoryScore{}
	for _, cs := range scores {
		byCat[cs.category] = cs
	}

	scoreProfile(p, byCat, now)
	scoreAnswers(answers, byCat)

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	top := scores[0]
	if top.score < suspicionThreshold {
		return nil
	}

	var followUps []questions.Question
	if bank != nil && bank.Loaded() {
		followUps = bank.FollowUps(top.category)
	}
	if followUps == nil {
		followUps = []questions.Question{}
	}

	return &FollowUpPlan{
		Category: top.category,
		Score:    top.score,
		// duplicados posibles y permitidos
		ReasonSummary: strings.Join(top.reasons, ", "),
		Questions:     followUps,
		CreatedAt:     now,
	}
}

// Puntos derivados del perfil, evaluados una vez antes de las respuestas.
func scoreProfile(p cats.Profile, byCat map[questions.Category]*categoryScore, now time.Time) {
	age := p.AgeYears(now)

	if age >= seniorAge {
		byCat[questions.CategoryCKD].add(1, "7살 이상이에요")
	}
	if age >= elderlyAge {
		byCat[questions.CategoryPAIN].add(1, "10살 이상이에요")
	}
	if p.Gender == cats.GenderMale {
		byCat[questions.CategoryFLUTD].add(1, "수컷이에요")
	}
	if p.HasCondition(cats.ConditionUrinary) {
		byCat[questions.CategoryFLUTD].add(1, "비뇨기 병력이 있어요")
	}
	if p.HasCondition(cats.ConditionCKD) {
		byCat[questions.CategoryCKD].add(2, "신장 병력이 있어요")
	}
}

// Puntos derivados de respuestas, matcheados por prefijo o id exacto.
// Se itera en orden de id para que el resumen de razones sea estable.
func scoreAnswers(answers Answers, byCat map[questions.Category]*categoryScore) {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		value := answers[id]
		switch {
		case strings.HasPrefix(id, "q1_"):
			switch value {
			case "often":
				byCat[questions.CategoryFLUTD].add(2, "화장실을 자주 들락거려요")
			case "rarely", "more", "less":
				byCat[questions.CategoryFLUTD].add(1, "배뇨 패턴이 달라졌어요")
			}
		case strings.HasPrefix(id, "q2_"):
			switch value {
			case "much_more", "much":
				byCat[questions.CategoryCKD].add(2, "음수량이 크게 늘었어요")
			case "little_more":
				byCat[questions.CategoryCKD].add(1, "음수량이 조금 늘었어요")
			}
		case id == "q3_vomiting":
			switch value {
			case "daily":
				byCat[questions.CategoryGI].add(3, "거의 매일 구토해요")
			case "weekly":
				byCat[questions.CategoryGI].add(2, "매주 구토해요")
			}
		case strings.HasPrefix(id, "q4_"):
			switch value {
			case "often", "decreased":
				byCat[questions.CategoryPAIN].add(2, "활동이 눈에 띄게 줄었어요")
			case "sometimes":
				byCat[questions.CategoryPAIN].add(1, "활동이 가끔 줄어요")
			}
		case id == "q5_appetite":
			switch value {
			case "decreased":
				byCat[questions.CategoryGI].add(2, "식욕이 줄었어요")
			case "picky":
				byCat[questions.CategoryGI].add(1, "편식이 생겼어요")
			}
		}
	}
}
