package questions

import (
	"context"
	"fmt"

	"cat-care-diary/internal/platform/httpclient"
)

// StaticSource es el banco embebido. Es la fuente por defecto y el
// contenido canónico: la fuente remota debe servir los mismos ids.
type StaticSource struct{}

func NewStaticSource() StaticSource { return StaticSource{} }

func (StaticSource) Load(ctx context.Context) ([]Question, error) {
	return staticBank(), nil
}

// HTTPSource baja el banco desde el endpoint remoto de preguntas.
type HTTPSource struct {
	client *httpclient.Client
	url    string
}

func NewHTTPSource(client *httpclient.Client, url string) *HTTPSource {
	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Load(ctx context.Context) ([]Question, error) {
	var out struct {
		Questions []Question `json:"questions"`
	}
	if err := s.client.GetJSON(ctx, s.url, nil, &out); err != nil {
		return nil, fmt.Errorf("questions: fetch bank: %w", err)
	}
	return out.Questions, nil
}

var yesNoUnknown = []Option{
	{Label: "네", Value: "yes"},
	{Label: "아니요", Value: "no"},
	{Label: "모르겠어요", Value: "unknown"},
}

func staticBank() []Question {
	return []Question{
		// ---- Onboarding: slot 1, urinario ----
		{
			ID:          "q1_urinary_general",
			Prompt:      "화장실(소변)을 하루에 몇 번 정도 가나요?",
			Description: "최근 일주일 기준으로 골라 주세요.",
			Options: []Option{
				{Label: "평소와 같아요", Value: "normal"},
				{Label: "자주 가요", Value: "often"},
				{Label: "거의 안 가요", Value: "rarely"},
				{Label: "횟수가 늘었어요", Value: "more"},
				{Label: "횟수가 줄었어요", Value: "less"},
			},
			Category: CategoryFLUTD,
		},
		{
			ID:          "q1_urinary_male",
			Prompt:      "화장실에 들락거리는 횟수가 어떤가요?",
			Description: "수컷이나 비뇨기 병력이 있는 아이는 요도 막힘 위험이 높아요.",
			Options: []Option{
				{Label: "평소와 같아요", Value: "normal"},
				{Label: "자주 들락거려요", Value: "often"},
				{Label: "거의 안 가요", Value: "rarely"},
				{Label: "횟수가 늘었어요", Value: "more"},
				{Label: "횟수가 줄었어요", Value: "less"},
			},
			Category: CategoryFLUTD,
		},

		// ---- Onboarding: slot 2, agua ----
		{
			ID:     "q2_water_general",
			Prompt: "물 마시는 양이 어떤가요?",
			Options: []Option{
				{Label: "평소와 비슷해요", Value: "normal"},
				{Label: "조금 늘었어요", Value: "little_more"},
				{Label: "많이 늘었어요", Value: "much_more"},
			},
			Category: CategoryCKD,
		},
		{
			ID:          "q2_water_senior",
			Prompt:      "물그릇을 비우는 속도가 어떤가요?",
			Description: "7살 이상이거나 신장 병력이 있으면 음수량 변화가 중요해요.",
			Options: []Option{
				{Label: "평소와 비슷해요", Value: "normal"},
				{Label: "조금 늘었어요", Value: "little_more"},
				{Label: "많이 마셔요", Value: "much"},
				{Label: "눈에 띄게 늘었어요", Value: "much_more"},
			},
			Category: CategoryCKD,
		},

		// ---- Onboarding: slot 3, vómito (canónica) ----
		{
			ID:     "q3_vomiting",
			Prompt: "구토를 얼마나 자주 하나요?",
			Options: []Option{
				{Label: "안 해요", Value: "never"},
				{Label: "한 달에 한두 번", Value: "monthly"},
				{Label: "일주일에 한 번 이상", Value: "weekly"},
				{Label: "거의 매일", Value: "daily"},
			},
			Category: CategoryGI,
		},

		// ---- Onboarding: slot 4, actividad/movilidad ----
		{
			ID:     "q4_activity_general",
			Prompt: "활동량이 어떤가요?",
			Options: []Option{
				{Label: "평소와 같아요", Value: "normal"},
				{Label: "가끔 덜 움직여요", Value: "sometimes"},
				{Label: "눈에 띄게 줄었어요", Value: "decreased"},
			},
			Category: CategoryPAIN,
		},
		{
			ID:          "q4_mobility_senior",
			Prompt:      "높은 곳에 오르내리는 걸 주저하나요?",
			Description: "10살 이상 고양이의 관절 변화는 활동으로 먼저 드러나요.",
			Options: []Option{
				{Label: "평소와 같아요", Value: "normal"},
				{Label: "가끔 주저해요", Value: "sometimes"},
				{Label: "자주 주저해요", Value: "often"},
				{Label: "활동이 줄었어요", Value: "decreased"},
			},
			Category: CategoryPAIN,
		},

		// ---- Onboarding: slot 5, apetito (canónica) ----
		{
			ID:     "q5_appetite",
			Prompt: "식욕이 어떤가요?",
			Options: []Option{
				{Label: "평소와 같아요", Value: "normal"},
				{Label: "편식이 생겼어요", Value: "picky"},
				{Label: "줄었어요", Value: "decreased"},
				{Label: "늘었어요", Value: "increased"},
			},
			Category: CategoryGI,
		},

		// ---- Follow-up: FLUTD ----
		{
			ID:       "fu_flutd_1",
			Prompt:   "화장실에 들락거리기만 하고 소변을 거의 못 보나요?",
			Options:  yesNoUnknown,
			Category: CategoryFLUTD,
		},
		{
			ID:     "fu_flutd_2",
			Prompt: "소변에 피가 섞여 보이나요?",
			Options: []Option{
				{Label: "선명하게 보여요", Value: "clear"},
				{Label: "아니요", Value: "no"},
				{Label: "모르겠어요", Value: "unknown"},
			},
			Category: CategoryFLUTD,
		},
		{
			ID:     "fu_flutd_3",
			Prompt: "소변을 볼 때 울거나 힘들어하나요?",
			Options: []Option{
				{Label: "자주 그래요", Value: "often"},
				{Label: "아니요", Value: "no"},
				{Label: "모르겠어요", Value: "unknown"},
			},
			Category: CategoryFLUTD,
		},

		// ---- Follow-up: CKD ----
		{
			ID:       "fu_ckd_1",
			Prompt:   "물그릇을 비우는 횟수가 확실히 늘었나요?",
			Options:  yesNoUnknown,
			Category: CategoryCKD,
		},
		{
			ID:       "fu_ckd_2",
			Prompt:   "소변 덩어리(감자)가 커지거나 많아졌나요?",
			Options:  yesNoUnknown,
			Category: CategoryCKD,
		},
		{
			ID:       "fu_ckd_3",
			Prompt:   "최근 몸무게가 줄었나요?",
			Options:  yesNoUnknown,
			Category: CategoryCKD,
		},

		// ---- Follow-up: GI ----
		{
			ID:     "fu_gi_1",
			Prompt: "구토가 거의 매일 이어지나요?",
			Options: []Option{
				{Label: "네, 매일이요", Value: "daily"},
				{Label: "아니요", Value: "no"},
				{Label: "모르겠어요", Value: "unknown"},
			},
			Category: CategoryGI,
		},
		{
			ID:       "fu_gi_2",
			Prompt:   "설사나 무른 변이 함께 있나요?",
			Options:  yesNoUnknown,
			Category: CategoryGI,
		},
		{
			ID:       "fu_gi_3",
			Prompt:   "구토물에 이물질이나 피가 보이나요?",
			Options:  yesNoUnknown,
			Category: CategoryGI,
		},

		// ---- Follow-up: PAIN ----
		{
			ID:     "fu_pain_1",
			Prompt: "점프를 주저하거나 실패하는 일이 있나요?",
			Options: []Option{
				{Label: "자주 있어요", Value: "often"},
				{Label: "아니요", Value: "no"},
				{Label: "모르겠어요", Value: "unknown"},
			},
			Category: CategoryPAIN,
		},
		{
			ID:       "fu_pain_2",
			Prompt:   "만지면 싫어하는 부위가 생겼나요?",
			Options:  yesNoUnknown,
			Category: CategoryPAIN,
		},
		{
			ID:       "fu_pain_3",
			Prompt:   "그루밍이 줄거나 털이 뭉쳐 있나요?",
			Options:  yesNoUnknown,
			Category: CategoryPAIN,
		},
	}
}
