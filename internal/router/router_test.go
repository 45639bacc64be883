package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cat-care-diary/internal/metrics"
	"cat-care-diary/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(router.New(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID
		Metrics:      metrics.New(),
	}))
}

func TestHTTP_EndToEnd_OnboardingToRisk(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner crea el perfil (macho, 11 años)
	catID := createCat(t, ts.URL, ownerID, map[string]any{
		"name":       "치즈",
		"gender":     "male",
		"neutered":   true,
		"birth_date": "2015-02-01",
	})

	// 2) Otro usuario no puede verlo
	{
		st, _ := doReq(t, ts.URL, "GET", "/cats/"+catID, strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for stranger, got %d", st)
		}
	}

	// 3) Cuestionario de onboarding: 5 slots, variantes de macho senior
	{
		st, body := doReq(t, ts.URL, "GET", "/care/"+catID+"/onboarding/questions", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 onboarding questions, got %d body=%s", st, string(body))
		}
		var resp struct {
			Questions []struct {
				ID string `json:"id"`
			} `json:"questions"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Questions) != 5 {
			t.Fatalf("expected 5 questions, got %d", len(resp.Questions))
		}
		if resp.Questions[0].ID != "q1_urinary_male" {
			t.Fatalf("expected male urinary variant first, got %s", resp.Questions[0].ID)
		}
		if resp.Questions[3].ID != "q4_mobility_senior" {
			t.Fatalf("expected senior mobility variant, got %s", resp.Questions[3].ID)
		}
	}

	// 4) Responde onboarding con señal urinaria fuerte => plan FLUTD
	{
		st, body := doReq(t, ts.URL, "POST", "/care/"+catID+"/onboarding", ownerID, map[string]any{
			"answers": map[string]string{
				"q1_urinary_male":    "often",
				"q2_water_senior":    "normal",
				"q3_vomiting":        "never",
				"q4_mobility_senior": "normal",
				"q5_appetite":        "normal",
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 submit onboarding, got %d body=%s", st, string(body))
		}
		var resp struct {
			Plan *struct {
				Category string `json:"category"`
				Score    int    `json:"score"`
			} `json:"plan"`
			Risk struct {
				Level string `json:"level"`
				Label string `json:"label"`
			} `json:"risk"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Plan == nil || resp.Plan.Category != "FLUTD" {
			t.Fatalf("expected FLUTD plan, got %+v body=%s", resp.Plan, string(body))
		}
		if resp.Risk.Level != "caution" || resp.Risk.Label != "주의" {
			t.Fatalf("expected caution/주의 while plan pending, got %+v", resp.Risk)
		}
	}

	// 5) El plan queda consultable
	{
		st, body := doReq(t, ts.URL, "GET", "/care/"+catID+"/follow-up", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get plan, got %d body=%s", st, string(body))
		}
	}

	// 6) Seguimiento con dos respuestas fuertes => check
	{
		st, body := doReq(t, ts.URL, "POST", "/care/"+catID+"/follow-up", ownerID, map[string]any{
			"answers": map[string]string{
				"fu_flutd_1": "yes",
				"fu_flutd_2": "clear",
				"fu_flutd_3": "no",
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 submit follow-up, got %d body=%s", st, string(body))
		}
		var risk struct {
			Level string `json:"level"`
			Label string `json:"label"`
		}
		_ = json.Unmarshal(body, &risk)
		if risk.Level != "check" || risk.Label != "검진 필요" {
			t.Fatalf("expected check/검진 필요, got %+v", risk)
		}
	}

	// 7) El riesgo persiste
	{
		st, body := doReq(t, ts.URL, "GET", "/care/"+catID+"/risk", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get risk, got %d body=%s", st, string(body))
		}
		var risk struct {
			Level string `json:"level"`
		}
		_ = json.Unmarshal(body, &risk)
		if risk.Level != "check" {
			t.Fatalf("expected persisted check, got %s", risk.Level)
		}
	}
}

func TestHTTP_FollowUpWithoutPlan_Conflicts(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	catID := createCat(t, ts.URL, "owner-1", map[string]any{"name": "나비"})

	st, _ := doReq(t, ts.URL, "POST", "/care/"+catID+"/follow-up", "owner-1", map[string]any{
		"answers": map[string]string{"fu_gi_1": "daily"},
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 without plan, got %d", st)
	}
}

func TestHTTP_CheckIn_UpsertsByDate(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	catID := createCat(t, ts.URL, "owner-1", map[string]any{"name": "나비"})

	first := checkIn(t, ts.URL, "owner-1", catID, map[string]any{
		"date":             "2026-03-05",
		"urination_count":  2,
		"defecation_count": 1,
	})

	second := checkIn(t, ts.URL, "owner-1", catID, map[string]any{
		"date":            "2026-03-05",
		"urination_count": 5,
		"vomited":         true,
	})

	if second["id"] != first["id"] {
		t.Fatalf("expected same record id on upsert, got %v vs %v", first["id"], second["id"])
	}
	if second["urination_count"].(float64) != 5 {
		t.Fatalf("expected counts replaced, got %v", second["urination_count"])
	}
	if second["created_at"] != first["created_at"] {
		t.Fatalf("expected created_at preserved")
	}

	// lista del mes: un único registro
	st, body := doReq(t, ts.URL, "GET", "/care/"+catID+"/records?month=2026-03", "owner-1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list records, got %d", st)
	}
	var list []map[string]any
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 record for the date, got %d", len(list))
	}

	// resumen mensual
	st, body = doReq(t, ts.URL, "GET", "/care/"+catID+"/monthly?month=2026-03", "owner-1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 monthly summary, got %d body=%s", st, string(body))
	}
	var sum struct {
		RecordedDays int `json:"recorded_days"`
		VomitDays    int `json:"vomit_days"`
	}
	_ = json.Unmarshal(body, &sum)
	if sum.RecordedDays != 1 || sum.VomitDays != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestHTTP_VetVisits_AddAndList(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	catID := createCat(t, ts.URL, "owner-1", map[string]any{"name": "나비"})

	st, body := doReq(t, ts.URL, "POST", "/cats/"+catID+"/visits", "owner-1", map[string]any{
		"visited_on": "2026-02-20",
		"clinic":     "동물메디컬센터",
		"reason":     "정기 검진",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add visit, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/cats/"+catID+"/visits", "owner-1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list visits, got %d", st)
	}
	var visits []map[string]any
	_ = json.Unmarshal(body, &visits)
	if len(visits) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(visits))
	}
}

func TestHTTP_ActiveCatPointer(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	cat1 := createCat(t, ts.URL, "owner-1", map[string]any{"name": "나비"})
	cat2 := createCat(t, ts.URL, "owner-1", map[string]any{"name": "치즈"})

	// el primero quedó activo automáticamente
	{
		st, body := doReq(t, ts.URL, "GET", "/me/active-cat", "owner-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 active cat, got %d", st)
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != cat1 {
			t.Fatalf("expected first cat active, got %s", resp.ID)
		}
	}

	// cambio explícito
	{
		st, body := doReq(t, ts.URL, "PUT", "/me/active-cat", "owner-1", map[string]any{"cat_id": cat2})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set active, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/me/active-cat", "owner-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 active cat, got %d", st)
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != cat2 {
			t.Fatalf("expected second cat active, got %s", resp.ID)
		}
	}
}

func TestHTTP_DeleteCat_DiscardsTriageState(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	catID := createCat(t, ts.URL, "owner-1", map[string]any{"name": "나비", "gender": "male"})

	st, _ := doReq(t, ts.URL, "POST", "/care/"+catID+"/onboarding", "owner-1", map[string]any{
		"answers": map[string]string{"q1_urinary_male": "often"},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 submit onboarding, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/cats/"+catID, "owner-1", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete cat, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/care/"+catID+"/risk", "owner-1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 risk after delete, got %d", st)
	}
}

func TestHTTP_QuestionBankAndOps(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	// banco completo, sin auth de gato
	st, body := doReq(t, ts.URL, "GET", "/care/questions", "owner-1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 question bank, got %d", st)
	}
	var resp struct {
		Questions []map[string]any `json:"questions"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Questions) == 0 {
		t.Fatalf("expected non-empty question bank")
	}

	// health y metrics
	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !bytes.Contains(body, []byte("http_requests_total")) {
		t.Fatalf("expected http_requests_total in metrics output")
	}
}

func TestHTTP_AuthRoutes_WithoutProvider_Unavailable(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/auth/sign-up", "", map[string]any{
		"username": "user@example.com",
		"password": "secret123!",
	})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without identity provider, got %d", st)
	}
}

// -------------------------
// helpers
// -------------------------

func createCat(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/cats", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create cat, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create cat: missing id body=%s", string(body))
	}
	return resp.ID
}

func checkIn(t *testing.T, baseURL, userID, catID string, payload map[string]any) map[string]any {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/care/"+catID+"/check-in", userID, payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 check-in, got %d body=%s", st, string(body))
	}

	var resp map[string]any
	_ = json.Unmarshal(body, &resp)
	return resp
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
