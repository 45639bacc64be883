package questions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/middleware"
	"cat-care-diary/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, bank *Bank, catsSvc *cats.Service, log logger.Logger) {
	r.Get("/care/questions", listQuestionsHandler(bank, log))
	r.Get("/care/{catID}/onboarding/questions", onboardingQuestionsHandler(bank, catsSvc, log))
}

type questionsResponse struct {
	Questions []Question `json:"questions"`
}

func listQuestionsHandler(bank *Bank, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := bank.Load(r.Context()); err != nil {
			// degradado: lista vacía; el cliente no debe leerla como "sin síntomas"
			log.Warn("serving empty question bank", map[string]any{"err": err.Error()})
			writeJSON(w, http.StatusOK, questionsResponse{Questions: []Question{}})
			return
		}
		writeJSON(w, http.StatusOK, questionsResponse{Questions: bank.All()})
	}
}

func onboardingQuestionsHandler(bank *Bank, catsSvc *cats.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := catsSvc.GetByID(r.Context(), chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, "cat not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := bank.Load(r.Context()); err != nil {
			log.Warn("onboarding questions unavailable", map[string]any{
				"cat_id": p.ID,
				"err":    err.Error(),
			})
		}

		writeJSON(w, http.StatusOK, questionsResponse{
			Questions: Generate(bank, p, time.Now()),
		})
	}
}

// duplicado a propósito por módulo, igual que en los otros handlers
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
