package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, catsSvc *cats.Service) {
	r.Post("/care/{catID}/onboarding", submitOnboardingHandler(svc, catsSvc))
	r.Get("/care/{catID}/follow-up", getPlanHandler(svc, catsSvc))
	r.Post("/care/{catID}/follow-up", submitFollowUpHandler(svc, catsSvc))
	r.Get("/care/{catID}/risk", getRiskHandler(svc, catsSvc))
}

type answersRequest struct {
	Answers map[string]string `json:"answers"`
}

type onboardingResponse struct {
	Plan *FollowUpPlan `json:"plan"` // null si no hizo falta seguimiento
	Risk RiskStatus    `json:"risk"`
}

func submitOnboardingHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		var req answersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		plan, risk, err := svc.SubmitOnboarding(r.Context(), p, req.Answers)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "answers required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, onboardingResponse{Plan: plan, Risk: risk})
	}
}

func getPlanHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		plan, err := svc.Plan(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "no follow-up plan", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, plan)
	}
}

func submitFollowUpHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		var req answersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		risk, err := svc.SubmitFollowUp(r.Context(), p, req.Answers)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "answers required", http.StatusBadRequest)
			case errors.Is(err, ErrNoPlan):
				http.Error(w, "no follow-up plan", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, risk)
	}
}

func getRiskHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		risk, err := svc.Risk(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "no risk status", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, risk)
	}
}

// ownedCat resuelve claims + catID y corta con el status que toque.
func ownedCat(w http.ResponseWriter, r *http.Request, catsSvc *cats.Service) (cats.Profile, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return cats.Profile{}, false
	}

	p, err := catsSvc.GetByID(r.Context(), chi.URLParam(r, "catID"))
	if err != nil {
		http.Error(w, "cat not found", http.StatusNotFound)
		return cats.Profile{}, false
	}
	if p.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return cats.Profile{}, false
	}
	return p, true
}

// duplicado a propósito por módulo
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
