package vetvisits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, catsSvc *cats.Service) {
	r.Post("/cats/{catID}/visits", addVisitHandler(svc, catsSvc))
	r.Get("/cats/{catID}/visits", listVisitsHandler(svc, catsSvc))
}

type visitRequest struct {
	VisitedOn string `json:"visited_on"` // YYYY-MM-DD; vacío = hoy
	Clinic    string `json:"clinic"`
	Reason    string `json:"reason"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

type visitResponse struct {
	ID        string    `json:"id"`
	CatID     string    `json:"cat_id"`
	VisitedOn string    `json:"visited_on"`
	Clinic    string    `json:"clinic"`
	Reason    string    `json:"reason"`
	Diagnosis string    `json:"diagnosis"`
	Treatment string    `json:"treatment"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func addVisitHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Add(r.Context(), p.ID, AddInput{
			VisitedOn: req.VisitedOn,
			Clinic:    req.Clinic,
			Reason:    req.Reason,
			Diagnosis: req.Diagnosis,
			Treatment: req.Treatment,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

func listVisitsHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		items, err := svc.ListByCat(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

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

func toVisitResponse(v Visit) visitResponse {
	return visitResponse{
		ID:        v.ID,
		CatID:     v.CatID,
		VisitedOn: v.VisitedOn,
		Clinic:    v.Clinic,
		Reason:    v.Reason,
		Diagnosis: v.Diagnosis,
		Treatment: v.Treatment,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
	}
}

// duplicado a propósito por módulo
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
