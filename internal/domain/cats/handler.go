package cats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cat-care-diary/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Cleanup lo implementa triage; al borrar un perfil se descartan sus
// snapshots (respuestas, plan, riesgo). Puede ser nil.
type Cleanup interface {
	ClearForCat(ctx context.Context, catID string)
}

func RegisterRoutes(r chi.Router, svc *Service, cleanup Cleanup) {
	r.Route("/cats", func(cr chi.Router) {
		cr.Post("/", createCatHandler(svc))
		cr.Get("/", listCatsHandler(svc))
		cr.Get("/{catID}", getCatHandler(svc))
		cr.Put("/{catID}", updateCatHandler(svc))
		cr.Delete("/{catID}", deleteCatHandler(svc, cleanup))
	})

	// Puntero de gato activo de la cuenta
	r.Get("/me/active-cat", getActiveCatHandler(svc))
	r.Put("/me/active-cat", setActiveCatHandler(svc))
}

type catRequest struct {
	Name               string   `json:"name"`
	Gender             string   `json:"gender"`
	Neutered           bool     `json:"neutered"`
	Breed              string   `json:"breed"`
	BirthDate          string   `json:"birth_date"` // YYYY-MM-DD opcional
	EstimatedAgeMonths *int     `json:"estimated_age_months"`
	WeightKg           float64  `json:"weight_kg"`
	BodyConditionScore int      `json:"body_condition_score"`
	FoodType           string   `json:"food_type"`
	Lifestyle          string   `json:"lifestyle"`
	MedicalHistory     []string `json:"medical_history"`
}

type catResponse struct {
	ID                 string     `json:"id"`
	OwnerUserID        string     `json:"owner_user_id"`
	Name               string     `json:"name"`
	Gender             string     `json:"gender"`
	Neutered           bool       `json:"neutered"`
	Breed              string     `json:"breed"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	EstimatedAgeMonths *int       `json:"estimated_age_months,omitempty"`
	AgeYears           int        `json:"age_years"`
	WeightKg           float64    `json:"weight_kg"`
	BodyConditionScore int        `json:"body_condition_score"`
	FoodType           string     `json:"food_type"`
	Lifestyle          string     `json:"lifestyle"`
	MedicalHistory     []string   `json:"medical_history"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func createCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req catRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:               req.Name,
			Gender:             req.Gender,
			Neutered:           req.Neutered,
			Breed:              req.Breed,
			BirthDate:          bd,
			EstimatedAgeMonths: req.EstimatedAgeMonths,
			WeightKg:           req.WeightKg,
			BodyConditionScore: req.BodyConditionScore,
			FoodType:           req.FoodType,
			Lifestyle:          req.Lifestyle,
			MedicalHistory:     req.MedicalHistory,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toCatResponse(p))
	}
}

func listCatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]catResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toCatResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, "cat not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(p))
	}
}

func updateCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Decode a map primero para distinguir "campo ausente" de "null"
		// (mismo truco que usamos para PATCH de perfil en otros módulos).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{}
		if err := applyRawUpdate(raw, &in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "catID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(updated))
	}
}

func deleteCatHandler(svc *Service, cleanup Cleanup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		catID := chi.URLParam(r, "catID")
		if err := svc.Delete(r.Context(), catID, claims.UserID); err != nil {
			writeDomainError(w, err)
			return
		}
		if cleanup != nil {
			cleanup.ClearForCat(r.Context(), catID)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getActiveCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetActiveCat(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "no active cat", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(p))
	}
}

func setActiveCatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req struct {
			CatID string `json:"cat_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.SetActiveCat(r.Context(), claims.UserID, req.CatID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"active_cat_id": req.CatID})
	}
}

func applyRawUpdate(raw map[string]json.RawMessage, in *UpdateInput) error {
	var req struct {
		Name               *string  `json:"name"`
		Gender             *string  `json:"gender"`
		Neutered           *bool    `json:"neutered"`
		Breed              *string  `json:"breed"`
		EstimatedAgeMonths *int     `json:"estimated_age_months"`
		WeightKg           *float64 `json:"weight_kg"`
		BodyConditionScore *int     `json:"body_condition_score"`
		FoodType           *string  `json:"food_type"`
		Lifestyle          *string  `json:"lifestyle"`
		MedicalHistory     []string `json:"medical_history"`
	}
	b, _ := json.Marshal(raw)
	if err := json.Unmarshal(b, &req); err != nil {
		return errors.New("invalid json")
	}

	in.Name = req.Name
	in.Gender = req.Gender
	in.Neutered = req.Neutered
	in.Breed = req.Breed
	in.EstimatedAgeMonths = req.EstimatedAgeMonths
	in.WeightKg = req.WeightKg
	in.BodyConditionScore = req.BodyConditionScore
	in.FoodType = req.FoodType
	in.Lifestyle = req.Lifestyle
	in.MedicalHistory = req.MedicalHistory

	// birth_date admite null (= limpiar), string o ausente
	if v, exists := raw["birth_date"]; exists {
		if string(v) == "null" {
			in.ClearBirthDate = true
		} else {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return errors.New("birth_date must be YYYY-MM-DD or null")
			}
			bd, err := parseBirthDate(s)
			if err != nil {
				return errors.New("birth_date must be YYYY-MM-DD or null")
			}
			in.BirthDate = bd
		}
	}
	return nil
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cat not found", http.StatusNotFound)
	default:
		// repos devuelven su propio not found
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "cat not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toCatResponse(p Profile) catResponse {
	history := make([]string, 0, len(p.MedicalHistory))
	for _, c := range p.MedicalHistory {
		history = append(history, string(c))
	}
	return catResponse{
		ID:                 p.ID,
		OwnerUserID:        p.OwnerUserID,
		Name:               p.Name,
		Gender:             string(p.Gender),
		Neutered:           p.Neutered,
		Breed:              p.Breed,
		BirthDate:          p.BirthDate,
		EstimatedAgeMonths: p.EstimatedAgeMonths,
		AgeYears:           p.AgeYears(time.Now()),
		WeightKg:           p.WeightKg,
		BodyConditionScore: p.BodyConditionScore,
		FoodType:           string(p.FoodType),
		Lifestyle:          p.Lifestyle,
		MedicalHistory:     history,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
