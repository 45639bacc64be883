package records

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
	r.Post("/care/{catID}/check-in", checkInHandler(svc, catsSvc))
	r.Get("/care/{catID}/records", listRecordsHandler(svc, catsSvc))
	r.Get("/care/{catID}/records/{date}", getRecordHandler(svc, catsSvc))
	r.Get("/care/{catID}/monthly", monthlySummaryHandler(svc, catsSvc))
}

type checkInRequest struct {
	Date            string `json:"date"` // YYYY-MM-DD; vacío = hoy
	UrinationCount  int    `json:"urination_count"`
	DefecationCount int    `json:"defecation_count"`
	FoodIntake      string `json:"food_intake"`
	WaterIntake     string `json:"water_intake"`
	Activity        string `json:"activity"`
	Vomited         bool   `json:"vomited"`
	VomitCount      int    `json:"vomit_count"`
	Notes           string `json:"notes"`
}

type recordResponse struct {
	ID              string    `json:"id"`
	CatID           string    `json:"cat_id"`
	Date            string    `json:"date"`
	UrinationCount  int       `json:"urination_count"`
	DefecationCount int       `json:"defecation_count"`
	FoodIntake      string    `json:"food_intake"`
	WaterIntake     string    `json:"water_intake"`
	Activity        string    `json:"activity"`
	Vomited         bool      `json:"vomited"`
	VomitCount      int       `json:"vomit_count"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func checkInHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		var req checkInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Date) == "" {
			req.Date = time.Now().Format("2006-01-02")
		}

		rec, err := svc.Save(r.Context(), p.ID, SaveInput{
			Date:            req.Date,
			UrinationCount:  req.UrinationCount,
			DefecationCount: req.DefecationCount,
			FoodIntake:      req.FoodIntake,
			WaterIntake:     req.WaterIntake,
			Activity:        req.Activity,
			Vomited:         req.Vomited,
			VomitCount:      req.VomitCount,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		items, err := svc.ListByCat(r.Context(), p.ID, r.URL.Query().Get("month"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		rec, err := svc.GetByDate(r.Context(), p.ID, chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func monthlySummaryHandler(svc *Service, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		month := r.URL.Query().Get("month")
		if strings.TrimSpace(month) == "" {
			month = time.Now().Format("2006-01")
		}

		sum, err := svc.MonthlySummary(r.Context(), p.ID, month)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sum)
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

func toRecordResponse(rec DailyRecord) recordResponse {
	return recordResponse{
		ID:              rec.ID,
		CatID:           rec.CatID,
		Date:            rec.Date,
		UrinationCount:  rec.UrinationCount,
		DefecationCount: rec.DefecationCount,
		FoodIntake:      string(rec.FoodIntake),
		WaterIntake:     string(rec.WaterIntake),
		Activity:        string(rec.Activity),
		Vomited:         rec.Vomited,
		VomitCount:      rec.VomitCount,
		Notes:           rec.Notes,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

// duplicado a propósito por módulo
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
