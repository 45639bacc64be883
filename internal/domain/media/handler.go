package media

import (
	"encoding/json"
	"net/http"
	"strings"

	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/middleware"
	"cat-care-diary/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20 // 10MB

func RegisterRoutes(r chi.Router, store Store, catsSvc *cats.Service, log logger.Logger) {
	r.Get("/care/{catID}/photos", listPhotosHandler(store, catsSvc))
	r.Post("/care/{catID}/photos", uploadPhotoHandler(store, catsSvc, log))
	r.Delete("/care/{catID}/photos/*", deletePhotoHandler(store, catsSvc))
}

func listPhotosHandler(store Store, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		photos, err := store.List(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"photos": photos})
	}
}

func uploadPhotoHandler(store Store, catsSvc *cats.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "multipart form required", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			http.Error(w, "photo field required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		photo, err := store.Put(r.Context(), p.ID, header.Filename, contentType, file)
		if err != nil {
			log.Error("photo upload failed", map[string]any{
				"cat_id": p.ID,
				"err":    err.Error(),
			})
			http.Error(w, "upload failed", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusCreated, photo)
	}
}

func deletePhotoHandler(store Store, catsSvc *cats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedCat(w, r, catsSvc)
		if !ok {
			return
		}

		key := chi.URLParam(r, "*")
		if strings.TrimSpace(key) == "" {
			http.Error(w, "photo key required", http.StatusBadRequest)
			return
		}

		if err := store.Delete(r.Context(), p.ID, key); err != nil {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
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

// duplicado a propósito por módulo
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
