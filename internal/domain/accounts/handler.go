package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cat-care-diary/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/auth/sign-up", signUpHandler(svc, log))
	r.Post("/auth/confirm", confirmHandler(svc, log))
	r.Post("/auth/change-password", changePasswordHandler(svc, log))
	r.Delete("/auth/account", deleteAccountHandler(svc, log))
}

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func signUpHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}

		sub, err := svc.SignUp(r.Context(), req.Username, req.Password, req.Email)
		if err != nil {
			writeAccountError(w, log, "sign up", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"user_id": sub})
	}
}

type confirmRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

func confirmHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}

		if err := svc.Confirm(r.Context(), req.Username, req.Code); err != nil {
			writeAccountError(w, log, "confirm", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type changePasswordRequest struct {
	PreviousPassword string `json:"previous_password"`
	ProposedPassword string `json:"proposed_password"`
}

func changePasswordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, "bearer token required", http.StatusUnauthorized)
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}

		if err := svc.ChangePassword(r.Context(), token, req.PreviousPassword, req.ProposedPassword); err != nil {
			writeAccountError(w, log, "change password", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteAccountHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, "bearer token required", http.StatusUnauthorized)
			return
		}

		if err := svc.DeleteAccount(r.Context(), token); err != nil {
			writeAccountError(w, log, "delete account", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// bearerToken saca el token crudo del header; estas rutas lo pasan
// directo al identity provider en lugar de verificarlo localmente.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func writeAccountError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrNotConfigured):
		http.Error(w, "identity provider not configured", http.StatusServiceUnavailable)
	default:
		log.Error("account operation failed", map[string]any{"op": op, "err": err.Error()})
		http.Error(w, "identity provider error", http.StatusBadGateway)
	}
}

// duplicado a propósito por módulo
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
