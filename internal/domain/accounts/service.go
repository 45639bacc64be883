package accounts

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("identity provider not configured")
)

// IdentityAdmin es el puerto hacia el identity provider (Cognito).
// Las rutas de cuenta son un proxy fino: el servicio solo valida
// inputs, la semántica real vive del otro lado.
type IdentityAdmin interface {
	SignUp(ctx context.Context, username, password, email string) (userSub string, err error)
	Confirm(ctx context.Context, username, code string) error
	ChangePassword(ctx context.Context, accessToken, previous, proposed string) error
	DeleteAccount(ctx context.Context, accessToken string) error
}

type Service struct {
	admin IdentityAdmin
}

// NewService acepta admin nil (modo dev): toda operación devuelve
// ErrNotConfigured y el handler responde 503.
func NewService(admin IdentityAdmin) *Service {
	return &Service{admin: admin}
}

func (s *Service) SignUp(ctx context.Context, username, password, email string) (string, error) {
	if s.admin == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", ErrInvalidInput
	}
	return s.admin.SignUp(ctx, strings.TrimSpace(username), password, strings.TrimSpace(email))
}

func (s *Service) Confirm(ctx context.Context, username, code string) error {
	if s.admin == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(code) == "" {
		return ErrInvalidInput
	}
	return s.admin.Confirm(ctx, strings.TrimSpace(username), strings.TrimSpace(code))
}

func (s *Service) ChangePassword(ctx context.Context, accessToken, previous, proposed string) error {
	if s.admin == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(accessToken) == "" || previous == "" || proposed == "" {
		return ErrInvalidInput
	}
	return s.admin.ChangePassword(ctx, accessToken, previous, proposed)
}

func (s *Service) DeleteAccount(ctx context.Context, accessToken string) error {
	if s.admin == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(accessToken) == "" {
		return ErrInvalidInput
	}
	return s.admin.DeleteAccount(ctx, accessToken)
}
