package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/vault-guard/internal/adapter"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/models"
)

type clientAuthService struct {
	api     adapter.VaultAPI
	session ClientSession

	logger *logger.Logger
}

func NewClientAuthService(api adapter.VaultAPI, session ClientSession, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{api: api, session: session, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	resp, err := a.api.Register(ctx, req)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Register").Msg("registration failed")
		return "", err
	}

	return resp.Message, nil
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) error {
	resp, err := a.api.Login(ctx, req)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Login").Msg("login failed")
		return err
	}

	token := strings.TrimSpace(resp.Token)
	if token == "" {
		a.logger.Error().Str("func", "clientAuthService.Login").Msg("login response carries no token")
		return ErrTokenMissing
	}

	a.session.Login(token)
	return nil
}

func (a *clientAuthService) Logout() {
	a.session.Logout()
}
