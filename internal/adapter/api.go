package adapter

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MKhiriev/vault-guard/models"
)

type vaultAPI struct {
	gateway Gateway
}

// NewVaultAPI returns the typed backend contract built on gateway.
func NewVaultAPI(gateway Gateway) VaultAPI {
	return &vaultAPI{gateway: gateway}
}

func passwordPath(id string) string {
	return "/password/" + url.PathEscape(id)
}

func (a *vaultAPI) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	var resp models.RegisterResponse
	err := a.gateway.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/register", Body: req}, &resp)
	return resp, err
}

func (a *vaultAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := a.gateway.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: req}, &resp)
	return resp, err
}

func (a *vaultAPI) ListPasswords(ctx context.Context, token string) (models.PasswordList, error) {
	var list models.PasswordList
	if err := a.gateway.Do(ctx, Request{Method: http.MethodGet, Path: "/password", Token: token}, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = models.PasswordList{}
	}
	return list, nil
}

func (a *vaultAPI) CreatePassword(ctx context.Context, token string, req models.PasswordCreate) (models.PasswordRecord, error) {
	var rec models.PasswordRecord
	err := a.gateway.Do(ctx, Request{Method: http.MethodPost, Path: "/password", Body: req, Token: token}, &rec)
	return rec, err
}

func (a *vaultAPI) UpdatePassword(ctx context.Context, token, id string, req models.PasswordUpdate) (models.PasswordRecord, error) {
	var rec models.PasswordRecord
	err := a.gateway.Do(ctx, Request{Method: http.MethodPut, Path: passwordPath(id), Body: req, Token: token}, &rec)
	return rec, err
}

func (a *vaultAPI) DeletePassword(ctx context.Context, token, id string) (models.DeleteResponse, error) {
	var resp models.DeleteResponse
	err := a.gateway.Do(ctx, Request{Method: http.MethodDelete, Path: passwordPath(id), Token: token}, &resp)
	return resp, err
}

func (a *vaultAPI) RevealPassword(ctx context.Context, token, id string) (models.RevealResponse, error) {
	var resp models.RevealResponse
	err := a.gateway.Do(ctx, Request{Method: http.MethodPost, Path: passwordPath(id) + "/reveal", Token: token}, &resp)
	return resp, err
}
