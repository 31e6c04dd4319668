package service

import (
	"context"

	"github.com/MKhiriev/vault-guard/internal/adapter"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/models"
)

type clientVaultService struct {
	api     adapter.VaultAPI
	session ClientSession
	cache   ClientListCache

	logger *logger.Logger
}

func NewClientVaultService(api adapter.VaultAPI, session ClientSession, cache ClientListCache, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{api: api, session: session, cache: cache, logger: logger}
}

func (v *clientVaultService) List(ctx context.Context) (models.PasswordList, error) {
	token, err := v.token()
	if err != nil {
		return nil, err
	}

	generation := v.cache.Generation()
	list, err := v.api.ListPasswords(ctx, token)
	if err != nil {
		return nil, v.fail("clientVaultService.List", "", err)
	}

	list = list.Dedup()
	v.cache.Replace(list, generation)
	return list, nil
}

func (v *clientVaultService) Records(ctx context.Context) (models.PasswordList, error) {
	if !v.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if list, fresh := v.cache.Snapshot(); fresh {
		return list, nil
	}
	return v.List(ctx)
}

func (v *clientVaultService) Add(ctx context.Context, accountName, username, password string) (models.PasswordRecord, error) {
	token, err := v.token()
	if err != nil {
		return models.PasswordRecord{}, err
	}

	rec, err := v.api.CreatePassword(ctx, token, models.PasswordCreate{
		AccountName: accountName,
		Username:    username,
		Password:    password,
	})
	if err != nil {
		return models.PasswordRecord{}, v.fail("clientVaultService.Add", "", err)
	}

	v.cache.Invalidate()
	return rec, nil
}

func (v *clientVaultService) Update(ctx context.Context, id string, upd models.PasswordUpdate) (models.PasswordRecord, error) {
	token, err := v.token()
	if err != nil {
		return models.PasswordRecord{}, err
	}

	rec, err := v.api.UpdatePassword(ctx, token, id, upd)
	if err != nil {
		return models.PasswordRecord{}, v.fail("clientVaultService.Update", id, err)
	}

	v.cache.Invalidate()
	return rec, nil
}

func (v *clientVaultService) Remove(ctx context.Context, id string) error {
	token, err := v.token()
	if err != nil {
		return err
	}

	if _, err = v.api.DeletePassword(ctx, token, id); err != nil {
		return v.fail("clientVaultService.Remove", id, err)
	}

	v.cache.Invalidate()
	return nil
}

func (v *clientVaultService) Reveal(ctx context.Context, id string) (string, error) {
	token, err := v.token()
	if err != nil {
		return "", err
	}

	resp, err := v.api.RevealPassword(ctx, token, id)
	if err != nil {
		return "", v.fail("clientVaultService.Reveal", id, err)
	}

	return resp.Password, nil
}

func (v *clientVaultService) token() (string, error) {
	token, ok := v.session.CurrentToken()
	if !ok {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// fail logs err and ends the session when the backend rejected the token.
// err is returned unchanged so its message reaches the user as-is.
func (v *clientVaultService) fail(fn, id string, err error) error {
	log := v.logger.Err(err).Str("func", fn)
	if id != "" {
		log = log.Str("id", id)
	}
	log.Msg("vault request failed")

	if adapter.IsAuthError(err) {
		v.logger.Info().Str("func", fn).Msg("token rejected by backend, logging out")
		v.session.Logout()
	}

	return err
}
