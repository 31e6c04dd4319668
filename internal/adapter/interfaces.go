// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the vault-guard
// client and the password-vault backend.
//
// [Gateway] is the single chokepoint for all network calls: it attaches the
// bearer token, serializes request bodies, and turns every failure into an
// [*Error] carrying a human-readable message. [VaultAPI] layers the typed
// endpoints of the backend contract on top of it.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/vault-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Request describes a single backend call.
type Request struct {
	// Method is the HTTP method, e.g. http.MethodGet.
	Method string

	// Path is appended to the configured base address. Dynamic segments must
	// already be escaped.
	Path string

	// Body is serialized as JSON when non-nil. A nil Body sends no body.
	Body any

	// Token is sent as "Authorization: Bearer <token>" when non-empty.
	Token string
}

// Gateway performs requests against the backend.
type Gateway interface {
	// Do sends req and decodes a successful JSON response into result.
	// A nil result discards the body. Every returned error is an [*Error].
	Do(ctx context.Context, req Request, result any) error
}

// VaultAPI is the typed backend contract. Methods taking a token require an
// authenticated session; the caller supplies the token on every call.
type VaultAPI interface {
	// Register creates an account: POST /auth/register.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)

	// Login exchanges credentials for a bearer token: POST /auth/login.
	// The response is returned as-is; an empty token is not treated as an
	// error here.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// ListPasswords fetches the caller's records: GET /password.
	ListPasswords(ctx context.Context, token string) (models.PasswordList, error)

	// CreatePassword adds a record: POST /password.
	CreatePassword(ctx context.Context, token string, req models.PasswordCreate) (models.PasswordRecord, error)

	// UpdatePassword applies a partial update: PUT /password/:id.
	UpdatePassword(ctx context.Context, token, id string, req models.PasswordUpdate) (models.PasswordRecord, error)

	// DeletePassword removes a record: DELETE /password/:id.
	DeletePassword(ctx context.Context, token, id string) (models.DeleteResponse, error)

	// RevealPassword fetches the plaintext secret of a record:
	// POST /password/:id/reveal.
	RevealPassword(ctx context.Context, token, id string) (models.RevealResponse, error)
}
