package vaulttest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/vault-guard/internal/utils"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/go-chi/chi/v5"
)

type ownerCtxKey struct{}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		path := r.URL.RawPath
		if path == "" {
			path = r.URL.Path
		}

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:        r.Method,
			Path:          path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get(requestIDHeader),
			Body:          body,
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		var failure *injectedFailure
		if len(b.failures) > 0 {
			failure = &b.failures[0]
			b.failures = b.failures[1:]
		}
		b.mu.Unlock()

		if failure != nil {
			w.WriteHeader(failure.status)
			_, _ = io.WriteString(w, failure.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			utils.WriteError(w, "No token provided", http.StatusUnauthorized)
			return
		}

		owner, ok := b.ownerOf(token)
		if !ok {
			utils.WriteError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerCtxKey{}, owner)))
	})
}

func (b *Backend) ownerOf(token string) (string, bool) {
	if b.opaque {
		b.mu.Lock()
		defer b.mu.Unlock()
		email, ok := b.opaqueTokens[token]
		return email, ok
	}

	subject, err := utils.ValidateJWTToken(token, b.signKey, b.issuer)
	if err != nil {
		return "", false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.accounts[subject]
	return subject, ok
}

func owner(r *http.Request) string {
	email, _ := r.Context().Value(ownerCtxKey{}).(string)
	return email
}

func recordID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Username) == "" {
		utils.WriteError(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	_, exists := b.accounts[req.Email]
	b.mu.Unlock()
	if exists {
		utils.WriteError(w, "User already exists", http.StatusConflict)
		return
	}

	if err := b.AddAccount(req.Username, req.Email, req.Password); err != nil {
		utils.WriteError(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteJSON(w, models.RegisterResponse{Message: "User registered successfully"}, http.StatusCreated)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	acc, ok := b.accounts[req.Email]
	b.mu.Unlock()
	if !ok || utils.CheckPassword(acc.passwordHash, req.Password) != nil {
		utils.WriteError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := b.IssueToken(acc.email)
	if err != nil {
		utils.WriteError(w, "Login failed", http.StatusInternalServerError)
		return
	}
	_, _ = utils.WriteJSON(w, models.LoginResponse{Token: token}, http.StatusOK)
}

func (b *Backend) listPasswords(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	list := make(models.PasswordList, 0, len(b.vaults[owner(r)]))
	for _, e := range b.vaults[owner(r)] {
		list = append(list, e.record)
	}
	b.mu.Unlock()

	_, _ = utils.WriteJSON(w, list, http.StatusOK)
}

func (b *Backend) createPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.AccountName) == "" || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		utils.WriteError(w, "accountName, username and password are required", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	rec := b.insertLocked(owner(r), req.AccountName, req.Username, req.Password)
	b.mu.Unlock()

	_, _ = utils.WriteJSON(w, rec, http.StatusCreated)
}

func (b *Backend) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if (req.AccountName != nil && strings.TrimSpace(*req.AccountName) == "") ||
		(req.Username != nil && strings.TrimSpace(*req.Username) == "") {
		utils.WriteError(w, "accountName and username must not be empty", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.findLocked(owner(r), recordID(r))
	if e == nil {
		utils.WriteError(w, "Password not found", http.StatusNotFound)
		return
	}
	if req.AccountName != nil {
		e.record.AccountName = *req.AccountName
	}
	if req.Username != nil {
		e.record.Username = *req.Username
	}
	if req.Password != nil {
		e.secret = *req.Password
	}

	_, _ = utils.WriteJSON(w, e.record, http.StatusOK)
}

func (b *Backend) deletePassword(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email, id := owner(r), recordID(r)
	entries := b.vaults[email]
	for i, e := range entries {
		if e.record.ID == id {
			b.vaults[email] = append(entries[:i:i], entries[i+1:]...)
			_, _ = utils.WriteJSON(w, models.DeleteResponse{Success: true}, http.StatusOK)
			return
		}
	}

	utils.WriteError(w, "Password not found", http.StatusNotFound)
}

func (b *Backend) revealPassword(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	e := b.findLocked(owner(r), recordID(r))
	var secret string
	if e != nil {
		secret = e.secret
	}
	b.mu.Unlock()

	if e == nil {
		utils.WriteError(w, "Password not found", http.StatusNotFound)
		return
	}

	_, _ = utils.WriteJSON(w, models.RevealResponse{Password: secret}, http.StatusOK)
}
