// Package vaulttest provides an in-memory password-vault backend that
// speaks the same HTTP contract as the real service. It is meant for tests
// of the adapter and service layers and for running the client locally
// without a backend.
package vaulttest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/utils"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultIssuer   = "vaulttest"
	defaultSignKey  = "vaulttest-sign-key"
	defaultTokenTTL = time.Hour
)

type account struct {
	username     string
	email        string
	passwordHash string
}

type entry struct {
	record models.PasswordRecord
	secret string
}

// RecordedRequest is a request as seen by the backend.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          []byte
}

type injectedFailure struct {
	status int
	body   string
}

// Backend is the in-memory vault. Its zero value is not usable; create one
// with [NewBackend] or [NewServer].
type Backend struct {
	mu       sync.Mutex
	accounts map[string]*account
	// vaults maps an owner email to its records in insertion order.
	vaults   map[string][]*entry
	requests []RecordedRequest
	failures []injectedFailure

	ids      *utils.UUIDGenerator
	issuer   string
	signKey  string
	tokenTTL time.Duration
	now      func() time.Time
	opaque   bool
	// opaqueTokens maps issued opaque tokens to their owner email.
	opaqueTokens map[string]string

	logger *logger.Logger
}

// Option configures a [Backend].
type Option func(*Backend)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(b *Backend) { b.tokenTTL = ttl }
}

// WithClock sets the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithLogger makes the backend log every request to l.
func WithLogger(l *logger.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// WithOpaqueTokens makes login return random non-JWT tokens.
func WithOpaqueTokens() Option {
	return func(b *Backend) { b.opaque = true }
}

// NewBackend returns an empty backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		accounts: make(map[string]*account),
		vaults:   make(map[string][]*entry),
		ids:      utils.NewUUIDGenerator(),
		issuer:   defaultIssuer,
		signKey:  defaultSignKey,
		tokenTTL: defaultTokenTTL,
		now:      time.Now,

		opaqueTokens: make(map[string]string),
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Router returns the HTTP routes of the backend.
func (b *Backend) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(b.withRequestID)
	router.Use(b.withLogging)
	router.Use(b.record)
	router.Use(b.injectFailure)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", b.register)
		r.Post("/login", b.login)
	})

	router.Route("/password", func(r chi.Router) {
		r.Use(b.auth)
		r.Get("/", b.listPasswords)
		r.Post("/", b.createPassword)
		r.Put("/{id}", b.updatePassword)
		r.Delete("/{id}", b.deletePassword)
		r.Post("/{id}/reveal", b.revealPassword)
	})

	return router
}

// Server is a running [Backend] behind an httptest server.
type Server struct {
	*Backend
	*httptest.Server
}

// NewServer starts a backend on a local port. The caller must Close it.
func NewServer(opts ...Option) *Server {
	b := NewBackend(opts...)
	return &Server{Backend: b, Server: httptest.NewServer(b.Router())}
}

// Requests returns a copy of every request received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// CountRequests returns how many received requests match method and path.
func (b *Backend) CountRequests(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// FailNext makes the next received request fail with status and a raw
// body. Calls queue up in order.
func (b *Backend) FailNext(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, injectedFailure{status: status, body: body})
}

// AddAccount registers an account directly.
func (b *Backend) AddAccount(username, email, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email] = &account{username: username, email: email, passwordHash: hash}
	return nil
}

// AddRecord stores a record for the account with the given email and
// returns it.
func (b *Backend) AddRecord(email, accountName, username, secret string) models.PasswordRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertLocked(email, accountName, username, secret)
}

// Secret returns the stored secret of a record.
func (b *Backend) Secret(email, id string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e := b.findLocked(email, id); e != nil {
		return e.secret, true
	}
	return "", false
}

// IssueToken returns a valid bearer token for email.
func (b *Backend) IssueToken(email string) (string, error) {
	if b.opaque {
		token := b.ids.Generate()
		b.mu.Lock()
		b.opaqueTokens[token] = email
		b.mu.Unlock()
		return token, nil
	}
	return utils.GenerateJWTToken(b.issuer, email, b.tokenTTL, b.signKey, b.now())
}

func (b *Backend) insertLocked(email, accountName, username, secret string) models.PasswordRecord {
	rec := models.PasswordRecord{ID: b.ids.Generate(), AccountName: accountName, Username: username}
	b.vaults[email] = append(b.vaults[email], &entry{record: rec, secret: secret})
	return rec
}

func (b *Backend) findLocked(email, id string) *entry {
	for _, e := range b.vaults[email] {
		if e.record.ID == id {
			return e
		}
	}
	return nil
}
