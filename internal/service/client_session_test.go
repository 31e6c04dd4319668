package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/mock"
	"github.com/MKhiriev/vault-guard/internal/store"
	"github.com/MKhiriev/vault-guard/internal/utils"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMemorySession() ClientSession {
	return NewClientSession(nil, newFakeClock(), logger.Nop())
}

// ── state ────────────────────────────────────────────────────────────────────

func TestClientSession_InitialState(t *testing.T) {
	s := newMemorySession()

	assert.False(t, s.IsAuthenticated())
	token, ok := s.CurrentToken()
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestClientSession_LoginLogout(t *testing.T) {
	s := newMemorySession()

	s.Login("abc")
	assert.True(t, s.IsAuthenticated())
	token, ok := s.CurrentToken()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	s.Logout()
	assert.False(t, s.IsAuthenticated())

	// idempotent
	s.Logout()
	assert.False(t, s.IsAuthenticated())
}

func TestClientSession_LoginTrimsAndIgnoresEmpty(t *testing.T) {
	s := newMemorySession()

	s.Login("   ")
	assert.False(t, s.IsAuthenticated())

	s.Login("  abc\n")
	token, _ := s.CurrentToken()
	assert.Equal(t, "abc", token)
}

func TestClientSession_Claims(t *testing.T) {
	s := newMemorySession()

	_, ok := s.Claims()
	assert.False(t, ok)

	s.Login("opaque-token")
	_, ok = s.Claims()
	assert.False(t, ok, "opaque tokens carry no claims")

	now := time.Now()
	jwtToken, err := utils.GenerateJWTToken("iss", "x@example.com", time.Hour, "key", now)
	require.NoError(t, err)
	s.Login(jwtToken)

	claims, ok := s.Claims()
	require.True(t, ok)
	assert.Equal(t, "x@example.com", claims.Subject)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestClientSession_SubscribeTransitionsOnly(t *testing.T) {
	s := newMemorySession()

	var events []bool
	unsubscribe := s.Subscribe(func(authenticated bool) { events = append(events, authenticated) })

	s.Login("a")
	s.Login(" a ") // same token
	s.Logout()
	s.Logout() // already unauthenticated
	s.Login("")

	assert.Equal(t, []bool{true, false}, events)

	unsubscribe()
	s.Login("c")
	assert.Len(t, events, 2)
}

func TestClientSession_TokenSwitchEndsPreviousSession(t *testing.T) {
	s := newMemorySession()

	var events []bool
	s.Subscribe(func(authenticated bool) { events = append(events, authenticated) })

	s.Login("a")
	s.Login("b")

	assert.Equal(t, []bool{true, false, true}, events)
	token, ok := s.CurrentToken()
	require.True(t, ok)
	assert.Equal(t, "b", token)
}

// ── persistence ──────────────────────────────────────────────────────────────

func TestClientSession_PersistsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	clock := newFakeClock()
	s := NewClientSession(repo, clock, logger.Nop())

	gomock.InOrder(
		repo.EXPECT().Save(gomock.Any(), models.SessionToken{Token: "abc", SavedAt: clock.Now()}).Return(nil),
		repo.EXPECT().Clear(gomock.Any()).Return(nil),
	)

	s.Login("abc")
	s.Logout()
}

func TestClientSession_PersistenceFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	s := NewClientSession(repo, newFakeClock(), logger.Nop())

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	repo.EXPECT().Clear(gomock.Any()).Return(errors.New("disk full"))

	s.Login("abc")
	assert.True(t, s.IsAuthenticated())

	s.Logout()
	assert.False(t, s.IsAuthenticated())
}

func TestClientSession_Restore(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	expired, err := utils.GenerateJWTToken("iss", "x", time.Minute, "key", clock.Now().Add(-time.Hour))
	require.NoError(t, err)
	valid, err := utils.GenerateJWTToken("iss", "x", time.Hour, "key", clock.Now())
	require.NoError(t, err)

	tests := []struct {
		name      string
		setup     func(repo *mock.MockSessionRepository)
		wantAuth  bool
		wantToken string
	}{
		{
			name: "opaque token restored",
			setup: func(repo *mock.MockSessionRepository) {
				repo.EXPECT().Load(ctx).Return(models.SessionToken{Token: "abc"}, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAuth:  true,
			wantToken: "abc",
		},
		{
			name: "valid jwt restored",
			setup: func(repo *mock.MockSessionRepository) {
				repo.EXPECT().Load(ctx).Return(models.SessionToken{Token: valid}, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAuth:  true,
			wantToken: valid,
		},
		{
			name: "expired jwt discarded",
			setup: func(repo *mock.MockSessionRepository) {
				repo.EXPECT().Load(ctx).Return(models.SessionToken{Token: expired}, nil)
				repo.EXPECT().Clear(ctx).Return(nil)
			},
		},
		{
			name: "nothing stored",
			setup: func(repo *mock.MockSessionRepository) {
				repo.EXPECT().Load(ctx).Return(models.SessionToken{}, store.ErrLocalSessionNotFound)
			},
		},
		{
			name: "load error",
			setup: func(repo *mock.MockSessionRepository) {
				repo.EXPECT().Load(ctx).Return(models.SessionToken{}, errors.New("corrupt"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockSessionRepository(ctrl)
			tt.setup(repo)

			s := NewClientSession(repo, clock, logger.Nop())
			assert.Equal(t, tt.wantAuth, s.Restore(ctx))

			token, _ := s.CurrentToken()
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestClientSession_RestoreWithoutRepo(t *testing.T) {
	assert.False(t, newMemorySession().Restore(context.Background()))
}
