package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/vault-guard/internal/config"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestSessionRepo(t *testing.T) (SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	l := logger.Nop()
	return NewSessionRepository(&DB{DB: db, logger: l}, l), mock
}

// ── sqlmock ─────────────────────────────────────────────────────────────────

func TestSessionRepository_Load(t *testing.T) {
	query, _, err := buildSelectSessionQuery()
	require.NoError(t, err)
	savedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    models.SessionToken
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(sessionRowID).
					WillReturnRows(sqlmock.NewRows([]string{"token", "saved_at"}).AddRow("abc", savedAt))
			},
			want: models.SessionToken{Token: "abc", SavedAt: savedAt},
		},
		{
			name: "no stored session",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(sessionRowID).
					WillReturnRows(sqlmock.NewRows([]string{"token", "saved_at"}))
			},
			wantErr: ErrLocalSessionNotFound,
		},
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(sessionRowID).
					WillReturnError(errors.New("disk I/O error"))
			},
			wantErr: ErrScanningRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestSessionRepo(t)
			tt.setup(mock)

			got, err := repo.Load(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_Save(t *testing.T) {
	savedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	query, _, err := buildUpsertSessionQuery("abc", savedAt)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(sessionRowID, "abc", savedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Save(context.Background(), models.SessionToken{Token: "abc", SavedAt: savedAt}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WillReturnError(errors.New("database is locked"))

		err := repo.Save(context.Background(), models.SessionToken{Token: "abc", SavedAt: savedAt})
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Clear(t *testing.T) {
	query, _, err := buildDeleteSessionQuery()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(sessionRowID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Clear(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(query)).
			WillReturnError(errors.New("database is locked"))

		assert.ErrorIs(t, repo.Clear(context.Background()), ErrExecutingStatement)
	})
}

// ── sqlite ──────────────────────────────────────────────────────────────────

func TestClientStorages_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "vault-guard.db")

	storages, err := NewClientStorages(ctx, config.ClientSession{DSN: dsn}, logger.Nop())
	require.NoError(t, err)

	repo := storages.SessionRepository
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, ErrLocalSessionNotFound)

	savedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(ctx, models.SessionToken{Token: "first", SavedAt: savedAt}))
	require.NoError(t, repo.Save(ctx, models.SessionToken{Token: "abc", SavedAt: savedAt}))
	require.NoError(t, storages.Close())

	// a new process sees the token saved by the previous one
	storages, err = NewClientStorages(ctx, config.ClientSession{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	got, err := storages.SessionRepository.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.True(t, savedAt.Equal(got.SavedAt))

	require.NoError(t, storages.SessionRepository.Clear(ctx))
	require.NoError(t, storages.SessionRepository.Clear(ctx))
	_, err = storages.SessionRepository.Load(ctx)
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)
}

func TestClientStorages_InMemory(t *testing.T) {
	ctx := context.Background()

	storages, err := NewClientStorages(ctx, config.ClientSession{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	require.NoError(t, storages.SessionRepository.Save(ctx, models.SessionToken{Token: "abc", SavedAt: time.Now()}))
	got, err := storages.SessionRepository.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
}

func TestClientStorages_CloseNil(t *testing.T) {
	var s *ClientStorages
	assert.NoError(t, s.Close())
}
