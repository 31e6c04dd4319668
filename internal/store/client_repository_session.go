package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/models"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *sessionRepository) Load(ctx context.Context) (models.SessionToken, error) {
	query, args, err := buildSelectSessionQuery()
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Load").Msg("failed to build select query")
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.SessionToken
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&token.Token, &token.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionToken{}, ErrLocalSessionNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Load").Msg("failed to read stored session")
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return token, nil
}

func (s *sessionRepository) Save(ctx context.Context, token models.SessionToken) error {
	query, args, err := buildUpsertSessionQuery(token.Token, token.SavedAt)
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Save").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Save").Msg("failed to store session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) Clear(ctx context.Context) error {
	query, args, err := buildDeleteSessionQuery()
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Clear").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.Clear").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
