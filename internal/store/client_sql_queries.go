// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	sessionTable = "auth_session"
	// sessionRowID is the id of the only row the session table ever holds.
	sessionRowID = 1
)

// sqlite uses "?" placeholders, which is squirrel's default format.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildSelectSessionQuery() (string, []any, error) {
	return sqlite.
		Select("token", "saved_at").
		From(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		Limit(1).
		ToSql()
}

func buildUpsertSessionQuery(token string, savedAt time.Time) (string, []any, error) {
	return sqlite.
		Insert(sessionTable).
		Columns("id", "token", "saved_at").
		Values(sessionRowID, token, savedAt.UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at").
		ToSql()
}

func buildDeleteSessionQuery() (string, []any, error) {
	return sqlite.
		Delete(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}
