package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gameplay-tracker/internal/repository"
)

func newTokenRepo(t *testing.T) (*repository.TokenRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewTokenRepo(db), mock
}

func TestTokenRepoValidateRefresh(t *testing.T) {
	repo, mock := newTokenRepo(t)
	query := regexp.QuoteMeta(
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1")

	// Valid token
	mock.ExpectQuery(query).WithArgs("hash1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), nil))
	uid, err := repo.ValidateRefresh(context.Background(), "hash1")
	require.NoError(t, err)
	require.EqualValues(t, 7, uid)

	// Expired token
	mock.ExpectQuery(query).WithArgs("hash2").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(-time.Hour), nil))
	_, err = repo.ValidateRefresh(context.Background(), "hash2")
	require.ErrorIs(t, err, sql.ErrNoRows)

	// Revoked token
	mock.ExpectQuery(query).WithArgs("hash3").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), time.Now().UTC()))
	_, err = repo.ValidateRefresh(context.Background(), "hash3")
	require.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}
