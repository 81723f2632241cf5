package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gameplay-tracker/internal/model"
	"github.com/iliyamo/gameplay-tracker/internal/repository"
)

func newGameRepo(t *testing.T) (*repository.GameRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewGameRepo(db), mock
}

func TestGameRepoCreate(t *testing.T) {
	repo, mock := newGameRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO games (user_id, name, created_at) VALUES (?,?,?)")).
		WithArgs(uint64(7), "Zelda", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	g := &model.Game{UserID: 7, Name: "Zelda"}
	require.NoError(t, repo.Create(context.Background(), g))
	require.EqualValues(t, 5, g.ID)
	require.False(t, g.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGameRepoListByUser(t *testing.T) {
	repo, mock := newGameRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id,user_id,name,created_at FROM games WHERE user_id=? ORDER BY id")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
			AddRow(1, 7, "Zelda", now).
			AddRow(2, 7, "Metroid", now))

	games, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "Zelda", games[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGameRepoOwnedBy(t *testing.T) {
	repo, mock := newGameRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM games WHERE id=? AND user_id=? LIMIT 1")).
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	owned, err := repo.OwnedBy(context.Background(), 3, 7)
	require.NoError(t, err)
	require.True(t, owned)

	// Another tenant's game id yields no row, not an error.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM games WHERE id=? AND user_id=? LIMIT 1")).
		WithArgs(uint64(3), uint64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	owned, err = repo.OwnedBy(context.Background(), 3, 8)
	require.NoError(t, err)
	require.False(t, owned)

	require.NoError(t, mock.ExpectationsWereMet())
}
