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

const logCols = "id,user_id,game_id,type,name,subsection,amount,image_url,timestamp,custom_fields"

var logColSlice = []string{"id", "user_id", "game_id", "type", "name", "subsection", "amount", "image_url", "timestamp", "custom_fields"}

func newLogRepo(t *testing.T) (*repository.LogRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewLogRepo(db), mock
}

func TestLogRepoCreateBackfillsImage(t *testing.T) {
	repo, mock := newLogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT image_url FROM logs WHERE user_id=? AND name=? AND type=? AND image_url IS NOT NULL ORDER BY timestamp DESC LIMIT 1")).
		WithArgs(uint64(7), "Rupee", "reward").
		WillReturnRows(sqlmock.NewRows([]string{"image_url"}).AddRow("/uploads/x.png"))
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO logs (user_id, game_id, type, name, subsection, amount, image_url, timestamp, custom_fields) VALUES (?,?,?,?,?,?,?,?,?)")).
		WithArgs(uint64(7), uint64(3), "reward", "Rupee", nil, int64(50), "/uploads/x.png", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(11, 1))

	amount := int64(50)
	l := &model.Log{UserID: 7, GameID: 3, Type: "reward", Name: "Rupee", Amount: &amount}
	require.NoError(t, repo.Create(context.Background(), l))
	require.EqualValues(t, 11, l.ID)
	require.NotNil(t, l.ImageURL)
	require.Equal(t, "/uploads/x.png", *l.ImageURL)
	require.False(t, l.Timestamp.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoCreateNoPriorImage(t *testing.T) {
	repo, mock := newLogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT image_url FROM logs WHERE user_id=? AND name=? AND type=? AND image_url IS NOT NULL ORDER BY timestamp DESC LIMIT 1")).
		WithArgs(uint64(7), "Rupee", "reward").
		WillReturnRows(sqlmock.NewRows([]string{"image_url"})) // no rows
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logs")).
		WithArgs(uint64(7), uint64(3), "reward", "Rupee", nil, nil, nil, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(12, 1))

	l := &model.Log{UserID: 7, GameID: 3, Type: "reward", Name: "Rupee"}
	require.NoError(t, repo.Create(context.Background(), l))
	require.Nil(t, l.ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoCreateExplicitImageSkipsLookup(t *testing.T) {
	repo, mock := newLogRepo(t)

	// Only the insert is expected; no backfill query must run.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logs")).
		WithArgs(uint64(7), uint64(3), "reward", "Rupee", nil, nil, "/uploads/fresh.png", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(13, 1))

	img := "/uploads/fresh.png"
	l := &model.Log{UserID: 7, GameID: 3, Type: "reward", Name: "Rupee", ImageURL: &img}
	require.NoError(t, repo.Create(context.Background(), l))
	require.Equal(t, "/uploads/fresh.png", *l.ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoListByDayWindow(t *testing.T) {
	repo, mock := newLogRepo(t)

	day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 23, 59, 59, 999_000_000, time.UTC)
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+logCols+" FROM logs WHERE user_id=? AND timestamp>=? AND timestamp<=? ORDER BY timestamp ASC")).
		WithArgs(uint64(7), day, end).
		WillReturnRows(sqlmock.NewRows(logColSlice).
			AddRow(1, 7, 3, "reward", "Rupee", nil, 50, "/uploads/x.png", now, nil))

	logs, err := repo.ListByDay(context.Background(), 7, day)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "Rupee", logs[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoListByUserScopesTenant(t *testing.T) {
	repo, mock := newLogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+logCols+" FROM logs WHERE user_id=? ORDER BY timestamp ASC")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(logColSlice))

	logs, err := repo.ListByUser(context.Background(), 7, nil)
	require.NoError(t, err)
	require.Empty(t, logs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoListByUserWithGameFilter(t *testing.T) {
	repo, mock := newLogRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+logCols+" FROM logs WHERE user_id=? AND game_id=? ORDER BY timestamp ASC")).
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(sqlmock.NewRows(logColSlice).
			AddRow(1, 7, 3, "reward", "Rupee", "Kakariko", 50, nil, now.Add(-time.Hour), nil).
			AddRow(2, 7, 3, "reward", "Rupee", nil, 20, nil, now, nil))

	gameID := uint64(3)
	logs, err := repo.ListByUser(context.Background(), 7, &gameID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.NotNil(t, logs[0].Subsection)
	require.Equal(t, "Kakariko", *logs[0].Subsection)
	require.Nil(t, logs[1].Subsection)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoRewardTotals(t *testing.T) {
	repo, mock := newLogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT name, COALESCE(SUM(amount),0) FROM logs WHERE user_id=? AND type=? GROUP BY name")).
		WithArgs(uint64(7), "reward").
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
			AddRow("Rupee", 70).
			AddRow("Heart", 3))

	totals, err := repo.RewardTotals(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"Rupee": 70, "Heart": 3}, totals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepoRecent(t *testing.T) {
	repo, mock := newLogRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+logCols+" FROM logs WHERE user_id=? ORDER BY timestamp DESC LIMIT ?")).
		WithArgs(uint64(7), 3).
		WillReturnRows(sqlmock.NewRows(logColSlice).
			AddRow(2, 7, 3, "reward", "Heart", nil, 1, nil, now, nil).
			AddRow(1, 7, 3, "reward", "Rupee", nil, 50, nil, now.Add(-time.Minute), nil))

	logs, err := repo.Recent(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "Heart", logs[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
