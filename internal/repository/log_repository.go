package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/gameplay-tracker/internal/model"
)

// LogRepo persists rows of the 'logs' table. Logs are append-only:
// nothing here updates or deletes a row.
type LogRepo struct{ DB *sql.DB }

func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{DB: db} }

const logColumns = "id,user_id,game_id,type,name,subsection,amount,image_url,timestamp,custom_fields"

// Create inserts a log row. The timestamp is assigned here, never taken
// from the client. When no image URL is supplied, the most recent
// non-null image recorded for the same (user, name, type) is reused so
// repeated items keep their screenshot. The lookup-then-insert is not
// serialized; concurrent creations of the same item may both miss the
// backfill, which is acceptable for a single-user interactive workload.
func (r *LogRepo) Create(ctx context.Context, l *model.Log) error {
	if l.ImageURL == nil || *l.ImageURL == "" {
		url, err := r.LatestImageURL(ctx, l.UserID, l.Name, l.Type)
		switch err {
		case nil:
			l.ImageURL = &url
		case sql.ErrNoRows:
			l.ImageURL = nil
		default:
			return err
		}
	}
	l.Timestamp = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO logs (user_id, game_id, type, name, subsection, amount, image_url, timestamp, custom_fields) VALUES (?,?,?,?,?,?,?,?,?)",
		l.UserID, l.GameID, l.Type, l.Name, l.Subsection, l.Amount, l.ImageURL, l.Timestamp, l.CustomFields)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// LatestImageURL returns the newest non-null image URL a user recorded
// for the given item name and log type.
func (r *LogRepo) LatestImageURL(ctx context.Context, userID uint64, name, typ string) (string, error) {
	var url string
	err := r.DB.QueryRowContext(ctx,
		"SELECT image_url FROM logs WHERE user_id=? AND name=? AND type=? AND image_url IS NOT NULL ORDER BY timestamp DESC LIMIT 1",
		userID, name, typ).Scan(&url)
	return url, err
}

// ListByUser returns the user's logs ordered by timestamp ascending,
// optionally filtered to a single game.
func (r *LogRepo) ListByUser(ctx context.Context, userID uint64, gameID *uint64) ([]model.Log, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if gameID != nil {
		rows, err = r.DB.QueryContext(ctx,
			"SELECT "+logColumns+" FROM logs WHERE user_id=? AND game_id=? ORDER BY timestamp ASC",
			userID, *gameID)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			"SELECT "+logColumns+" FROM logs WHERE user_id=? ORDER BY timestamp ASC",
			userID)
	}
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}

// ListByDay returns the user's logs whose timestamp falls inside the
// calendar day that starts at dayStart, bounds inclusive of
// 23:59:59.999, ordered by timestamp ascending.
func (r *LogRepo) ListByDay(ctx context.Context, userID uint64, dayStart time.Time) ([]model.Log, error) {
	start := dayStart
	end := dayStart.Add(24*time.Hour - time.Millisecond)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+logColumns+" FROM logs WHERE user_id=? AND timestamp>=? AND timestamp<=? ORDER BY timestamp ASC",
		userID, start, end)
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}

// Recent returns the user's newest logs, most recent first.
func (r *LogRepo) Recent(ctx context.Context, userID uint64, limit int) ([]model.Log, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+logColumns+" FROM logs WHERE user_id=? ORDER BY timestamp DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	return scanLogs(rows)
}

// RewardTotals sums reward amounts per item name for the user.
func (r *LogRepo) RewardTotals(ctx context.Context, userID uint64) (map[string]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT name, COALESCE(SUM(amount),0) FROM logs WHERE user_id=? AND type=? GROUP BY name",
		userID, model.LogTypeReward)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[string]int64{}
	for rows.Next() {
		var (
			name  string
			total int64
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, err
		}
		totals[name] = total
	}
	return totals, rows.Err()
}

// CountByDay counts the user's logs inside the calendar day starting at
// dayStart, same bounds as ListByDay.
func (r *LogRepo) CountByDay(ctx context.Context, userID uint64, dayStart time.Time) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM logs WHERE user_id=? AND timestamp>=? AND timestamp<=?",
		userID, dayStart, dayStart.Add(24*time.Hour-time.Millisecond)).Scan(&n)
	return n, err
}

func scanLogs(rows *sql.Rows) ([]model.Log, error) {
	defer rows.Close()
	logs := []model.Log{}
	for rows.Next() {
		var l model.Log
		if err := rows.Scan(&l.ID, &l.UserID, &l.GameID, &l.Type, &l.Name,
			&l.Subsection, &l.Amount, &l.ImageURL, &l.Timestamp, &l.CustomFields); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
