package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/gameplay-tracker/internal/model"
)

// CustomLogTypeRepo persists rows of the 'custom_log_types' table.
type CustomLogTypeRepo struct{ DB *sql.DB }

func NewCustomLogTypeRepo(db *sql.DB) *CustomLogTypeRepo { return &CustomLogTypeRepo{DB: db} }

// Create inserts a custom log type. Fields must already hold the
// JSON-encoded field list; validation happens in the handler before the
// row reaches this layer.
func (r *CustomLogTypeRepo) Create(ctx context.Context, t *model.CustomLogType) error {
	t.CreatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO custom_log_types (user_id, game_id, name, fields, created_at) VALUES (?,?,?,?,?)",
		t.UserID, t.GameID, t.Name, t.Fields, t.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListByGame returns all custom log types the user declared for a game.
func (r *CustomLogTypeRepo) ListByGame(ctx context.Context, userID, gameID uint64) ([]model.CustomLogType, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,game_id,name,fields,created_at FROM custom_log_types WHERE user_id=? AND game_id=? ORDER BY id",
		userID, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []model.CustomLogType{}
	for rows.Next() {
		var t model.CustomLogType
		if err := rows.Scan(&t.ID, &t.UserID, &t.GameID, &t.Name, &t.Fields, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetByName fetches the custom log type a log's type string refers to.
// sql.ErrNoRows means the type is not declared for that game.
func (r *CustomLogTypeRepo) GetByName(ctx context.Context, userID, gameID uint64, name string) (model.CustomLogType, error) {
	var t model.CustomLogType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,game_id,name,fields,created_at FROM custom_log_types WHERE user_id=? AND game_id=? AND name=? LIMIT 1",
		userID, gameID, name).Scan(&t.ID, &t.UserID, &t.GameID, &t.Name, &t.Fields, &t.CreatedAt)
	return t, err
}
