package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/gameplay-tracker/internal/model"
)

// GameRepo persists rows of the 'games' table. Every query is scoped to
// an owning user; there is no unscoped access path.
type GameRepo struct{ DB *sql.DB }

func NewGameRepo(db *sql.DB) *GameRepo { return &GameRepo{DB: db} }

// Create inserts a game for the user and fills in its generated ID and
// creation time.
func (r *GameRepo) Create(ctx context.Context, g *model.Game) error {
	g.CreatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO games (user_id, name, created_at) VALUES (?,?,?)",
		g.UserID, g.Name, g.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// ListByUser returns all games owned by the user.
func (r *GameRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Game, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,name,created_at FROM games WHERE user_id=? ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []model.Game{}
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// OwnedBy reports whether the game exists and belongs to the user.
func (r *GameRepo) OwnedBy(ctx context.Context, gameID, userID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM games WHERE id=? AND user_id=? LIMIT 1",
		gameID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
