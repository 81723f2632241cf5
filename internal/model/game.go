package model

import "time"

// Game is a title a user tracks logs against. Each game belongs to
// exactly one user; logs and custom log types hang off it.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user.
//  Name      – display name chosen by the user.
//  CreatedAt – timestamp of creation.
type Game struct {
	ID        uint64    `json:"id"`        // games.id
	UserID    uint64    `json:"userId"`    // games.user_id
	Name      string    `json:"name"`      // games.name
	CreatedAt time.Time `json:"createdAt"` // games.created_at
}
