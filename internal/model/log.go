package model

import "time"

// Log records a single gameplay event. Rows are append-only: no part
// of the API updates or deletes a log once written. Type is either
// the fixed literal "reward" or the name of a CustomLogType belonging
// to the same game.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owning user.
//  GameID       – game the event belongs to.
//  Type         – "reward" or a custom log type name.
//  Name         – item or event name (e.g. "Rupee").
//  Subsection   – optional location/chapter annotation.
//  Amount       – optional quantity for reward logs.
//  ImageURL     – optional screenshot path under /uploads.
//  Timestamp    – server-assigned UTC creation time.
//  CustomFields – optional JSON text mapping field name to value.
type Log struct {
	ID           uint64    `json:"id"`           // logs.id
	UserID       uint64    `json:"userId"`       // logs.user_id
	GameID       uint64    `json:"gameId"`       // logs.game_id
	Type         string    `json:"type"`         // logs.type
	Name         string    `json:"name"`         // logs.name
	Subsection   *string   `json:"subsection"`   // logs.subsection (nullable)
	Amount       *int64    `json:"amount"`       // logs.amount (nullable)
	ImageURL     *string   `json:"imageUrl"`     // logs.image_url (nullable)
	Timestamp    time.Time `json:"timestamp"`    // logs.timestamp
	CustomFields *string   `json:"customFields"` // logs.custom_fields (nullable JSON text)
}

// LogTypeReward is the built-in log type; every other type name refers
// to a user-defined CustomLogType.
const LogTypeReward = "reward"
