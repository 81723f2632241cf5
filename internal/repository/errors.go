// Package repository holds the data access layer: thin structs over a
// shared *sql.DB, one per table, with context-aware query methods. This
// file defines sentinel errors reused across repositories so handlers
// can map failure scenarios to HTTP responses without string matching.
package repository

import "errors"

// ErrUsernameExists is returned when registration collides with an
// existing username. Handlers translate this into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")
