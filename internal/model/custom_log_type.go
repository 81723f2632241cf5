package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FieldKind enumerates the value kinds a custom field may declare.
type FieldKind string

const (
	FieldText   FieldKind = "text"   // free-form text value
	FieldNumber FieldKind = "number" // value must parse as a number
	FieldMedia  FieldKind = "media"  // value is an uploaded media URL
)

// FieldDef is one entry of a custom log type's ordered field list.
// The JSON tag "type" matches the wire shape the UI submits.
type FieldDef struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"type"`
}

// CustomLogType defines, per game, an ad hoc schema of extra fields
// that logs of that type carry. Fields holds the JSON-encoded ordered
// sequence of FieldDef exactly as stored in the database.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user.
//  GameID    – game the type belongs to.
//  Name      – type name; logs reference it via Log.Type.
//  Fields    – JSON text of []FieldDef.
//  CreatedAt – timestamp of creation.
type CustomLogType struct {
	ID        uint64    `json:"id"`        // custom_log_types.id
	UserID    uint64    `json:"userId"`    // custom_log_types.user_id
	GameID    uint64    `json:"gameId"`    // custom_log_types.game_id
	Name      string    `json:"name"`      // custom_log_types.name
	Fields    string    `json:"fields"`    // custom_log_types.fields (JSON text)
	CreatedAt time.Time `json:"createdAt"` // custom_log_types.created_at
}

// FieldDefs decodes the stored field list.
func (t CustomLogType) FieldDefs() ([]FieldDef, error) {
	var defs []FieldDef
	if err := json.Unmarshal([]byte(t.Fields), &defs); err != nil {
		return nil, fmt.Errorf("decode field defs: %w", err)
	}
	return defs, nil
}

// ValidateFieldDefs checks a field list at write time: at least one
// field, non-empty unique names, known kinds.
func ValidateFieldDefs(defs []FieldDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("field %q: duplicate name", d.Name)
		}
		seen[d.Name] = true
		switch d.Kind {
		case FieldText, FieldNumber, FieldMedia:
		default:
			return fmt.Errorf("field %q: unknown type %q", d.Name, d.Kind)
		}
	}
	return nil
}

// ValidateCustomFields checks submitted values against a declared
// field list: every key must be declared, and number fields must hold
// a parseable value. Missing declared fields are allowed; the UI only
// submits what the user filled in.
func ValidateCustomFields(defs []FieldDef, values map[string]string) error {
	byName := make(map[string]FieldDef, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	for k, v := range values {
		d, ok := byName[k]
		if !ok {
			return fmt.Errorf("field %q is not declared for this log type", k)
		}
		if d.Kind == FieldNumber && v != "" {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return fmt.Errorf("field %q: %q is not a number", k, v)
			}
		}
	}
	return nil
}
