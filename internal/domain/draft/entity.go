package draft

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

// Type is the listing kind a draft will publish into.
type Type string

const (
	TypeProperty  Type = schema.KindProperty
	TypeProject   Type = schema.KindProject
	TypeDeveloper Type = schema.KindDeveloper
	TypePGHostel  Type = schema.KindPGHostel
)

func (t Type) Valid() bool {
	switch t {
	case TypeProperty, TypeProject, TypeDeveloper, TypePGHostel:
		return true
	}
	return false
}

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

// Data is the jsonb draft document: step id -> step payload.
type Data map[string]json.RawMessage

func (d Data) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Data) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Data{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("draft: unsupported draft_data type")
	}
	return json.Unmarshal(raw, d)
}

type Draft struct {
	ID            uuid.UUID  `db:"id" json:"draftId"`
	UserID        uuid.UUID  `db:"user_id" json:"userId"`
	Type          Type       `db:"draft_type" json:"draftType"`
	Data          Data       `db:"draft_data" json:"draftData"`
	Status        Status     `db:"draft_status" json:"draftStatus"`
	PublishedID   *uuid.UUID `db:"published_id" json:"publishedId,omitempty"`
	PublishedType *string    `db:"published_type" json:"publishedType,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// IsEmpty is true when no step holds data.
func (d *Draft) IsEmpty() bool {
	return len(d.Data) == 0
}

// Step decodes one step payload into v. It reports false when the step is
// absent. camelCase aliases are resolved.
func (d *Draft) Step(id schema.StepID, v interface{}) (bool, error) {
	raw, ok := schema.Normalize(d.Data)[id]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}
