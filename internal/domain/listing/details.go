package listing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

// Details is a jsonb column decoded into a generic object.
type Details map[string]interface{}

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Details) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Details{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return errors.New("listing: unsupported details type")
}

// Set stores v under key unless v is the zero value of its kind.
func (d Details) Set(key string, v interface{}) {
	switch val := v.(type) {
	case nil:
		return
	case string:
		if val == "" {
			return
		}
	case []string:
		if len(val) == 0 {
			return
		}
	}
	d[key] = v
}

// FromSteps builds a details document holding every step payload under its
// canonical step id.
func FromSteps(data map[string]json.RawMessage) (Details, error) {
	d := Details{}
	for id, raw := range schema.Normalize(data) {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		d[string(id)] = v
	}
	return d, nil
}
