package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Badges is stored as a JSON array in a text column.
type Badges []Badge

func (b Badges) Value() (driver.Value, error) {
	return marshalColumn(b)
}

func (b *Badges) Scan(src any) error {
	return unmarshalColumn(src, b)
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	return marshalColumn(s)
}

func (s *StringList) Scan(src any) error {
	return unmarshalColumn(src, s)
}

func marshalColumn(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func unmarshalColumn(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
