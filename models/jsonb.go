package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Custom JSONB type for notification payloads
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &j)
	case string:
		return json.Unmarshal([]byte(v), &j)
	default:
		return errors.New("type assertion to []byte failed")
	}
}
