package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CartLines хранится в jsonb-колонке orders.items.
type CartLines []CartLine

func (c CartLines) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]CartLine(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CartLines) Scan(src any) error {
	return scanJSON(src, (*[]CartLine)(c))
}

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src any) error {
	return scanJSON(src, (*[]string)(s))
}

type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *StringMap) Scan(src any) error {
	return scanJSON(src, (*map[string]string)(m))
}

func scanJSON(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonb: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
