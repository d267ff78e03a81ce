package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is stored as a text[] on PostgreSQL and as an array literal in text elsewhere.
type StringList []string

// GormDataType implements schema.GormDataTypeInterface.
func (StringList) GormDataType() string {
	return "text"
}

// GormDBDataType picks the column type per dialect.
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return pq.StringArray(l).Value()
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	if arr == nil {
		arr = pq.StringArray{}
	}
	*l = StringList(arr)
	return nil
}

// SizeQuantities maps a size code to its count; a nil count means absent.
type SizeQuantities map[string]*int

// GormDataType implements schema.GormDataTypeInterface.
func (SizeQuantities) GormDataType() string {
	return "json"
}

// GormDBDataType picks the column type per dialect.
func (SizeQuantities) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// Value implements driver.Valuer.
func (s SizeQuantities) Value() (driver.Value, error) {
	if s == nil {
		s = SizeQuantities{}
	}
	b, err := json.Marshal(map[string]*int(s))
	if err != nil {
		return nil, fmt.Errorf("marshal size quantities: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *SizeQuantities) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = SizeQuantities{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan size quantities: unsupported type %T", src)
	}

	out := SizeQuantities{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("scan size quantities: %w", err)
		}
	}
	*s = out
	return nil
}
