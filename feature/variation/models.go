package variation

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"variation-manager/core/matrix"
)

// Draft is the saved state of a product's variation matrix.
type Draft struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	ProductID    string          `gorm:"size:64;not null;uniqueIndex" json:"productId"`
	Facets       FacetList       `gorm:"type:text" json:"facets"`
	Combinations CombinationList `gorm:"type:mediumtext" json:"combinations"`
	Companies    StringList      `gorm:"type:text" json:"companies"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TableName overrides the table name used by Draft.
func (Draft) TableName() string {
	return "variation_drafts"
}

// draftColumns lists the columns Prepare verifies after migration.
var draftColumns = []string{
	"id", "product_id", "facets", "combinations", "companies", "created_at", "updated_at",
}

// JSON column types, stored as text so MySQL and SQLite behave the same.
type (
	FacetList       matrix.FacetSet
	CombinationList []matrix.Combination
	StringList      []string
)

// Scan implements sql.Scanner.
func (f *FacetList) Scan(value interface{}) error {
	return scanJSON(value, f, func() { *f = FacetList{} })
}

// Value implements driver.Valuer.
func (f FacetList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	return valueJSON(f)
}

// Scan implements sql.Scanner.
func (c *CombinationList) Scan(value interface{}) error {
	return scanJSON(value, c, func() { *c = CombinationList{} })
}

// Value implements driver.Valuer.
func (c CombinationList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return valueJSON(c)
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = StringList{} })
}

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return valueJSON(s)
}

func scanJSON(value interface{}, dst interface{}, empty func()) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported JSON column type")
	}
	if len(data) == 0 {
		empty()
		return nil
	}
	return json.Unmarshal(data, dst)
}

func valueJSON(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
