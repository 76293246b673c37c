// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product. Display fields and pricing are
// editable by admins; shoppers only ever read them.
type Product struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"not null;size:100;index" json:"category"`
	Images      StringList     `gorm:"type:jsonb" json:"images"`
	BasePrice   int64          `gorm:"not null" json:"base_price"` // Price in RSD
	Variants    VariantList    `gorm:"type:jsonb" json:"variants,omitempty"`
	Sizes       StringList     `gorm:"type:jsonb" json:"sizes,omitempty"` // Legacy single-dimension selector
	Available   bool           `gorm:"default:true" json:"available"`
	OnSale      bool           `gorm:"default:false" json:"on_sale"`
	OldPrice    *int64         `json:"old_price,omitempty"`
	PromotionID *string        `gorm:"size:36;index" json:"promotion_id,omitempty"`
	BundleOnly  bool           `gorm:"default:false" json:"bundle_only"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Variant is a named price point within a product. When a product has
// variants, price is variant-scoped, not product-scoped.
type Variant struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	OldPrice *int64 `json:"old_price,omitempty"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// HasVariants reports whether pricing is variant-scoped.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// FindVariant returns the variant with the given name, or nil.
func (p *Product) FindVariant(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}

// StringList stores an ordered string sequence as a JSON column.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// VariantList stores product variants as a JSON column.
type VariantList []Variant

// Value implements driver.Valuer
func (l VariantList) Value() (driver.Value, error) {
	if l == nil {
		l = VariantList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *VariantList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
