// internal/domain/promotion/entity.go
package promotion

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Mode selects how a promotion's bundle is filled.
type Mode string

const (
	// ModeQuantity accumulates any eligible product until the required
	// count is reached.
	ModeQuantity Mode = "quantity"
	// ModeSlots fills positionally-addressed steps, one item per step.
	ModeSlots Mode = "slots"
	// ModeCategorical treats each product category as an implicit step
	// with a one-per-category cap.
	ModeCategorical Mode = "categorical"
)

// Promotion represents a fixed-price bundle offer. The bundle is priced
// as a unit at FixedPrice regardless of its constituent items.
type Promotion struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	Title             string         `gorm:"not null;size:255" json:"title"`
	RequiredItemCount int            `gorm:"not null" json:"required_item_count"`
	FixedPrice        int64          `gorm:"not null" json:"fixed_price"` // RSD
	Active            bool           `gorm:"default:true" json:"active"`
	ImageURL          string         `gorm:"size:500" json:"image_url,omitempty"`
	Mode              Mode           `gorm:"size:20" json:"mode,omitempty"`
	Steps             StepList       `gorm:"type:jsonb" json:"steps,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// FilterKind selects how a bundle step matches products.
type FilterKind string

const (
	FilterCategory FilterKind = "category"
	FilterProduct  FilterKind = "product"
)

// StepFilter is a bundle step's eligibility predicate.
type StepFilter struct {
	Kind   FilterKind `json:"kind"`
	Values []string   `json:"values"`
}

// BundleStep is one positionally-addressed choice in a slot-based bundle.
type BundleStep struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Filter      StepFilter `json:"filter"`
}

// TableName overrides the table name
func (Promotion) TableName() string {
	return "promotions"
}

// EffectiveMode resolves the promotion's mode. Legacy rows without an
// explicit mode derive it from the presence of steps.
func (p *Promotion) EffectiveMode() Mode {
	if p.Mode != "" {
		return p.Mode
	}
	if len(p.Steps) > 0 {
		return ModeSlots
	}
	return ModeQuantity
}

// HasSteps reports whether the promotion is slot-based.
func (p *Promotion) HasSteps() bool {
	return p.EffectiveMode() == ModeSlots && len(p.Steps) > 0
}

// StepList stores bundle steps as a JSON column.
type StepList []BundleStep

// Value implements driver.Valuer
func (l StepList) Value() (driver.Value, error) {
	if l == nil {
		l = StepList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StepList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
