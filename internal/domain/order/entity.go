// internal/domain/order/entity.go
package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
)

// Order statuses. New orders start as received.
const (
	StatusReceived   = "Primljeno"
	StatusProcessing = "U obradi"
	StatusShipped    = "Poslato"
	StatusDelivered  = "Isporučeno"
	StatusCancelled  = "otkazano"
)

// ValidStatuses lists the statuses an admin may set.
var ValidStatuses = []string{
	StatusReceived,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// LineList stores order lines as a JSON column.
type LineList []cart.Line

func (l LineList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineList) Scan(value interface{}) error {
	if value == nil {
		*l = LineList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for LineList: %T", value)
	}
	return json.Unmarshal(b, l)
}

// Order is a submitted purchase. The JSON field names are the shop's
// established wire format and must stay stable.
type Order struct {
	ID           string   `json:"id" gorm:"type:uuid;primaryKey"`
	OrderCode    string   `json:"order_code" gorm:"uniqueIndex;not null"`
	CustomerName string   `json:"ime_kupca" gorm:"not null"`
	Email        string   `json:"email_kupca"`
	Address      string   `json:"adresa_kupca" gorm:"not null"`
	City         string   `json:"grad_kupca" gorm:"not null"`
	PostalCode   string   `json:"postanski_broj_kupca"`
	Phone        string   `json:"telefon_kupca" gorm:"not null"`
	Items        LineList `json:"artikli" gorm:"type:jsonb"`
	TotalPrice   int64    `json:"ukupna_cena" gorm:"not null"`
	ShippingCost int64    `json:"shipping_cost" gorm:"not null"`
	Status       string   `json:"status" gorm:"not null;default:'Primljeno';index"`

	PromoTitle  string `json:"promo_title,omitempty"`
	PromoPrice  int64  `json:"promo_price,omitempty"`
	PromotionID string `json:"promotion_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the orders table name.
func (Order) TableName() string {
	return "orders"
}

// GrandTotal is the amount the customer pays.
func (o *Order) GrandTotal() int64 {
	return o.TotalPrice + o.ShippingCost
}
