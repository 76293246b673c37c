// internal/domain/user/entity.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// AdminUser is a back-office account. The storefront itself has no
// customer accounts; only admins authenticate.
type AdminUser struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the admin users table name.
func (AdminUser) TableName() string {
	return "admin_users"
}
