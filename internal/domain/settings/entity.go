// internal/domain/settings/entity.go
package settings

import "time"

// Well-known setting keys.
const (
	KeyTelegramBotToken = "telegram_bot_token"
	KeyTelegramChatID   = "telegram_chat_id"
)

// Setting is a key/value row for runtime-editable shop configuration.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the settings table name.
func (Setting) TableName() string {
	return "settings"
}
