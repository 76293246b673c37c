// internal/pkg/notify/telegram.go
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/projektikatalog/jeftinoRS/internal/config"
	"github.com/projektikatalog/jeftinoRS/internal/domain/order"
	"github.com/projektikatalog/jeftinoRS/internal/domain/settings"
)

const telegramAPIBase = "https://api.telegram.org"

// CredentialSource resolves runtime-editable settings by key.
type CredentialSource interface {
	Get(key string) (string, error)
}

// TelegramNotifier posts new-order announcements to a Telegram chat.
// Credentials come from the settings table first, with the environment
// as fallback. Failures are logged and never surfaced to the caller.
type TelegramNotifier struct {
	settings CredentialSource
	config   *config.Config
	client   *http.Client
	logger   *logrus.Logger
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(creds CredentialSource, cfg *config.Config, logger *logrus.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		settings: creds,
		config:   cfg,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (n *TelegramNotifier) credentials() (token, chatID string) {
	if n.settings != nil {
		if v, err := n.settings.Get(settings.KeyTelegramBotToken); err == nil && v != "" {
			token = v
		}
		if v, err := n.settings.Get(settings.KeyTelegramChatID); err == nil && v != "" {
			chatID = v
		}
	}
	if token == "" {
		token = n.config.Telegram.BotToken
	}
	if chatID == "" {
		chatID = n.config.Telegram.ChatID
	}
	return token, chatID
}

// NotifyNewOrder sends the order announcement. Missing credentials or
// API failures only produce log entries.
func (n *TelegramNotifier) NotifyNewOrder(o *order.Order) {
	token, chatID := n.credentials()
	if token == "" || chatID == "" {
		n.logger.Warn("Telegram credentials not configured, skipping order notification")
		return
	}

	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       FormatOrderMessage(o),
		"parse_mode": "Markdown",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.WithError(err).Error("Failed to encode Telegram payload")
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, token)
	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		n.logger.WithError(err).WithField("order_id", o.ID).Error("Failed to send Telegram notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.WithFields(logrus.Fields{
			"order_id": o.ID,
			"status":   resp.StatusCode,
		}).Error("Telegram API rejected order notification")
		return
	}

	n.logger.WithField("order_id", o.ID).Info("Telegram notification sent")
}

// FormatOrderMessage renders the Markdown announcement: customer block,
// promo items grouped under their promotion, then regular items, then
// totals.
func FormatOrderMessage(o *order.Order) string {
	var b strings.Builder

	b.WriteString("🆕 *Nova porudžbina!*\n\n")
	fmt.Fprintf(&b, "🆔 Porudžbina: `%s`\n", o.OrderCode)
	fmt.Fprintf(&b, "👤 Kupac: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "📞 Telefon: %s\n", o.Phone)
	fmt.Fprintf(&b, "📍 Adresa: %s, %s %s\n", o.Address, o.PostalCode, o.City)
	fmt.Fprintf(&b, "📧 Email: %s\n", o.Email)

	var regular, promo []string
	for _, line := range o.Items {
		variant := ""
		if line.Variant != nil {
			variant = line.Variant.Name
		}
		if line.IsPromo {
			promo = append(promo, formatLine(line.Product.Name, line.Size, variant, line.Quantity, 0))
		} else {
			regular = append(regular, formatLine(line.Product.Name, line.Size, variant, line.Quantity, line.UnitPrice()*int64(line.Quantity)))
		}
	}

	if len(promo) > 0 {
		fmt.Fprintf(&b, "\n🎁 *Akcija: %s* (%d RSD)\n", o.PromoTitle, o.PromoPrice)
		for _, item := range promo {
			b.WriteString(item)
		}
	}
	if len(regular) > 0 {
		b.WriteString("\n🧾 *Ostalo:*\n")
		for _, item := range regular {
			b.WriteString(item)
		}
	}

	fmt.Fprintf(&b, "\nSuma artikala: %d RSD\n", o.TotalPrice)
	fmt.Fprintf(&b, "Poštarina: %d RSD\n", o.ShippingCost)
	fmt.Fprintf(&b, "*UKUPNO: %d RSD*\n", o.GrandTotal())

	return b.String()
}

func formatLine(name, size, variant string, qty int, total int64) string {
	var details []string
	if size != "" {
		details = append(details, size)
	}
	if variant != "" {
		details = append(details, variant)
	}
	label := name
	if len(details) > 0 {
		label = fmt.Sprintf("%s (%s)", name, strings.Join(details, ", "))
	}
	if total > 0 {
		return fmt.Sprintf("• %s x%d — %d RSD\n", label, qty, total)
	}
	return fmt.Sprintf("• %s x%d\n", label, qty)
}
