package pendingdigest

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/orders"
)

type (
	// Storage provides database operations
	Storage interface {
		ListOrders(ctx context.Context, criteria orders.ListCriteria) ([]*orders.Order, error)
	}

	// TelegramBot provides Telegram API operations
	TelegramBot interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	}

	// Localizer renders digest texts
	Localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}

	// AdminRegistry lists digest recipients
	AdminRegistry interface {
		AdminIDs() []int64
	}
)
