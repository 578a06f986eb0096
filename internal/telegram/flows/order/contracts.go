package order

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/orders"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
		Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	}

	orderService interface {
		CreateOrder(ctx context.Context, order orders.Order) (*orders.Order, error)
		Transition(ctx context.Context, id int64, allowed []orders.Status, next orders.Status, courierID *int64) (*orders.Order, error)
		SetReason(ctx context.Context, id int64, reason string) error
		SetClientMessageID(ctx context.Context, id int64, messageID int) error
		RecordAdminMessage(ctx context.Context, orderID, adminID int64, messageID int) error
		AdminMessages(ctx context.Context, orderID int64) ([]*orders.AdminMessage, error)
	}

	userService interface {
		GetOrCreateUser(ctx context.Context, telegramID int64) (*users.User, error)
	}

	stateManager interface {
		SetReason(ctx context.Context, userID int64, data *flows.ReasonData) error
		DeleteReason(ctx context.Context, userID int64) error
	}

	adminRegistry interface {
		IsAdmin(userID int64) bool
		AdminIDs() []int64
	}
)
