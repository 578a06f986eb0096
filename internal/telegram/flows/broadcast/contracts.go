package broadcast

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
		Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	}

	stateManager interface {
		GetBroadcast(ctx context.Context, userID int64) (*flows.BroadcastData, error)
		SetBroadcast(ctx context.Context, userID int64, data *flows.BroadcastData) error
		DeleteBroadcast(ctx context.Context, userID int64) error
	}

	userService interface {
		ListUsers(ctx context.Context) ([]*users.User, error)
	}
)
