package check

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
		SetCheck(ctx context.Context, userID int64, data *flows.CheckData) error
		DeleteCheck(ctx context.Context, userID int64) error
	}

	userService interface {
		ResolveAccount(ctx context.Context, token string) (*users.User, error)
	}
)
