package signup

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	}

	stateManager interface {
		SetSignup(ctx context.Context, userID int64, data *flows.SignupData) error
		DeleteSignup(ctx context.Context, userID int64) error
	}

	adminService interface {
		SetCredentials(ctx context.Context, tgID int64, nick, hashedPassword string) (*users.Admin, error)
	}
)
