package adminchat

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/chat"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
		Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	}

	chatService interface {
		Get(ctx context.Context, userID int64) (*chat.State, error)
		Request(ctx context.Context, clientID int64) error
		RequestCall(ctx context.Context, adminID int64) error
		RecordAdminMessage(ctx context.Context, clientID, adminID int64, messageID int) error
		AdminMessages(ctx context.Context, clientID int64) ([]*chat.AdminMessage, error)
		Accept(ctx context.Context, adminID, clientID int64) (*chat.State, error)
		Pair(ctx context.Context, adminID, clientID int64) error
		End(ctx context.Context, fromID int64) (*chat.State, error)
		CleanupMessages(ctx context.Context, clientID int64) error
	}

	stateManager interface {
		GetTransfer(ctx context.Context, userID int64) (*flows.TransferData, error)
	}

	userService interface {
		GetUser(ctx context.Context, telegramID int64) (*users.User, error)
	}

	adminRegistry interface {
		IsAdmin(userID int64) bool
		AdminIDs() []int64
	}
)
