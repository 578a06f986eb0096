package transfer

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/ledger"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
		Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	}

	stateManager interface {
		GetTransfer(ctx context.Context, userID int64) (*flows.TransferData, error)
		SetTransfer(ctx context.Context, userID int64, data *flows.TransferData) error
		DeleteTransfer(ctx context.Context, userID int64) error
	}

	userService interface {
		GetUser(ctx context.Context, telegramID int64) (*users.User, error)
		ResolveAccount(ctx context.Context, token string) (*users.User, error)
	}

	ledgerService interface {
		ExecuteTransfer(ctx context.Context, senderID, receiverID int64, currency ledger.Currency, amount float64) (*ledger.Transfer, error)
	}
)
