package sumadd

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
		GetSumAdd(ctx context.Context, userID int64) (*flows.SumAddData, error)
		SetSumAdd(ctx context.Context, userID int64, data *flows.SumAddData) error
		DeleteSumAdd(ctx context.Context, userID int64) error
	}

	userService interface {
		ResolveAccount(ctx context.Context, token string) (*users.User, error)
	}

	ledgerService interface {
		ApplySumUpdate(ctx context.Context, cashierID, clientID int64, currency ledger.Currency, sum float64) (*ledger.SummUpdate, error)
	}
)
