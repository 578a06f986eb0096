package cmds

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/messages"
)

type BalanceCommand struct {
	bot         botApi
	userService BalanceUserService
}

type BalanceUserService interface {
	GetUser(ctx context.Context, telegramID int64) (*users.User, error)
}

func NewBalanceCommand(bot botApi, userService BalanceUserService) *BalanceCommand {
	return &BalanceCommand{
		bot:         bot,
		userService: userService,
	}
}

func (c *BalanceCommand) Execute(ctx context.Context, chatID int64) error {
	user, err := c.userService.GetUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			_, err := c.bot.Send(tgbotapi.NewMessage(chatID, messages.RetryOrStart))
			return err
		}
		return fmt.Errorf("get user: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, messages.BalanceMsg(user.WalNum, user.SumTMT, user.SumUSDT))
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = c.bot.Send(msg)
	return err
}
