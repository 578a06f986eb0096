package cmds

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/messages"
)

type StartCommand struct {
	bot         botApi
	userService StartUserService
}

type StartUserService interface {
	GetOrCreateUser(ctx context.Context, telegramID int64) (*users.User, error)
}

func NewStartCommand(bot botApi, userService StartUserService) *StartCommand {
	return &StartCommand{
		bot:         bot,
		userService: userService,
	}
}

// Execute регистрирует пользователя при первом контакте и показывает
// главную клавиатуру. /start calladmin ведёт сразу к вызову админа.
func (c *StartCommand) Execute(ctx context.Context, chatID int64, text string) error {
	if _, err := c.userService.GetOrCreateUser(ctx, chatID); err != nil {
		msg := tgbotapi.NewMessage(chatID, messages.RetryStart)
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("get or create user: %w", err)
	}

	param := ""
	if parts := strings.Fields(text); len(parts) > 1 {
		param = parts[1]
	}

	if param == "calladmin" {
		msg := tgbotapi.NewMessage(chatID, messages.WelcomeCall)
		msg.ReplyMarkup = messages.MainKeyboard()
		_, err := c.bot.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, messages.Welcome)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = messages.MainKeyboard()
	_, err := c.bot.Send(msg)
	return err
}
