package cmds

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/telegram/messages"
)

type ShopCommand struct {
	bot        botApi
	miniAppURL string
}

func NewShopCommand(bot botApi, miniAppURL string) *ShopCommand {
	return &ShopCommand{
		bot:        bot,
		miniAppURL: miniAppURL,
	}
}

// Execute открывает кнопку мини-аппа магазина.
func (c *ShopCommand) Execute(_ context.Context, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, messages.ShopPrompt)
	msg.ReplyMarkup = messages.ShopKeyboard(c.miniAppURL)
	_, err := c.bot.Send(msg)
	return err
}
