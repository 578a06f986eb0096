package cmds

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/messages"
)

type OnOffCommand struct {
	bot          botApi
	adminService OnOffAdminService
}

type OnOffAdminService interface {
	SetOnline(ctx context.Context, tgID int64, online bool) (*users.Admin, error)
}

func NewOnOffCommand(bot botApi, adminService OnOffAdminService) *OnOffCommand {
	return &OnOffCommand{
		bot:          bot,
		adminService: adminService,
	}
}

// Execute переключает информационный онлайн-флаг админа.
func (c *OnOffCommand) Execute(ctx context.Context, chatID int64, online bool) error {
	if _, err := c.adminService.SetOnline(ctx, chatID, online); err != nil {
		return fmt.Errorf("set online status: %w", err)
	}

	text := messages.AdminOnline
	if !online {
		text = messages.AdminOffline
	}
	_, err := c.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
