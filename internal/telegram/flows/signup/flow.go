package signup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/telegram/flows"
	"yyldyz-bot/internal/telegram/messages"
)

// Handler регистрирует ник и пароль админа. Пароль хранится только
// bcrypt-хешем.
type Handler struct {
	bot          botApi
	stateManager stateManager
	adminService adminService
	logger       *slog.Logger
}

func NewHandler(bot botApi, sm stateManager, as adminService, logger *slog.Logger) *Handler {
	return &Handler{
		bot:          bot,
		stateManager: sm,
		adminService: as,
		logger:       logger,
	}
}

func (h *Handler) Start(ctx context.Context, chatID int64) error {
	sent, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.SignupPrompt))
	if err != nil {
		return errors.Wrap(err, "send signup prompt")
	}
	return h.stateManager.SetSignup(ctx, chatID, &flows.SignupData{MessageID: sent.MessageID})
}

// HandleText ждёт две строки: ник и пароль.
func (h *Handler) HandleText(ctx context.Context, update *tgbotapi.Update, _ *flows.SignupData) error {
	chatID := update.Message.Chat.ID

	lines := strings.Split(strings.TrimSpace(update.Message.Text), "\n")
	if len(lines) < 2 {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.SignupBadFormat))
		return err
	}
	nick := strings.TrimSpace(lines[0])
	pass := strings.TrimSpace(lines[1])
	if nick == "" || pass == "" {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.SignupBadFormat))
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	if _, err := h.adminService.SetCredentials(ctx, chatID, nick, string(hashed)); err != nil {
		h.logger.Error("set admin credentials", "tg_id", chatID, "error", err)
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.GenericError))
		return err
	}

	if err := h.stateManager.DeleteSignup(ctx, chatID); err != nil {
		return err
	}

	_, err = h.bot.Send(tgbotapi.NewMessage(chatID, messages.SignupDone))
	return err
}
