package check

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
	"yyldyz-bot/internal/telegram/messages"
)

// Handler - просмотр чужого счёта админом: один вопрос, один ответ.
type Handler struct {
	bot          botApi
	stateManager stateManager
	userService  userService
	logger       *slog.Logger
}

func NewHandler(bot botApi, sm stateManager, us userService, logger *slog.Logger) *Handler {
	return &Handler{
		bot:          bot,
		stateManager: sm,
		userService:  us,
		logger:       logger,
	}
}

func (h *Handler) Start(ctx context.Context, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, messages.CheckPrompt)
	msg.ReplyMarkup = messages.CheckCancelKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return errors.Wrap(err, "send check prompt")
	}

	return h.stateManager.SetCheck(ctx, chatID, &flows.CheckData{MessageID: sent.MessageID})
}

// HandleText - ответ с номером счёта или tg ID.
func (h *Handler) HandleText(ctx context.Context, update *tgbotapi.Update, data *flows.CheckData) error {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	client, err := h.userService.ResolveAccount(ctx, text)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			// Переспрашиваем, состояние не трогаем
			_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.CheckNotFound))
			return err
		}
		return errors.Wrap(err, "resolve account")
	}

	if err := h.stateManager.DeleteCheck(ctx, chatID); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, data.MessageID,
		messages.BalanceMsg(client.WalNum, client.SumTMT, client.SumUSDT))
	edit.ParseMode = tgbotapi.ModeHTML
	_, err = h.bot.Send(edit)
	return err
}

// HandleDecline - кнопка "Yatyr".
func (h *Handler) HandleDecline(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	if err := h.stateManager.DeleteCheck(ctx, chatID); err != nil {
		return err
	}

	if cb.Message != nil {
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, messages.Cancelled)
		if _, err := h.bot.Send(edit); err != nil {
			h.logger.Warn("edit check message", "error", err)
		}
	}
	_, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, ""))
	return err
}
