package broadcast

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/telegram/flows"
	"yyldyz-bot/internal/telegram/messages"
)

// Рассылка идёт последовательно с лимитером, чтобы не упереться в
// телеграмный flood limit.
const sendRatePerSecond = 25

// Handler - рассылка текста всем известным пользователям.
type Handler struct {
	bot          botApi
	stateManager stateManager
	userService  userService
	logger       *slog.Logger
	limiter      *rate.Limiter
}

func NewHandler(bot botApi, sm stateManager, us userService, logger *slog.Logger) *Handler {
	return &Handler{
		bot:          bot,
		stateManager: sm,
		userService:  us,
		logger:       logger,
		limiter:      rate.NewLimiter(rate.Limit(sendRatePerSecond), 1),
	}
}

func (h *Handler) Start(ctx context.Context, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, messages.BroadcastPrompt)
	msg.ReplyMarkup = messages.BroadcastCancelKeyboard(chatID)

	sent, err := h.bot.Send(msg)
	if err != nil {
		return errors.Wrap(err, "send broadcast prompt")
	}
	return h.stateManager.SetBroadcast(ctx, chatID, &flows.BroadcastData{MessageID: sent.MessageID})
}

// HandleText получает текст и сразу рассылает его всем пользователям.
func (h *Handler) HandleText(ctx context.Context, update *tgbotapi.Update, data *flows.BroadcastData) error {
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if err := h.stateManager.DeleteBroadcast(ctx, chatID); err != nil {
		return err
	}

	recipients, err := h.userService.ListUsers(ctx)
	if err != nil {
		return errors.Wrap(err, "list broadcast recipients")
	}

	sent := 0
	for _, u := range recipients {
		if err := h.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := h.bot.Send(tgbotapi.NewMessage(u.ID, text)); err != nil {
			// Заблокировавшие бота не валят рассылку
			h.logger.Warn("broadcast send", "user_id", u.ID, "error", err)
			continue
		}
		sent++
	}

	h.logger.Info("broadcast finished", "admin_id", chatID, "total", len(recipients), "sent", sent)

	edit := tgbotapi.NewEditMessageText(chatID, data.MessageID,
		messages.BroadcastDoneMsg(sent, len(recipients)))
	_, err = h.bot.Send(edit)
	return err
}

// HandleCancel - кнопка cancelBroad_.
func (h *Handler) HandleCancel(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetBroadcast(ctx, chatID)
	if err != nil {
		return err
	}
	if err := h.stateManager.DeleteBroadcast(ctx, chatID); err != nil {
		return err
	}

	if data != nil {
		edit := tgbotapi.NewEditMessageText(chatID, data.MessageID, messages.BroadcastCancelled)
		if _, err := h.bot.Send(edit); err != nil {
			h.logger.Warn("edit broadcast message", "error", err)
		}
	}
	_, err = h.bot.Request(tgbotapi.NewCallback(cb.ID, ""))
	return err
}
