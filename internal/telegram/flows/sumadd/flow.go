package sumadd

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/ledger"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
	"yyldyz-bot/internal/telegram/messages"
)

// Handler ведёт флоу правки баланса: счёт -> валюта -> сумма ->
// подтверждение. Каждый шаг переписывает одно и то же сообщение-анкету.
type Handler struct {
	bot           botApi
	stateManager  stateManager
	userService   userService
	ledgerService ledgerService
	logger        *slog.Logger
}

func NewHandler(
	bot botApi,
	sm stateManager,
	us userService,
	ls ledgerService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		stateManager:  sm,
		userService:   us,
		ledgerService: ls,
		logger:        logger,
	}
}

// Start открывает анкету. Доступ проверяет роутер.
func (h *Handler) Start(ctx context.Context, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, messages.SumAddPrompt)
	msg.ReplyMarkup = messages.SumAddCancelKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return errors.Wrap(err, "send sum add prompt")
	}

	return h.stateManager.SetSumAdd(ctx, chatID, &flows.SumAddData{MssgID: sent.MessageID})
}

// HandleText принимает очередной свободный ответ: сначала счёт, потом сумму.
func (h *Handler) HandleText(ctx context.Context, update *tgbotapi.Update, data *flows.SumAddData) error {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if data.WalNum == "" {
		return h.handleAccountInput(ctx, chatID, text, data)
	}
	return h.handleAmountInput(ctx, chatID, text, data)
}

func (h *Handler) handleAccountInput(ctx context.Context, chatID int64, text string, data *flows.SumAddData) error {
	client, err := h.userService.ResolveAccount(ctx, text)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			if err := h.stateManager.DeleteSumAdd(ctx, chatID); err != nil {
				return err
			}
			_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.SumAddNotFound))
			return err
		}
		return errors.Wrap(err, "resolve account")
	}

	data.WalNum = client.WalNum
	data.ClientID = client.ID
	if err := h.stateManager.SetSumAdd(ctx, chatID, data); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, data.MssgID,
		messages.SumAddCurrencyPrompt(data.WalNum),
		messages.SumAddCurrencyKeyboard(),
	)
	_, err = h.bot.Send(edit)
	return err
}

func (h *Handler) handleAmountInput(ctx context.Context, chatID int64, text string, data *flows.SumAddData) error {
	if data.Currency == "" {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChooseCurrencyFirst))
		return err
	}

	sum, err := strconv.ParseFloat(text, 64)
	if err != nil || sum == 0 {
		// Нечисловой ввод обрывает флоу целиком, не переспрашивает
		if err := h.stateManager.DeleteSumAdd(ctx, chatID); err != nil {
			return err
		}
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.SumAddBadAmount))
		return err
	}

	data.Sum = sum
	if err := h.stateManager.SetSumAdd(ctx, chatID, data); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, data.MssgID,
		messages.SumAddConfirmPrompt(data.WalNum, data.Sum, string(data.Currency)),
		messages.SumAddConfirmKeyboard(),
	)
	_, err = h.bot.Send(edit)
	return err
}

// HandleChooseCurrency - нажатие choose_TMT / choose_USDT.
func (h *Handler) HandleChooseCurrency(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetSumAdd(ctx, chatID)
	if err != nil {
		return err
	}
	if data == nil {
		return h.answer(cb.ID, messages.GenericError)
	}

	currency, ok := ledger.ParseCurrency(strings.TrimPrefix(cb.Data, messages.CallbackChooseCurrency))
	if !ok {
		return h.answer(cb.ID, messages.GenericError)
	}

	data.Currency = currency
	if err := h.stateManager.SetSumAdd(ctx, chatID, data); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, data.MssgID,
		messages.SumAddAmountPrompt(data.WalNum, string(currency)),
		messages.SumAddCancelKeyboard(),
	)
	if _, err := h.bot.Send(edit); err != nil {
		return err
	}
	return h.answer(cb.ID, "")
}

// HandleComplete - подтверждение "Dogry": применяем правку и пишем аудит.
func (h *Handler) HandleComplete(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetSumAdd(ctx, chatID)
	if err != nil {
		return err
	}
	if data == nil || data.Sum == 0 {
		return h.answer(cb.ID, messages.GenericError)
	}

	if _, err := h.ledgerService.ApplySumUpdate(ctx, chatID, data.ClientID, data.Currency, data.Sum); err != nil {
		h.logger.Error("apply sum update", "cashier_id", chatID, "client_id", data.ClientID, "error", err)
		return h.answer(cb.ID, messages.GenericError)
	}

	if err := h.stateManager.DeleteSumAdd(ctx, chatID); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, data.MssgID,
		messages.SumAddConfirmPrompt(data.WalNum, data.Sum, string(data.Currency))+" \n "+messages.SumAddApplied)
	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Warn("edit sum add message", "error", err)
	}
	return h.answer(cb.ID, "")
}

// HandleDecline - отмена на любом шаге.
func (h *Handler) HandleDecline(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetSumAdd(ctx, chatID)
	if err != nil {
		return err
	}
	if err := h.stateManager.DeleteSumAdd(ctx, chatID); err != nil {
		return err
	}

	if data != nil {
		edit := tgbotapi.NewEditMessageText(chatID, data.MssgID, messages.Cancelled)
		if _, err := h.bot.Send(edit); err != nil {
			h.logger.Warn("edit sum add message", "error", err)
		}
	}
	return h.answer(cb.ID, "")
}

func (h *Handler) answer(callbackID, text string) error {
	_, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}
