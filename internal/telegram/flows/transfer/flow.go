package transfer

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

// Handler ведёт перевод между счетами: получатель -> валюта -> сумма ->
// подтверждение. Сообщение-анкета закрепляется, чтобы открытый перевод
// нельзя было не заметить.
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

// Start открывает перевод. Второй параллельный перевод запрещён.
func (h *Handler) Start(ctx context.Context, chatID int64) error {
	existing, err := h.stateManager.GetTransfer(ctx, chatID)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.TransferInProgress))
		return err
	}

	sender, err := h.userService.GetUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.RetryOrStart))
			return err
		}
		return errors.Wrap(err, "get sender")
	}

	msg := tgbotapi.NewMessage(chatID, messages.TransferPrompt)
	msg.ReplyMarkup = messages.TransferCancelKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		_, sendErr := h.bot.Send(tgbotapi.NewMessage(chatID, messages.GenericError))
		if sendErr != nil {
			h.logger.Warn("send transfer error notice", "error", sendErr)
		}
		return errors.Wrap(err, "send transfer prompt")
	}

	data := &flows.TransferData{
		MessageID:    sent.MessageID,
		SenderWalNum: sender.WalNum,
	}
	if err := h.stateManager.SetTransfer(ctx, chatID, data); err != nil {
		return err
	}

	if _, err := h.bot.Request(tgbotapi.PinChatMessageConfig{
		ChatID:              chatID,
		MessageID:           sent.MessageID,
		DisableNotification: true,
	}); err != nil {
		h.logger.Warn("pin transfer prompt", "chat_id", chatID, "error", err)
	}
	return nil
}

// HandleText принимает получателя, затем сумму.
func (h *Handler) HandleText(ctx context.Context, update *tgbotapi.Update, data *flows.TransferData) error {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if data.ReceiverID == 0 {
		return h.handleReceiverInput(ctx, chatID, text, data)
	}
	return h.handleAmountInput(ctx, chatID, text, data)
}

func (h *Handler) handleReceiverInput(ctx context.Context, chatID int64, text string, data *flows.TransferData) error {
	receiver, err := h.userService.ResolveAccount(ctx, text)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			// Получателя переспрашиваем, флоу не обрываем
			_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.TransferReceiverGone))
			return err
		}
		return errors.Wrap(err, "resolve receiver")
	}
	if receiver.ID == chatID {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.TransferSelfForbidden))
		return err
	}

	data.ReceiverID = receiver.ID
	data.ReceiverWalNum = receiver.WalNum
	if err := h.stateManager.SetTransfer(ctx, chatID, data); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, data.MessageID,
		messages.TransferCurrencyPrompt(data.ReceiverWalNum),
		messages.TransferCurrencyKeyboard(),
	)
	_, err = h.bot.Send(edit)
	return err
}

func (h *Handler) handleAmountInput(ctx context.Context, chatID int64, text string, data *flows.TransferData) error {
	if data.Currency == "" {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChooseCurrencyFirst))
		return err
	}

	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || amount <= 0 {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.TransferBadAmount))
		return err
	}

	sender, err := h.userService.GetUser(ctx, chatID)
	if err != nil {
		return errors.Wrap(err, "get sender")
	}
	if sender.Balance(data.Currency) < amount {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.TransferInsufficient))
		return err
	}

	data.Amount = amount
	if err := h.stateManager.SetTransfer(ctx, chatID, data); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, data.MessageID,
		messages.TransferConfirmPrompt(data.ReceiverWalNum, data.Amount, string(data.Currency)),
		messages.TransferConfirmKeyboard(),
	)
	_, err = h.bot.Send(edit)
	return err
}

// HandleSelectCurrency - нажатие select_TMT / select_USDT.
func (h *Handler) HandleSelectCurrency(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetTransfer(ctx, chatID)
	if err != nil {
		return err
	}
	if data == nil {
		return h.answer(cb.ID, messages.GenericError)
	}

	currency, ok := ledger.ParseCurrency(strings.TrimPrefix(cb.Data, messages.CallbackSelectCurrency))
	if !ok {
		return h.answer(cb.ID, messages.GenericError)
	}

	data.Currency = currency
	if err := h.stateManager.SetTransfer(ctx, chatID, data); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, data.MessageID,
		messages.TransferAmountPrompt(data.ReceiverWalNum, string(currency)),
		messages.TransferCancelKeyboard(),
	)
	if _, err := h.bot.Send(edit); err != nil {
		return err
	}
	return h.answer(cb.ID, "")
}

// HandleComplete - подтверждение "Dogry": двигаем оба баланса одной
// транзакцией и пишем аудит.
func (h *Handler) HandleComplete(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetTransfer(ctx, chatID)
	if err != nil {
		return err
	}
	if data == nil || data.Amount <= 0 || data.ReceiverID == 0 {
		return h.answer(cb.ID, messages.GenericError)
	}

	if _, err := h.ledgerService.ExecuteTransfer(ctx, chatID, data.ReceiverID, data.Currency, data.Amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return h.answer(cb.ID, messages.TransferInsufficient)
		}
		h.logger.Error("execute transfer", "sender_id", chatID, "receiver_id", data.ReceiverID, "error", err)
		return h.answer(cb.ID, messages.GenericError)
	}

	if err := h.finish(ctx, chatID, data, messages.TransferDone); err != nil {
		return err
	}
	return h.answer(cb.ID, "")
}

// HandleDecline - отмена на любом шаге.
func (h *Handler) HandleDecline(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	chatID := cb.From.ID

	data, err := h.stateManager.GetTransfer(ctx, chatID)
	if err != nil {
		return err
	}
	if data == nil {
		return h.answer(cb.ID, "")
	}

	if err := h.finish(ctx, chatID, data, messages.TransferCancelled); err != nil {
		return err
	}
	return h.answer(cb.ID, "")
}

func (h *Handler) finish(ctx context.Context, chatID int64, data *flows.TransferData, text string) error {
	if err := h.stateManager.DeleteTransfer(ctx, chatID); err != nil {
		return err
	}

	if _, err := h.bot.Request(tgbotapi.UnpinChatMessageConfig{
		ChatID:    chatID,
		MessageID: data.MessageID,
	}); err != nil {
		h.logger.Warn("unpin transfer prompt", "chat_id", chatID, "error", err)
	}

	edit := tgbotapi.NewEditMessageText(chatID, data.MessageID, text)
	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Warn("edit transfer message", "error", err)
	}
	return nil
}

func (h *Handler) answer(callbackID, text string) error {
	_, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}
