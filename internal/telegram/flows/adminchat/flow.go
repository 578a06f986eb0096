package adminchat

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/chat"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/messages"
)

// Handler сводит клиента с одним админом из пула и гоняет сообщения
// между ними, пока кто-то не даст /stop.
type Handler struct {
	bot          botApi
	chatService  chatService
	stateManager stateManager
	userService  userService
	admins       adminRegistry
	logger       *slog.Logger
}

func NewHandler(
	bot botApi,
	cs chatService,
	sm stateManager,
	us userService,
	admins adminRegistry,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		chatService:  cs,
		stateManager: sm,
		userService:  us,
		admins:       admins,
		logger:       logger,
	}
}

// Request - кнопка "Admini çagyr": заявка клиента уходит всему пулу.
func (h *Handler) Request(ctx context.Context, chatID int64) error {
	if h.admins.IsAdmin(chatID) {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatAdminCannotCall))
		return err
	}

	// Открытый перевод блокирует вызов админа
	transferState, err := h.stateManager.GetTransfer(ctx, chatID)
	if err != nil {
		return err
	}
	if transferState != nil {
		msg := tgbotapi.NewMessage(chatID, messages.ChatTransferOpen)
		msg.ReplyToMessageID = transferState.MessageID
		_, err := h.bot.Send(msg)
		return err
	}

	if err := h.chatService.Request(ctx, chatID); err != nil {
		if errors.Is(err, chat.ErrAlreadyInChat) {
			_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatAlreadyActiveUser))
			return err
		}
		return errors.Wrap(err, "create chat request")
	}

	for _, adminID := range h.admins.AdminIDs() {
		msg := tgbotapi.NewMessage(adminID, messages.ChatRequestMsg(chatID))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = messages.AcceptChatKeyboard(chatID)

		sent, err := h.bot.Send(msg)
		if err != nil {
			h.logger.Warn("notify admin about chat request", "admin_id", adminID, "error", err)
			continue
		}
		if err := h.chatService.RecordAdminMessage(ctx, chatID, adminID, sent.MessageID); err != nil {
			return err
		}
	}

	_, err = h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatWaitAccept))
	return err
}

// HandleAccept - acceptChat_<clientID>. Выигрывает первый нажавший,
// гонку решает условная запись в хранилище.
func (h *Handler) HandleAccept(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	acceptorID := cb.From.ID

	clientID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, messages.CallbackAcceptChat), 10, 64)
	if err != nil {
		return h.answer(cb.ID, messages.GenericError, false)
	}

	state, err := h.chatService.Accept(ctx, acceptorID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrChatBusy):
			return h.answer(cb.ID, messages.ChatAcceptorBusy, true)
		case errors.Is(err, chat.ErrRequestNotFound):
			_, err := h.bot.Send(tgbotapi.NewMessage(acceptorID, messages.ChatRequestGone))
			return err
		case errors.Is(err, chat.ErrAlreadyPaired):
			if cb.Message != nil {
				edit := tgbotapi.NewEditMessageText(acceptorID, cb.Message.MessageID, messages.ChatAlreadyTaken)
				if _, err := h.bot.Send(edit); err != nil {
					h.logger.Warn("edit accept message", "error", err)
				}
			}
			return h.answer(cb.ID, "", false)
		}
		return errors.Wrap(err, "accept chat")
	}

	adminMessages, err := h.chatService.AdminMessages(ctx, clientID)
	if err != nil {
		return err
	}

	if len(adminMessages) > 0 {
		pairedText := messages.ChatPairedMsg(acceptorID, clientID)
		for _, m := range adminMessages {
			if m.AdminID == state.PeerID {
				// У принявшего остаётся подсказка с ID собеседника
				edit := tgbotapi.NewEditMessageTextAndMarkup(m.AdminID, m.MessageID, pairedText, messages.PairedPeerKeyboard(clientID))
				edit.ParseMode = tgbotapi.ModeHTML
				if _, err := h.bot.Send(edit); err != nil {
					h.logger.Warn("edit chat notification", "admin_id", m.AdminID, "error", err)
				}
				h.pin(m.AdminID, m.MessageID)
				continue
			}
			edit := tgbotapi.NewEditMessageText(m.AdminID, m.MessageID, pairedText)
			edit.ParseMode = tgbotapi.ModeHTML
			if _, err := h.bot.Send(edit); err != nil {
				h.logger.Warn("edit chat notification", "admin_id", m.AdminID, "error", err)
			}
		}
	} else if cb.Message != nil {
		edit := tgbotapi.NewEditMessageText(acceptorID, cb.Message.MessageID, messages.ChatAccepted)
		if _, err := h.bot.Send(edit); err != nil {
			h.logger.Warn("edit accept message", "error", err)
		}
	}

	if _, err := h.bot.Send(tgbotapi.NewMessage(clientID, messages.ChatAccepted)); err != nil {
		h.logger.Warn("notify client about accept", "client_id", clientID, "error", err)
	}
	return h.answer(cb.ID, "", false)
}

// HandleCall - /cagyr: админ сам открывает чат по ID клиента.
func (h *Handler) HandleCall(ctx context.Context, chatID int64) error {
	if !h.admins.IsAdmin(chatID) {
		_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatCallOnlyAdmins))
		return err
	}

	if err := h.chatService.RequestCall(ctx, chatID); err != nil {
		if errors.Is(err, chat.ErrAlreadyInChat) {
			_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatAlreadyActive))
			return err
		}
		return errors.Wrap(err, "create call request")
	}

	_, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatCallSendID))
	return err
}

// HandleCallText - следующее сообщение вызывающего админа c tg ID клиента.
func (h *Handler) HandleCallText(ctx context.Context, update *tgbotapi.Update) error {
	adminID := update.Message.Chat.ID

	clientID, err := strconv.ParseInt(strings.TrimSpace(update.Message.Text), 10, 64)
	if err != nil {
		_, err := h.bot.Send(tgbotapi.NewMessage(adminID, messages.ChatCallInvalidID))
		return err
	}

	if _, err := h.userService.GetUser(ctx, clientID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			_, err := h.bot.Send(tgbotapi.NewMessage(adminID, messages.ChatCallUserNotFound))
			return err
		}
		return errors.Wrap(err, "get called user")
	}

	if err := h.chatService.Pair(ctx, adminID, clientID); err != nil {
		if errors.Is(err, chat.ErrAlreadyInChat) {
			_, err := h.bot.Send(tgbotapi.NewMessage(adminID, messages.ChatAlreadyTaken))
			return err
		}
		return errors.Wrap(err, "pair call")
	}

	if _, err := h.bot.Send(tgbotapi.NewMessage(clientID, messages.ChatAccepted)); err != nil {
		h.logger.Warn("notify called client", "client_id", clientID, "error", err)
	}
	_, err = h.bot.Send(tgbotapi.NewMessage(adminID, messages.ChatAccepted))
	return err
}

// Relay пересылает сообщение второй стороне пары как есть, вместе с медиа.
func (h *Handler) Relay(ctx context.Context, update *tgbotapi.Update, state *chat.State) error {
	cp := tgbotapi.NewCopyMessage(state.PeerID, update.Message.Chat.ID, update.Message.MessageID)
	if _, err := h.bot.Send(cp); err != nil {
		h.logger.Warn("relay message", "from", state.UserID, "to", state.PeerID, "error", err)
	}
	return nil
}

// HandleStop - /stop с любой стороны: уведомления правятся, закреп
// снимается, обе половины пары удаляются.
func (h *Handler) HandleStop(ctx context.Context, chatID int64) error {
	state, err := h.chatService.End(ctx, chatID)
	if err != nil {
		if errors.Is(err, chat.ErrNoChat) {
			return nil
		}
		return errors.Wrap(err, "end chat")
	}

	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, messages.ChatEnded)); err != nil {
		h.logger.Warn("notify chat end", "chat_id", chatID, "error", err)
	}
	if state.PeerID != 0 {
		msg := tgbotapi.NewMessage(state.PeerID, messages.ChatEndedForPeer)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := h.bot.Send(msg); err != nil {
			h.logger.Warn("notify chat end", "chat_id", state.PeerID, "error", err)
		}
	}

	// Уведомления пула живут под ID клиента
	enderIsAdmin := h.admins.IsAdmin(chatID)
	clientID := chatID
	pairAdminID := state.PeerID
	if enderIsAdmin {
		clientID = state.PeerID
		pairAdminID = chatID
	}
	if clientID == 0 {
		return nil
	}

	adminMessages, err := h.chatService.AdminMessages(ctx, clientID)
	if err != nil {
		return err
	}

	endedText := messages.ChatEndedInfoMsg(chatID, state.PeerID, enderIsAdmin)
	for _, m := range adminMessages {
		edit := tgbotapi.NewEditMessageText(m.AdminID, m.MessageID, endedText)
		edit.ParseMode = tgbotapi.ModeHTML
		if _, err := h.bot.Send(edit); err != nil {
			h.logger.Warn("edit chat notification", "admin_id", m.AdminID, "error", err)
		}
	}

	if pinned, ok := lo.Find(adminMessages, func(m *chat.AdminMessage) bool {
		return m.AdminID == pairAdminID
	}); ok {
		h.unpin(pinned.AdminID, pinned.MessageID)
	}

	return h.chatService.CleanupMessages(ctx, clientID)
}

func (h *Handler) pin(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.PinChatMessageConfig{
		ChatID:              chatID,
		MessageID:           messageID,
		DisableNotification: true,
	}); err != nil {
		h.logger.Warn("pin chat notification", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) unpin(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.UnpinChatMessageConfig{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		h.logger.Warn("unpin chat notification", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) answer(callbackID, text string, alert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	if alert {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	_, err := h.bot.Request(cb)
	return err
}
