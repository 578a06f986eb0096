package order

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/ledger"
	"yyldyz-bot/internal/stories/orders"
	"yyldyz-bot/internal/telegram/flows"
	"yyldyz-bot/internal/telegram/messages"
)

// Handler проводит заказ по жизненному циклу: заявка из мини-аппа,
// принятие, доставка, завершение, отказ с причиной. Любая смена статуса
// идёт через guarded transition - незаконный скачок просто не запишется.
type Handler struct {
	bot          botApi
	orderService orderService
	userService  userService
	stateManager stateManager
	admins       adminRegistry
	logger       *slog.Logger
}

func NewHandler(
	bot botApi,
	os orderService,
	us userService,
	sm stateManager,
	admins adminRegistry,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		orderService: os,
		userService:  us,
		stateManager: sm,
		admins:       admins,
		logger:       logger,
	}
}

// orderDraft - payload мини-аппа (sendData).
type orderDraft struct {
	ProductID int64    `json:"product_id"`
	Quantity  *int     `json:"quantity,omitempty"`
	Payment   string   `json:"payment"`
	Total     *float64 `json:"total,omitempty"`
	Receiver  string   `json:"receiver"`
}

// HandleWebAppData разбирает заявку мини-аппа и проводит её через Intake.
func (h *Handler) HandleWebAppData(ctx context.Context, clientID int64, payload string) error {
	var draft orderDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		h.logger.Warn("malformed web app payload", "client_id", clientID, "error", err)
		_, err := h.bot.Send(tgbotapi.NewMessage(clientID, messages.GenericError))
		return err
	}

	payment, ok := ledger.ParseCurrency(draft.Payment)
	if !ok {
		_, err := h.bot.Send(tgbotapi.NewMessage(clientID, messages.GenericError))
		return err
	}

	return h.Intake(ctx, clientID, orders.Order{
		ProductID: draft.ProductID,
		Quantity:  draft.Quantity,
		Payment:   payment,
		Total:     draft.Total,
		Receiver:  draft.Receiver,
	})
}

// Intake принимает заявку из web-app данных: создаёт pending-заказ,
// отвечает клиенту и рассылает карточку заказа пулу.
func (h *Handler) Intake(ctx context.Context, clientID int64, draft orders.Order) error {
	if _, err := h.userService.GetOrCreateUser(ctx, clientID); err != nil {
		return errors.Wrap(err, "ensure client")
	}

	draft.UserID = clientID
	created, err := h.orderService.CreateOrder(ctx, draft)
	if err != nil {
		return errors.Wrap(err, "create order")
	}

	msg := tgbotapi.NewMessage(clientID, messages.OrderIDMsg(created.ID)+" \n "+messages.OrderAcceptedForClient)
	msg.ParseMode = tgbotapi.ModeHTML
	sent, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Warn("notify client about order", "client_id", clientID, "error", err)
	} else {
		if err := h.orderService.SetClientMessageID(ctx, created.ID, sent.MessageID); err != nil {
			return err
		}
	}

	cardText := messages.OrderCardMsg(created)
	for _, adminID := range h.admins.AdminIDs() {
		card := tgbotapi.NewMessage(adminID, cardText)
		card.ParseMode = tgbotapi.ModeHTML
		card.ReplyMarkup = messages.NewOrderKeyboard(created.ID)

		adminMsg, err := h.bot.Send(card)
		if err != nil {
			h.logger.Warn("notify admin about order", "admin_id", adminID, "error", err)
			continue
		}
		if err := h.orderService.RecordAdminMessage(ctx, created.ID, adminID, adminMsg.MessageID); err != nil {
			return err
		}
	}
	return nil
}

// HandleAccept - acceptOrder_<id>: pending -> accepted.
func (h *Handler) HandleAccept(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	return h.transitionFromCallback(ctx, cb,
		[]orders.Status{orders.StatusPending}, orders.StatusAccepted, false,
		func(order *orders.Order) (string, *tgbotapi.InlineKeyboardMarkup) {
			kb := messages.DeliverOrderKeyboard(order.ID)
			return messages.OrderCardMsg(order), &kb
		},
		nil,
	)
}

// HandleDeliver - deliverOrder_<id>: accepted -> delivering, курьером
// становится нажавший админ.
func (h *Handler) HandleDeliver(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	return h.transitionFromCallback(ctx, cb,
		[]orders.Status{orders.StatusAccepted}, orders.StatusDelivering, true,
		func(order *orders.Order) (string, *tgbotapi.InlineKeyboardMarkup) {
			kb := messages.OrderDeliveredKeyboard(order.ID)
			text := messages.OrderCardMsg(order) + "\n" + messages.OrderDeliveringMsg(cb.From.ID, cb.From.FirstName)
			return text, &kb
		},
		func(order *orders.Order) string {
			return messages.OrderDeliveringMsg(cb.From.ID, cb.From.FirstName)
		},
	)
}

// HandleDelivered - orderDelivered_<id>: delivering -> completed.
func (h *Handler) HandleDelivered(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	return h.transitionFromCallback(ctx, cb,
		[]orders.Status{orders.StatusDelivering}, orders.StatusCompleted, false,
		func(order *orders.Order) (string, *tgbotapi.InlineKeyboardMarkup) {
			text := messages.OrderCardMsg(order) + "\n" + messages.OrderCompletedMsg(cb.From.ID, cb.From.FirstName)
			return text, nil
		},
		func(order *orders.Order) string {
			return messages.OrderCompletedMsg(cb.From.ID, cb.From.FirstName)
		},
	)
}

// HandleDecline - declineOrder_<id>: pending|accepted -> cancelled,
// затем у нажавшего админа открывается ввод причины.
func (h *Handler) HandleDecline(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	adminID := cb.From.ID

	orderID, err := h.orderID(cb.Data, messages.CallbackDeclineOrder)
	if err != nil {
		return h.answer(cb.ID, messages.GenericError)
	}

	order, err := h.orderService.Transition(ctx, orderID,
		[]orders.Status{orders.StatusPending, orders.StatusAccepted}, orders.StatusCancelled, nil)
	if err != nil {
		return h.transitionError(cb, err)
	}

	clntMssgID := 0
	if order.ClntMssgID != nil {
		clntMssgID = *order.ClntMssgID
	}
	if err := h.stateManager.SetReason(ctx, adminID, &flows.ReasonData{
		OrderID:    order.ID,
		ClientID:   order.UserID,
		ClntMssgID: clntMssgID,
	}); err != nil {
		return err
	}

	if _, err := h.bot.Send(tgbotapi.NewMessage(adminID, messages.OrderReasonPrompt)); err != nil {
		h.logger.Warn("send reason prompt", "admin_id", adminID, "error", err)
	}
	return h.answer(cb.ID, "")
}

// HandleReason - текст причины от отклонившего админа: клиент получает
// ответ на своё сообщение о заказе, карточки у всего пула правятся.
func (h *Handler) HandleReason(ctx context.Context, update *tgbotapi.Update, data *flows.ReasonData) error {
	adminID := update.Message.Chat.ID
	reason := strings.TrimSpace(update.Message.Text)

	if err := h.orderService.SetReason(ctx, data.OrderID, reason); err != nil {
		return errors.Wrap(err, "set order reason")
	}

	clientMsg := tgbotapi.NewMessage(data.ClientID, messages.OrderDeclinedMsg(adminID, "", reason))
	clientMsg.ParseMode = tgbotapi.ModeHTML
	if data.ClntMssgID != 0 {
		clientMsg.ReplyToMessageID = data.ClntMssgID
	}
	if _, err := h.bot.Send(clientMsg); err != nil {
		h.logger.Warn("notify client about decline", "client_id", data.ClientID, "error", err)
	}

	adminText := messages.OrderIDMsg(data.OrderID) + " " +
		messages.OrderDeclinedMsg(adminID, update.Message.From.FirstName, reason)
	if err := h.editAdminMessages(ctx, data.OrderID, adminText, nil); err != nil {
		return err
	}

	return h.stateManager.DeleteReason(ctx, adminID)
}

type cardFunc func(order *orders.Order) (string, *tgbotapi.InlineKeyboardMarkup)

func (h *Handler) transitionFromCallback(
	ctx context.Context,
	cb *tgbotapi.CallbackQuery,
	allowed []orders.Status,
	next orders.Status,
	stampCourier bool,
	card cardFunc,
	clientNote func(order *orders.Order) string,
) error {
	orderID, err := h.orderID(cb.Data, prefixOf(next))
	if err != nil {
		return h.answer(cb.ID, messages.GenericError)
	}

	var courierID *int64
	if stampCourier {
		id := cb.From.ID
		courierID = &id
	}

	order, err := h.orderService.Transition(ctx, orderID, allowed, next, courierID)
	if err != nil {
		return h.transitionError(cb, err)
	}

	text, kb := card(order)
	if err := h.editAdminMessages(ctx, order.ID, text, kb); err != nil {
		return err
	}

	if clientNote != nil {
		note := tgbotapi.NewMessage(order.UserID, clientNote(order))
		note.ParseMode = tgbotapi.ModeHTML
		if order.ClntMssgID != nil {
			note.ReplyToMessageID = *order.ClntMssgID
		}
		if _, err := h.bot.Send(note); err != nil {
			h.logger.Warn("notify client about order status", "client_id", order.UserID, "error", err)
		}
	}
	return h.answer(cb.ID, "")
}

// editAdminMessages правит карточку заказа у каждого админа из пула по
// сохранённой паре admin_id -> message_id.
func (h *Handler) editAdminMessages(ctx context.Context, orderID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	adminMessages, err := h.orderService.AdminMessages(ctx, orderID)
	if err != nil {
		return err
	}

	for _, m := range adminMessages {
		var edit tgbotapi.EditMessageTextConfig
		if kb != nil {
			edit = tgbotapi.NewEditMessageTextAndMarkup(m.AdminID, m.MessageID, text, *kb)
		} else {
			edit = tgbotapi.NewEditMessageText(m.AdminID, m.MessageID, text)
		}
		edit.ParseMode = tgbotapi.ModeHTML
		if _, err := h.bot.Send(edit); err != nil {
			h.logger.Warn("edit order card", "admin_id", m.AdminID, "order_id", orderID, "error", err)
		}
	}
	return nil
}

func (h *Handler) transitionError(cb *tgbotapi.CallbackQuery, err error) error {
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return h.answer(cb.ID, messages.OrderNotFound)
	case errors.Is(err, orders.ErrInvalidTransition):
		return h.answer(cb.ID, messages.OrderStatusInvalid)
	}
	return err
}

func (h *Handler) orderID(data, prefix string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
}

func prefixOf(next orders.Status) string {
	switch next {
	case orders.StatusAccepted:
		return messages.CallbackAcceptOrder
	case orders.StatusDelivering:
		return messages.CallbackDeliverOrder
	case orders.StatusCompleted:
		return messages.CallbackOrderDelivered
	}
	return ""
}

func (h *Handler) answer(callbackID, text string) error {
	_, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}
