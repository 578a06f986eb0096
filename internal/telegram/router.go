package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/telegram/cmds"
	"yyldyz-bot/internal/telegram/flows/adminchat"
	"yyldyz-bot/internal/telegram/flows/broadcast"
	"yyldyz-bot/internal/telegram/flows/check"
	"yyldyz-bot/internal/telegram/flows/order"
	"yyldyz-bot/internal/telegram/flows/signup"
	"yyldyz-bot/internal/telegram/flows/sumadd"
	"yyldyz-bot/internal/telegram/flows/transfer"
	"yyldyz-bot/internal/telegram/messages"
	"yyldyz-bot/internal/telegram/states"
)

// Router решает, кому принадлежит входящее сообщение. Сначала активный
// флоу пользователя (порядок приоритета в states.Manager), затем таблица
// команд, затем кнопки главной клавиатуры, затем fallback.
type Router struct {
	bot          botApi
	stateManager stateManager
	admins       adminRegistry
	logger       *slog.Logger

	editSumCommand string

	// Handlers
	sumAddHandler    *sumadd.Handler
	transferHandler  *transfer.Handler
	checkHandler     *check.Handler
	signupHandler    *signup.Handler
	broadcastHandler *broadcast.Handler
	chatHandler      *adminchat.Handler
	orderHandler     *order.Handler
	startCommand     *cmds.StartCommand
	balanceCommand   *cmds.BalanceCommand
	shopCommand      *cmds.ShopCommand
	onOffCommand     *cmds.OnOffCommand
}

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type stateManager interface {
	Resolve(ctx context.Context, userID int64) (*states.ActiveFlow, error)
	Delete(ctx context.Context, userID int64, kind states.Kind) error
}

type adminRegistry interface {
	IsAdmin(telegramID int64) bool
	AdminIDs() []int64
}

func NewRouter(
	bot botApi,
	stateManager stateManager,
	admins adminRegistry,
	editSumCommand string,
	sumAddHandler *sumadd.Handler,
	transferHandler *transfer.Handler,
	checkHandler *check.Handler,
	signupHandler *signup.Handler,
	broadcastHandler *broadcast.Handler,
	chatHandler *adminchat.Handler,
	orderHandler *order.Handler,
	startCommand *cmds.StartCommand,
	balanceCommand *cmds.BalanceCommand,
	shopCommand *cmds.ShopCommand,
	onOffCommand *cmds.OnOffCommand,
	logger *slog.Logger,
) *Router {
	return &Router{
		bot:              bot,
		stateManager:     stateManager,
		admins:           admins,
		logger:           logger,
		editSumCommand:   editSumCommand,
		sumAddHandler:    sumAddHandler,
		transferHandler:  transferHandler,
		checkHandler:     checkHandler,
		signupHandler:    signupHandler,
		broadcastHandler: broadcastHandler,
		chatHandler:      chatHandler,
		orderHandler:     orderHandler,
		startCommand:     startCommand,
		balanceCommand:   balanceCommand,
		shopCommand:      shopCommand,
		onOffCommand:     onOffCommand,
	}
}

func (r *Router) Route(ctx context.Context, update *tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		updatesTotal.WithLabelValues("callback").Inc()
		if err := r.routeCallback(ctx, update); err != nil {
			routeErrorsTotal.WithLabelValues("callback").Inc()
			return err
		}
		return nil
	case update.Message != nil:
		updatesTotal.WithLabelValues("message").Inc()
		if err := r.routeMessage(ctx, update); err != nil {
			routeErrorsTotal.WithLabelValues("message").Inc()
			return err
		}
		return nil
	}
	updatesTotal.WithLabelValues("other").Inc()
	return nil
}

func (r *Router) routeMessage(ctx context.Context, update *tgbotapi.Update) error {
	msg := update.Message
	if msg.From == nil || msg.Chat == nil {
		return nil
	}
	// Только личка
	if msg.Chat.ID != msg.From.ID {
		return nil
	}
	userID := msg.From.ID

	// Заявка из мини-аппа магазина
	if msg.WebAppData != nil {
		return r.orderHandler.HandleWebAppData(ctx, userID, msg.WebAppData.Data)
	}

	flow, err := r.stateManager.Resolve(ctx, userID)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(msg.Text)

	switch flow.Kind {
	case states.KindReason:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		return r.orderHandler.HandleReason(ctx, update, flow.Reason)
	case states.KindSumAdd:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		return r.sumAddHandler.HandleText(ctx, update, flow.SumAdd)
	case states.KindTransfer:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		return r.transferHandler.HandleText(ctx, update, flow.Transfer)
	case states.KindCheck:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		return r.checkHandler.HandleText(ctx, update, flow.Check)
	case states.KindChatCalling:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		if text == "/stop" {
			return r.chatHandler.HandleStop(ctx, userID)
		}
		return r.chatHandler.HandleCallText(ctx, update)
	case states.KindChatPaired:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		if text == "/stop" {
			return r.chatHandler.HandleStop(ctx, userID)
		}
		return r.chatHandler.Relay(ctx, update, flow.Chat)
	case states.KindSignup:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		return r.signupHandler.HandleText(ctx, update, flow.Signup)
	case states.KindBroadcast:
		activeFlowsTotal.WithLabelValues(string(flow.Kind)).Inc()
		return r.broadcastHandler.HandleText(ctx, update, flow.Broadcast)
	}

	if msg.IsCommand() {
		return r.routeCommand(ctx, update)
	}

	switch text {
	case messages.ButtonShop:
		return r.shopCommand.Execute(ctx, userID)
	case messages.ButtonBalance:
		return r.balanceCommand.Execute(ctx, userID)
	case messages.ButtonCallAdmin:
		return r.chatHandler.Request(ctx, userID)
	}

	_, err = r.bot.Send(tgbotapi.NewMessage(userID, messages.UnknownMessage))
	return err
}

func (r *Router) routeCommand(ctx context.Context, update *tgbotapi.Update) error {
	msg := update.Message
	userID := msg.From.ID
	command := msg.Command()

	switch command {
	case "start":
		return r.startCommand.Execute(ctx, userID, msg.Text)
	case "signup":
		if !r.admins.IsAdmin(userID) {
			return nil
		}
		return r.signupHandler.Start(ctx, userID)
	case "broadcast":
		if !r.admins.IsAdmin(userID) {
			return nil
		}
		return r.broadcastHandler.Start(ctx, userID)
	case "cagyr":
		return r.chatHandler.HandleCall(ctx, userID)
	case "stop":
		return r.chatHandler.HandleStop(ctx, userID)
	case "on":
		if !r.admins.IsAdmin(userID) {
			return nil
		}
		return r.onOffCommand.Execute(ctx, userID, true)
	case "of":
		if !r.admins.IsAdmin(userID) {
			return nil
		}
		return r.onOffCommand.Execute(ctx, userID, false)
	case "check":
		if !r.admins.IsAdmin(userID) {
			return r.denyAndReport(ctx, userID, "/check")
		}
		return r.checkHandler.Start(ctx, userID)
	case r.editSumCommand:
		if !r.admins.IsAdmin(userID) {
			return r.denyAndReport(ctx, userID, "/"+r.editSumCommand)
		}
		return r.sumAddHandler.Start(ctx, userID)
	case "0804":
		return r.transferHandler.Start(ctx, userID)
	case "test":
		// Проверка связи: три статусные иконки
		msg := tgbotapi.NewMessage(userID, messages.IconYes+" \n "+messages.IconNo+" \n "+messages.IconStop)
		msg.ParseMode = tgbotapi.ModeHTML
		_, err := r.bot.Send(msg)
		return err
	}

	_, err := r.bot.Send(tgbotapi.NewMessage(userID, messages.UnknownCommand))
	return err
}

func (r *Router) routeCallback(ctx context.Context, update *tgbotapi.Update) error {
	cb := update.CallbackQuery
	data := cb.Data
	if data == "" {
		return r.answer(cb.ID)
	}

	switch {
	case strings.HasPrefix(data, messages.CallbackAcceptChat):
		if !r.admins.IsAdmin(cb.From.ID) {
			return r.answer(cb.ID)
		}
		return r.chatHandler.HandleAccept(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackAcceptOrder):
		if !r.admins.IsAdmin(cb.From.ID) {
			return r.answer(cb.ID)
		}
		return r.orderHandler.HandleAccept(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackDeclineOrder):
		if !r.admins.IsAdmin(cb.From.ID) {
			return r.answer(cb.ID)
		}
		return r.orderHandler.HandleDecline(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackDeliverOrder):
		if !r.admins.IsAdmin(cb.From.ID) {
			return r.answer(cb.ID)
		}
		return r.orderHandler.HandleDeliver(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackOrderDelivered):
		if !r.admins.IsAdmin(cb.From.ID) {
			return r.answer(cb.ID)
		}
		return r.orderHandler.HandleDelivered(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackChooseCurrency):
		return r.sumAddHandler.HandleChooseCurrency(ctx, cb)
	case data == messages.CallbackCompleteAdd:
		return r.sumAddHandler.HandleComplete(ctx, cb)
	case data == messages.CallbackDeclineAdd:
		return r.sumAddHandler.HandleDecline(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackSelectCurrency):
		return r.transferHandler.HandleSelectCurrency(ctx, cb)
	case data == messages.CallbackCompleteTransfer:
		return r.transferHandler.HandleComplete(ctx, cb)
	case data == messages.CallbackDeclineTransfer:
		return r.transferHandler.HandleDecline(ctx, cb)
	case data == messages.CallbackDeclineCheck:
		return r.checkHandler.HandleDecline(ctx, cb)
	case strings.HasPrefix(data, messages.CallbackCancelBroadcast):
		return r.broadcastHandler.HandleCancel(ctx, cb)
	case data == messages.CallbackNoop:
		return r.answer(cb.ID)
	}

	r.logger.Warn("unknown callback", "data", data, "from", cb.From.ID)
	return r.answer(cb.ID)
}

// denyAndReport отвечает отказом и сигналит пулу о попытке чужака
// дёрнуть админ-команду.
func (r *Router) denyAndReport(ctx context.Context, userID int64, command string) error {
	for _, adminID := range r.admins.AdminIDs() {
		if _, err := r.bot.Send(tgbotapi.NewMessage(adminID, messages.SuspiciousCaseMsg(messages.NotAdmin, command, userID))); err != nil {
			r.logger.Warn("report suspicious command", "admin_id", adminID, "error", err)
		}
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(userID, messages.NotAdmin))
	return err
}

func (r *Router) answer(callbackID string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}
