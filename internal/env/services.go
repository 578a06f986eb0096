package environment

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"yyldyz-bot/internal/config"
	"yyldyz-bot/internal/localization"
	"yyldyz-bot/internal/storage"
	"yyldyz-bot/internal/stories/chat"
	"yyldyz-bot/internal/stories/ledger"
	"yyldyz-bot/internal/stories/orders"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram"
	"yyldyz-bot/internal/telegram/cmds"
	"yyldyz-bot/internal/telegram/flows/adminchat"
	"yyldyz-bot/internal/telegram/flows/broadcast"
	"yyldyz-bot/internal/telegram/flows/check"
	"yyldyz-bot/internal/telegram/flows/order"
	"yyldyz-bot/internal/telegram/flows/signup"
	"yyldyz-bot/internal/telegram/flows/sumadd"
	"yyldyz-bot/internal/telegram/flows/transfer"
	"yyldyz-bot/internal/telegram/states"
	"yyldyz-bot/internal/workers/pendingdigest"
)

type Services struct {
	TelegramRouter *telegram.Router
	AdminRegistry  *telegram.AdminRegistry
	OrderService   *orders.Service
	Localizer      *localization.Service
	DigestWorker   *pendingdigest.Worker
}

func newServices(ctx context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	var s Services

	if clients.TelegramBot == nil {
		return nil, errors.New("telegram bot не инициализирован")
	}

	storageImpl := storage.New(clients.SQLiteDB.DB)

	// Сервисы доменных историй
	userService := users.NewService(storageImpl)
	adminService := users.NewAdminService(storageImpl)
	ledgerService := ledger.NewService(storageImpl)
	orderService := orders.NewService(storageImpl)
	chatService := chat.NewService(storageImpl)
	s.OrderService = orderService

	// Записи допущенных админов заводятся при старте
	adminRegistry := telegram.NewAdminRegistry(&cfg.Telegram)
	s.AdminRegistry = adminRegistry
	for _, adminID := range adminRegistry.AdminIDs() {
		if _, err := adminService.EnsureAdmin(ctx, adminID); err != nil {
			return nil, errors.Wrapf(err, "ensure admin %d", adminID)
		}
	}

	localizer, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "init localizer")
	}
	s.Localizer = localizer

	stateManager := states.NewManager(storageImpl, storageImpl)

	bot := clients.TelegramBot

	sumAddHandler := sumadd.NewHandler(bot, stateManager, userService, ledgerService, logger)
	transferHandler := transfer.NewHandler(bot, stateManager, userService, ledgerService, logger)
	checkHandler := check.NewHandler(bot, stateManager, userService, logger)
	signupHandler := signup.NewHandler(bot, stateManager, adminService, logger)
	broadcastHandler := broadcast.NewHandler(bot, stateManager, userService, logger)
	chatHandler := adminchat.NewHandler(bot, chatService, stateManager, userService, adminRegistry, logger)
	orderHandler := order.NewHandler(bot, orderService, userService, stateManager, adminRegistry, logger)

	startCommand := cmds.NewStartCommand(bot, userService)
	balanceCommand := cmds.NewBalanceCommand(bot, userService)
	shopCommand := cmds.NewShopCommand(bot, cfg.Telegram.MiniAppURL)
	onOffCommand := cmds.NewOnOffCommand(bot, adminService)

	s.TelegramRouter = telegram.NewRouter(
		bot,
		stateManager,
		adminRegistry,
		cfg.Telegram.EditSumCommand,
		sumAddHandler,
		transferHandler,
		checkHandler,
		signupHandler,
		broadcastHandler,
		chatHandler,
		orderHandler,
		startCommand,
		balanceCommand,
		shopCommand,
		onOffCommand,
		logger,
	)

	s.DigestWorker = pendingdigest.NewWorker(
		storageImpl,
		bot,
		localizer,
		adminRegistry,
		cfg.Digest.Schedule,
		logger.WithGroup("pendingdigest"),
	)

	return &s, nil
}
