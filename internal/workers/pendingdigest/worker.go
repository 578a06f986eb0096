package pendingdigest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/orders"
)

// Worker sends a daily digest of stuck pending orders to the admin pool.
type Worker struct {
	storage   Storage
	bot       TelegramBot
	localizer Localizer
	admins    AdminRegistry
	schedule  string
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewWorker creates a new pending digest worker
func NewWorker(
	storage Storage,
	bot TelegramBot,
	localizer Localizer,
	admins AdminRegistry,
	schedule string,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		storage:   storage,
		bot:       bot,
		localizer: localizer,
		admins:    admins,
		schedule:  schedule,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Name returns the worker name
func (w *Worker) Name() string {
	return "pendingdigest"
}

// Start starts the digest worker
func (w *Worker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		ctx := context.Background()
		w.logger.Info("Running pending digest worker")
		if err := w.run(ctx); err != nil {
			w.logger.Error("Pending digest worker failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pending digest worker: %w", err)
	}

	w.cron.Start()
	return nil
}

// Stop stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping pending digest worker")
	w.cron.Stop()
}

func (w *Worker) run(ctx context.Context) error {
	pending := orders.StatusPending
	list, err := w.storage.ListOrders(ctx, orders.ListCriteria{Status: &pending})
	if err != nil {
		return fmt.Errorf("list pending orders: %w", err)
	}

	text := w.render(list)
	for _, adminID := range w.admins.AdminIDs() {
		if _, err := w.bot.Send(tgbotapi.NewMessage(adminID, text)); err != nil {
			w.logger.Warn("send pending digest", "admin_id", adminID, "error", err)
		}
	}

	w.logger.Info("Pending digest sent", "pending_count", len(list))
	return nil
}

func (w *Worker) render(list []*orders.Order) string {
	if len(list) == 0 {
		return w.localizer.Get("", "digest.empty", nil)
	}

	var b strings.Builder
	b.WriteString(w.localizer.Get("", "digest.title", map[string]interface{}{"count": len(list)}))
	for _, o := range list {
		b.WriteString("\n")
		b.WriteString(w.localizer.Get("", "digest.line", map[string]interface{}{
			"id":      o.ID,
			"user_id": o.UserID,
			"payment": string(o.Payment),
		}))
	}
	b.WriteString("\n")
	b.WriteString(w.localizer.Get("", "digest.footer", nil))
	return b.String()
}
