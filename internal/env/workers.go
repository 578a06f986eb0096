package environment

import (
	"log/slog"

	"yyldyz-bot/internal/workers"
)

func newWorkers(services *Services, logger *slog.Logger) *workers.Manager {
	return workers.NewManager(logger.WithGroup("workers"), services.DigestWorker)
}
