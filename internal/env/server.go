package environment

import (
	"context"
	"log/slog"
	"net/http"

	"yyldyz-bot/internal/config"
	"yyldyz-bot/internal/telegram"
)

type Servers struct {
	HTTP struct {
		Observability *http.Server
		API           *http.Server
	}
}

func newServers(ctx context.Context, cfg config.Config, logger *slog.Logger, clients *Clients, services *Services) *Servers {
	var servers Servers

	mux := http.NewServeMux()
	mux.HandleFunc("/", telegram.IndexHandler())
	mux.HandleFunc(cfg.Telegram.WebhookPath, telegram.WebhookHandler(services.TelegramRouter, logger.WithGroup("webhook")))

	servers.HTTP.API = &http.Server{
		Handler:           mux,
		Addr:              cfg.API.ADDR(),
		ReadTimeout:       cfg.API.ReadTimeout,
		WriteTimeout:      cfg.API.WriteTimeout,
		IdleTimeout:       cfg.API.IdleTimeout,
		ReadHeaderTimeout: cfg.API.ReadTimeout,
	}
	servers.HTTP.Observability = initObservability(ctx, logger.WithGroup("http"), clients, cfg)

	return &servers
}
