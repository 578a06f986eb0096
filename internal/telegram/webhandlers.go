package telegram

import (
	"context"
	"embed"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:embed templates/*
var templatesFS embed.FS

// IndexHandler отдаёт статическую страницу на корне. Телеграм сюда не
// ходит, это витрина для живых посетителей.
func IndexHandler() http.HandlerFunc {
	page, err := templatesFS.ReadFile("templates/index.html")
	if err != nil {
		panic(err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

type updateRouter interface {
	Route(ctx context.Context, update *tgbotapi.Update) error
}

// WebhookHandler принимает POST от Телеграма на секретном пути и отдаёт
// апдейт роутеру. Ошибки обработчиков не транслируются в HTTP-статус:
// ретраи Телеграма по 5xx здесь только множат дубли.
func WebhookHandler(router updateRouter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic in webhook handler", "panic", rec)
				w.WriteHeader(http.StatusOK)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			logger.Warn("decode webhook update", "error", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := router.Route(r.Context(), &update); err != nil {
			logger.Error("route update", "update_id", update.UpdateID, "error", err)
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
