package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeUpdateRouter struct {
	updates []*tgbotapi.Update
	err     error
}

func (f *fakeUpdateRouter) Route(_ context.Context, update *tgbotapi.Update) error {
	f.updates = append(f.updates, update)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebhookHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		body        string
		routerErr   error
		wantStatus  int
		wantUpdates int
	}{
		{
			name:        "valid update routed",
			method:      http.MethodPost,
			body:        `{"update_id":123}`,
			wantStatus:  http.StatusOK,
			wantUpdates: 1,
		},
		{
			name:       "get rejected",
			method:     http.MethodGet,
			body:       "",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "broken json rejected",
			method:     http.MethodPost,
			body:       `{"update_id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "handler error still returns 200",
			method:      http.MethodPost,
			body:        `{"update_id":124}`,
			routerErr:   errors.New("boom"),
			wantStatus:  http.StatusOK,
			wantUpdates: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := &fakeUpdateRouter{err: tt.routerErr}
			handler := WebhookHandler(router, discardLogger())

			req := httptest.NewRequest(tt.method, "/teststore", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if len(router.updates) != tt.wantUpdates {
				t.Errorf("routed %d updates, want %d", len(router.updates), tt.wantUpdates)
			}
		})
	}
}

func TestIndexHandler(t *testing.T) {
	handler := IndexHandler()

	t.Run("root serves page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("content type = %q, want text/html", ct)
		}
		if !strings.Contains(rec.Body.String(), "Ýyldyz") {
			t.Errorf("page body does not mention the store")
		}
	})

	t.Run("other paths are 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
