package telegram

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/telegram/messages"
	"yyldyz-bot/internal/telegram/states"
)

type fakeBot struct {
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeStateManager struct {
	flow *states.ActiveFlow
}

func (f *fakeStateManager) Resolve(_ context.Context, _ int64) (*states.ActiveFlow, error) {
	if f.flow == nil {
		return &states.ActiveFlow{Kind: states.KindNone}, nil
	}
	return f.flow, nil
}

func (f *fakeStateManager) Delete(_ context.Context, _ int64, _ states.Kind) error {
	return nil
}

type fakeAdmins struct {
	ids []int64
}

func (f *fakeAdmins) IsAdmin(telegramID int64) bool {
	for _, id := range f.ids {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (f *fakeAdmins) AdminIDs() []int64 {
	return f.ids
}

func newTestRouter(bot *fakeBot, sm *fakeStateManager, admins *fakeAdmins) *Router {
	return NewRouter(bot, sm, admins, "edit",
		nil, nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil,
		discardLogger())
}

func privateMessage(userID int64, text string) *tgbotapi.Update {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}
	if strings.HasPrefix(text, "/") {
		end := len(text)
		if i := strings.IndexAny(text, " @"); i > 0 {
			end = i
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return &tgbotapi.Update{UpdateID: 1, Message: msg}
}

func TestRouteUnknownText(t *testing.T) {
	bot := &fakeBot{}
	r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{})

	if err := r.Route(context.Background(), privateMessage(10, "salam")); err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(bot.sent))
	}
	if bot.sent[0].Text != messages.UnknownMessage {
		t.Errorf("fallback text = %q, want unknown message hint", bot.sent[0].Text)
	}
}

func TestRouteGroupMessageIgnored(t *testing.T) {
	bot := &fakeBot{}
	r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{})

	update := &tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 10},
			Chat: &tgbotapi.Chat{ID: -100200},
			Text: "salam",
		},
	}
	if err := r.Route(context.Background(), update); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if len(bot.sent) != 0 {
		t.Errorf("sent %d messages for group chat, want 0", len(bot.sent))
	}
}

func TestRouteUnknownCommand(t *testing.T) {
	bot := &fakeBot{}
	r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{})

	if err := r.Route(context.Background(), privateMessage(10, "/whatever")); err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(bot.sent))
	}
	if bot.sent[0].Text != messages.UnknownCommand {
		t.Errorf("response = %q, want unknown command hint", bot.sent[0].Text)
	}
}

func TestAdminCommandDeniedAndReported(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{name: "check", command: "/check"},
		{name: "edit sum", command: "/edit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := &fakeBot{}
			r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{ids: []int64{1, 2}})

			if err := r.Route(context.Background(), privateMessage(10, tt.command)); err != nil {
				t.Fatalf("Route() error = %v", err)
			}

			// Два сигнала пулу плюс отказ чужаку
			if len(bot.sent) != 3 {
				t.Fatalf("sent %d messages, want 3", len(bot.sent))
			}
			for _, m := range bot.sent[:2] {
				if !strings.Contains(m.Text, tt.command) {
					t.Errorf("pool report %q does not name command %q", m.Text, tt.command)
				}
				if !strings.Contains(m.Text, "ID: 10") {
					t.Errorf("pool report %q does not name the caller", m.Text)
				}
			}
			last := bot.sent[2]
			if last.ChatID != 10 || last.Text != messages.NotAdmin {
				t.Errorf("denial = chat %d text %q, want NotAdmin to caller", last.ChatID, last.Text)
			}
		})
	}
}

func TestAdminOnlyCommandsSilentlyIgnored(t *testing.T) {
	for _, command := range []string{"/signup", "/broadcast", "/on", "/of"} {
		t.Run(command, func(t *testing.T) {
			bot := &fakeBot{}
			r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{ids: []int64{1}})

			if err := r.Route(context.Background(), privateMessage(10, command)); err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if len(bot.sent) != 0 {
				t.Errorf("sent %d messages for %s from non-admin, want 0", len(bot.sent), command)
			}
		})
	}
}

func TestRouteCallbackNoop(t *testing.T) {
	bot := &fakeBot{}
	r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{})

	update := &tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			From: &tgbotapi.User{ID: 10},
			Data: messages.CallbackNoop,
		},
	}
	if err := r.Route(context.Background(), update); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if len(bot.requests) != 1 {
		t.Errorf("answered %d callbacks, want 1", len(bot.requests))
	}
}

func TestOrderCallbackRequiresAdmin(t *testing.T) {
	bot := &fakeBot{}
	r := newTestRouter(bot, &fakeStateManager{}, &fakeAdmins{ids: []int64{1}})

	update := &tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-2",
			From: &tgbotapi.User{ID: 10},
			Data: messages.CallbackAcceptOrder + "5",
		},
	}
	// Не-админ получает только ответ на колбек, обработчик не дёргается
	if err := r.Route(context.Background(), update); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if len(bot.requests) != 1 {
		t.Errorf("answered %d callbacks, want 1", len(bot.requests))
	}
	if len(bot.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(bot.sent))
	}
}
