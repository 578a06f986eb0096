package order

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/orders"
	"yyldyz-bot/internal/telegram/flows"
)

type fakeBot struct {
	sent  []tgbotapi.MessageConfig
	edits []tgbotapi.EditMessageTextConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch msg := c.(type) {
	case tgbotapi.MessageConfig:
		f.sent = append(f.sent, msg)
	case tgbotapi.EditMessageTextConfig:
		f.edits = append(f.edits, msg)
	}
	return tgbotapi.Message{MessageID: 1}, nil
}

func (f *fakeBot) Request(_ tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeOrderService struct {
	order         *orders.Order
	reasons       map[int64]string
	adminMessages []*orders.AdminMessage
}

func (f *fakeOrderService) CreateOrder(_ context.Context, order orders.Order) (*orders.Order, error) {
	order.ID = 42
	order.Status = orders.StatusPending
	f.order = &order
	return f.order, nil
}

func (f *fakeOrderService) Transition(_ context.Context, _ int64, _ []orders.Status, next orders.Status, courierID *int64) (*orders.Order, error) {
	f.order.Status = next
	if courierID != nil {
		f.order.CourierID = courierID
	}
	return f.order, nil
}

func (f *fakeOrderService) SetReason(_ context.Context, id int64, reason string) error {
	if f.reasons == nil {
		f.reasons = map[int64]string{}
	}
	f.reasons[id] = reason
	return nil
}

func (f *fakeOrderService) SetClientMessageID(_ context.Context, _ int64, messageID int) error {
	f.order.ClntMssgID = &messageID
	return nil
}

func (f *fakeOrderService) RecordAdminMessage(_ context.Context, orderID, adminID int64, messageID int) error {
	f.adminMessages = append(f.adminMessages, &orders.AdminMessage{OrderID: orderID, AdminID: adminID, MessageID: messageID})
	return nil
}

func (f *fakeOrderService) AdminMessages(_ context.Context, _ int64) ([]*orders.AdminMessage, error) {
	return f.adminMessages, nil
}

type fakeStateManager struct {
	reasonOwner int64
	reason      *flows.ReasonData
	deleted     bool
}

func (f *fakeStateManager) SetReason(_ context.Context, userID int64, data *flows.ReasonData) error {
	f.reasonOwner = userID
	f.reason = data
	return nil
}

func (f *fakeStateManager) DeleteReason(_ context.Context, _ int64) error {
	f.reason = nil
	f.deleted = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func update(chatID int64, text string) *tgbotapi.Update {
	return &tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: chatID, FirstName: "Kerim"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}}
}

func TestHandleDeclineOpensReason(t *testing.T) {
	bot := &fakeBot{}
	clntMssgID := 33
	os := &fakeOrderService{order: &orders.Order{
		ID:         42,
		Status:     orders.StatusPending,
		UserID:     7,
		ClntMssgID: &clntMssgID,
	}}
	sm := &fakeStateManager{}
	h := NewHandler(bot, os, nil, sm, nil, discardLogger())

	cb := &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: 10},
		Data: "declineOrder_42",
	}
	if err := h.HandleDecline(context.Background(), cb); err != nil {
		t.Fatalf("HandleDecline() error = %v", err)
	}

	if os.order.Status != orders.StatusCancelled {
		t.Errorf("order status = %v, want cancelled", os.order.Status)
	}
	if sm.reasonOwner != 10 {
		t.Errorf("reason state owner = %d, want declining admin 10", sm.reasonOwner)
	}
	if sm.reason == nil || sm.reason.OrderID != 42 || sm.reason.ClientID != 7 || sm.reason.ClntMssgID != 33 {
		t.Errorf("reason state = %+v, want order 42 client 7 message 33", sm.reason)
	}
	if len(bot.sent) != 1 || bot.sent[0].ChatID != 10 {
		t.Fatalf("sent = %+v, want one reason prompt to admin 10", bot.sent)
	}
}

func TestHandleReason(t *testing.T) {
	bot := &fakeBot{}
	os := &fakeOrderService{
		adminMessages: []*orders.AdminMessage{
			{OrderID: 42, AdminID: 10, MessageID: 100},
			{OrderID: 42, AdminID: 11, MessageID: 101},
		},
	}
	sm := &fakeStateManager{}
	h := NewHandler(bot, os, nil, sm, nil, discardLogger())

	data := &flows.ReasonData{OrderID: 42, ClientID: 7, ClntMssgID: 33}
	if err := h.HandleReason(context.Background(), update(10, " haryt gutardy "), data); err != nil {
		t.Fatalf("HandleReason() error = %v", err)
	}

	if got := os.reasons[42]; got != "haryt gutardy" {
		t.Errorf("stored reason = %q, want trimmed text", got)
	}

	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages, want 1 client notice", len(bot.sent))
	}
	notice := bot.sent[0]
	if notice.ChatID != 7 {
		t.Errorf("notice.ChatID = %d, want client 7", notice.ChatID)
	}
	if notice.ReplyToMessageID != 33 {
		t.Errorf("notice.ReplyToMessageID = %d, want 33", notice.ReplyToMessageID)
	}
	if !strings.Contains(notice.Text, "haryt gutardy") {
		t.Errorf("notice.Text = %q, want the reason inside", notice.Text)
	}

	if len(bot.edits) != 2 {
		t.Fatalf("edited %d messages, want one per admin", len(bot.edits))
	}
	wantEdits := map[int64]int{10: 100, 11: 101}
	for _, edit := range bot.edits {
		if wantEdits[edit.ChatID] != edit.MessageID {
			t.Errorf("edited %d/%d, want %d/%d", edit.ChatID, edit.MessageID, edit.ChatID, wantEdits[edit.ChatID])
		}
		if !strings.Contains(edit.Text, "haryt gutardy") {
			t.Errorf("edit.Text = %q, want the reason inside", edit.Text)
		}
	}

	if !sm.deleted {
		t.Error("reason state should be deleted after handling")
	}
}

func TestHandleReasonWithoutClientMessage(t *testing.T) {
	bot := &fakeBot{}
	os := &fakeOrderService{}
	sm := &fakeStateManager{}
	h := NewHandler(bot, os, nil, sm, nil, discardLogger())

	data := &flows.ReasonData{OrderID: 42, ClientID: 7}
	if err := h.HandleReason(context.Background(), update(10, "ýalňyş salgy"), data); err != nil {
		t.Fatalf("HandleReason() error = %v", err)
	}

	if len(bot.sent) != 1 || bot.sent[0].ReplyToMessageID != 0 {
		t.Fatalf("sent = %+v, want plain notice without reply", bot.sent)
	}
}
