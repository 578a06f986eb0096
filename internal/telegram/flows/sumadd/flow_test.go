package sumadd

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yyldyz-bot/internal/stories/ledger"
	"yyldyz-bot/internal/stories/users"
	"yyldyz-bot/internal/telegram/flows"
	"yyldyz-bot/internal/telegram/messages"
)

type fakeBot struct {
	texts []string
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch msg := c.(type) {
	case tgbotapi.MessageConfig:
		f.texts = append(f.texts, msg.Text)
	case tgbotapi.EditMessageTextConfig:
		f.texts = append(f.texts, msg.Text)
	}
	return tgbotapi.Message{MessageID: 1}, nil
}

func (f *fakeBot) Request(_ tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeStateManager struct {
	data    *flows.SumAddData
	deleted bool
}

func (f *fakeStateManager) GetSumAdd(_ context.Context, _ int64) (*flows.SumAddData, error) {
	return f.data, nil
}

func (f *fakeStateManager) SetSumAdd(_ context.Context, _ int64, data *flows.SumAddData) error {
	f.data = data
	return nil
}

func (f *fakeStateManager) DeleteSumAdd(_ context.Context, _ int64) error {
	f.data = nil
	f.deleted = true
	return nil
}

type fakeUserService struct {
	user *users.User
}

func (f *fakeUserService) ResolveAccount(_ context.Context, _ string) (*users.User, error) {
	if f.user == nil {
		return nil, users.ErrUserNotFound
	}
	return f.user, nil
}

type fakeLedgerService struct {
	applied []float64
}

func (f *fakeLedgerService) ApplySumUpdate(_ context.Context, _, _ int64, _ ledger.Currency, sum float64) (*ledger.SummUpdate, error) {
	f.applied = append(f.applied, sum)
	return &ledger.SummUpdate{Sum: sum}, nil
}

func update(userID int64, text string) *tgbotapi.Update {
	return &tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}}
}

func newTestHandler(bot *fakeBot, sm *fakeStateManager, us *fakeUserService, ls *fakeLedgerService) *Handler {
	return NewHandler(bot, sm, us, ls, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleAccountInput(t *testing.T) {
	t.Run("known account advances to currency step", func(t *testing.T) {
		bot := &fakeBot{}
		sm := &fakeStateManager{data: &flows.SumAddData{MssgID: 5}}
		us := &fakeUserService{user: &users.User{ID: 100, WalNum: "A1B2C3D4"}}
		h := newTestHandler(bot, sm, us, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "A1B2C3D4"), sm.data); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}

		if sm.data == nil || sm.data.WalNum != "A1B2C3D4" || sm.data.ClientID != 100 {
			t.Errorf("state = %+v, want resolved client", sm.data)
		}
		if len(bot.texts) != 1 || !strings.Contains(bot.texts[0], "Walýuta") {
			t.Errorf("sent %v, want currency prompt", bot.texts)
		}
	})

	t.Run("unknown account aborts flow", func(t *testing.T) {
		bot := &fakeBot{}
		sm := &fakeStateManager{data: &flows.SumAddData{MssgID: 5}}
		h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "ZZZZZZZZ"), &flows.SumAddData{MssgID: 5}); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}

		if !sm.deleted {
			t.Error("state not deleted after unknown account")
		}
		if len(bot.texts) != 1 || bot.texts[0] != messages.SumAddNotFound {
			t.Errorf("sent %v, want not-found notice", bot.texts)
		}
	})
}

func TestHandleAmountInput(t *testing.T) {
	base := flows.SumAddData{MssgID: 5, WalNum: "A1B2C3D4", ClientID: 100, Currency: ledger.CurrencyTMT}

	t.Run("valid amount advances to confirmation", func(t *testing.T) {
		bot := &fakeBot{}
		data := base
		sm := &fakeStateManager{data: &data}
		h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "50"), sm.data); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}

		if sm.data.Sum != 50 {
			t.Errorf("state sum = %v, want 50", sm.data.Sum)
		}
	})

	t.Run("negative amount is a debit", func(t *testing.T) {
		bot := &fakeBot{}
		data := base
		sm := &fakeStateManager{data: &data}
		h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "-30"), sm.data); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}
		if sm.data.Sum != -30 {
			t.Errorf("state sum = %v, want -30", sm.data.Sum)
		}
	})

	t.Run("non numeric input aborts flow", func(t *testing.T) {
		bot := &fakeBot{}
		data := base
		sm := &fakeStateManager{data: &data}
		h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "elli manat"), sm.data); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}

		if !sm.deleted {
			t.Error("state not deleted after bad amount")
		}
		if len(bot.texts) != 1 || bot.texts[0] != messages.SumAddBadAmount {
			t.Errorf("sent %v, want bad amount notice", bot.texts)
		}
	})

	t.Run("zero aborts flow", func(t *testing.T) {
		bot := &fakeBot{}
		data := base
		sm := &fakeStateManager{data: &data}
		h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "0"), sm.data); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}
		if !sm.deleted {
			t.Error("state not deleted after zero amount")
		}
	})

	t.Run("amount before currency re-asks", func(t *testing.T) {
		bot := &fakeBot{}
		data := base
		data.Currency = ""
		sm := &fakeStateManager{data: &data}
		h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

		if err := h.HandleText(context.Background(), update(1, "50"), sm.data); err != nil {
			t.Fatalf("HandleText() error = %v", err)
		}

		if sm.deleted {
			t.Error("state deleted, want kept until currency chosen")
		}
		if len(bot.texts) != 1 || bot.texts[0] != messages.ChooseCurrencyFirst {
			t.Errorf("sent %v, want choose-currency hint", bot.texts)
		}
	})
}

func TestHandleChooseCurrency(t *testing.T) {
	bot := &fakeBot{}
	sm := &fakeStateManager{data: &flows.SumAddData{MssgID: 5, WalNum: "A1B2C3D4", ClientID: 100}}
	h := newTestHandler(bot, sm, &fakeUserService{}, &fakeLedgerService{})

	cb := &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: 1},
		Data: messages.CallbackChooseCurrency + "USDT",
	}
	if err := h.HandleChooseCurrency(context.Background(), cb); err != nil {
		t.Fatalf("HandleChooseCurrency() error = %v", err)
	}

	if sm.data.Currency != ledger.CurrencyUSDT {
		t.Errorf("state currency = %q, want USDT", sm.data.Currency)
	}
}

func TestHandleComplete(t *testing.T) {
	bot := &fakeBot{}
	sm := &fakeStateManager{data: &flows.SumAddData{
		MssgID: 5, WalNum: "A1B2C3D4", ClientID: 100, Currency: ledger.CurrencyTMT, Sum: 50,
	}}
	ls := &fakeLedgerService{}
	h := newTestHandler(bot, sm, &fakeUserService{}, ls)

	cb := &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: 1},
		Data: messages.CallbackCompleteAdd,
	}
	if err := h.HandleComplete(context.Background(), cb); err != nil {
		t.Fatalf("HandleComplete() error = %v", err)
	}

	if len(ls.applied) != 1 || ls.applied[0] != 50 {
		t.Errorf("applied sums = %v, want [50]", ls.applied)
	}
	if sm.data != nil {
		t.Errorf("state = %+v, want deleted after completion", sm.data)
	}
}
