package states

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"yyldyz-bot/internal/stories/chat"
	"yyldyz-bot/internal/telegram/flows"
)

type fakeStorage struct {
	states map[string]json.RawMessage
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{states: map[string]json.RawMessage{}}
}

func key(userID int64, kind string) string {
	return fmt.Sprintf("%d/%s", userID, kind)
}

func (f *fakeStorage) GetFlowState(_ context.Context, userID int64, kind string) (json.RawMessage, error) {
	raw, ok := f.states[key(userID, kind)]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (f *fakeStorage) SetFlowState(_ context.Context, userID int64, kind string, data json.RawMessage) error {
	f.states[key(userID, kind)] = data
	return nil
}

func (f *fakeStorage) DeleteFlowState(_ context.Context, userID int64, kind string) error {
	delete(f.states, key(userID, kind))
	return nil
}

type fakeChatStorage struct {
	state *chat.State
}

func (f *fakeChatStorage) GetChatState(_ context.Context, _ int64) (*chat.State, error) {
	return f.state, nil
}

func TestResolvePrecedence(t *testing.T) {
	const userID = 42
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(m *Manager, cs *fakeChatStorage)
		want  Kind
	}{
		{
			name:  "no state",
			setup: func(_ *Manager, _ *fakeChatStorage) {},
			want:  KindNone,
		},
		{
			name: "reason beats sum add",
			setup: func(m *Manager, _ *fakeChatStorage) {
				if err := m.SetSumAdd(ctx, userID, &flows.SumAddData{MssgID: 1}); err != nil {
					t.Fatal(err)
				}
				if err := m.SetReason(ctx, userID, &flows.ReasonData{OrderID: 5}); err != nil {
					t.Fatal(err)
				}
			},
			want: KindReason,
		},
		{
			name: "sum add beats transfer",
			setup: func(m *Manager, _ *fakeChatStorage) {
				if err := m.SetTransfer(ctx, userID, &flows.TransferData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
				if err := m.SetSumAdd(ctx, userID, &flows.SumAddData{MssgID: 1}); err != nil {
					t.Fatal(err)
				}
			},
			want: KindSumAdd,
		},
		{
			name: "transfer beats check",
			setup: func(m *Manager, _ *fakeChatStorage) {
				if err := m.SetCheck(ctx, userID, &flows.CheckData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
				if err := m.SetTransfer(ctx, userID, &flows.TransferData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
			},
			want: KindTransfer,
		},
		{
			name: "check beats chat",
			setup: func(m *Manager, cs *fakeChatStorage) {
				cs.state = &chat.State{UserID: userID, PeerID: 9}
				if err := m.SetCheck(ctx, userID, &flows.CheckData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
			},
			want: KindCheck,
		},
		{
			name: "calling unassigned chat",
			setup: func(_ *Manager, cs *fakeChatStorage) {
				cs.state = &chat.State{UserID: userID, Calling: true}
			},
			want: KindChatCalling,
		},
		{
			name: "paired chat",
			setup: func(_ *Manager, cs *fakeChatStorage) {
				cs.state = &chat.State{UserID: userID, PeerID: 9}
			},
			want: KindChatPaired,
		},
		{
			name: "waiting client does not own messages",
			setup: func(_ *Manager, cs *fakeChatStorage) {
				// заявка висит, но не вызывающая и не принятая
				cs.state = &chat.State{UserID: userID}
			},
			want: KindNone,
		},
		{
			name: "chat beats signup",
			setup: func(m *Manager, cs *fakeChatStorage) {
				cs.state = &chat.State{UserID: userID, PeerID: 9}
				if err := m.SetSignup(ctx, userID, &flows.SignupData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
			},
			want: KindChatPaired,
		},
		{
			name: "signup beats broadcast",
			setup: func(m *Manager, _ *fakeChatStorage) {
				if err := m.SetBroadcast(ctx, userID, &flows.BroadcastData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
				if err := m.SetSignup(ctx, userID, &flows.SignupData{MessageID: 1}); err != nil {
					t.Fatal(err)
				}
			},
			want: KindSignup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &fakeChatStorage{}
			m := NewManager(newFakeStorage(), cs)
			tt.setup(m, cs)

			flow, err := m.Resolve(ctx, userID)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if flow.Kind != tt.want {
				t.Errorf("Resolve().Kind = %q, want %q", flow.Kind, tt.want)
			}
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	const userID = 7
	ctx := context.Background()
	m := NewManager(newFakeStorage(), &fakeChatStorage{})

	in := &flows.SumAddData{MssgID: 12, WalNum: "A1B2C3D4", ClientID: 100, Currency: "TMT", Sum: 50}
	if err := m.SetSumAdd(ctx, userID, in); err != nil {
		t.Fatalf("SetSumAdd() error = %v", err)
	}

	out, err := m.GetSumAdd(ctx, userID)
	if err != nil {
		t.Fatalf("GetSumAdd() error = %v", err)
	}
	if out == nil {
		t.Fatal("GetSumAdd() = nil after set")
	}
	if *out != *in {
		t.Errorf("GetSumAdd() = %+v, want %+v", out, in)
	}

	if err := m.DeleteSumAdd(ctx, userID); err != nil {
		t.Fatalf("DeleteSumAdd() error = %v", err)
	}
	out, err = m.GetSumAdd(ctx, userID)
	if err != nil {
		t.Fatalf("GetSumAdd() after delete error = %v", err)
	}
	if out != nil {
		t.Errorf("GetSumAdd() after delete = %+v, want nil", out)
	}
}
