package states

import (
	"context"
	"encoding/json"
	"fmt"

	"yyldyz-bot/internal/telegram/flows"
)

// Manager хранит состояния диалогов в durable-хранилище: каждый шаг
// переживает рестарт процесса.
type Manager struct {
	storage     Storage
	chatStorage ChatStorage
}

func NewManager(storage Storage, chatStorage ChatStorage) *Manager {
	return &Manager{storage: storage, chatStorage: chatStorage}
}

// Resolve возвращает флоу, владеющий следующим сообщением пользователя.
// Порядок проверки фиксированный и несущий: reason > sumadd > transfer >
// check > chat(вызов) > chat(пара) > signup > broadcast. Первый найденный
// выигрывает - текст посреди ввода причины не истолкуется как сумма
// перевода.
func (m *Manager) Resolve(ctx context.Context, userID int64) (*ActiveFlow, error) {
	if data, err := getState[flows.ReasonData](ctx, m.storage, userID, KindReason); err != nil {
		return nil, err
	} else if data != nil {
		return &ActiveFlow{Kind: KindReason, Reason: data}, nil
	}

	if data, err := getState[flows.SumAddData](ctx, m.storage, userID, KindSumAdd); err != nil {
		return nil, err
	} else if data != nil {
		return &ActiveFlow{Kind: KindSumAdd, SumAdd: data}, nil
	}

	if data, err := getState[flows.TransferData](ctx, m.storage, userID, KindTransfer); err != nil {
		return nil, err
	} else if data != nil {
		return &ActiveFlow{Kind: KindTransfer, Transfer: data}, nil
	}

	if data, err := getState[flows.CheckData](ctx, m.storage, userID, KindCheck); err != nil {
		return nil, err
	} else if data != nil {
		return &ActiveFlow{Kind: KindCheck, Check: data}, nil
	}

	chatState, err := m.chatStorage.GetChatState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if chatState != nil && chatState.Calling && chatState.Unassigned() {
		return &ActiveFlow{Kind: KindChatCalling, Chat: chatState}, nil
	}
	if chatState != nil && !chatState.Unassigned() {
		return &ActiveFlow{Kind: KindChatPaired, Chat: chatState}, nil
	}

	if data, err := getState[flows.SignupData](ctx, m.storage, userID, KindSignup); err != nil {
		return nil, err
	} else if data != nil {
		return &ActiveFlow{Kind: KindSignup, Signup: data}, nil
	}

	if data, err := getState[flows.BroadcastData](ctx, m.storage, userID, KindBroadcast); err != nil {
		return nil, err
	} else if data != nil {
		return &ActiveFlow{Kind: KindBroadcast, Broadcast: data}, nil
	}

	return &ActiveFlow{Kind: KindNone}, nil
}

func getState[T any](ctx context.Context, storage Storage, userID int64, kind Kind) (*T, error) {
	raw, err := storage.GetFlowState(ctx, userID, string(kind))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s state for user %d: %w", kind, userID, err)
	}
	return &data, nil
}

func setState[T any](ctx context.Context, storage Storage, userID int64, kind Kind, data *T) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s state for user %d: %w", kind, userID, err)
	}
	return storage.SetFlowState(ctx, userID, string(kind), raw)
}

// Типизированные аксессоры по виду флоу.

func (m *Manager) GetSumAdd(ctx context.Context, userID int64) (*flows.SumAddData, error) {
	return getState[flows.SumAddData](ctx, m.storage, userID, KindSumAdd)
}

func (m *Manager) SetSumAdd(ctx context.Context, userID int64, data *flows.SumAddData) error {
	return setState(ctx, m.storage, userID, KindSumAdd, data)
}

func (m *Manager) GetTransfer(ctx context.Context, userID int64) (*flows.TransferData, error) {
	return getState[flows.TransferData](ctx, m.storage, userID, KindTransfer)
}

func (m *Manager) SetTransfer(ctx context.Context, userID int64, data *flows.TransferData) error {
	return setState(ctx, m.storage, userID, KindTransfer, data)
}

func (m *Manager) GetCheck(ctx context.Context, userID int64) (*flows.CheckData, error) {
	return getState[flows.CheckData](ctx, m.storage, userID, KindCheck)
}

func (m *Manager) SetCheck(ctx context.Context, userID int64, data *flows.CheckData) error {
	return setState(ctx, m.storage, userID, KindCheck, data)
}

func (m *Manager) GetSignup(ctx context.Context, userID int64) (*flows.SignupData, error) {
	return getState[flows.SignupData](ctx, m.storage, userID, KindSignup)
}

func (m *Manager) SetSignup(ctx context.Context, userID int64, data *flows.SignupData) error {
	return setState(ctx, m.storage, userID, KindSignup, data)
}

func (m *Manager) GetBroadcast(ctx context.Context, userID int64) (*flows.BroadcastData, error) {
	return getState[flows.BroadcastData](ctx, m.storage, userID, KindBroadcast)
}

func (m *Manager) SetBroadcast(ctx context.Context, userID int64, data *flows.BroadcastData) error {
	return setState(ctx, m.storage, userID, KindBroadcast, data)
}

func (m *Manager) GetReason(ctx context.Context, userID int64) (*flows.ReasonData, error) {
	return getState[flows.ReasonData](ctx, m.storage, userID, KindReason)
}

func (m *Manager) SetReason(ctx context.Context, userID int64, data *flows.ReasonData) error {
	return setState(ctx, m.storage, userID, KindReason, data)
}

// Delete удаляет снимок флоу указанного вида.
func (m *Manager) Delete(ctx context.Context, userID int64, kind Kind) error {
	return m.storage.DeleteFlowState(ctx, userID, string(kind))
}

func (m *Manager) DeleteSumAdd(ctx context.Context, userID int64) error {
	return m.Delete(ctx, userID, KindSumAdd)
}

func (m *Manager) DeleteTransfer(ctx context.Context, userID int64) error {
	return m.Delete(ctx, userID, KindTransfer)
}

func (m *Manager) DeleteCheck(ctx context.Context, userID int64) error {
	return m.Delete(ctx, userID, KindCheck)
}

func (m *Manager) DeleteSignup(ctx context.Context, userID int64) error {
	return m.Delete(ctx, userID, KindSignup)
}

func (m *Manager) DeleteBroadcast(ctx context.Context, userID int64) error {
	return m.Delete(ctx, userID, KindBroadcast)
}

func (m *Manager) DeleteReason(ctx context.Context, userID int64) error {
	return m.Delete(ctx, userID, KindReason)
}
