package chat

import "context"

type Storage interface {
	GetChatState(ctx context.Context, userID int64) (*State, error)
	CreateChatState(ctx context.Context, state State) error
	DeleteChatState(ctx context.Context, userID int64) error
	// PairChatStates пишет обе половины пары атомарно. Условная запись:
	// заявка клиента захватывается только пока peer_id = 0, повторный
	// accept не трогает уже существующую пару.
	PairChatStates(ctx context.Context, clientID, adminID int64, sessionID string) error

	SetChatMessage(ctx context.Context, m AdminMessage) error
	ListChatMessages(ctx context.Context, userID int64) ([]*AdminMessage, error)
	DeleteChatMessages(ctx context.Context, userID int64) error
}
