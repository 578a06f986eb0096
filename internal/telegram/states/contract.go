package states

import (
	"context"
	"encoding/json"

	"yyldyz-bot/internal/stories/chat"
)

type (
	// Storage - durable-хранилище снимков флоу.
	Storage interface {
		GetFlowState(ctx context.Context, userID int64, kind string) (json.RawMessage, error)
		SetFlowState(ctx context.Context, userID int64, kind string, data json.RawMessage) error
		DeleteFlowState(ctx context.Context, userID int64, kind string) error
	}

	// ChatStorage отдаёт половину пары чата - она участвует в
	// приоритете диспетчеризации наравне с флоу.
	ChatStorage interface {
		GetChatState(ctx context.Context, userID int64) (*chat.State, error)
	}
)
