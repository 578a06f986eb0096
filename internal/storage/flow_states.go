package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const flowStatesTable = "flow_states"

// GetFlowState возвращает JSON-снимок флоу пользователя или nil.
func (s *storageImpl) GetFlowState(ctx context.Context, userID int64, kind string) (json.RawMessage, error) {
	q, args, err := s.stmpBuilder().
		Select("data").
		From(flowStatesTable).
		Where(sq.Eq{"user_id": userID, "kind": kind}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var data string
	if err := s.db.GetContext(ctx, &data, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return json.RawMessage(data), nil
}

// SetFlowState создаёт либо перезаписывает снимок: каждый ответ
// пользователя долетает до диска, рестарт не теряет шаг.
func (s *storageImpl) SetFlowState(ctx context.Context, userID int64, kind string, data json.RawMessage) error {
	q, args, err := s.stmpBuilder().
		Replace(flowStatesTable).
		SetMap(map[string]interface{}{
			"user_id":    userID,
			"kind":       kind,
			"data":       string(data),
			"created_at": s.now(),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

func (s *storageImpl) DeleteFlowState(ctx context.Context, userID int64, kind string) error {
	q, args, err := s.stmpBuilder().
		Delete(flowStatesTable).
		Where(sq.Eq{"user_id": userID, "kind": kind}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}
