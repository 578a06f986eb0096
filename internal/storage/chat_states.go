package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"yyldyz-bot/internal/stories/chat"
)

const (
	chatStatesTable   = "chat_states"
	chatMessagesTable = "chat_messages"
)

var chatStateRowFields = fields(chatStateRow{})

type chatStateRow struct {
	UserID    int64     `db:"user_id"`
	PeerID    int64     `db:"peer_id"`
	SessionID string    `db:"session_id"`
	Calling   bool      `db:"calling"`
	CreatedAt time.Time `db:"created_at"`
}

func (r chatStateRow) ToModel() *chat.State {
	return &chat.State{
		UserID:    r.UserID,
		PeerID:    r.PeerID,
		SessionID: r.SessionID,
		Calling:   r.Calling,
		CreatedAt: r.CreatedAt,
	}
}

func (s *storageImpl) GetChatState(ctx context.Context, userID int64) (*chat.State, error) {
	q, args, err := s.stmpBuilder().
		Select(chatStateRowFields).
		From(chatStatesTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row chatStateRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return row.ToModel(), nil
}

func (s *storageImpl) CreateChatState(ctx context.Context, state chat.State) error {
	q, args, err := s.stmpBuilder().
		Insert(chatStatesTable).
		SetMap(map[string]interface{}{
			"user_id":    state.UserID,
			"peer_id":    state.PeerID,
			"session_id": state.SessionID,
			"calling":    state.Calling,
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

func (s *storageImpl) DeleteChatState(ctx context.Context, userID int64) error {
	q, args, err := s.stmpBuilder().
		Delete(chatStatesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

// PairChatStates - условная запись: заявка клиента захватывается только
// пока peer_id = 0. Двойной тап по "принять" от второго админа даёт
// 0 затронутых строк и chat.ErrAlreadyPaired, существующая пара не
// трогается. Половина админа пишется REPLACE-ом: для /cagyr его
// "вызывающая" запись уже существует.
func (s *storageImpl) PairChatStates(ctx context.Context, clientID, adminID int64, sessionID string) error {
	return s.tx(ctx, func(tx *sqlx.Tx) error {
		q, args, err := s.stmpBuilder().
			Update(chatStatesTable).
			Set("peer_id", adminID).
			Set("session_id", sessionID).
			Set("calling", false).
			Where(sq.Eq{"user_id": clientID, "peer_id": 0}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		result, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected: %w", err)
		}
		if affected == 0 {
			return chat.ErrAlreadyPaired
		}

		q, args, err = s.stmpBuilder().
			Replace(chatStatesTable).
			SetMap(map[string]interface{}{
				"user_id":    adminID,
				"peer_id":    clientID,
				"session_id": sessionID,
				"calling":    false,
				"created_at": s.now(),
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		return nil
	})
}

func (s *storageImpl) SetChatMessage(ctx context.Context, m chat.AdminMessage) error {
	q, args, err := s.stmpBuilder().
		Replace(chatMessagesTable).
		SetMap(map[string]interface{}{
			"user_id":    m.UserID,
			"admin_id":   m.AdminID,
			"message_id": m.MessageID,
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

func (s *storageImpl) ListChatMessages(ctx context.Context, userID int64) ([]*chat.AdminMessage, error) {
	q, args, err := s.stmpBuilder().
		Select("user_id", "admin_id", "message_id").
		From(chatMessagesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("admin_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []struct {
		UserID    int64 `db:"user_id"`
		AdminID   int64 `db:"admin_id"`
		MessageID int   `db:"message_id"`
	}
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*chat.AdminMessage, 0, len(rows))
	for _, r := range rows {
		result = append(result, &chat.AdminMessage{UserID: r.UserID, AdminID: r.AdminID, MessageID: r.MessageID})
	}
	return result, nil
}

func (s *storageImpl) DeleteChatMessages(ctx context.Context, userID int64) error {
	q, args, err := s.stmpBuilder().
		Delete(chatMessagesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}
