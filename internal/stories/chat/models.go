package chat

import "time"

// State - половина пары чата, хранится под ID владельца.
// PeerID == 0 - заявка ещё никем не принята.
type State struct {
	UserID    int64
	PeerID    int64
	SessionID string
	Calling   bool
	CreatedAt time.Time
}

// Unassigned сообщает что заявка ещё ждёт админа.
func (s *State) Unassigned() bool {
	return s.PeerID == 0
}

// AdminMessage - уведомление о заявке у конкретного админа.
type AdminMessage struct {
	UserID    int64
	AdminID   int64
	MessageID int
}
