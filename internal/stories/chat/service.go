package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNoChat - у пользователя нет активного чата.
	ErrNoChat = errors.New("no active chat")
	// ErrChatBusy - принимающий админ уже в другом чате.
	ErrChatBusy = errors.New("admin already in a chat")
	// ErrAlreadyPaired - заявку уже принял другой админ.
	ErrAlreadyPaired = errors.New("chat request already paired")
	// ErrRequestNotFound - заявка исчезла (клиент отменил или /stop).
	ErrRequestNotFound = errors.New("chat request not found")
	// ErrAlreadyInChat - у инициатора уже есть активный чат.
	ErrAlreadyInChat = errors.New("chat already in progress")
)

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Get возвращает половину пары владельца или nil.
func (s *Service) Get(ctx context.Context, userID int64) (*State, error) {
	return s.storage.GetChatState(ctx, userID)
}

// Request создаёт заявку клиента (peer 0). Заявка не создаётся поверх
// уже существующего чата.
func (s *Service) Request(ctx context.Context, clientID int64) error {
	existing, err := s.storage.GetChatState(ctx, clientID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInChat
	}
	return s.storage.CreateChatState(ctx, State{UserID: clientID})
}

// RequestCall создаёт "вызывающую" запись админа: peer выбирается
// следующим текстовым сообщением с ID клиента.
func (s *Service) RequestCall(ctx context.Context, adminID int64) error {
	existing, err := s.storage.GetChatState(ctx, adminID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInChat
	}
	return s.storage.CreateChatState(ctx, State{UserID: adminID, Calling: true})
}

// RecordAdminMessage запоминает ID уведомления, ушедшего админу.
func (s *Service) RecordAdminMessage(ctx context.Context, clientID, adminID int64, messageID int) error {
	return s.storage.SetChatMessage(ctx, AdminMessage{UserID: clientID, AdminID: adminID, MessageID: messageID})
}

func (s *Service) AdminMessages(ctx context.Context, clientID int64) ([]*AdminMessage, error) {
	return s.storage.ListChatMessages(ctx, clientID)
}

// Accept - первый нажавший админ забирает заявку. Гонка двух админов
// разрешается условной записью в Storage, не чтением-перед-записью.
func (s *Service) Accept(ctx context.Context, adminID, clientID int64) (*State, error) {
	request, err := s.storage.GetChatState(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	acceptorState, err := s.storage.GetChatState(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if acceptorState != nil {
		return nil, ErrChatBusy
	}

	sessionID := uuid.NewString()
	if err := s.storage.PairChatStates(ctx, clientID, adminID, sessionID); err != nil {
		return nil, err
	}

	return s.storage.GetChatState(ctx, clientID)
}

// Pair связывает вызывающего админа с клиентом напрямую (/cagyr).
func (s *Service) Pair(ctx context.Context, adminID, clientID int64) error {
	existing, err := s.storage.GetChatState(ctx, clientID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInChat
	}
	if err := s.storage.CreateChatState(ctx, State{UserID: clientID}); err != nil {
		return err
	}
	return s.storage.PairChatStates(ctx, clientID, adminID, uuid.NewString())
}

// End завершает сессию с любой стороны. Обе половины удаляются
// безусловно: рваная пара (одна половина потеряна) не ломает /stop.
func (s *Service) End(ctx context.Context, fromID int64) (*State, error) {
	state, err := s.storage.GetChatState(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNoChat
	}

	if err := s.storage.DeleteChatState(ctx, fromID); err != nil {
		return nil, err
	}
	if state.PeerID != 0 {
		if err := s.storage.DeleteChatState(ctx, state.PeerID); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// CleanupMessages удаляет записи уведомлений после завершения сессии.
func (s *Service) CleanupMessages(ctx context.Context, clientID int64) error {
	return s.storage.DeleteChatMessages(ctx, clientID)
}
