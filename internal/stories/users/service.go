package users

import (
	"context"
	"errors"
	"strconv"
)

var ErrUserNotFound = errors.New("user not found")

// Service - бизнес-логика над пользователями и их счетами.
type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// GetOrCreateUser получает пользователя по Telegram ID или создает нового
// с нулевыми балансами и свежим номером счёта.
func (s *Service) GetOrCreateUser(ctx context.Context, telegramID int64) (*User, error) {
	existing, err := s.storage.GetUser(ctx, GetCriteria{ID: &telegramID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.storage.CreateUser(ctx, User{
		ID:     telegramID,
		WalNum: NewWalNum(),
	})
}

// GetUser возвращает пользователя, ErrUserNotFound если его нет.
func (s *Service) GetUser(ctx context.Context, telegramID int64) (*User, error) {
	user, err := s.storage.GetUser(ctx, GetCriteria{ID: &telegramID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ResolveAccount ищет пользователя по номеру счёта, затем по Telegram ID.
// Так админ в флоу правки баланса может ввести любой из идентификаторов.
func (s *Service) ResolveAccount(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.storage.GetUser(ctx, GetCriteria{WalNum: &token})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	id, convErr := strconv.ParseInt(token, 10, 64)
	if convErr != nil {
		return nil, ErrUserNotFound
	}
	user, err = s.storage.GetUser(ctx, GetCriteria{ID: &id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers возвращает всех пользователей (для рассылки).
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.storage.ListUsers(ctx, ListCriteria{})
}
