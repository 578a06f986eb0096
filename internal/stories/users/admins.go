package users

import (
	"context"
	"errors"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminStorage interface {
	GetAdmin(ctx context.Context, tgID int64) (*Admin, error)
	CreateAdmin(ctx context.Context, admin Admin) (*Admin, error)
	UpdateAdmin(ctx context.Context, tgID int64, params AdminUpdateParams) (*Admin, error)
}

type AdminService struct {
	storage AdminStorage
}

func NewAdminService(storage AdminStorage) *AdminService {
	return &AdminService{storage: storage}
}

// EnsureAdmin создаёт запись для допущенного ID, если её ещё нет.
// Вызывается на старте для каждого ID из allow-list.
func (s *AdminService) EnsureAdmin(ctx context.Context, tgID int64) (*Admin, error) {
	admin, err := s.storage.GetAdmin(ctx, tgID)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return admin, nil
	}
	return s.storage.CreateAdmin(ctx, Admin{TgID: tgID})
}

// SetOnline переключает информационный онлайн-флаг.
func (s *AdminService) SetOnline(ctx context.Context, tgID int64, online bool) (*Admin, error) {
	if _, err := s.EnsureAdmin(ctx, tgID); err != nil {
		return nil, err
	}
	return s.storage.UpdateAdmin(ctx, tgID, AdminUpdateParams{OnlineStatus: &online})
}

// SetCredentials сохраняет ник и хэш пароля из флоу регистрации.
func (s *AdminService) SetCredentials(ctx context.Context, tgID int64, nick, hashedPassword string) (*Admin, error) {
	if _, err := s.EnsureAdmin(ctx, tgID); err != nil {
		return nil, err
	}
	return s.storage.UpdateAdmin(ctx, tgID, AdminUpdateParams{
		Nick:           &nick,
		HashedPassword: &hashedPassword,
	})
}
