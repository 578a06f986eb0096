package telegram

import (
	"slices"

	"yyldyz-bot/internal/config"
)

// AdminRegistry - фиксированный пул допущенных операторов. Передаётся
// компонентам явно, глобального списка нет.
type AdminRegistry struct {
	adminIDs []int64
}

func NewAdminRegistry(cfg *config.TelegramConfig) *AdminRegistry {
	return &AdminRegistry{
		adminIDs: slices.Clone(cfg.AdminIDs),
	}
}

// IsAdmin проверяет является ли пользователь с данным Telegram ID админом
func (a *AdminRegistry) IsAdmin(telegramID int64) bool {
	return slices.Contains(a.adminIDs, telegramID)
}

// AdminIDs возвращает пул для рассылки уведомлений.
func (a *AdminRegistry) AdminIDs() []int64 {
	return slices.Clone(a.adminIDs)
}
