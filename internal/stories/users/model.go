package users

import (
	"time"

	"yyldyz-bot/internal/stories/ledger"
)

type User struct {
	ID        int64 // Telegram ID
	WalNum    string
	SumTMT    float64
	SumUSDT   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance возвращает остаток в указанной валюте.
func (u *User) Balance(currency ledger.Currency) float64 {
	if currency == ledger.CurrencyUSDT {
		return u.SumUSDT
	}
	return u.SumTMT
}

// Критерии для получения пользователя
type GetCriteria struct {
	ID     *int64
	WalNum *string
}

// Критерии для списка пользователей
type ListCriteria struct {
	Limit  int
	Offset int
}

// Admin - запись допущенного оператора. Онлайн-флаг чисто информационный.
type Admin struct {
	TgID           int64
	OnlineStatus   bool
	Nick           *string
	HashedPassword *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Параметры для обновления админа
type AdminUpdateParams struct {
	OnlineStatus   *bool
	Nick           *string
	HashedPassword *string
}
