package ledger

import "time"

type Currency string

const (
	CurrencyTMT  Currency = "TMT"
	CurrencyUSDT Currency = "USDT"
)

// ParseCurrency возвращает валюту по строке, ok=false для неизвестной.
func ParseCurrency(s string) (Currency, bool) {
	switch Currency(s) {
	case CurrencyTMT:
		return CurrencyTMT, true
	case CurrencyUSDT:
		return CurrencyUSDT, true
	}
	return "", false
}

// SummUpdate - неизменяемая аудит-запись правки баланса админом.
type SummUpdate struct {
	ID        int64
	CashierID int64
	ClientID  int64
	Currency  Currency
	Sum       float64
	CreatedAt time.Time
}

// Transfer - неизменяемая аудит-запись перевода между счетами.
type Transfer struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Currency   Currency
	Amount     float64
	CreatedAt  time.Time
}
