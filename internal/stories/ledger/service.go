package ledger

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrSameAccount       = errors.New("sender and receiver are the same account")
)

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// ApplySumUpdate применяет правку баланса клиента кассиром.
// Сумма может быть отрицательной - это списание.
func (s *Service) ApplySumUpdate(ctx context.Context, cashierID, clientID int64, currency Currency, sum float64) (*SummUpdate, error) {
	if sum == 0 {
		return nil, ErrNonPositiveAmount
	}

	upd, err := s.storage.ApplySumUpdate(ctx, SummUpdate{
		CashierID: cashierID,
		ClientID:  clientID,
		Currency:  currency,
		Sum:       sum,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "apply sum update")
	}
	return upd, nil
}

// ExecuteTransfer проводит перевод. Сумма строго положительная и не
// больше доступного баланса отправителя, иначе ErrInsufficientFunds.
func (s *Service) ExecuteTransfer(ctx context.Context, senderID, receiverID int64, currency Currency, amount float64) (*Transfer, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if senderID == receiverID {
		return nil, ErrSameAccount
	}

	t, err := s.storage.ExecuteTransfer(ctx, Transfer{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Currency:   currency,
		Amount:     amount,
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, pkgerrors.Wrap(err, "execute transfer")
	}
	return t, nil
}
