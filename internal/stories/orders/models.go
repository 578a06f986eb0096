package orders

import (
	"time"

	"yyldyz-bot/internal/stories/ledger"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "completed"
	StatusPaid       Status = "paid"
	StatusCancelled  Status = "cancelled"
)

type Order struct {
	ID         int64
	Status     Status
	UserID     int64
	ProductID  int64
	Quantity   *int
	Payment    ledger.Currency
	Total      *float64
	Receiver   string
	CourierID  *int64
	ClntMssgID *int
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AdminMessage - сообщение заказа у конкретного админа. Явная пара
// admin_id -> message_id вместо позиционных массивов.
type AdminMessage struct {
	OrderID   int64
	AdminID   int64
	MessageID int
}

// Критерии для списка заказов
type ListCriteria struct {
	Status *Status
	Limit  int
}

// Параметры для обновления заказа
type UpdateParams struct {
	ClntMssgID *int
	Reason     *string
}
