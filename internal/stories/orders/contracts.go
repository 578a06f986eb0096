package orders

import "context"

type Repository interface {
	CreateOrder(ctx context.Context, order Order) (*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context, criteria ListCriteria) ([]*Order, error)
	UpdateOrder(ctx context.Context, id int64, params UpdateParams) error
	// TransitionOrder меняет статус одним guarded-оператором:
	// затронуто 0 строк - текущий статус не входит в allowed либо заказа нет.
	TransitionOrder(ctx context.Context, id int64, allowed []Status, next Status, courierID *int64) (int64, error)

	SetAdminMessage(ctx context.Context, m AdminMessage) error
	ListAdminMessages(ctx context.Context, orderID int64) ([]*AdminMessage, error)
}
