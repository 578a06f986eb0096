package orders

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, order Order) (*Order, error) {
	order.Status = StatusPending
	return s.repo.CreateOrder(ctx, order)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListPending(ctx context.Context) ([]*Order, error) {
	status := StatusPending
	return s.repo.ListOrders(ctx, ListCriteria{Status: &status})
}

// Transition - единственный мутатор статуса. Переход разрешён только
// когда текущий статус входит в allowed; иначе заказ не меняется.
func (s *Service) Transition(ctx context.Context, id int64, allowed []Status, next Status, courierID *int64) (*Order, error) {
	affected, err := s.repo.TransitionOrder(ctx, id, allowed, next, courierID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		order, err := s.repo.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
		return nil, ErrInvalidTransition
	}
	return s.GetOrder(ctx, id)
}

func (s *Service) SetReason(ctx context.Context, id int64, reason string) error {
	return s.repo.UpdateOrder(ctx, id, UpdateParams{Reason: &reason})
}

func (s *Service) SetClientMessageID(ctx context.Context, id int64, messageID int) error {
	return s.repo.UpdateOrder(ctx, id, UpdateParams{ClntMssgID: &messageID})
}

func (s *Service) RecordAdminMessage(ctx context.Context, orderID, adminID int64, messageID int) error {
	return s.repo.SetAdminMessage(ctx, AdminMessage{OrderID: orderID, AdminID: adminID, MessageID: messageID})
}

func (s *Service) AdminMessages(ctx context.Context, orderID int64) ([]*AdminMessage, error) {
	return s.repo.ListAdminMessages(ctx, orderID)
}
