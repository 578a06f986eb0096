package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"yyldyz-bot/internal/stories/ledger"
	"yyldyz-bot/internal/stories/orders"
)

const (
	ordersTable        = "orders"
	orderMessagesTable = "order_messages"
)

var orderRowFields = fields(orderRow{})

type orderRow struct {
	ID         int64           `db:"id"`
	Status     string          `db:"status"`
	UserID     int64           `db:"user_id"`
	ProductID  int64           `db:"product_id"`
	Quantity   sql.NullInt64   `db:"quantity"`
	Payment    string          `db:"payment"`
	Total      sql.NullFloat64 `db:"total"`
	Receiver   string          `db:"receiver"`
	CourierID  sql.NullInt64   `db:"courier_id"`
	ClntMssgID sql.NullInt64   `db:"clnt_mssg_id"`
	Reason     sql.NullString  `db:"reason"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (o orderRow) ToModel() *orders.Order {
	order := &orders.Order{
		ID:        o.ID,
		Status:    orders.Status(o.Status),
		UserID:    o.UserID,
		ProductID: o.ProductID,
		Payment:   ledger.Currency(o.Payment),
		Receiver:  o.Receiver,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Quantity.Valid {
		q := int(o.Quantity.Int64)
		order.Quantity = &q
	}
	if o.Total.Valid {
		t := o.Total.Float64
		order.Total = &t
	}
	if o.CourierID.Valid {
		c := o.CourierID.Int64
		order.CourierID = &c
	}
	if o.ClntMssgID.Valid {
		m := int(o.ClntMssgID.Int64)
		order.ClntMssgID = &m
	}
	if o.Reason.Valid {
		r := o.Reason.String
		order.Reason = &r
	}
	return order
}

func (s *storageImpl) CreateOrder(ctx context.Context, order orders.Order) (*orders.Order, error) {
	params := map[string]interface{}{
		"status":     string(order.Status),
		"user_id":    order.UserID,
		"product_id": order.ProductID,
		"payment":    string(order.Payment),
		"receiver":   order.Receiver,
		"created_at": s.now(),
		"updated_at": s.now(),
	}
	if order.Quantity != nil {
		params["quantity"] = *order.Quantity
	}
	if order.Total != nil {
		params["total"] = *order.Total
	}
	if order.ClntMssgID != nil {
		params["clnt_mssg_id"] = *order.ClntMssgID
	}

	q, args, err := s.stmpBuilder().
		Insert(ordersTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId: %w", err)
	}

	return s.GetOrder(ctx, id)
}

func (s *storageImpl) GetOrder(ctx context.Context, id int64) (*orders.Order, error) {
	q, args, err := s.stmpBuilder().
		Select(orderRowFields).
		From(ordersTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var o orderRow
	if err := s.db.GetContext(ctx, &o, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return o.ToModel(), nil
}

func (s *storageImpl) ListOrders(ctx context.Context, criteria orders.ListCriteria) ([]*orders.Order, error) {
	query := s.stmpBuilder().
		Select(orderRowFields).
		From(ordersTable).
		OrderBy("created_at ASC")

	if criteria.Status != nil {
		query = query.Where(sq.Eq{"status": string(*criteria.Status)})
	}
	if criteria.Limit > 0 {
		query = query.Limit(uint64(criteria.Limit))
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*orders.Order, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}

func (s *storageImpl) UpdateOrder(ctx context.Context, id int64, params orders.UpdateParams) error {
	query := s.stmpBuilder().
		Update(ordersTable).
		Set("updated_at", s.now()).
		Where(sq.Eq{"id": id})

	if params.ClntMssgID != nil {
		query = query.Set("clnt_mssg_id", *params.ClntMssgID)
	}
	if params.Reason != nil {
		query = query.Set("reason", *params.Reason)
	}

	q, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

// TransitionOrder - guarded-переход одним UPDATE: статус меняется только
// когда текущий входит в allowed. 0 затронутых строк - отказ.
func (s *storageImpl) TransitionOrder(ctx context.Context, id int64, allowed []orders.Status, next orders.Status, courierID *int64) (int64, error) {
	allowedStrs := make([]string, 0, len(allowed))
	for _, st := range allowed {
		allowedStrs = append(allowedStrs, string(st))
	}

	query := s.stmpBuilder().
		Update(ordersTable).
		Set("status", string(next)).
		Set("updated_at", s.now()).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"status": allowedStrs})

	if courierID != nil {
		query = query.Set("courier_id", *courierID)
	}

	q, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected: %w", err)
	}
	return affected, nil
}

func (s *storageImpl) SetAdminMessage(ctx context.Context, m orders.AdminMessage) error {
	q, args, err := s.stmpBuilder().
		Replace(orderMessagesTable).
		SetMap(map[string]interface{}{
			"order_id":   m.OrderID,
			"admin_id":   m.AdminID,
			"message_id": m.MessageID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

func (s *storageImpl) ListAdminMessages(ctx context.Context, orderID int64) ([]*orders.AdminMessage, error) {
	q, args, err := s.stmpBuilder().
		Select("order_id", "admin_id", "message_id").
		From(orderMessagesTable).
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("admin_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []struct {
		OrderID   int64 `db:"order_id"`
		AdminID   int64 `db:"admin_id"`
		MessageID int   `db:"message_id"`
	}
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*orders.AdminMessage, 0, len(rows))
	for _, r := range rows {
		result = append(result, &orders.AdminMessage{OrderID: r.OrderID, AdminID: r.AdminID, MessageID: r.MessageID})
	}
	return result, nil
}
