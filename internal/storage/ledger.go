package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"yyldyz-bot/internal/stories/ledger"
)

const (
	summUpdatesTable = "summupdates"
	transfersTable   = "transfers"
)

func balanceColumn(currency ledger.Currency) string {
	if currency == ledger.CurrencyUSDT {
		return "sum_usdt"
	}
	return "sum_tmt"
}

var summUpdateRowFields = fields(summUpdateRow{})

type summUpdateRow struct {
	ID        int64     `db:"id"`
	CashierID int64     `db:"cashier_id"`
	ClientID  int64     `db:"client_id"`
	Currency  string    `db:"currency"`
	Sum       float64   `db:"sum"`
	CreatedAt time.Time `db:"created_at"`
}

func (r summUpdateRow) ToModel() *ledger.SummUpdate {
	return &ledger.SummUpdate{
		ID:        r.ID,
		CashierID: r.CashierID,
		ClientID:  r.ClientID,
		Currency:  ledger.Currency(r.Currency),
		Sum:       r.Sum,
		CreatedAt: r.CreatedAt,
	}
}

var transferRowFields = fields(transferRow{})

type transferRow struct {
	ID         int64     `db:"id"`
	SenderID   int64     `db:"sender_id"`
	ReceiverID int64     `db:"receiver_id"`
	Currency   string    `db:"currency"`
	Amount     float64   `db:"amount"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r transferRow) ToModel() *ledger.Transfer {
	return &ledger.Transfer{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Currency:   ledger.Currency(r.Currency),
		Amount:     r.Amount,
		CreatedAt:  r.CreatedAt,
	}
}

// ApplySumUpdate пишет аудит-запись и двигает баланс клиента в одной
// транзакции.
func (s *storageImpl) ApplySumUpdate(ctx context.Context, upd ledger.SummUpdate) (*ledger.SummUpdate, error) {
	var id int64

	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		col := balanceColumn(upd.Currency)

		q, args, err := s.stmpBuilder().
			Update(usersTable).
			Set(col, sq.Expr(col+" + ?", upd.Sum)).
			Set("updated_at", s.now()).
			Where(sq.Eq{"id": upd.ClientID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		result, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected: %w", err)
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		q, args, err = s.stmpBuilder().
			Insert(summUpdatesTable).
			SetMap(map[string]interface{}{
				"cashier_id": upd.CashierID,
				"client_id":  upd.ClientID,
				"currency":   string(upd.Currency),
				"sum":        upd.Sum,
				"created_at": s.now(),
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		result, err = tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("result.LastInsertId: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getSummUpdate(ctx, id)
}

func (s *storageImpl) getSummUpdate(ctx context.Context, id int64) (*ledger.SummUpdate, error) {
	q, args, err := s.stmpBuilder().
		Select(summUpdateRowFields).
		From(summUpdatesTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row summUpdateRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return row.ToModel(), nil
}

// ExecuteTransfer списывает у отправителя, зачисляет получателю и пишет
// одну аудит-запись - всё в одной транзакции. Списание условное: баланс
// не уходит ниже нуля, иначе ledger.ErrInsufficientFunds.
func (s *storageImpl) ExecuteTransfer(ctx context.Context, t ledger.Transfer) (*ledger.Transfer, error) {
	var id int64

	err := s.tx(ctx, func(tx *sqlx.Tx) error {
		col := balanceColumn(t.Currency)

		q, args, err := s.stmpBuilder().
			Update(usersTable).
			Set(col, sq.Expr(col+" - ?", t.Amount)).
			Set("updated_at", s.now()).
			Where(sq.Eq{"id": t.SenderID}).
			Where(sq.Expr(col+" >= ?", t.Amount)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		result, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected: %w", err)
		}
		if affected == 0 {
			return ledger.ErrInsufficientFunds
		}

		q, args, err = s.stmpBuilder().
			Update(usersTable).
			Set(col, sq.Expr(col+" + ?", t.Amount)).
			Set("updated_at", s.now()).
			Where(sq.Eq{"id": t.ReceiverID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		result, err = tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected: %w", err)
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		q, args, err = s.stmpBuilder().
			Insert(transfersTable).
			SetMap(map[string]interface{}{
				"sender_id":   t.SenderID,
				"receiver_id": t.ReceiverID,
				"currency":    string(t.Currency),
				"amount":      t.Amount,
				"created_at":  s.now(),
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		result, err = tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("result.LastInsertId: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getTransfer(ctx, id)
}

func (s *storageImpl) getTransfer(ctx context.Context, id int64) (*ledger.Transfer, error) {
	q, args, err := s.stmpBuilder().
		Select(transferRowFields).
		From(transfersTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row transferRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return row.ToModel(), nil
}
