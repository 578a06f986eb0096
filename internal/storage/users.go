package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"yyldyz-bot/internal/stories/users"
)

const usersTable = "users"

var userRowFields = fields(userRow{})

type userRow struct {
	ID        int64     `db:"id"`
	WalNum    string    `db:"wal_num"`
	SumTMT    float64   `db:"sum_tmt"`
	SumUSDT   float64   `db:"sum_usdt"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u userRow) ToModel() *users.User {
	return &users.User{
		ID:        u.ID,
		WalNum:    u.WalNum,
		SumTMT:    u.SumTMT,
		SumUSDT:   u.SumUSDT,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *storageImpl) CreateUser(ctx context.Context, user users.User) (*users.User, error) {
	params := map[string]interface{}{
		"id":         user.ID,
		"wal_num":    user.WalNum,
		"sum_tmt":    user.SumTMT,
		"sum_usdt":   user.SumUSDT,
		"created_at": s.now(),
		"updated_at": s.now(),
	}

	q, args, err := s.stmpBuilder().
		Insert(usersTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetUser(ctx, users.GetCriteria{ID: &user.ID})
}

func (s *storageImpl) GetUser(ctx context.Context, criteria users.GetCriteria) (*users.User, error) {
	query := s.stmpBuilder().
		Select(userRowFields).
		From(usersTable).
		Limit(1)

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.WalNum != nil {
		query = query.Where(sq.Eq{"wal_num": *criteria.WalNum})
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var u userRow
	if err := s.db.GetContext(ctx, &u, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return u.ToModel(), nil
}

func (s *storageImpl) ListUsers(ctx context.Context, criteria users.ListCriteria) ([]*users.User, error) {
	query := s.stmpBuilder().
		Select(userRowFields).
		From(usersTable).
		OrderBy("created_at ASC")

	if criteria.Limit > 0 {
		query = query.Limit(uint64(criteria.Limit))
	}
	if criteria.Offset > 0 {
		query = query.Offset(uint64(criteria.Offset))
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*users.User, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}
