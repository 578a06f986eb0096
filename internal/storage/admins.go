package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"yyldyz-bot/internal/stories/users"
)

const adminsTable = "admins"

var adminRowFields = fields(adminRow{})

type adminRow struct {
	TgID           int64          `db:"tg_id"`
	OnlineStatus   bool           `db:"online_status"`
	Nick           sql.NullString `db:"nick"`
	HashedPassword sql.NullString `db:"hashed_password"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (a adminRow) ToModel() *users.Admin {
	admin := &users.Admin{
		TgID:         a.TgID,
		OnlineStatus: a.OnlineStatus,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Nick.Valid {
		admin.Nick = &a.Nick.String
	}
	if a.HashedPassword.Valid {
		admin.HashedPassword = &a.HashedPassword.String
	}
	return admin
}

func (s *storageImpl) GetAdmin(ctx context.Context, tgID int64) (*users.Admin, error) {
	q, args, err := s.stmpBuilder().
		Select(adminRowFields).
		From(adminsTable).
		Where(sq.Eq{"tg_id": tgID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var a adminRow
	if err := s.db.GetContext(ctx, &a, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return a.ToModel(), nil
}

func (s *storageImpl) CreateAdmin(ctx context.Context, admin users.Admin) (*users.Admin, error) {
	params := map[string]interface{}{
		"tg_id":         admin.TgID,
		"online_status": admin.OnlineStatus,
		"created_at":    s.now(),
		"updated_at":    s.now(),
	}
	if admin.Nick != nil {
		params["nick"] = *admin.Nick
	}
	if admin.HashedPassword != nil {
		params["hashed_password"] = *admin.HashedPassword
	}

	q, args, err := s.stmpBuilder().
		Insert(adminsTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetAdmin(ctx, admin.TgID)
}

func (s *storageImpl) UpdateAdmin(ctx context.Context, tgID int64, params users.AdminUpdateParams) (*users.Admin, error) {
	query := s.stmpBuilder().
		Update(adminsTable).
		Set("updated_at", s.now()).
		Where(sq.Eq{"tg_id": tgID})

	if params.OnlineStatus != nil {
		query = query.Set("online_status", *params.OnlineStatus)
	}
	if params.Nick != nil {
		query = query.Set("nick", *params.Nick)
	}
	if params.HashedPassword != nil {
		query = query.Set("hashed_password", *params.HashedPassword)
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetAdmin(ctx, tgID)
}
