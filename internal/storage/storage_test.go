package storage

import (
	"context"
	"testing"

	"yyldyz-bot/internal/infra/sqlite3"
	"yyldyz-bot/internal/stories/users"
)

// newTestStorage поднимает in-memory базу с применённой схемой.
// Один коннект: у каждого соединения sqlite своя :memory: база.
func newTestStorage(t *testing.T) *storageImpl {
	t.Helper()

	db, err := sqlite3.New(context.Background(),
		sqlite3.WithDSN(":memory:"),
		sqlite3.WithMaxOpenConns(1),
		sqlite3.WithMaxIdleConns(1),
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := sqlite3.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return New(db.DB)
}

func mustCreateUser(t *testing.T, s *storageImpl, id int64, walNum string, sumTmt, sumUsdt float64) *users.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), users.User{
		ID:      id,
		WalNum:  walNum,
		SumTMT:  sumTmt,
		SumUSDT: sumUsdt,
	})
	if err != nil {
		t.Fatalf("create user %d: %v", id, err)
	}
	return user
}
