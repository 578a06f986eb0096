package storage

import (
	"context"
	"testing"

	"yyldyz-bot/internal/stories/users"
)

func TestGetUserByCriteria(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	mustCreateUser(t, s, 100, "A1B2C3D4", 10, 0)

	t.Run("by id", func(t *testing.T) {
		id := int64(100)
		user, err := s.GetUser(ctx, users.GetCriteria{ID: &id})
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if user == nil || user.WalNum != "A1B2C3D4" {
			t.Errorf("GetUser() = %+v, want wal_num A1B2C3D4", user)
		}
	})

	t.Run("by wallet number", func(t *testing.T) {
		walNum := "A1B2C3D4"
		user, err := s.GetUser(ctx, users.GetCriteria{WalNum: &walNum})
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if user == nil || user.ID != 100 {
			t.Errorf("GetUser() = %+v, want id 100", user)
		}
	})

	t.Run("missing user is nil, not error", func(t *testing.T) {
		id := int64(999)
		user, err := s.GetUser(ctx, users.GetCriteria{ID: &id})
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if user != nil {
			t.Errorf("GetUser() = %+v, want nil", user)
		}
	})
}

func TestListUsers(t *testing.T) {
	s := newTestStorage(t)
	mustCreateUser(t, s, 1, "AAAAAAAA", 0, 0)
	mustCreateUser(t, s, 2, "BBBBBBBB", 0, 0)
	mustCreateUser(t, s, 3, "CCCCCCCC", 0, 0)

	list, err := s.ListUsers(context.Background(), users.ListCriteria{})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(list) != 3 {
		t.Errorf("ListUsers() returned %d users, want 3", len(list))
	}
}
