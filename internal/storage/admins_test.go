package storage

import (
	"context"
	"testing"

	"yyldyz-bot/internal/stories/users"
)

func TestAdminLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	created, err := s.CreateAdmin(ctx, users.Admin{TgID: 10})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if created.TgID != 10 {
		t.Fatalf("created.TgID = %d, want 10", created.TgID)
	}
	if created.OnlineStatus {
		t.Error("new admin should be offline")
	}
	if created.Nick != nil || created.HashedPassword != nil {
		t.Error("new admin should have no credentials")
	}

	got, err := s.GetAdmin(ctx, 10)
	if err != nil {
		t.Fatalf("GetAdmin: %v", err)
	}
	if got == nil || got.TgID != 10 {
		t.Fatalf("GetAdmin = %+v, want tg_id 10", got)
	}

	missing, err := s.GetAdmin(ctx, 999)
	if err != nil {
		t.Fatalf("GetAdmin(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("GetAdmin(missing) = %+v, want nil", missing)
	}
}

func TestUpdateAdmin(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	if _, err := s.CreateAdmin(ctx, users.Admin{TgID: 10}); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	online := true
	updated, err := s.UpdateAdmin(ctx, 10, users.AdminUpdateParams{OnlineStatus: &online})
	if err != nil {
		t.Fatalf("UpdateAdmin(online): %v", err)
	}
	if !updated.OnlineStatus {
		t.Error("admin should be online after update")
	}

	nick := "kerim"
	hash := "$2a$10$fakehashfakehashfakehash"
	updated, err = s.UpdateAdmin(ctx, 10, users.AdminUpdateParams{Nick: &nick, HashedPassword: &hash})
	if err != nil {
		t.Fatalf("UpdateAdmin(credentials): %v", err)
	}
	if updated.Nick == nil || *updated.Nick != nick {
		t.Errorf("updated.Nick = %v, want %q", updated.Nick, nick)
	}
	if updated.HashedPassword == nil || *updated.HashedPassword != hash {
		t.Errorf("updated.HashedPassword = %v, want %q", updated.HashedPassword, hash)
	}
	if !updated.OnlineStatus {
		t.Error("credentials update should not reset online status")
	}
}
