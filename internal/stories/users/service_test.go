package users

import (
	"context"
	"errors"
	"testing"
)

type fakeUserStorage struct {
	byID     map[int64]*User
	byWalNum map[string]*User
	created  []User
}

func (f *fakeUserStorage) GetUser(_ context.Context, criteria GetCriteria) (*User, error) {
	if criteria.WalNum != nil {
		return f.byWalNum[*criteria.WalNum], nil
	}
	if criteria.ID != nil {
		return f.byID[*criteria.ID], nil
	}
	return nil, nil
}

func (f *fakeUserStorage) CreateUser(_ context.Context, user User) (*User, error) {
	f.created = append(f.created, user)
	u := user
	return &u, nil
}

func (f *fakeUserStorage) ListUsers(_ context.Context, _ ListCriteria) ([]*User, error) {
	var out []*User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func TestResolveAccount(t *testing.T) {
	known := &User{ID: 100500, WalNum: "A1B2C3D4"}
	storage := &fakeUserStorage{
		byID:     map[int64]*User{100500: known},
		byWalNum: map[string]*User{"A1B2C3D4": known},
	}
	s := NewService(storage)

	tests := []struct {
		name    string
		token   string
		wantID  int64
		wantErr error
	}{
		{
			name:   "by wallet number",
			token:  "A1B2C3D4",
			wantID: 100500,
		},
		{
			name:   "by telegram id",
			token:  "100500",
			wantID: 100500,
		},
		{
			name:    "unknown wallet number",
			token:   "ZZZZZZZZ",
			wantErr: ErrUserNotFound,
		},
		{
			name:    "unknown id",
			token:   "42",
			wantErr: ErrUserNotFound,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.ResolveAccount(context.Background(), tt.token)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveAccount(%q) error = %v, want %v", tt.token, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAccount(%q) error = %v", tt.token, err)
			}
			if user.ID != tt.wantID {
				t.Errorf("ResolveAccount(%q).ID = %d, want %d", tt.token, user.ID, tt.wantID)
			}
		})
	}
}

func TestGetOrCreateUser(t *testing.T) {
	known := &User{ID: 1, WalNum: "11111111"}
	storage := &fakeUserStorage{
		byID:     map[int64]*User{1: known},
		byWalNum: map[string]*User{},
	}
	s := NewService(storage)

	t.Run("existing user returned as is", func(t *testing.T) {
		user, err := s.GetOrCreateUser(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetOrCreateUser() error = %v", err)
		}
		if user.WalNum != "11111111" {
			t.Errorf("GetOrCreateUser().WalNum = %q, want existing wallet", user.WalNum)
		}
		if len(storage.created) != 0 {
			t.Errorf("GetOrCreateUser() created %d users for existing id", len(storage.created))
		}
	})

	t.Run("new user gets fresh wallet number", func(t *testing.T) {
		user, err := s.GetOrCreateUser(context.Background(), 2)
		if err != nil {
			t.Fatalf("GetOrCreateUser() error = %v", err)
		}
		if user.ID != 2 {
			t.Errorf("GetOrCreateUser().ID = %d, want 2", user.ID)
		}
		if len(user.WalNum) != walNumLength {
			t.Errorf("GetOrCreateUser().WalNum = %q, want %d characters", user.WalNum, walNumLength)
		}
		if user.SumTMT != 0 || user.SumUSDT != 0 {
			t.Errorf("GetOrCreateUser() balances = %v/%v, want zero", user.SumTMT, user.SumUSDT)
		}
	})
}

func TestUserBalance(t *testing.T) {
	u := &User{SumTMT: 150, SumUSDT: 7.5}

	if got := u.Balance("TMT"); got != 150 {
		t.Errorf("Balance(TMT) = %v, want 150", got)
	}
	if got := u.Balance("USDT"); got != 7.5 {
		t.Errorf("Balance(USDT) = %v, want 7.5", got)
	}
}
