package storage

import (
	"context"
	"encoding/json"
	"testing"
)

func TestFlowStates(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	t.Run("missing state is nil", func(t *testing.T) {
		raw, err := s.GetFlowState(ctx, 42, "sumadd")
		if err != nil {
			t.Fatalf("GetFlowState() error = %v", err)
		}
		if raw != nil {
			t.Errorf("GetFlowState() = %s, want nil", raw)
		}
	})

	t.Run("set get round trip", func(t *testing.T) {
		in := json.RawMessage(`{"mssg_id":12,"wal_num":"A1B2C3D4"}`)
		if err := s.SetFlowState(ctx, 42, "sumadd", in); err != nil {
			t.Fatalf("SetFlowState() error = %v", err)
		}

		out, err := s.GetFlowState(ctx, 42, "sumadd")
		if err != nil {
			t.Fatalf("GetFlowState() error = %v", err)
		}
		if string(out) != string(in) {
			t.Errorf("GetFlowState() = %s, want %s", out, in)
		}
	})

	t.Run("set overwrites previous snapshot", func(t *testing.T) {
		next := json.RawMessage(`{"mssg_id":12,"wal_num":"A1B2C3D4","sum":50}`)
		if err := s.SetFlowState(ctx, 42, "sumadd", next); err != nil {
			t.Fatalf("SetFlowState() error = %v", err)
		}

		out, err := s.GetFlowState(ctx, 42, "sumadd")
		if err != nil {
			t.Fatalf("GetFlowState() error = %v", err)
		}
		if string(out) != string(next) {
			t.Errorf("GetFlowState() = %s, want %s", out, next)
		}
	})

	t.Run("kinds are independent", func(t *testing.T) {
		raw, err := s.GetFlowState(ctx, 42, "transfer")
		if err != nil {
			t.Fatalf("GetFlowState() error = %v", err)
		}
		if raw != nil {
			t.Errorf("GetFlowState(transfer) = %s, want nil", raw)
		}
	})

	t.Run("delete removes snapshot", func(t *testing.T) {
		if err := s.DeleteFlowState(ctx, 42, "sumadd"); err != nil {
			t.Fatalf("DeleteFlowState() error = %v", err)
		}
		raw, err := s.GetFlowState(ctx, 42, "sumadd")
		if err != nil {
			t.Fatalf("GetFlowState() error = %v", err)
		}
		if raw != nil {
			t.Errorf("GetFlowState() after delete = %s, want nil", raw)
		}
	})
}
