package ledger

import "context"

type (
	// Storage атомарно меняет балансы вместе с записью аудита.
	Storage interface {
		ApplySumUpdate(ctx context.Context, upd SummUpdate) (*SummUpdate, error)
		ExecuteTransfer(ctx context.Context, t Transfer) (*Transfer, error)
	}
)
