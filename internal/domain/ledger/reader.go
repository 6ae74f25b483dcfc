package ledger

import (
	"context"
)

// Reader pulls immutable snapshots of ledger records for a scope and
// window. Implementations do pure data access with no business logic.
// A storage failure surfaces as DataUnavailable, never as an empty
// snapshot, so callers cannot mistake an outage for a zero result.
type Reader interface {
	FetchTransactions(ctx context.Context, scope Scope, window Window) ([]TransactionRecord, error)
	FetchVisits(ctx context.Context, scope Scope, window Window) ([]VisitRecord, error)
	FetchReviews(ctx context.Context, scope Scope, window Window) ([]Review, error)
}
