package clinic

import (
	"context"

	"github.com/google/uuid"
)

// PractitionerRepository provides practitioner lookups and the single write
// this engine performs: committing a branch reassignment.
type PractitionerRepository interface {
	FetchPractitioner(ctx context.Context, id uuid.UUID) (*Practitioner, error)
	CommitPractitionerBranch(ctx context.Context, id uuid.UUID, newBranchID uuid.UUID) error
}

// BranchRepository provides read-only branch lookups.
type BranchRepository interface {
	FetchBranch(ctx context.Context, id uuid.UUID) (*Branch, error)
	FetchBranches(ctx context.Context) ([]Branch, error)
}

// CustomerRepository provides read-only customer lookups.
type CustomerRepository interface {
	FetchCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
}

// TierRepository loads and stores the membership tier table. FetchTierTable
// returns a snapshot of all tiers; SaveTier persists one edited row after
// the in-memory table swap has validated it.
type TierRepository interface {
	FetchTierTable(ctx context.Context) (TierTable, error)
	SaveTier(ctx context.Context, tier MembershipTier) error
}
