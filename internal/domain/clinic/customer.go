package clinic

import (
	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/shared"
)

// Customer represents a pet owner. The cumulative spend figure is maintained
// by the external billing write path; this engine only reads it. The
// membership tier is never stored on the customer: it is recomputed on read
// from spend and the active tier table, so policy edits can never leave a
// stale tier value behind.
type Customer struct {
	shared.BaseEntity
	FullName   string
	Phone      string
	Email      string
	TotalSpend decimal.Decimal
}
