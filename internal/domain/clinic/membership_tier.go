package clinic

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/shared"
)

// MembershipTier is a named customer level defined by a minimum cumulative
// spend threshold. Tiers partition the spend axis: each tier covers
// [MinSpend, next tier's MinSpend).
type MembershipTier struct {
	ID       uuid.UUID
	Name     string
	MinSpend decimal.Decimal
	Benefits string
}

// TierTable is a Value Object holding the full set of membership tiers,
// sorted by minimum spend ascending. TierTable is immutable - updates
// return a new table, so concurrent readers keep classifying against a
// consistent set of thresholds while a replacement table is prepared.
type TierTable struct {
	tiers []MembershipTier
}

// NewTierTable builds a tier table from an unordered set of tiers.
// It sorts by minimum spend and enforces the ordering invariant:
// at least one tier, no negative thresholds, strictly increasing
// minimum spends (equal thresholds would make two tiers overlap).
func NewTierTable(tiers []MembershipTier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
			"tier table must contain at least one tier")
	}

	sorted := make([]MembershipTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinSpend.LessThan(sorted[j].MinSpend)
	})

	for i, tier := range sorted {
		if tier.Name == "" {
			return TierTable{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
				"tier name cannot be empty")
		}
		if tier.MinSpend.IsNegative() {
			return TierTable{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
				fmt.Sprintf("tier %q has a negative minimum spend", tier.Name))
		}
		if i > 0 && !sorted[i-1].MinSpend.LessThan(tier.MinSpend) {
			return TierTable{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
				fmt.Sprintf("tiers %q and %q have overlapping spend ranges",
					sorted[i-1].Name, tier.Name))
		}
	}

	return TierTable{tiers: sorted}, nil
}

// MustNewTierTable builds a tier table, panicking if validation fails.
// Use this only for static test fixtures where values are known to be valid.
func MustNewTierTable(tiers []MembershipTier) TierTable {
	table, err := NewTierTable(tiers)
	if err != nil {
		panic(fmt.Sprintf("invalid tier table: %v", err))
	}
	return table
}

// Tiers returns the tiers in ascending minimum-spend order.
// The returned slice is a copy; mutating it does not affect the table.
func (t TierTable) Tiers() []MembershipTier {
	out := make([]MembershipTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Len returns the number of tiers in the table.
func (t TierTable) Len() int {
	return len(t.tiers)
}

// IsEmpty returns true for the zero table.
func (t TierTable) IsEmpty() bool {
	return len(t.tiers) == 0
}

// FindByID returns the tier with the given id, or NotFound.
func (t TierTable) FindByID(id uuid.UUID) (MembershipTier, error) {
	for _, tier := range t.tiers {
		if tier.ID == id {
			return tier, nil
		}
	}
	return MembershipTier{}, shared.NewDomainError(shared.ErrNotFound.Code,
		fmt.Sprintf("membership tier %s not found", id))
}

// ClassifyTier returns the highest tier whose minimum spend is less than or
// equal to the given cumulative spend. A spend exactly equal to a tier's
// threshold belongs to that tier. A spend below every threshold falls into
// the lowest tier; a customer is never left without a tier.
func (t TierTable) ClassifyTier(spend decimal.Decimal) (MembershipTier, error) {
	if t.IsEmpty() {
		return MembershipTier{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
			"cannot classify against an empty tier table")
	}

	matched := t.tiers[0]
	for _, tier := range t.tiers[1:] {
		if tier.MinSpend.GreaterThan(spend) {
			break
		}
		matched = tier
	}
	return matched, nil
}

// WithUpdatedTier returns a new table with one tier's threshold and benefits
// replaced. The new table is revalidated in full; an update that would make
// two tiers' ranges overlap or invert their order is rejected and the
// receiver is left untouched.
func (t TierTable) WithUpdatedTier(id uuid.UUID, newMinSpend decimal.Decimal, newBenefits string) (TierTable, error) {
	updated := make([]MembershipTier, len(t.tiers))
	copy(updated, t.tiers)

	found := false
	for i := range updated {
		if updated[i].ID == id {
			updated[i].MinSpend = newMinSpend
			updated[i].Benefits = newBenefits
			found = true
			break
		}
	}
	if !found {
		return TierTable{}, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("membership tier %s not found", id))
	}

	return NewTierTable(updated)
}
