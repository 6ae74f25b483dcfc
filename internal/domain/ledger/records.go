package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemKind distinguishes billable line item types.
type ItemKind string

const (
	ItemKindService ItemKind = "service"
	ItemKindProduct ItemKind = "product"
)

// ActivityKind is the type of clinical activity recorded for a visit.
type ActivityKind string

const (
	ActivityExamination ActivityKind = "examination"
	ActivityVaccination ActivityKind = "vaccination"
)

// LineItem is one billed line on an invoice.
type LineItem struct {
	Name      string
	Kind      ItemKind
	Category  string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Amount returns quantity times unit price, unrounded. Rounding happens
// once at the end of each aggregation, never per line.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// Validate checks the line item invariants.
func (li LineItem) Validate() error {
	if li.Kind != ItemKindService && li.Kind != ItemKindProduct {
		return fmt.Errorf("unknown item kind %q", li.Kind)
	}
	if li.Quantity <= 0 {
		return errors.New("line item quantity must be positive")
	}
	if li.UnitPrice.IsNegative() {
		return errors.New("line item unit price cannot be negative")
	}
	return nil
}

// TransactionRecord is an immutable snapshot of one settled invoice.
// Display names are denormalized by the reader so report computations
// never need follow-up lookups against the record store.
type TransactionRecord struct {
	ID               uuid.UUID
	BranchID         uuid.UUID
	CustomerID       uuid.UUID
	PractitionerID   uuid.UUID
	PractitionerName string
	CustomerName     string
	CustomerPhone    string
	IssuedAt         time.Time
	Items            []LineItem
	Total            decimal.Decimal
	Discount         decimal.Decimal
	Final            decimal.Decimal
}

// Validate checks the invoice amount invariant: final = total - discount
// and final is never negative.
func (t TransactionRecord) Validate() error {
	if !t.Final.Equal(t.Total.Sub(t.Discount)) {
		return errors.New("final amount must equal total minus discount")
	}
	if t.Final.IsNegative() {
		return errors.New("final amount cannot be negative")
	}
	for _, item := range t.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// VisitRecord is an immutable snapshot of one clinical visit.
type VisitRecord struct {
	ID               uuid.UUID
	VisitAt          time.Time
	BranchID         uuid.UUID
	PractitionerID   uuid.UUID
	PractitionerName string
	PetID            uuid.UUID
	PetName          string
	Activity         ActivityKind
}

// Review is an immutable customer satisfaction record. Scores are
// integers in [1,5] on three axes.
type Review struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	BranchID      uuid.UUID
	ServiceScore  int
	AttitudeScore int
	OverallScore  int
	Comment       string
	CreatedAt     time.Time
}

// Validate checks the score ranges.
func (r Review) Validate() error {
	for _, score := range []int{r.ServiceScore, r.AttitudeScore, r.OverallScore} {
		if score < 1 || score > 5 {
			return fmt.Errorf("review score %d out of range [1,5]", score)
		}
	}
	return nil
}
