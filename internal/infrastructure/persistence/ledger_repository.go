package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vetcare/backend/internal/domain/ledger"
	"github.com/vetcare/backend/internal/domain/shared"
	"github.com/vetcare/backend/internal/infrastructure/persistence/models"
)

// GormLedgerReader implements ledger.Reader over PostgreSQL. It fetches
// raw records with display names joined in; all grouping and arithmetic
// happens downstream in the pure computations. A query failure maps to
// DataUnavailable so callers can distinguish an outage from an empty
// window.
type GormLedgerReader struct {
	db *gorm.DB
}

// NewGormLedgerReader creates a new GormLedgerReader
func NewGormLedgerReader(db *gorm.DB) *GormLedgerReader {
	return &GormLedgerReader{db: db}
}

func dataUnavailable(op string, err error) error {
	return shared.NewDomainError(shared.ErrDataUnavailable.Code,
		fmt.Sprintf("%s: %v", op, err))
}

// FetchTransactions returns the invoices issued inside the half-open
// window, restricted to the scope, with line items and display names
// attached.
func (r *GormLedgerReader) FetchTransactions(ctx context.Context, scope ledger.Scope, window ledger.Window) ([]ledger.TransactionRecord, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("invoices.*, practitioners.full_name AS practitioner_name, customers.full_name AS customer_name, customers.phone AS customer_phone").
		Joins("LEFT JOIN practitioners ON practitioners.id = invoices.practitioner_id").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.issued_at >= ? AND invoices.issued_at < ?", window.Start, window.End).
		Preload("Items")
	if scope.BranchID != uuid.Nil {
		query = query.Where("invoices.branch_id = ?", scope.BranchID)
	}
	if scope.PractitionerID != uuid.Nil {
		query = query.Where("invoices.practitioner_id = ?", scope.PractitionerID)
	}
	if scope.CustomerID != uuid.Nil {
		query = query.Where("invoices.customer_id = ?", scope.CustomerID)
	}

	var rows []models.InvoiceModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, dataUnavailable("fetch transactions", err)
	}

	records := make([]ledger.TransactionRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

// FetchVisits returns the visits inside the half-open window, restricted
// to the scope, with practitioner and pet names attached.
func (r *GormLedgerReader) FetchVisits(ctx context.Context, scope ledger.Scope, window ledger.Window) ([]ledger.VisitRecord, error) {
	query := r.db.WithContext(ctx).
		Model(&models.VisitModel{}).
		Select("visits.*, practitioners.full_name AS practitioner_name, pets.name AS pet_name").
		Joins("JOIN practitioners ON practitioners.id = visits.practitioner_id").
		Joins("JOIN pets ON pets.id = visits.pet_id").
		Where("visits.visit_at >= ? AND visits.visit_at < ?", window.Start, window.End)
	if scope.BranchID != uuid.Nil {
		query = query.Where("visits.branch_id = ?", scope.BranchID)
	}
	if scope.PractitionerID != uuid.Nil {
		query = query.Where("visits.practitioner_id = ?", scope.PractitionerID)
	}

	var rows []models.VisitModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, dataUnavailable("fetch visits", err)
	}

	records := make([]ledger.VisitRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

// FetchReviews returns the reviews created inside the half-open window,
// restricted to the scope.
func (r *GormLedgerReader) FetchReviews(ctx context.Context, scope ledger.Scope, window ledger.Window) ([]ledger.Review, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("reviews.created_at >= ? AND reviews.created_at < ?", window.Start, window.End)
	if scope.BranchID != uuid.Nil {
		query = query.Where("reviews.branch_id = ?", scope.BranchID)
	}
	if scope.CustomerID != uuid.Nil {
		query = query.Where("reviews.customer_id = ?", scope.CustomerID)
	}

	var rows []models.ReviewModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, dataUnavailable("fetch reviews", err)
	}

	records := make([]ledger.Review, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}
