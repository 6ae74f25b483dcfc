package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/ledger"
)

// InvoiceModel maps settled invoices to the database. Invoices are
// append-only facts written by the billing path; this engine only reads
// them.
type InvoiceModel struct {
	BaseModel
	BranchID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	PractitionerID uuid.UUID          `gorm:"type:uuid;index"`
	IssuedAt       time.Time          `gorm:"not null;index"`
	Total          decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	Discount       decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0"`
	Final          decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	Items          []InvoiceItemModel `gorm:"foreignKey:InvoiceID"`

	// denormalized display columns filled by the reader's joins
	PractitionerName string `gorm:"->;-:migration"`
	CustomerName     string `gorm:"->;-:migration"`
	CustomerPhone    string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain TransactionRecord
func (m *InvoiceModel) ToDomain() ledger.TransactionRecord {
	items := make([]ledger.LineItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return ledger.TransactionRecord{
		ID:               m.ID,
		BranchID:         m.BranchID,
		CustomerID:       m.CustomerID,
		PractitionerID:   m.PractitionerID,
		PractitionerName: m.PractitionerName,
		CustomerName:     m.CustomerName,
		CustomerPhone:    m.CustomerPhone,
		IssuedAt:         m.IssuedAt,
		Items:            items,
		Total:            m.Total,
		Discount:         m.Discount,
		Final:            m.Final,
	}
}

// InvoiceItemModel maps billed line items to the database
type InvoiceItemModel struct {
	BaseModel
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"not null"`
	Kind      string          `gorm:"not null"`
	Category  string          `gorm:"not null;index"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the model to a domain LineItem
func (m *InvoiceItemModel) ToDomain() ledger.LineItem {
	return ledger.LineItem{
		Name:      m.Name,
		Kind:      ledger.ItemKind(m.Kind),
		Category:  m.Category,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}

// VisitModel maps clinical visits to the database
type VisitModel struct {
	BaseModel
	VisitAt        time.Time `gorm:"not null;index"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PractitionerID uuid.UUID `gorm:"type:uuid;not null;index"`
	PetID          uuid.UUID `gorm:"type:uuid;not null"`
	Activity       string    `gorm:"not null"`

	// denormalized display columns filled by the reader's joins
	PractitionerName string `gorm:"->;-:migration"`
	PetName          string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (VisitModel) TableName() string {
	return "visits"
}

// ToDomain converts the model to a domain VisitRecord
func (m *VisitModel) ToDomain() ledger.VisitRecord {
	return ledger.VisitRecord{
		ID:               m.ID,
		VisitAt:          m.VisitAt,
		BranchID:         m.BranchID,
		PractitionerID:   m.PractitionerID,
		PractitionerName: m.PractitionerName,
		PetID:            m.PetID,
		PetName:          m.PetName,
		Activity:         ledger.ActivityKind(m.Activity),
	}
}

// ReviewModel maps customer reviews to the database
type ReviewModel struct {
	BaseModel
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceScore  int       `gorm:"not null"`
	AttitudeScore int       `gorm:"not null"`
	OverallScore  int       `gorm:"not null;index"`
	Comment       string
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the model to a domain Review
func (m *ReviewModel) ToDomain() ledger.Review {
	return ledger.Review{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		BranchID:      m.BranchID,
		ServiceScore:  m.ServiceScore,
		AttitudeScore: m.AttitudeScore,
		OverallScore:  m.OverallScore,
		Comment:       m.Comment,
		CreatedAt:     m.CreatedAt,
	}
}
