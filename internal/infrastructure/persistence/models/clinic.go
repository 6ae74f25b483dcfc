package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/clinic"
)

// BranchModel maps branches to the database
type BranchModel struct {
	BaseModel
	Name    string `gorm:"not null"`
	Address string
	Phone   string
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the model to a domain Branch
func (m *BranchModel) ToDomain() *clinic.Branch {
	return &clinic.Branch{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Phone:      m.Phone,
	}
}

// PractitionerModel maps practitioners to the database
type PractitionerModel struct {
	BaseModel
	FullName string    `gorm:"not null"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PractitionerModel) TableName() string {
	return "practitioners"
}

// ToDomain converts the model to a domain Practitioner
func (m *PractitionerModel) ToDomain() *clinic.Practitioner {
	return &clinic.Practitioner{
		BaseEntity: m.BaseModel.ToDomain(),
		FullName:   m.FullName,
		BranchID:   m.BranchID,
		IsActive:   m.IsActive,
	}
}

// CustomerModel maps customers to the database. TotalSpend is maintained by
// the external billing write path; this engine only reads it.
type CustomerModel struct {
	BaseModel
	FullName   string          `gorm:"not null"`
	Phone      string          `gorm:"index"`
	Email      string
	TotalSpend decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *clinic.Customer {
	return &clinic.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		FullName:   m.FullName,
		Phone:      m.Phone,
		Email:      m.Email,
		TotalSpend: m.TotalSpend,
	}
}

// PetModel maps pets to the database
type PetModel struct {
	BaseModel
	Name       string    `gorm:"not null"`
	Species    string
	Breed      string
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (PetModel) TableName() string {
	return "pets"
}

// ToDomain converts the model to a domain Pet
func (m *PetModel) ToDomain() *clinic.Pet {
	return &clinic.Pet{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Species:    m.Species,
		Breed:      m.Breed,
		CustomerID: m.CustomerID,
	}
}

// MembershipTierModel maps membership tiers to the database
type MembershipTierModel struct {
	BaseModel
	Name     string          `gorm:"not null;uniqueIndex"`
	MinSpend decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Benefits string
}

// TableName returns the table name for GORM
func (MembershipTierModel) TableName() string {
	return "membership_tiers"
}

// ToDomain converts the model to a domain MembershipTier
func (m *MembershipTierModel) ToDomain() clinic.MembershipTier {
	return clinic.MembershipTier{
		ID:       m.ID,
		Name:     m.Name,
		MinSpend: m.MinSpend,
		Benefits: m.Benefits,
	}
}

// FromDomainTier populates the model from a domain MembershipTier
func (m *MembershipTierModel) FromDomainTier(t clinic.MembershipTier) {
	m.ID = t.ID
	m.Name = t.Name
	m.MinSpend = t.MinSpend
	m.Benefits = t.Benefits
}
