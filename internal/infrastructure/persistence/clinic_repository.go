package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vetcare/backend/internal/domain/clinic"
	"github.com/vetcare/backend/internal/domain/shared"
	"github.com/vetcare/backend/internal/infrastructure/persistence/models"
)

// GormBranchRepository implements clinic.BranchRepository
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FetchBranch returns one branch by id
func (r *GormBranchRepository) FetchBranch(ctx context.Context, id uuid.UUID) (*clinic.Branch, error) {
	var row models.BranchModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("branch %s not found", id))
		}
		return nil, dataUnavailable("fetch branch", err)
	}
	return row.ToDomain(), nil
}

// FetchBranches returns all branches ordered by name
func (r *GormBranchRepository) FetchBranches(ctx context.Context) ([]clinic.Branch, error) {
	var rows []models.BranchModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, dataUnavailable("fetch branches", err)
	}
	branches := make([]clinic.Branch, len(rows))
	for i := range rows {
		branches[i] = *rows[i].ToDomain()
	}
	return branches, nil
}

// GormPractitionerRepository implements clinic.PractitionerRepository
type GormPractitionerRepository struct {
	db *gorm.DB
}

// NewGormPractitionerRepository creates a new GormPractitionerRepository
func NewGormPractitionerRepository(db *gorm.DB) *GormPractitionerRepository {
	return &GormPractitionerRepository{db: db}
}

// FetchPractitioner returns one practitioner by id
func (r *GormPractitionerRepository) FetchPractitioner(ctx context.Context, id uuid.UUID) (*clinic.Practitioner, error) {
	var row models.PractitionerModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("practitioner %s not found", id))
		}
		return nil, dataUnavailable("fetch practitioner", err)
	}
	return row.ToDomain(), nil
}

// CommitPractitionerBranch writes the new branch assignment. The transfer
// service already holds the per-employee exclusion, so this is a plain
// targeted update.
func (r *GormPractitionerRepository) CommitPractitionerBranch(ctx context.Context, id uuid.UUID, newBranchID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.PractitionerModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"branch_id":  newBranchID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return dataUnavailable("commit practitioner branch", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("practitioner %s not found", id))
	}
	return nil
}

// GormCustomerRepository implements clinic.CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FetchCustomer returns one customer by id
func (r *GormCustomerRepository) FetchCustomer(ctx context.Context, id uuid.UUID) (*clinic.Customer, error) {
	var row models.CustomerModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("customer %s not found", id))
		}
		return nil, dataUnavailable("fetch customer", err)
	}
	return row.ToDomain(), nil
}

// GormTierRepository implements clinic.TierRepository
type GormTierRepository struct {
	db *gorm.DB
}

// NewGormTierRepository creates a new GormTierRepository
func NewGormTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

// FetchTierTable loads every tier and assembles the validated table value
func (r *GormTierRepository) FetchTierTable(ctx context.Context) (clinic.TierTable, error) {
	var rows []models.MembershipTierModel
	if err := r.db.WithContext(ctx).Order("min_spend").Find(&rows).Error; err != nil {
		return clinic.TierTable{}, dataUnavailable("fetch tier table", err)
	}
	tiers := make([]clinic.MembershipTier, len(rows))
	for i := range rows {
		tiers[i] = rows[i].ToDomain()
	}
	return clinic.NewTierTable(tiers)
}

// SaveTier persists one edited tier row. The policy service validates the
// full replacement table before calling this.
func (r *GormTierRepository) SaveTier(ctx context.Context, tier clinic.MembershipTier) error {
	result := r.db.WithContext(ctx).
		Model(&models.MembershipTierModel{}).
		Where("id = ?", tier.ID).
		Updates(map[string]any{
			"min_spend":  tier.MinSpend,
			"benefits":   tier.Benefits,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return dataUnavailable("save tier", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("membership tier %s not found", tier.ID))
	}
	return nil
}
