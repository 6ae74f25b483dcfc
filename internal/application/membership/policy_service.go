package membership

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vetcare/backend/internal/domain/clinic"
)

// PolicyService owns the active membership tier table and classifies
// customers against it. The table is shared, low-write, high-read state:
// classification reads proceed concurrently against the committed table
// while an update prepares a replacement, then the new table is swapped in
// whole. A read never observes a mix of old and new thresholds.
type PolicyService struct {
	tiers     clinic.TierRepository
	customers clinic.CustomerRepository
	logger    *zap.Logger

	mu     sync.RWMutex
	table  clinic.TierTable
	loaded bool
}

// NewPolicyService creates a new PolicyService. The tier table is loaded
// lazily on first use.
func NewPolicyService(tiers clinic.TierRepository, customers clinic.CustomerRepository, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		tiers:     tiers,
		customers: customers,
		logger:    logger,
	}
}

// TierResponse describes one membership tier.
type TierResponse struct {
	TierID   string  `json:"tierId"`
	Name     string  `json:"name"`
	MinSpend float64 `json:"minSpend"`
	Benefits string  `json:"benefits"`
}

// CustomerTierResponse reports a customer's derived tier.
type CustomerTierResponse struct {
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	TotalSpend   float64 `json:"totalSpend"`
	TierName     string  `json:"tierName"`
	Benefits     string  `json:"benefits"`
}

// TierPolicyUpdateRequest carries an administrative tier edit. The tier id
// comes from the request path.
type TierPolicyUpdateRequest struct {
	NewMinSpend float64 `json:"newMinSpend" binding:"gte=0"`
	NewBenefits string  `json:"newBenefits"`
}

func toTierResponse(t clinic.MembershipTier) TierResponse {
	return TierResponse{
		TierID:   t.ID.String(),
		Name:     t.Name,
		MinSpend: t.MinSpend.InexactFloat64(),
		Benefits: t.Benefits,
	}
}

// activeTable returns the committed tier table, loading it from the
// repository on first use.
func (s *PolicyService) activeTable(ctx context.Context) (clinic.TierTable, error) {
	s.mu.RLock()
	if s.loaded {
		table := s.table
		s.mu.RUnlock()
		return table, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.table, nil
	}
	table, err := s.tiers.FetchTierTable(ctx)
	if err != nil {
		return clinic.TierTable{}, err
	}
	s.table = table
	s.loaded = true
	return s.table, nil
}

// GetTierTable returns the active tiers in ascending threshold order.
func (s *PolicyService) GetTierTable(ctx context.Context) ([]TierResponse, error) {
	table, err := s.activeTable(ctx)
	if err != nil {
		return nil, err
	}
	tiers := table.Tiers()
	responses := make([]TierResponse, len(tiers))
	for i, t := range tiers {
		responses[i] = toTierResponse(t)
	}
	return responses, nil
}

// ClassifyCustomer derives a customer's tier from cumulative spend and the
// active table. The tier is recomputed on every read, never stored, so a
// policy edit reclassifies every customer immediately.
func (s *PolicyService) ClassifyCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerTierResponse, error) {
	customer, err := s.customers.FetchCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	table, err := s.activeTable(ctx)
	if err != nil {
		return nil, err
	}
	tier, err := table.ClassifyTier(customer.TotalSpend)
	if err != nil {
		return nil, err
	}
	return &CustomerTierResponse{
		CustomerID:   customer.ID.String(),
		CustomerName: customer.FullName,
		TotalSpend:   customer.TotalSpend.InexactFloat64(),
		TierName:     tier.Name,
		Benefits:     tier.Benefits,
	}, nil
}

// UpdateTier applies an administrative edit to one tier under the single
// writer critical section. The replacement table is validated in full
// before anything is persisted or swapped in; a rejected update leaves
// both the stored and the in-memory table untouched.
func (s *PolicyService) UpdateTier(ctx context.Context, tierID uuid.UUID, req TierPolicyUpdateRequest) (*TierResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		table, err := s.tiers.FetchTierTable(ctx)
		if err != nil {
			return nil, err
		}
		s.table = table
		s.loaded = true
	}

	updated, err := s.table.WithUpdatedTier(tierID, decimal.NewFromFloat(req.NewMinSpend), req.NewBenefits)
	if err != nil {
		return nil, err
	}
	tier, err := updated.FindByID(tierID)
	if err != nil {
		return nil, err
	}
	if err := s.tiers.SaveTier(ctx, tier); err != nil {
		return nil, err
	}

	s.table = updated
	s.logger.Info("membership tier updated",
		zap.String("tier_id", tierID.String()),
		zap.String("name", tier.Name),
		zap.String("min_spend", tier.MinSpend.String()))
	resp := toTierResponse(tier)
	return &resp, nil
}
