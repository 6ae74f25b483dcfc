package membership

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vetcare/backend/internal/domain/clinic"
	"github.com/vetcare/backend/internal/domain/shared"
)

type mockTierRepo struct {
	mock.Mock
}

func (m *mockTierRepo) FetchTierTable(ctx context.Context) (clinic.TierTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(clinic.TierTable), args.Error(1)
}

func (m *mockTierRepo) SaveTier(ctx context.Context, tier clinic.MembershipTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) FetchCustomer(ctx context.Context, id uuid.UUID) (*clinic.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clinic.Customer), args.Error(1)
}

func fixtureTiers() []clinic.MembershipTier {
	return []clinic.MembershipTier{
		{ID: uuid.New(), Name: "Basic", MinSpend: decimal.Zero},
		{ID: uuid.New(), Name: "Silver", MinSpend: decimal.NewFromInt(500)},
		{ID: uuid.New(), Name: "Gold", MinSpend: decimal.NewFromInt(2000), Benefits: "priority booking"},
	}
}

func newService(t *testing.T, tiers []clinic.MembershipTier) (*PolicyService, *mockTierRepo, *mockCustomerRepo) {
	t.Helper()
	tierRepo := new(mockTierRepo)
	tierRepo.On("FetchTierTable", mock.Anything).
		Return(clinic.MustNewTierTable(tiers), nil)
	customerRepo := new(mockCustomerRepo)
	return NewPolicyService(tierRepo, customerRepo, zap.NewNop()), tierRepo, customerRepo
}

func TestClassifyCustomer(t *testing.T) {
	tiers := fixtureTiers()

	classify := func(t *testing.T, spend int64) *CustomerTierResponse {
		t.Helper()
		svc, _, customerRepo := newService(t, tiers)
		customer := &clinic.Customer{
			BaseEntity: shared.NewBaseEntity(),
			FullName:   "Pat",
			TotalSpend: decimal.NewFromInt(spend),
		}
		customerRepo.On("FetchCustomer", mock.Anything, customer.ID).Return(customer, nil)

		resp, err := svc.ClassifyCustomer(context.Background(), customer.ID)
		require.NoError(t, err)
		return resp
	}

	t.Run("spend at the threshold reaches the tier", func(t *testing.T) {
		assert.Equal(t, "Silver", classify(t, 500).TierName)
	})

	t.Run("spend just under the next threshold stays put", func(t *testing.T) {
		assert.Equal(t, "Silver", classify(t, 1999).TierName)
	})

	t.Run("spend at the top threshold is the top tier", func(t *testing.T) {
		resp := classify(t, 2000)
		assert.Equal(t, "Gold", resp.TierName)
		assert.Equal(t, "priority booking", resp.Benefits)
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		svc, _, customerRepo := newService(t, tiers)
		id := uuid.New()
		customerRepo.On("FetchCustomer", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.ClassifyCustomer(context.Background(), id)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrNotFound.Code, de.Code)
	})
}

func TestUpdateTier(t *testing.T) {
	t.Run("applies a valid edit and reclassifies on next read", func(t *testing.T) {
		tiers := fixtureTiers()
		svc, tierRepo, customerRepo := newService(t, tiers)
		tierRepo.On("SaveTier", mock.Anything, mock.Anything).Return(nil)

		customer := &clinic.Customer{
			BaseEntity: shared.NewBaseEntity(),
			FullName:   "Pat",
			TotalSpend: decimal.NewFromInt(800),
		}
		customerRepo.On("FetchCustomer", mock.Anything, customer.ID).Return(customer, nil)

		before, err := svc.ClassifyCustomer(context.Background(), customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Silver", before.TierName)

		// raising Silver's floor above the customer's spend demotes them
		resp, err := svc.UpdateTier(context.Background(), tiers[1].ID,
			TierPolicyUpdateRequest{NewMinSpend: 1000})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, resp.MinSpend)

		after, err := svc.ClassifyCustomer(context.Background(), customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Basic", after.TierName)
	})

	t.Run("rejects an edit that breaks tier ordering with no write", func(t *testing.T) {
		tiers := fixtureTiers()
		svc, tierRepo, _ := newService(t, tiers)

		_, err := svc.UpdateTier(context.Background(), tiers[1].ID,
			TierPolicyUpdateRequest{NewMinSpend: 5000})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrValidationFailure.Code, de.Code)
		tierRepo.AssertNotCalled(t, "SaveTier", mock.Anything, mock.Anything)

		table, err := svc.GetTierTable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 500.0, table[1].MinSpend)
	})

	t.Run("persistence failure leaves the committed table in place", func(t *testing.T) {
		tiers := fixtureTiers()
		svc, tierRepo, _ := newService(t, tiers)
		tierRepo.On("SaveTier", mock.Anything, mock.Anything).Return(shared.ErrDataUnavailable)

		_, err := svc.UpdateTier(context.Background(), tiers[1].ID,
			TierPolicyUpdateRequest{NewMinSpend: 600})

		require.Error(t, err)
		table, tableErr := svc.GetTierTable(context.Background())
		require.NoError(t, tableErr)
		assert.Equal(t, 500.0, table[1].MinSpend)
	})

	t.Run("unknown tier id is not found", func(t *testing.T) {
		svc, _, _ := newService(t, fixtureTiers())

		_, err := svc.UpdateTier(context.Background(), uuid.New(),
			TierPolicyUpdateRequest{NewMinSpend: 600})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrNotFound.Code, de.Code)
	})

	t.Run("concurrent reads never observe a partial update", func(t *testing.T) {
		tiers := fixtureTiers()
		svc, tierRepo, _ := newService(t, tiers)
		tierRepo.On("SaveTier", mock.Anything, mock.Anything).Return(nil)

		// warm the table before racing readers against the writer
		_, err := svc.GetTierTable(context.Background())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					table, err := svc.GetTierTable(context.Background())
					assert.NoError(t, err)
					// either entirely old (500) or entirely new (700)
					min := table[1].MinSpend
					assert.True(t, min == 500.0 || min == 700.0, "saw %v", min)
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateTier(context.Background(), tiers[1].ID,
				TierPolicyUpdateRequest{NewMinSpend: 700})
			assert.NoError(t, err)
		}()
		wg.Wait()
	})
}
