package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vetcare/backend/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormPractitionerRepository_FetchPractitioner(t *testing.T) {
	t.Run("finds existing practitioner", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPractitionerRepository(db)

		id := uuid.New()
		branchID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "full_name", "branch_id", "is_active"}).
			AddRow(id, "Dr. Adams", branchID, true)

		mock.ExpectQuery(`SELECT \* FROM "practitioners" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		p, err := repo.FetchPractitioner(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "Dr. Adams", p.FullName)
		assert.Equal(t, branchID, p.BranchID)
		assert.True(t, p.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing practitioner maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPractitionerRepository(db)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "practitioners" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FetchPractitioner(context.Background(), id)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrNotFound.Code, de.Code)
	})

	t.Run("connection failure maps to data unavailable", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPractitionerRepository(db)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "practitioners"`).
			WithArgs(id, 1).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.FetchPractitioner(context.Background(), id)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrDataUnavailable.Code, de.Code)
	})
}

func TestGormPractitionerRepository_CommitPractitionerBranch(t *testing.T) {
	t.Run("updates the branch assignment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPractitionerRepository(db)

		id := uuid.New()
		newBranch := uuid.New()
		mock.ExpectExec(`UPDATE "practitioners" SET .* WHERE id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CommitPractitionerBranch(context.Background(), id, newBranch)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPractitionerRepository(db)

		mock.ExpectExec(`UPDATE "practitioners" SET .* WHERE id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CommitPractitionerBranch(context.Background(), uuid.New(), uuid.New())

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrNotFound.Code, de.Code)
	})
}

func TestGormTierRepository_FetchTierTable(t *testing.T) {
	t.Run("assembles a validated table", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTierRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "min_spend", "benefits"}).
			AddRow(uuid.New(), "Basic", decimal.Zero, "").
			AddRow(uuid.New(), "Silver", decimal.NewFromInt(500), "").
			AddRow(uuid.New(), "Gold", decimal.NewFromInt(2000), "priority booking")

		mock.ExpectQuery(`SELECT \* FROM "membership_tiers" ORDER BY min_spend`).
			WillReturnRows(rows)

		table, err := repo.FetchTierTable(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, table.Len())
		tier, err := table.ClassifyTier(decimal.NewFromInt(750))
		require.NoError(t, err)
		assert.Equal(t, "Silver", tier.Name)
	})

	t.Run("corrupt stored thresholds surface as validation failure", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTierRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "min_spend", "benefits"}).
			AddRow(uuid.New(), "Silver", decimal.NewFromInt(500), "").
			AddRow(uuid.New(), "Gold", decimal.NewFromInt(500), "")

		mock.ExpectQuery(`SELECT \* FROM "membership_tiers" ORDER BY min_spend`).
			WillReturnRows(rows)

		_, err := repo.FetchTierTable(context.Background())

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrValidationFailure.Code, de.Code)
	})

	t.Run("query failure maps to data unavailable", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTierRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "membership_tiers"`).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.FetchTierTable(context.Background())

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrDataUnavailable.Code, de.Code)
	})
}

func TestGormBranchRepository_FetchBranches(t *testing.T) {
	t.Run("returns branches ordered by name", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormBranchRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.New(), "Downtown").
			AddRow(uuid.New(), "Riverside")

		mock.ExpectQuery(`SELECT \* FROM "branches" ORDER BY name`).
			WillReturnRows(rows)

		branches, err := repo.FetchBranches(context.Background())

		require.NoError(t, err)
		require.Len(t, branches, 2)
		assert.Equal(t, "Downtown", branches[0].Name)
	})
}

func TestGormCustomerRepository_FetchCustomer(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "full_name", "phone", "email", "total_spend"}).
			AddRow(id, "Pat Cooper", "555-0101", "pat@example.com", decimal.NewFromInt(1250))

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		customer, err := repo.FetchCustomer(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "Pat Cooper", customer.FullName)
		assert.True(t, customer.TotalSpend.Equal(decimal.NewFromInt(1250)))
	})

	t.Run("missing customer maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FetchCustomer(context.Background(), id)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.ErrNotFound.Code, de.Code)
	})
}
