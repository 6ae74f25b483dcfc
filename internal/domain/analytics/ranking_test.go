package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopSellingProducts(t *testing.T) {
	sales := []ProductSales{
		{Name: "Dewormer", Category: "parasite-control", TotalQuantity: 7},
		{Name: "Flea Collar", Category: "parasite-control", TotalQuantity: 12},
		{Name: "Puppy Chow", Category: "nutrition", TotalQuantity: 7},
	}

	t.Run("orders by quantity descending", func(t *testing.T) {
		ranked := TopSellingProducts(sales, 3)

		require.Len(t, ranked, 3)
		assert.Equal(t, "Flea Collar", ranked[0].Name)
	})

	t.Run("breaks quantity ties by name ascending regardless of input order", func(t *testing.T) {
		forward := TopSellingProducts(sales, 3)
		reversed := TopSellingProducts([]ProductSales{sales[2], sales[1], sales[0]}, 3)

		assert.Equal(t, forward, reversed)
		assert.Equal(t, "Dewormer", forward[1].Name)
		assert.Equal(t, "Puppy Chow", forward[2].Name)
	})

	t.Run("truncates to the requested size", func(t *testing.T) {
		ranked := TopSellingProducts(sales, 1)

		require.Len(t, ranked, 1)
		assert.Equal(t, "Flea Collar", ranked[0].Name)
	})

	t.Run("n larger than the set returns the full set", func(t *testing.T) {
		assert.Len(t, TopSellingProducts(sales, 50), 3)
	})

	t.Run("n of zero means all entries", func(t *testing.T) {
		assert.Len(t, TopSellingProducts(sales, 0), 3)
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		TopSellingProducts(sales, 3)

		assert.Equal(t, "Dewormer", sales[0].Name)
	})
}

func TestTopCustomers(t *testing.T) {
	spends := []CustomerSpend{
		{CustomerName: "alice", TotalSpendAtBranch: decimal.NewFromInt(300)},
		{CustomerName: "Bob", TotalSpendAtBranch: decimal.NewFromInt(300)},
		{CustomerName: "Carol", TotalSpendAtBranch: decimal.NewFromInt(900)},
	}

	t.Run("highest spender first", func(t *testing.T) {
		ranked := TopCustomers(spends, 3)

		assert.Equal(t, "Carol", ranked[0].CustomerName)
	})

	t.Run("ties compare names case-insensitively", func(t *testing.T) {
		ranked := TopCustomers(spends, 3)

		assert.Equal(t, "alice", ranked[1].CustomerName)
		assert.Equal(t, "Bob", ranked[2].CustomerName)
	})

	t.Run("empty input yields empty ranking", func(t *testing.T) {
		assert.Empty(t, TopCustomers(nil, 5))
	})
}
