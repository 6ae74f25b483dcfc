package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// sortByMetricDesc orders entries by metric descending. Equal metrics are
// broken by display name ascending, compared case-insensitively with plain
// byte ordering so identical inputs always rank identically regardless of
// input order or locale. Names that fold to the same string fall back to
// raw byte order.
func sortByMetricDesc[T any](items []T, metric func(T) decimal.Decimal, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := metric(items[i]), metric(items[j])
		if !mi.Equal(mj) {
			return mi.GreaterThan(mj)
		}
		ni, nj := name(items[i]), name(items[j])
		fi, fj := strings.ToLower(ni), strings.ToLower(nj)
		if fi != fj {
			return fi < fj
		}
		return ni < nj
	})
}

// TopN returns the n highest entries by metric, ordered descending with
// the name tie-break. n <= 0 means all entries; n larger than the set
// returns the full set. The input slice is not modified.
func TopN[T any](items []T, n int, metric func(T) decimal.Decimal, name func(T) string) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)
	sortByMetricDesc(ranked, metric, name)
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

// TopSellingProducts ranks product sales by units moved.
func TopSellingProducts(sales []ProductSales, n int) []ProductSales {
	return TopN(sales, n,
		func(p ProductSales) decimal.Decimal { return decimal.NewFromInt(p.TotalQuantity) },
		func(p ProductSales) string { return p.Name })
}

// TopCustomers ranks customer spend totals.
func TopCustomers(spends []CustomerSpend, n int) []CustomerSpend {
	return TopN(spends, n,
		func(c CustomerSpend) decimal.Decimal { return c.TotalSpendAtBranch },
		func(c CustomerSpend) string { return c.CustomerName })
}
