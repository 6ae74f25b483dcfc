// Package analytics contains the pure report computations. Every function
// here is side-effect free over an immutable snapshot fetched once per
// request, so report generation can fan out across workers without locking
// and running the same computation twice yields identical results.
package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/ledger"
)

// currencyScale is the number of decimal places of the smallest currency
// unit. Sums are accumulated unrounded and rounded half-to-even exactly
// once per aggregation, never per row, so rounding drift cannot accumulate.
const currencyScale = 2

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(currencyScale)
}

// DoctorRevenue summarizes invoiced revenue attributed to one practitioner.
type DoctorRevenue struct {
	DoctorID      uuid.UUID
	FullName      string
	TotalInvoices int64
	TotalRevenue  decimal.Decimal
}

// DoctorRevenues groups transactions by practitioner and sums invoice
// counts and final amounts. Practitioners with no invoices in the snapshot
// are omitted. Output is ordered by revenue descending with the standard
// name tie-break.
func DoctorRevenues(txs []ledger.TransactionRecord) []DoctorRevenue {
	grouped := make(map[uuid.UUID]*DoctorRevenue)
	for _, tx := range txs {
		if tx.PractitionerID == uuid.Nil {
			continue
		}
		row, ok := grouped[tx.PractitionerID]
		if !ok {
			row = &DoctorRevenue{
				DoctorID:     tx.PractitionerID,
				FullName:     tx.PractitionerName,
				TotalRevenue: decimal.Zero,
			}
			grouped[tx.PractitionerID] = row
		}
		row.TotalInvoices++
		row.TotalRevenue = row.TotalRevenue.Add(tx.Final)
	}

	rows := make([]DoctorRevenue, 0, len(grouped))
	for _, row := range grouped {
		row.TotalRevenue = roundMoney(row.TotalRevenue)
		rows = append(rows, *row)
	}
	sortByMetricDesc(rows,
		func(r DoctorRevenue) decimal.Decimal { return r.TotalRevenue },
		func(r DoctorRevenue) string { return r.FullName })
	return rows
}

// SystemRevenue is the system-wide revenue total. Unlike grouped reports
// it always yields exactly one row, zero-valued when the snapshot is empty.
type SystemRevenue struct {
	TotalSystemRevenue decimal.Decimal
}

// SystemRevenueTotal sums the final amount of every transaction in scope.
func SystemRevenueTotal(txs []ledger.TransactionRecord) SystemRevenue {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Final)
	}
	return SystemRevenue{TotalSystemRevenue: roundMoney(total)}
}

// VisitStatistics counts clinical visits. Counts are exact integers.
type VisitStatistics struct {
	TotalVisits int64
}

// CountVisits returns visit counts over the snapshot.
func CountVisits(visits []ledger.VisitRecord) VisitStatistics {
	return VisitStatistics{TotalVisits: int64(len(visits))}
}

// ProductRevenue summarizes product sales for one category tag.
type ProductRevenue struct {
	Category          string
	TotalSoldQuantity int64
	CategoryRevenue   decimal.Decimal
}

// ProductRevenues groups product-kind line items by category and sums
// quantities and line amounts. Categories with no sales are omitted.
// Output is ordered by category ascending for reproducibility.
func ProductRevenues(txs []ledger.TransactionRecord) []ProductRevenue {
	grouped := make(map[string]*ProductRevenue)
	for _, tx := range txs {
		for _, item := range tx.Items {
			if item.Kind != ledger.ItemKindProduct {
				continue
			}
			row, ok := grouped[item.Category]
			if !ok {
				row = &ProductRevenue{Category: item.Category, CategoryRevenue: decimal.Zero}
				grouped[item.Category] = row
			}
			row.TotalSoldQuantity += item.Quantity
			row.CategoryRevenue = row.CategoryRevenue.Add(item.Amount())
		}
	}

	rows := make([]ProductRevenue, 0, len(grouped))
	for _, row := range grouped {
		row.CategoryRevenue = roundMoney(row.CategoryRevenue)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// ProductSales summarizes units moved for one named product, the input
// shape for the top-selling ranking.
type ProductSales struct {
	Name          string
	Category      string
	TotalQuantity int64
}

// ProductSalesTotals groups product-kind line items by product name and
// sums quantities.
func ProductSalesTotals(txs []ledger.TransactionRecord) []ProductSales {
	grouped := make(map[string]*ProductSales)
	for _, tx := range txs {
		for _, item := range tx.Items {
			if item.Kind != ledger.ItemKindProduct {
				continue
			}
			row, ok := grouped[item.Name]
			if !ok {
				row = &ProductSales{Name: item.Name, Category: item.Category}
				grouped[item.Name] = row
			}
			row.TotalQuantity += item.Quantity
		}
	}

	rows := make([]ProductSales, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// ScheduleEntry is one visit on a practitioner's daily schedule.
type ScheduleEntry struct {
	AppointmentTime time.Time
	PetName         string
	Activity        ledger.ActivityKind
}

// DoctorSchedule lists a practitioner's visits in chronological order.
func DoctorSchedule(visits []ledger.VisitRecord) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(visits))
	for _, v := range visits {
		entries = append(entries, ScheduleEntry{
			AppointmentTime: v.VisitAt,
			PetName:         v.PetName,
			Activity:        v.Activity,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AppointmentTime.Before(entries[j].AppointmentTime)
	})
	return entries
}

// BranchPerformance summarizes one item kind's contribution at a branch.
type BranchPerformance struct {
	ItemType      ledger.ItemKind
	Revenue       decimal.Decimal
	TotalInvoices int64
	TotalVisits   int64
}

// BranchPerformanceByItemType splits branch revenue between services and
// products. TotalInvoices counts invoices containing at least one line of
// the kind; TotalVisits is the branch-wide visit count repeated on each
// row. Kinds with no sales are omitted.
func BranchPerformanceByItemType(txs []ledger.TransactionRecord, visits []ledger.VisitRecord) []BranchPerformance {
	totalVisits := int64(len(visits))
	grouped := make(map[ledger.ItemKind]*BranchPerformance)
	for _, tx := range txs {
		seen := make(map[ledger.ItemKind]bool)
		for _, item := range tx.Items {
			row, ok := grouped[item.Kind]
			if !ok {
				row = &BranchPerformance{ItemType: item.Kind, Revenue: decimal.Zero, TotalVisits: totalVisits}
				grouped[item.Kind] = row
			}
			row.Revenue = row.Revenue.Add(item.Amount())
			if !seen[item.Kind] {
				row.TotalInvoices++
				seen[item.Kind] = true
			}
		}
	}

	rows := make([]BranchPerformance, 0, len(grouped))
	for _, row := range grouped {
		row.Revenue = roundMoney(row.Revenue)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemType < rows[j].ItemType })
	return rows
}

// DoctorEfficiency relates a practitioner's treatment volume to the
// revenue they generated.
type DoctorEfficiency struct {
	DoctorID              uuid.UUID
	DoctorName            string
	TotalTreatments       int64
	TotalRevenueGenerated decimal.Decimal
}

// DoctorEfficiencies joins visit counts and invoice revenue per
// practitioner. A practitioner appears if they have either visits or
// invoices in the snapshot.
func DoctorEfficiencies(txs []ledger.TransactionRecord, visits []ledger.VisitRecord) []DoctorEfficiency {
	grouped := make(map[uuid.UUID]*DoctorEfficiency)
	row := func(id uuid.UUID, name string) *DoctorEfficiency {
		r, ok := grouped[id]
		if !ok {
			r = &DoctorEfficiency{DoctorID: id, TotalRevenueGenerated: decimal.Zero}
			grouped[id] = r
		}
		if r.DoctorName == "" {
			r.DoctorName = name
		}
		return r
	}

	for _, v := range visits {
		if v.PractitionerID == uuid.Nil {
			continue
		}
		row(v.PractitionerID, v.PractitionerName).TotalTreatments++
	}
	for _, tx := range txs {
		if tx.PractitionerID == uuid.Nil {
			continue
		}
		r := row(tx.PractitionerID, tx.PractitionerName)
		r.TotalRevenueGenerated = r.TotalRevenueGenerated.Add(tx.Final)
	}

	rows := make([]DoctorEfficiency, 0, len(grouped))
	for _, r := range grouped {
		r.TotalRevenueGenerated = roundMoney(r.TotalRevenueGenerated)
		rows = append(rows, *r)
	}
	sortByMetricDesc(rows,
		func(r DoctorEfficiency) decimal.Decimal { return r.TotalRevenueGenerated },
		func(r DoctorEfficiency) string { return r.DoctorName })
	return rows
}

// PeriodRevenue summarizes revenue and units sold for one calendar bucket.
type PeriodRevenue struct {
	PeriodLabel  string
	TotalRevenue decimal.Decimal
	QuantitySold int64
}

// RevenueByPeriod buckets transactions by the window's calendar periods
// and sums final amounts and line quantities per bucket. Buckets with no
// transactions are omitted. Output follows bucket order, so it is already
// chronological.
func RevenueByPeriod(txs []ledger.TransactionRecord, window ledger.Window, g ledger.Granularity) []PeriodRevenue {
	var rows []PeriodRevenue
	for _, bucket := range window.Buckets(g) {
		total := decimal.Zero
		var quantity int64
		var matched bool
		for _, tx := range txs {
			if !bucket.Contains(tx.IssuedAt) {
				continue
			}
			matched = true
			total = total.Add(tx.Final)
			for _, item := range tx.Items {
				quantity += item.Quantity
			}
		}
		if !matched {
			continue
		}
		rows = append(rows, PeriodRevenue{
			PeriodLabel:  bucket.Label,
			TotalRevenue: roundMoney(total),
			QuantitySold: quantity,
		})
	}
	return rows
}

// CustomerSpend summarizes one customer's spend within the scope, the
// input shape for the top-customer ranking.
type CustomerSpend struct {
	CustomerID         uuid.UUID
	CustomerName       string
	Phone              string
	TotalSpendAtBranch decimal.Decimal
}

// CustomerSpendTotals groups transactions by customer and sums final
// amounts.
func CustomerSpendTotals(txs []ledger.TransactionRecord) []CustomerSpend {
	grouped := make(map[uuid.UUID]*CustomerSpend)
	for _, tx := range txs {
		if tx.CustomerID == uuid.Nil {
			continue
		}
		row, ok := grouped[tx.CustomerID]
		if !ok {
			row = &CustomerSpend{
				CustomerID:         tx.CustomerID,
				CustomerName:       tx.CustomerName,
				Phone:              tx.CustomerPhone,
				TotalSpendAtBranch: decimal.Zero,
			}
			grouped[tx.CustomerID] = row
		}
		row.TotalSpendAtBranch = row.TotalSpendAtBranch.Add(tx.Final)
	}

	rows := make([]CustomerSpend, 0, len(grouped))
	for _, row := range grouped {
		row.TotalSpendAtBranch = roundMoney(row.TotalSpendAtBranch)
		rows = append(rows, *row)
	}
	sortByMetricDesc(rows,
		func(r CustomerSpend) decimal.Decimal { return r.TotalSpendAtBranch },
		func(r CustomerSpend) string { return r.CustomerName })
	return rows
}

// BranchRevenue summarizes one branch's revenue over a window.
type BranchRevenue struct {
	BranchID          uuid.UUID
	BranchName        string
	YearlyRevenue     decimal.Decimal
	TotalTransactions int64
}

// BranchRevenueComparison groups transactions by branch and sums final
// amounts and transaction counts. Branch display names come from the
// supplied lookup; branches with no transactions are omitted. Output is
// ordered by revenue descending with the standard name tie-break.
func BranchRevenueComparison(txs []ledger.TransactionRecord, branchNames map[uuid.UUID]string) []BranchRevenue {
	grouped := make(map[uuid.UUID]*BranchRevenue)
	for _, tx := range txs {
		row, ok := grouped[tx.BranchID]
		if !ok {
			row = &BranchRevenue{
				BranchID:      tx.BranchID,
				BranchName:    branchNames[tx.BranchID],
				YearlyRevenue: decimal.Zero,
			}
			grouped[tx.BranchID] = row
		}
		row.TotalTransactions++
		row.YearlyRevenue = row.YearlyRevenue.Add(tx.Final)
	}

	rows := make([]BranchRevenue, 0, len(grouped))
	for _, row := range grouped {
		row.YearlyRevenue = roundMoney(row.YearlyRevenue)
		rows = append(rows, *row)
	}
	sortByMetricDesc(rows,
		func(r BranchRevenue) decimal.Decimal { return r.YearlyRevenue },
		func(r BranchRevenue) string { return r.BranchName })
	return rows
}
