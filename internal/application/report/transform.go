package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/analytics"
	"github.com/vetcare/backend/internal/domain/clinic"
	"github.com/vetcare/backend/internal/domain/ledger"
)

// Response shapes. Field names are the wire contract; computations upstream
// produce decimals already rounded to currency scale, so the float
// conversion here is presentation only.

// DoctorRevenueResponse reports invoiced revenue per practitioner.
type DoctorRevenueResponse struct {
	DoctorID      string  `json:"doctorId"`
	FullName      string  `json:"fullName"`
	TotalInvoices int64   `json:"totalInvoices"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// VisitStatisticsResponse reports visit counts.
type VisitStatisticsResponse struct {
	TotalVisits int64 `json:"totalVisits"`
}

// SystemRevenueResponse reports the system-wide revenue total.
type SystemRevenueResponse struct {
	TotalSystemRevenue float64 `json:"totalSystemRevenue"`
}

// ProductRevenueResponse reports product sales per category.
type ProductRevenueResponse struct {
	Category          string  `json:"category"`
	TotalSoldQuantity int64   `json:"totalSoldQuantity"`
	CategoryRevenue   float64 `json:"categoryRevenue"`
}

// TopSellingProductResponse is one entry of the product ranking.
type TopSellingProductResponse struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// DoctorScheduleResponse is one entry of a practitioner's daily schedule.
type DoctorScheduleResponse struct {
	AppointmentTime time.Time `json:"appointmentTime"`
	PetName         string    `json:"petName"`
	Activity        string    `json:"activity"`
}

// BranchPerformanceResponse reports one item kind's share of branch revenue.
type BranchPerformanceResponse struct {
	ItemType      string  `json:"itemType"`
	Revenue       float64 `json:"revenue"`
	TotalInvoices int64   `json:"totalInvoices"`
	TotalVisits   int64   `json:"totalVisits"`
}

// DoctorEfficiencyResponse relates treatments to revenue per practitioner.
type DoctorEfficiencyResponse struct {
	DoctorName            string  `json:"doctorName"`
	TotalTreatments       int64   `json:"totalTreatments"`
	TotalRevenueGenerated float64 `json:"totalRevenueGenerated"`
}

// MonthlyDetailedRevenueResponse reports revenue per calendar period.
type MonthlyDetailedRevenueResponse struct {
	PeriodLabel  string  `json:"periodLabel"`
	TotalRevenue float64 `json:"totalRevenue"`
	QuantitySold int64   `json:"quantitySold"`
}

// NegativeReviewResponse is one review classified negative.
type NegativeReviewResponse struct {
	CustomerID    string    `json:"customerId"`
	RatingOverall int       `json:"ratingOverall"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReviewSummaryResponse reports satisfaction averages and the negative subset.
type ReviewSummaryResponse struct {
	AvgService      float64                  `json:"avgService"`
	AvgAttitude     float64                  `json:"avgAttitude"`
	AvgOverall      float64                  `json:"avgOverall"`
	TotalReviews    int64                    `json:"totalReviews"`
	NegativeReviews []NegativeReviewResponse `json:"negativeReviews"`
}

// TopCustomerResponse is one entry of the customer spend ranking.
type TopCustomerResponse struct {
	CustomerName       string  `json:"customerName"`
	Phone              string  `json:"phone"`
	TotalSpendAtBranch float64 `json:"totalSpendAtBranch"`
	TierName           string  `json:"tierName"`
}

// BranchRevenueComparisonResponse compares branch revenue over a window.
type BranchRevenueComparisonResponse struct {
	BranchName        string  `json:"branchName"`
	YearlyRevenue     float64 `json:"yearlyRevenue"`
	TotalTransactions int64   `json:"totalTransactions"`
}

// Explicit transform functions, one per (source shape, target shape) pair.
// Each is pure and individually testable; there is no reflective mapping.

func toFloat64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toDoctorRevenueResponse(r analytics.DoctorRevenue) DoctorRevenueResponse {
	return DoctorRevenueResponse{
		DoctorID:      r.DoctorID.String(),
		FullName:      r.FullName,
		TotalInvoices: r.TotalInvoices,
		TotalRevenue:  toFloat64(r.TotalRevenue),
	}
}

func toVisitStatisticsResponse(s analytics.VisitStatistics) VisitStatisticsResponse {
	return VisitStatisticsResponse{TotalVisits: s.TotalVisits}
}

func toSystemRevenueResponse(s analytics.SystemRevenue) SystemRevenueResponse {
	return SystemRevenueResponse{TotalSystemRevenue: toFloat64(s.TotalSystemRevenue)}
}

func toProductRevenueResponse(r analytics.ProductRevenue) ProductRevenueResponse {
	return ProductRevenueResponse{
		Category:          r.Category,
		TotalSoldQuantity: r.TotalSoldQuantity,
		CategoryRevenue:   toFloat64(r.CategoryRevenue),
	}
}

func toTopSellingProductResponse(p analytics.ProductSales) TopSellingProductResponse {
	return TopSellingProductResponse{
		Name:          p.Name,
		Category:      p.Category,
		TotalQuantity: p.TotalQuantity,
	}
}

func toDoctorScheduleResponse(e analytics.ScheduleEntry) DoctorScheduleResponse {
	return DoctorScheduleResponse{
		AppointmentTime: e.AppointmentTime,
		PetName:         e.PetName,
		Activity:        string(e.Activity),
	}
}

func toBranchPerformanceResponse(p analytics.BranchPerformance) BranchPerformanceResponse {
	return BranchPerformanceResponse{
		ItemType:      string(p.ItemType),
		Revenue:       toFloat64(p.Revenue),
		TotalInvoices: p.TotalInvoices,
		TotalVisits:   p.TotalVisits,
	}
}

func toDoctorEfficiencyResponse(e analytics.DoctorEfficiency) DoctorEfficiencyResponse {
	return DoctorEfficiencyResponse{
		DoctorName:            e.DoctorName,
		TotalTreatments:       e.TotalTreatments,
		TotalRevenueGenerated: toFloat64(e.TotalRevenueGenerated),
	}
}

func toMonthlyDetailedRevenueResponse(p analytics.PeriodRevenue) MonthlyDetailedRevenueResponse {
	return MonthlyDetailedRevenueResponse{
		PeriodLabel:  p.PeriodLabel,
		TotalRevenue: toFloat64(p.TotalRevenue),
		QuantitySold: p.QuantitySold,
	}
}

func toNegativeReviewResponse(r ledger.Review) NegativeReviewResponse {
	return NegativeReviewResponse{
		CustomerID:    r.CustomerID.String(),
		RatingOverall: r.OverallScore,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

func toReviewSummaryResponse(s analytics.ReviewSummary) ReviewSummaryResponse {
	negatives := make([]NegativeReviewResponse, len(s.NegativeReviews))
	for i, r := range s.NegativeReviews {
		negatives[i] = toNegativeReviewResponse(r)
	}
	return ReviewSummaryResponse{
		AvgService:      toFloat64(s.AvgService),
		AvgAttitude:     toFloat64(s.AvgAttitude),
		AvgOverall:      toFloat64(s.AvgOverall),
		TotalReviews:    s.TotalReviews,
		NegativeReviews: negatives,
	}
}

func toTopCustomerResponse(c analytics.CustomerSpend, tier clinic.MembershipTier) TopCustomerResponse {
	return TopCustomerResponse{
		CustomerName:       c.CustomerName,
		Phone:              c.Phone,
		TotalSpendAtBranch: toFloat64(c.TotalSpendAtBranch),
		TierName:           tier.Name,
	}
}

func toBranchRevenueComparisonResponse(b analytics.BranchRevenue) BranchRevenueComparisonResponse {
	return BranchRevenueComparisonResponse{
		BranchName:        b.BranchName,
		YearlyRevenue:     toFloat64(b.YearlyRevenue),
		TotalTransactions: b.TotalTransactions,
	}
}
