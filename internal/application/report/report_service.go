package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetcare/backend/internal/domain/analytics"
	"github.com/vetcare/backend/internal/domain/clinic"
	"github.com/vetcare/backend/internal/domain/ledger"
)

// ResultCache stores computed report payloads keyed by report name and
// query parameters. A cache failure is never fatal; reports fall back to
// recomputing from the ledger.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ReportService orchestrates report generation: it fetches an immutable
// snapshot through the ledger reader, runs the pure computations, and maps
// the results to response shapes. It holds no mutable state, so any number
// of requests may run concurrently.
type ReportService struct {
	reader   ledger.Reader
	branches clinic.BranchRepository
	tiers    clinic.TierRepository
	cache    ResultCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewReportService creates a new ReportService. cache may be nil to
// disable result caching.
func NewReportService(
	reader ledger.Reader,
	branches clinic.BranchRepository,
	tiers clinic.TierRepository,
	cache ResultCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reader:   reader,
		branches: branches,
		tiers:    tiers,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ReportFilter defines the request filter shared by the report endpoints.
type ReportFilter struct {
	StartDate   time.Time
	EndDate     time.Time
	BranchID    *uuid.UUID
	DoctorID    *uuid.UUID
	Granularity string
	TopN        int
}

func (f ReportFilter) window() (ledger.Window, error) {
	return ledger.NewWindow(f.StartDate, f.EndDate)
}

func (f ReportFilter) scope() ledger.Scope {
	scope := ledger.Scope{}
	if f.BranchID != nil {
		scope.BranchID = *f.BranchID
	}
	if f.DoctorID != nil {
		scope.PractitionerID = *f.DoctorID
	}
	return scope
}

// GetDoctorRevenues returns invoiced revenue grouped by practitioner.
func (s *ReportService) GetDoctorRevenues(ctx context.Context, filter ReportFilter) ([]DoctorRevenueResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	rows := analytics.DoctorRevenues(txs)
	responses := make([]DoctorRevenueResponse, len(rows))
	for i, row := range rows {
		responses[i] = toDoctorRevenueResponse(row)
	}
	return responses, nil
}

// GetVisitStatistics returns visit counts for the scope and window.
func (s *ReportService) GetVisitStatistics(ctx context.Context, filter ReportFilter) (*VisitStatisticsResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	visits, err := s.reader.FetchVisits(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	resp := toVisitStatisticsResponse(analytics.CountVisits(visits))
	return &resp, nil
}

// GetSystemRevenue returns the system-wide revenue total. The result is a
// single row even when no transactions match.
func (s *ReportService) GetSystemRevenue(ctx context.Context, filter ReportFilter) (*SystemRevenueResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey("system-revenue", filter.scope(), window, "")
	var cached SystemRevenueResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	resp := toSystemRevenueResponse(analytics.SystemRevenueTotal(txs))
	s.cacheSet(ctx, cacheKey, resp)
	return &resp, nil
}

// GetProductRevenues returns product sales grouped by category.
func (s *ReportService) GetProductRevenues(ctx context.Context, filter ReportFilter) ([]ProductRevenueResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	rows := analytics.ProductRevenues(txs)
	responses := make([]ProductRevenueResponse, len(rows))
	for i, row := range rows {
		responses[i] = toProductRevenueResponse(row)
	}
	return responses, nil
}

// GetTopSellingProducts returns the product ranking by units sold.
// TopN of zero or below means all products.
func (s *ReportService) GetTopSellingProducts(ctx context.Context, filter ReportFilter) ([]TopSellingProductResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	ranked := analytics.TopSellingProducts(analytics.ProductSalesTotals(txs), filter.TopN)
	responses := make([]TopSellingProductResponse, len(ranked))
	for i, row := range ranked {
		responses[i] = toTopSellingProductResponse(row)
	}
	return responses, nil
}

// GetDoctorSchedule returns one practitioner's visits for the calendar day
// containing the filter's start date, in chronological order.
func (s *ReportService) GetDoctorSchedule(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]DoctorScheduleResponse, error) {
	scope := ledger.Scope{PractitionerID: doctorID}
	visits, err := s.reader.FetchVisits(ctx, scope, ledger.CalendarDay(day))
	if err != nil {
		return nil, err
	}

	entries := analytics.DoctorSchedule(visits)
	responses := make([]DoctorScheduleResponse, len(entries))
	for i, e := range entries {
		responses[i] = toDoctorScheduleResponse(e)
	}
	return responses, nil
}

// GetBranchPerformance splits branch revenue between services and products
// alongside visit volume.
func (s *ReportService) GetBranchPerformance(ctx context.Context, filter ReportFilter) ([]BranchPerformanceResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	scope := filter.scope()
	txs, err := s.reader.FetchTransactions(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	visits, err := s.reader.FetchVisits(ctx, scope, window)
	if err != nil {
		return nil, err
	}

	rows := analytics.BranchPerformanceByItemType(txs, visits)
	responses := make([]BranchPerformanceResponse, len(rows))
	for i, row := range rows {
		responses[i] = toBranchPerformanceResponse(row)
	}
	return responses, nil
}

// GetDoctorEfficiencies relates treatment volume to revenue per practitioner.
func (s *ReportService) GetDoctorEfficiencies(ctx context.Context, filter ReportFilter) ([]DoctorEfficiencyResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	scope := filter.scope()
	txs, err := s.reader.FetchTransactions(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	visits, err := s.reader.FetchVisits(ctx, scope, window)
	if err != nil {
		return nil, err
	}

	rows := analytics.DoctorEfficiencies(txs, visits)
	responses := make([]DoctorEfficiencyResponse, len(rows))
	for i, row := range rows {
		responses[i] = toDoctorEfficiencyResponse(row)
	}
	return responses, nil
}

// GetRevenueByPeriod returns revenue bucketed by calendar period. The
// granularity defaults to month when unspecified.
func (s *ReportService) GetRevenueByPeriod(ctx context.Context, filter ReportFilter) ([]MonthlyDetailedRevenueResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	granularity := ledger.GranularityMonth
	if filter.Granularity != "" {
		granularity, err = ledger.ParseGranularity(filter.Granularity)
		if err != nil {
			return nil, err
		}
	}
	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	rows := analytics.RevenueByPeriod(txs, window, granularity)
	responses := make([]MonthlyDetailedRevenueResponse, len(rows))
	for i, row := range rows {
		responses[i] = toMonthlyDetailedRevenueResponse(row)
	}
	return responses, nil
}

// GetReviewSummary returns satisfaction averages and the negative subset.
// An empty window yields zero averages, never a failure.
func (s *ReportService) GetReviewSummary(ctx context.Context, filter ReportFilter) (*ReviewSummaryResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	reviews, err := s.reader.FetchReviews(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}

	resp := toReviewSummaryResponse(analytics.SummarizeReviews(reviews))
	return &resp, nil
}

// GetTopCustomers returns the customer spend ranking with each customer's
// membership tier derived from the active tier table at read time.
func (s *ReportService) GetTopCustomers(ctx context.Context, filter ReportFilter) ([]TopCustomerResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}
	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}
	table, err := s.tiers.FetchTierTable(ctx)
	if err != nil {
		return nil, err
	}

	ranked := analytics.TopCustomers(analytics.CustomerSpendTotals(txs), filter.TopN)
	responses := make([]TopCustomerResponse, len(ranked))
	for i, row := range ranked {
		tier, err := table.ClassifyTier(row.TotalSpendAtBranch)
		if err != nil {
			return nil, err
		}
		responses[i] = toTopCustomerResponse(row, tier)
	}
	return responses, nil
}

// GetBranchRevenueComparison compares revenue and transaction volume
// across branches over the window.
func (s *ReportService) GetBranchRevenueComparison(ctx context.Context, filter ReportFilter) ([]BranchRevenueComparisonResponse, error) {
	window, err := filter.window()
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey("branch-comparison", filter.scope(), window, "")
	var cached []BranchRevenueComparisonResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	txs, err := s.reader.FetchTransactions(ctx, filter.scope(), window)
	if err != nil {
		return nil, err
	}
	branches, err := s.branches.FetchBranches(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(branches))
	for _, b := range branches {
		names[b.ID] = b.Name
	}

	rows := analytics.BranchRevenueComparison(txs, names)
	responses := make([]BranchRevenueComparisonResponse, len(rows))
	for i, row := range rows {
		responses[i] = toBranchRevenueComparisonResponse(row)
	}
	s.cacheSet(ctx, cacheKey, responses)
	return responses, nil
}

func (s *ReportService) cacheKey(report string, scope ledger.Scope, window ledger.Window, extra string) string {
	return fmt.Sprintf("report:%s:%s:%s:%d:%d:%s",
		report, scope.BranchID, scope.PractitionerID,
		window.Start.Unix(), window.End.Unix(), extra)
}

func (s *ReportService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
