package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/vetcare/backend/internal/application/report"
)

// ReportHandler handles analytics report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/doctors/revenue", h.GetDoctorRevenues)
		reports.GET("/doctors/efficiency", h.GetDoctorEfficiencies)
		reports.GET("/doctors/:id/schedule", h.GetDoctorSchedule)
		reports.GET("/visits/statistics", h.GetVisitStatistics)
		reports.GET("/system/revenue", h.GetSystemRevenue)
		reports.GET("/products/revenue", h.GetProductRevenues)
		reports.GET("/products/top-selling", h.GetTopSellingProducts)
		reports.GET("/branches/:id/performance", h.GetBranchPerformance)
		reports.GET("/branches/comparison", h.GetBranchRevenueComparison)
		reports.GET("/revenue/monthly", h.GetRevenueByPeriod)
		reports.GET("/reviews/summary", h.GetReviewSummary)
		reports.GET("/customers/top", h.GetTopCustomers)
	}
}

// ReportFilterRequest defines the filter shared by the report endpoints
type ReportFilterRequest struct {
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
	BranchID    string `form:"branch_id"`
	DoctorID    string `form:"doctor_id"`
	Granularity string `form:"granularity"`
	TopN        int    `form:"top_n"`
}

// parseFilter converts query parameters into an application filter. The
// end date is inclusive of its calendar day; the resulting window stays
// half-open.
func parseFilter(req ReportFilterRequest) (reportapp.ReportFilter, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return reportapp.ReportFilter{}, errors.New("start_date: invalid date format, expected YYYY-MM-DD")
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return reportapp.ReportFilter{}, errors.New("end_date: invalid date format, expected YYYY-MM-DD")
	}

	filter := reportapp.ReportFilter{
		StartDate:   startDate,
		EndDate:     endDate.Add(24 * time.Hour),
		Granularity: req.Granularity,
		TopN:        req.TopN,
	}

	if req.BranchID != "" {
		branchID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return filter, errors.New("branch_id: invalid UUID format")
		}
		filter.BranchID = &branchID
	}

	if req.DoctorID != "" {
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			return filter, errors.New("doctor_id: invalid UUID format")
		}
		filter.DoctorID = &doctorID
	}

	return filter, nil
}

// bindFilter binds and parses the common report filter or writes a 400.
func (h *ReportHandler) bindFilter(c *gin.Context) (reportapp.ReportFilter, bool) {
	var req ReportFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return reportapp.ReportFilter{}, false
	}

	filter, err := parseFilter(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return reportapp.ReportFilter{}, false
	}
	return filter, true
}

// GetDoctorRevenues returns invoiced revenue grouped by practitioner
func (h *ReportHandler) GetDoctorRevenues(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetDoctorRevenues(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetVisitStatistics returns visit counts for the scope and window
func (h *ReportHandler) GetVisitStatistics(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	stats, err := h.reportService.GetVisitStatistics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetSystemRevenue returns the system-wide revenue total
func (h *ReportHandler) GetSystemRevenue(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	total, err := h.reportService.GetSystemRevenue(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, total)
}

// GetProductRevenues returns revenue grouped by product category
func (h *ReportHandler) GetProductRevenues(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetProductRevenues(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetTopSellingProducts returns the top products by quantity sold
func (h *ReportHandler) GetTopSellingProducts(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetTopSellingProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// DoctorScheduleRequest defines the filter for the doctor schedule endpoint
type DoctorScheduleRequest struct {
	Date string `form:"date" binding:"required"`
}

// GetDoctorSchedule returns a practitioner's visits for one calendar day
func (h *ReportHandler) GetDoctorSchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id: invalid UUID format")
		return
	}

	var req DoctorScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "date: invalid date format, expected YYYY-MM-DD")
		return
	}

	entries, err := h.reportService.GetDoctorSchedule(c.Request.Context(), doctorID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetBranchPerformance returns per-item-kind performance for one branch
func (h *ReportHandler) GetBranchPerformance(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id: invalid UUID format")
		return
	}

	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	filter.BranchID = &branchID

	rows, err := h.reportService.GetBranchPerformance(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetDoctorEfficiencies returns treatment counts and revenue per practitioner
func (h *ReportHandler) GetDoctorEfficiencies(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetDoctorEfficiencies(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetRevenueByPeriod returns revenue bucketed by calendar period
func (h *ReportHandler) GetRevenueByPeriod(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetRevenueByPeriod(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetReviewSummary returns averaged review scores and recent negatives
func (h *ReportHandler) GetReviewSummary(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetReviewSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetTopCustomers returns the top customers by spend with tier membership
func (h *ReportHandler) GetTopCustomers(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetTopCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetBranchRevenueComparison returns yearly revenue per branch
func (h *ReportHandler) GetBranchRevenueComparison(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetBranchRevenueComparison(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
