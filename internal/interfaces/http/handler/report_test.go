package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	reportapp "github.com/vetcare/backend/internal/application/report"
	"github.com/vetcare/backend/internal/domain/ledger"
	"github.com/vetcare/backend/internal/domain/shared"
	"github.com/vetcare/backend/internal/interfaces/http/dto"
)

// stubReader serves canned ledger snapshots to the report service.
type stubReader struct {
	txs     []ledger.TransactionRecord
	visits  []ledger.VisitRecord
	reviews []ledger.Review
	err     error
}

func (s *stubReader) FetchTransactions(ctx context.Context, scope ledger.Scope, window ledger.Window) ([]ledger.TransactionRecord, error) {
	return s.txs, s.err
}

func (s *stubReader) FetchVisits(ctx context.Context, scope ledger.Scope, window ledger.Window) ([]ledger.VisitRecord, error) {
	return s.visits, s.err
}

func (s *stubReader) FetchReviews(ctx context.Context, scope ledger.Scope, window ledger.Window) ([]ledger.Review, error) {
	return s.reviews, s.err
}

func newReportRouter(reader ledger.Reader) *gin.Engine {
	svc := reportapp.NewReportService(reader, nil, nil, nil, time.Minute, zap.NewNop())
	h := NewReportHandler(svc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestParseFilter(t *testing.T) {
	t.Run("end date day is included in the window", func(t *testing.T) {
		filter, err := parseFilter(ReportFilterRequest{
			StartDate: "2025-06-01",
			EndDate:   "2025-06-30",
		})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), filter.StartDate)
		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), filter.EndDate)
	})

	t.Run("invalid start date rejected", func(t *testing.T) {
		_, err := parseFilter(ReportFilterRequest{StartDate: "June 1st", EndDate: "2025-06-30"})
		assert.Error(t, err)
	})

	t.Run("invalid branch id rejected", func(t *testing.T) {
		_, err := parseFilter(ReportFilterRequest{
			StartDate: "2025-06-01",
			EndDate:   "2025-06-30",
			BranchID:  "not-a-uuid",
		})
		assert.Error(t, err)
	})
}

func TestGetSystemRevenueEndpoint(t *testing.T) {
	t.Run("empty window still returns one row", func(t *testing.T) {
		engine := newReportRouter(&stubReader{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reports/system/revenue?start_date=2025-06-01&end_date=2025-06-30", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                             `json:"success"`
			Data    reportapp.SystemRevenueResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Zero(t, resp.Data.TotalSystemRevenue)
	})

	t.Run("missing dates rejected with 400", func(t *testing.T) {
		engine := newReportRouter(&stubReader{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/system/revenue", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "start_date: This field is required")
		assert.Contains(t, resp.Error.Message, "end_date: This field is required")
	})

	t.Run("storage outage surfaces as 503", func(t *testing.T) {
		engine := newReportRouter(&stubReader{
			err: shared.NewDomainError("DATA_UNAVAILABLE", "ledger unreachable"),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reports/system/revenue?start_date=2025-06-01&end_date=2025-06-30", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeDataUnavailable, resp.Error.Code)
	})
}

func TestGetDoctorScheduleEndpoint(t *testing.T) {
	t.Run("invalid doctor id rejected", func(t *testing.T) {
		engine := newReportRouter(&stubReader{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reports/doctors/not-a-uuid/schedule?date=2025-06-01", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing date rejected", func(t *testing.T) {
		engine := newReportRouter(&stubReader{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reports/doctors/7f9c24e5-1f6a-4f4e-9f0e-111111111111/schedule", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
