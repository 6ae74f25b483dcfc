package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcare/backend/internal/domain/shared"
	"github.com/vetcare/backend/internal/interfaces/http/dto"
	"github.com/vetcare/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set("request_id", "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.Success(c, map[string]string{"name": "Gold"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found maps to 404",
			err:            shared.NewDomainError("NOT_FOUND", "practitioner not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "validation failure maps to 422",
			err:            shared.NewDomainError("VALIDATION_FAILURE", "tier thresholds must be strictly increasing"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeValidationFailure,
		},
		{
			name:           "conflict maps to 409",
			err:            shared.NewDomainError("CONFLICT", "transfer already in progress for this employee"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConflict,
		},
		{
			name:           "data unavailable maps to 503",
			err:            shared.NewDomainError("DATA_UNAVAILABLE", "ledger unreachable"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeDataUnavailable,
		},
		{
			name:           "unknown error maps to 500 without detail",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestHandleErrorRetryableSetsRetryAfter(t *testing.T) {
	h := &BaseHandler{}

	t.Run("data unavailable carries Retry-After", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		h.HandleError(c, shared.NewDomainError("DATA_UNAVAILABLE", "ledger unreachable"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("non-retryable errors do not", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		h.HandleError(c, shared.NewDomainError("NOT_FOUND", "practitioner not found"))

		assert.Empty(t, w.Header().Get("Retry-After"))
	})
}

func TestHandleErrorNeverLeaksInternalDetail(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	h.HandleError(c, assert.AnError)

	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
