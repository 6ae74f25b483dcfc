package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcare/backend/internal/domain/ledger"
)

func review(service, attitude, overall int, createdAt time.Time) ledger.Review {
	return ledger.Review{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		ServiceScore:  service,
		AttitudeScore: attitude,
		OverallScore:  overall,
		CreatedAt:     createdAt,
	}
}

func TestSummarizeReviews(t *testing.T) {
	now := time.Now()

	t.Run("computes per-axis averages", func(t *testing.T) {
		summary := SummarizeReviews([]ledger.Review{
			review(5, 4, 5, now),
			review(4, 4, 3, now),
			review(3, 1, 1, now),
		})

		assert.Equal(t, int64(3), summary.TotalReviews)
		assert.True(t, summary.AvgService.Equal(decimal.NewFromInt(4)))
		assert.True(t, summary.AvgAttitude.Equal(decimal.NewFromInt(3)))
		assert.True(t, summary.AvgOverall.Equal(decimal.NewFromInt(3)))
	})

	t.Run("averages round to two places", func(t *testing.T) {
		summary := SummarizeReviews([]ledger.Review{
			review(5, 5, 5, now),
			review(4, 4, 4, now),
			review(4, 4, 4, now),
		})

		assert.True(t, summary.AvgOverall.Equal(decimal.NewFromFloat(4.33)),
			"got %s", summary.AvgOverall)
	})

	t.Run("zero reviews yield zero averages and no failure", func(t *testing.T) {
		summary := SummarizeReviews(nil)

		assert.Equal(t, int64(0), summary.TotalReviews)
		assert.True(t, summary.AvgService.IsZero())
		assert.True(t, summary.AvgAttitude.IsZero())
		assert.True(t, summary.AvgOverall.IsZero())
		assert.Empty(t, summary.NegativeReviews)
	})

	t.Run("overall of 2 is negative, 3 is not", func(t *testing.T) {
		atThreshold := review(3, 3, 2, now)
		aboveThreshold := review(3, 3, 3, now)

		summary := SummarizeReviews([]ledger.Review{atThreshold, aboveThreshold})

		require.Len(t, summary.NegativeReviews, 1)
		assert.Equal(t, atThreshold.ID, summary.NegativeReviews[0].ID)
	})

	t.Run("negative reviews come back most recent first", func(t *testing.T) {
		older := review(1, 1, 1, now.Add(-48*time.Hour))
		newer := review(2, 2, 2, now)

		summary := SummarizeReviews([]ledger.Review{older, newer})

		require.Len(t, summary.NegativeReviews, 2)
		assert.Equal(t, newer.ID, summary.NegativeReviews[0].ID)
		assert.Equal(t, older.ID, summary.NegativeReviews[1].ID)
	})
}
