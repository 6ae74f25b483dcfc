package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vetcare/backend/internal/domain/ledger"
)

// NegativeOverallThreshold is the overall score at or below which a review
// is classified negative. Policy constant, not configurable.
const NegativeOverallThreshold = 2

// ReviewSummary holds per-axis satisfaction averages and the negative
// subset for a branch and window.
type ReviewSummary struct {
	AvgService      decimal.Decimal
	AvgAttitude     decimal.Decimal
	AvgOverall      decimal.Decimal
	TotalReviews    int64
	NegativeReviews []ledger.Review
}

// SummarizeReviews computes arithmetic means over the three score axes and
// isolates negative reviews, most recent first. An empty snapshot yields
// zero averages and an empty subset, never an error.
func SummarizeReviews(reviews []ledger.Review) ReviewSummary {
	summary := ReviewSummary{
		AvgService:      decimal.Zero,
		AvgAttitude:     decimal.Zero,
		AvgOverall:      decimal.Zero,
		NegativeReviews: []ledger.Review{},
	}
	if len(reviews) == 0 {
		return summary
	}

	var sumService, sumAttitude, sumOverall int64
	for _, r := range reviews {
		sumService += int64(r.ServiceScore)
		sumAttitude += int64(r.AttitudeScore)
		sumOverall += int64(r.OverallScore)
		if r.OverallScore <= NegativeOverallThreshold {
			summary.NegativeReviews = append(summary.NegativeReviews, r)
		}
	}

	count := decimal.NewFromInt(int64(len(reviews)))
	summary.TotalReviews = int64(len(reviews))
	summary.AvgService = roundMoney(decimal.NewFromInt(sumService).Div(count))
	summary.AvgAttitude = roundMoney(decimal.NewFromInt(sumAttitude).Div(count))
	summary.AvgOverall = roundMoney(decimal.NewFromInt(sumOverall).Div(count))

	sort.SliceStable(summary.NegativeReviews, func(i, j int) bool {
		return summary.NegativeReviews[i].CreatedAt.After(summary.NegativeReviews[j].CreatedAt)
	})
	return summary
}
