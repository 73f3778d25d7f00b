package insight

import (
	"time"

	domainerror "github.com/ledgerkit/backend/internal/domain/error"
)

// topRankSize bounds both ranking insights to their top 5 entries.
const topRankSize = 5

// unknownBucketKey groups invoices or line items with no client/service
// reference into a single synthetic bucket.
const unknownBucketKey = "unknown"

// resolveRankingWindow applies the default trailing-one-year window and
// validates an explicit one.
func resolveRankingWindow(clock Clock, from, to *time.Time) (time.Time, time.Time, error) {
	end := clock.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(-1, 0, 0)
	if from != nil {
		start = *from
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domainerror.NewInsightError(
			domainerror.ErrCodeInvalidPeriod,
			"to must be after from",
			domainerror.ErrInvalidPeriod,
		)
	}
	return start, end, nil
}

// laterOf returns the later of two timestamps.
func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
