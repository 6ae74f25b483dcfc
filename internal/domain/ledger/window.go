package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetcare/backend/internal/domain/shared"
)

// Scope restricts a ledger query to a branch and optionally one
// practitioner or customer. A nil UUID means "not restricted".
type Scope struct {
	BranchID       uuid.UUID
	PractitionerID uuid.UUID
	CustomerID     uuid.UUID
}

// AllBranches is the unrestricted scope used by system-wide reports.
var AllBranches = Scope{}

// Matches reports whether a transaction falls inside the scope.
func (s Scope) Matches(branchID, practitionerID, customerID uuid.UUID) bool {
	if s.BranchID != uuid.Nil && s.BranchID != branchID {
		return false
	}
	if s.PractitionerID != uuid.Nil && s.PractitionerID != practitionerID {
		return false
	}
	if s.CustomerID != uuid.Nil && s.CustomerID != customerID {
		return false
	}
	return true
}

// Window is a half-open time interval [Start, End). The upper bound is
// fixed when the reader is invoked, so records appended during report
// generation are excluded and the report is consistent as of that moment.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates and builds a window. End must be strictly after Start.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() || end.IsZero() {
		return Window{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
			"window start and end are required")
	}
	if !end.After(start) {
		return Window{}, shared.NewDomainError(shared.ErrValidationFailure.Code,
			"window end must be after start")
	}
	return Window{Start: start, End: end}, nil
}

// CalendarDay returns the window covering the calendar day containing ts.
func CalendarDay(ts time.Time) Window {
	start := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// CalendarYear returns the window covering the calendar year containing ts.
func CalendarYear(ts time.Time) Window {
	start := time.Date(ts.Year(), time.January, 1, 0, 0, 0, 0, ts.Location())
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// Contains reports whether ts falls inside the half-open interval.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// Granularity selects the calendar bucket size for periodic grouping.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity maps a query string value to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.Valid() {
		return "", shared.NewDomainError(shared.ErrValidationFailure.Code,
			fmt.Sprintf("unknown granularity %q", s))
	}
	return g, nil
}

// Valid reports whether g is one of the known granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityMonth, GranularityQuarter, GranularityYear:
		return true
	}
	return false
}

// Bucket is one calendar-aligned sub-interval of a window. Start and End
// are clipped to the window, so a query spanning mid-month only collects
// records actually inside the requested window. Label always names the
// containing calendar period, clipped or not.
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether ts falls inside the bucket's clipped interval.
func (b Bucket) Contains(ts time.Time) bool {
	return !ts.Before(b.Start) && ts.Before(b.End)
}

// Buckets splits the window into calendar-aligned buckets of the given
// granularity. Boundary buckets are clipped to the window. An unknown
// granularity yields nil; advance would otherwise never move the cursor.
func (w Window) Buckets(g Granularity) []Bucket {
	if !g.Valid() {
		return nil
	}
	var buckets []Bucket
	cursor := alignDown(w.Start, g)
	for cursor.Before(w.End) {
		next := advance(cursor, g)
		b := Bucket{Start: cursor, End: next, Label: periodLabel(cursor, g)}
		if b.Start.Before(w.Start) {
			b.Start = w.Start
		}
		if b.End.After(w.End) {
			b.End = w.End
		}
		buckets = append(buckets, b)
		cursor = next
	}
	return buckets
}

// alignDown returns the start of the calendar period containing ts.
func alignDown(ts time.Time, g Granularity) time.Time {
	switch g {
	case GranularityDay:
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	case GranularityMonth:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
	case GranularityQuarter:
		quarterStart := time.Month((int(ts.Month())-1)/3*3 + 1)
		return time.Date(ts.Year(), quarterStart, 1, 0, 0, 0, 0, ts.Location())
	case GranularityYear:
		return time.Date(ts.Year(), time.January, 1, 0, 0, 0, 0, ts.Location())
	}
	return ts
}

// advance returns the start of the next calendar period.
func advance(ts time.Time, g Granularity) time.Time {
	switch g {
	case GranularityDay:
		return ts.AddDate(0, 0, 1)
	case GranularityMonth:
		return ts.AddDate(0, 1, 0)
	case GranularityQuarter:
		return ts.AddDate(0, 3, 0)
	case GranularityYear:
		return ts.AddDate(1, 0, 0)
	}
	return ts
}

// periodLabel formats the bucket label for report output.
func periodLabel(start time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return start.Format("2006-01-02")
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityQuarter:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case GranularityYear:
		return start.Format("2006")
	}
	return start.Format(time.RFC3339)
}
