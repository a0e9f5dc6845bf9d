// Package summary holds the dashboard's date-range filtering and aggregation
// over expense records. All functions are pure; callers pass "now" explicitly.
package summary

import (
	"time"

	"kharcha/internal/models"
)

type FilterKind string

const (
	FilterDay    FilterKind = "day"
	FilterWeek   FilterKind = "week"
	FilterMonth  FilterKind = "month"
	FilterCustom FilterKind = "custom"
)

// Selection describes the date range the dashboard is looking at. Start and
// End are only consulted for FilterCustom; when either is nil the custom
// filter keeps everything.
type Selection struct {
	Kind  FilterKind
	Start *time.Time
	End   *time.Time
}

// Totals are the aggregates backing the dashboard cards and charts.
type Totals struct {
	Total           float64
	CountByCategory map[string]int
	SumByCategory   map[string]float64
	// MonthlyTotals buckets amounts by month of the current year, January
	// first. Records from other years are left out of the array entirely.
	MonthlyTotals [12]float64
}

// Filter keeps the expenses whose calendar date falls in the selected range.
// Comparison is date-only: times are truncated to local midnight first.
func Filter(expenses []models.Expense, sel Selection, now time.Time) []models.Expense {
	today := dateOnly(now)

	var from, to time.Time
	switch sel.Kind {
	case FilterDay:
		from, to = today, today
	case FilterWeek:
		from, to = today.AddDate(0, 0, -7), today
	case FilterMonth:
		from, to = today.AddDate(0, -1, 0), today
	case FilterCustom:
		if sel.Start == nil || sel.End == nil {
			return expenses
		}
		from, to = dateOnly(*sel.Start), dateOnly(*sel.End)
	default:
		return expenses
	}

	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		d := dateOnly(e.OccurredOn.In(now.Location()))
		if !d.Before(from) && !d.After(to) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Aggregate sums the given expenses. The grand total and category breakdowns
// cover every record; the monthly series covers only now's calendar year.
func Aggregate(expenses []models.Expense, now time.Time) Totals {
	totals := Totals{
		CountByCategory: make(map[string]int),
		SumByCategory:   make(map[string]float64),
	}

	currentYear := now.Year()
	for _, e := range expenses {
		totals.Total += e.Amount
		totals.CountByCategory[e.Category]++
		totals.SumByCategory[e.Category] += e.Amount

		occurred := e.OccurredOn.In(now.Location())
		if occurred.Year() == currentYear {
			totals.MonthlyTotals[int(occurred.Month())-1] += e.Amount
		}
	}
	return totals
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
