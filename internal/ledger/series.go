package ledger

import (
	"sort"
	"time"

	"ekspence/internal/core"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// maxSeriesPoints bounds the bucket loop so a corrupt far-future date cannot
// spin it forever.
const maxSeriesPoints = 500

type SeriesPoint struct {
	Label   string
	Date    core.Date
	Balance float64
}

// granularityFor picks bucket width from the overall span: under two months
// daily, under two years monthly, yearly beyond that.
func granularityFor(span time.Duration) Granularity {
	days := span.Hours() / 24
	switch {
	case days < 60:
		return GranularityDay
	case days < 730:
		return GranularityMonth
	default:
		return GranularityYear
	}
}

func bucketStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func bucketNext(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityDay:
		return t.AddDate(0, 0, 1)
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

func bucketLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return t.Format("02 Jan")
	case GranularityMonth:
		return t.Format("Jan-2006")
	default:
		return t.Format("2006")
	}
}

// BalanceSeries builds the net-worth-over-time chart series: one point per
// bucket from the earliest transaction to now, each carrying the summed
// balance of the selected accounts as of the end of that bucket. An empty
// accountNames slice means every registered account.
func BalanceSeries(txns []core.Transaction, accounts []core.Account, accountNames []string, now time.Time) []SeriesPoint {
	if len(txns) == 0 {
		return nil
	}

	selected := accountNames
	if len(selected) == 0 {
		selected = make([]string, 0, len(accounts))
		for _, a := range accounts {
			selected = append(selected, a.Name)
		}
	}

	earliest := txns[0].Date.Time
	for _, t := range txns[1:] {
		if t.Date.Before(earliest) {
			earliest = t.Date.Time
		}
	}

	g := granularityFor(now.Sub(earliest))

	// Snapshots come from a date-ordered copy so each bucket extends the
	// previous prefix instead of rescanning history.
	ordered := make([]core.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date.Time)
	})

	var points []SeriesPoint
	balance := 0.0
	sel := NewNameSet(selected...)
	next := 0

	for cursor := bucketStart(earliest, g); !cursor.After(now) && len(points) < maxSeriesPoints; cursor = bucketNext(cursor, g) {
		end := bucketNext(cursor, g).Add(-time.Nanosecond)
		for next < len(ordered) && !ordered[next].Date.After(end) {
			t := ordered[next]
			if sel.Contains(t.ToAccount) {
				balance += t.Amount
			}
			if sel.Contains(t.FromAccount) {
				balance -= t.Amount
			}
			next++
		}
		points = append(points, SeriesPoint{
			Label:   bucketLabel(cursor, g),
			Date:    core.Date{Time: cursor},
			Balance: balance,
		})
	}
	return points
}
