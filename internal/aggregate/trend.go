package aggregate

import (
	"sort"
	"time"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// monthKey truncates a timestamp to the first day of its calendar month, UTC
func monthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTrend counts cases per calendar month of the opened timestamp,
// ordered ascending by month. Months with zero cases are absent; the line
// chart connects the months that have data.
func MonthlyTrend(opened []time.Time) []model.TrendPoint {
	counts := make(map[time.Time]int)
	for _, t := range opened {
		counts[monthKey(t)]++
	}

	points := make([]model.TrendPoint, 0, len(counts))
	for month, count := range counts {
		points = append(points, model.TrendPoint{Month: month, Count: count})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month.Before(points[j].Month)
	})
	return points
}
