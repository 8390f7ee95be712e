package attendance

import (
	"fmt"
	"slices"
	"time"

	"github.com/balkashynov/punchcard/internal/parser"
)

// Status classifies one employee-day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusHalfDay Status = "HalfDay"
	StatusAbsent  Status = "Absent"
	StatusPending Status = "Pending"
)

const (
	fullDayMinutes = 8 * 60
	halfDayMinutes = 5 * 60
)

// DaySummary is the derived attendance for one employee on one date.
// Summaries are computed on demand from stored punches and never persisted.
type DaySummary struct {
	Date          string `json:"date"`
	Status        Status `json:"status"`
	FirstIn       string `json:"firstIn,omitempty"`
	LastOut       string `json:"lastOut,omitempty"`
	WorkedMinutes int    `json:"workedMinutes"`
}

// DeriveDay classifies one date from its punch times (canonical HH:MM).
// With no punches the day is Pending until the date has passed, then
// Absent. A single punch, or a last punch at or before the first, counts
// as zero worked minutes.
func DeriveDay(date string, times []string, isPast bool) DaySummary {
	if len(times) == 0 {
		status := StatusPending
		if isPast {
			status = StatusAbsent
		}
		return DaySummary{Date: date, Status: status}
	}

	sorted := slices.Clone(times)
	slices.Sort(sorted)
	firstIn := sorted[0]
	lastOut := sorted[len(sorted)-1]

	summary := DaySummary{
		Date:    date,
		Status:  StatusAbsent,
		FirstIn: firstIn,
		LastOut: lastOut,
	}

	inMin, inOK := parser.TimeToMinutes(firstIn)
	outMin, outOK := parser.TimeToMinutes(lastOut)
	if inOK && outOK && outMin > inMin {
		summary.WorkedMinutes = outMin - inMin
		switch {
		case summary.WorkedMinutes >= fullDayMinutes:
			summary.Status = StatusPresent
		case summary.WorkedMinutes >= halfDayMinutes:
			summary.Status = StatusHalfDay
		}
	}

	return summary
}

// MonthSummaries derives every calendar date of month (YYYY-MM)
// independently. byDate holds each date's punch times; dates with no entry
// take the no-punch branch. today anchors the past/future check.
func MonthSummaries(month string, byDate map[string][]string, today time.Time) ([]DaySummary, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	todayStr := today.Format("2006-01-02")

	var summaries []DaySummary
	for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		summaries = append(summaries, DeriveDay(date, byDate[date], date < todayStr))
	}
	return summaries, nil
}

// MonthRange returns the first and last dates of month in YYYY-MM-DD form.
func MonthRange(month string) (string, string, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}
