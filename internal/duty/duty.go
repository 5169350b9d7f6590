// Package duty holds the one canonical definition of a driver's working day.
// Both the overdue counter and the calendar endpoint classify days through
// DayStatus, so the two can never drift apart.
package duty

import (
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
)

// Status classifies a single calendar day for a driver
type Status string

const (
	StatusReported Status = "reported"
	StatusOverdue  Status = "overdue"
	StatusExempt   Status = "exempt"
)

// WindowDays is the sliding lookback for overdue evaluation
const WindowDays = 30

const dateLayout = "2006-01-02"

// Calendar carries the driver fields that decide day classification
type Calendar struct {
	Shift           string
	JoiningDate     time.Time
	Online          bool
	OfflineFromDate *time.Time
	OnlineFromDate  *time.Time
	WeeklyOffDay    *int // 0=Sunday .. 6=Saturday
}

// CalendarFor builds a Calendar from a driver row
func CalendarFor(d *models.Driver) Calendar {
	return Calendar{
		Shift:           d.Shift,
		JoiningDate:     d.JoiningDate,
		Online:          d.Online,
		OfflineFromDate: d.OfflineFromDate,
		OnlineFromDate:  d.OnlineFromDate,
		WeeklyOffDay:    d.WeeklyOffDay,
	}
}

// Day is one classified calendar day
type Day struct {
	Date   time.Time `json:"date"`
	Status Status    `json:"status"`
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window returns the evaluation range [max(joining, today-30d), today],
// both ends truncated to dates.
func Window(joining, today time.Time) (time.Time, time.Time) {
	today = truncate(today)
	start := today.AddDate(0, 0, -WindowDays)
	joining = truncate(joining)
	if joining.After(start) {
		start = joining
	}
	return start, today
}

// offline reports whether day falls inside the driver's offline span. A
// closed span [OfflineFromDate, OnlineFromDate) stays exempt after the
// driver returns; the current online flag only decides an open-ended span.
func (c Calendar) offline(day time.Time) bool {
	if c.OfflineFromDate == nil {
		return false
	}
	if day.Before(truncate(*c.OfflineFromDate)) {
		return false
	}
	if c.OnlineFromDate != nil {
		return day.Before(truncate(*c.OnlineFromDate))
	}
	return !c.Online
}

// DayStatus classifies one day. reports maps "2006-01-02" date keys to the
// stored report status for that day; when a report exists its status wins,
// otherwise calendar rules apply.
func DayStatus(day time.Time, cal Calendar, reports map[string]string) Status {
	day = truncate(day)

	if st, ok := reports[day.Format(dateLayout)]; ok {
		switch st {
		case models.ReportLeave:
			return StatusExempt
		case models.ReportRejected:
			return StatusOverdue
		}
		return StatusReported
	}

	if day.Before(truncate(cal.JoiningDate)) {
		return StatusExempt
	}
	if cal.Shift == "" || cal.Shift == "none" {
		return StatusExempt
	}
	if cal.offline(day) {
		return StatusExempt
	}
	if cal.WeeklyOffDay != nil && int(day.Weekday()) == *cal.WeeklyOffDay {
		return StatusExempt
	}
	return StatusOverdue
}

// Classify walks the window day by day and returns every classified day.
func Classify(cal Calendar, reports map[string]string, today time.Time) []Day {
	start, end := Window(cal.JoiningDate, today)
	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{Date: d, Status: DayStatus(d, cal, reports)})
	}
	return days
}

// CountOverdueDays returns the number of overdue days inside the window.
// A non-zero result blocks the driver-offline transition.
func CountOverdueDays(cal Calendar, reports map[string]string, today time.Time) int {
	count := 0
	for _, d := range Classify(cal, reports, today) {
		if d.Status == StatusOverdue {
			count++
		}
	}
	return count
}
