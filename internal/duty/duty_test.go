package duty

import (
	"testing"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

func fullReports(joining, today time.Time, status string) map[string]string {
	reports := map[string]string{}
	start, end := Window(joining, today)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		reports[d.Format("2006-01-02")] = status
	}
	return reports
}

func TestWindowClampsToJoiningDate(t *testing.T) {
	joined := today.AddDate(0, 0, -5)
	start, end := Window(joined, today)
	require.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), end)

	joined = today.AddDate(0, -6, 0)
	start, _ = Window(joined, today)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestNoOverdueWhenEveryDayReported(t *testing.T) {
	cal := Calendar{Shift: "morning", JoiningDate: today.AddDate(0, -3, 0), Online: true}
	reports := fullReports(cal.JoiningDate, today, models.ReportApproved)
	require.Equal(t, 0, CountOverdueDays(cal, reports, today))
}

func TestEveryEmptyWorkingDayIsOverdue(t *testing.T) {
	cal := Calendar{Shift: "night", JoiningDate: today.AddDate(0, -3, 0), Online: true}
	require.Equal(t, WindowDays+1, CountOverdueDays(cal, nil, today))
}

func TestDayBeforeJoiningIsExempt(t *testing.T) {
	cal := Calendar{Shift: "morning", JoiningDate: today.AddDate(0, 0, -3), Online: true}
	days := Classify(cal, nil, today)
	require.Len(t, days, 4) // joining day through today
	for _, d := range days {
		require.Equal(t, StatusOverdue, d.Status)
	}
	require.Equal(t, StatusExempt, DayStatus(today.AddDate(0, 0, -10), cal, nil))
}

func TestOfflineSpanIsExempt(t *testing.T) {
	offlineFrom := today.AddDate(0, 0, -10)
	cal := Calendar{
		Shift:           "morning",
		JoiningDate:     today.AddDate(0, -2, 0),
		Online:          false,
		OfflineFromDate: &offlineFrom,
	}
	require.Equal(t, StatusExempt, DayStatus(today.AddDate(0, 0, -5), cal, nil))
	require.Equal(t, StatusOverdue, DayStatus(today.AddDate(0, 0, -15), cal, nil))
}

func TestOnlineFromEndsTheOfflineSpan(t *testing.T) {
	offlineFrom := today.AddDate(0, 0, -20)
	onlineFrom := today.AddDate(0, 0, -10)
	cal := Calendar{
		Shift:           "morning",
		JoiningDate:     today.AddDate(0, -2, 0),
		Online:          false,
		OfflineFromDate: &offlineFrom,
		OnlineFromDate:  &onlineFrom,
	}
	require.Equal(t, StatusExempt, DayStatus(today.AddDate(0, 0, -15), cal, nil))
	require.Equal(t, StatusOverdue, DayStatus(today.AddDate(0, 0, -10), cal, nil))
	require.Equal(t, StatusOverdue, DayStatus(today.AddDate(0, 0, -5), cal, nil))
}

// After a driver comes back on roster the finished span must stay exempt;
// classification of a past day cannot depend on today's online flag.
func TestFinishedOfflineSpanStaysExemptAfterReturn(t *testing.T) {
	offlineFrom := today.AddDate(0, 0, -20)
	onlineFrom := today.AddDate(0, 0, -10)
	cal := Calendar{
		Shift:           "morning",
		JoiningDate:     today.AddDate(0, -2, 0),
		Online:          true,
		OfflineFromDate: &offlineFrom,
		OnlineFromDate:  &onlineFrom,
	}
	require.Equal(t, StatusExempt, DayStatus(today.AddDate(0, 0, -20), cal, nil))
	require.Equal(t, StatusExempt, DayStatus(today.AddDate(0, 0, -15), cal, nil))
	require.Equal(t, StatusExempt, DayStatus(today.AddDate(0, 0, -11), cal, nil))
	require.Equal(t, StatusOverdue, DayStatus(today.AddDate(0, 0, -10), cal, nil))
	require.Equal(t, StatusOverdue, DayStatus(today.AddDate(0, 0, -5), cal, nil))
}

func TestWeeklyOffDayIsExempt(t *testing.T) {
	sunday := int(time.Sunday)
	cal := Calendar{Shift: "morning", JoiningDate: today.AddDate(0, -2, 0), Online: true, WeeklyOffDay: &sunday}
	// 2026-08-30 is a Sunday
	require.Equal(t, StatusExempt, DayStatus(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), cal, nil))
	require.Equal(t, StatusOverdue, DayStatus(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), cal, nil))
}

func TestNoShiftMeansExempt(t *testing.T) {
	cal := Calendar{Shift: "none", JoiningDate: today.AddDate(0, -2, 0), Online: true}
	require.Equal(t, 0, CountOverdueDays(cal, nil, today))
}

func TestReportStatusClassification(t *testing.T) {
	cal := Calendar{Shift: "morning", JoiningDate: today.AddDate(0, -2, 0), Online: true}
	day := today.AddDate(0, 0, -1)
	key := day.Format("2006-01-02")

	require.Equal(t, StatusReported, DayStatus(day, cal, map[string]string{key: models.ReportApproved}))
	require.Equal(t, StatusReported, DayStatus(day, cal, map[string]string{key: models.ReportPendingVerification}))
	require.Equal(t, StatusExempt, DayStatus(day, cal, map[string]string{key: models.ReportLeave}))
	require.Equal(t, StatusOverdue, DayStatus(day, cal, map[string]string{key: models.ReportRejected}))
}

// A leave report on a day the calendar would call overdue wins: the stored
// report status takes precedence over calendar rules.
func TestReportBeatsCalendarRules(t *testing.T) {
	cal := Calendar{Shift: "morning", JoiningDate: today.AddDate(0, -2, 0), Online: true}
	reports := fullReports(cal.JoiningDate, today, models.ReportLeave)
	require.Equal(t, 0, CountOverdueDays(cal, reports, today))
}
