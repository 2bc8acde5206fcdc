package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforceone/fieldops-backend-go/internal/domain/report"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
)

// now is a Wednesday at noon so the trailing-7-day sub-window is easy to
// reason about in the fixtures below.
var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func closedEntry(id, userID string, clockIn time.Time, durationMinutes int) timeclock.TimeEntry {
	clockOut := clockIn.Add(time.Duration(durationMinutes) * time.Minute)
	return timeclock.TimeEntry{
		ID:              id,
		OrganizationID:  "org-1",
		UserID:          userID,
		ClockIn:         clockIn,
		ClockOut:        &clockOut,
		DurationMinutes: &durationMinutes,
	}
}

func openEntry(id, userID string, clockIn time.Time) timeclock.TimeEntry {
	return timeclock.TimeEntry{
		ID:             id,
		OrganizationID: "org-1",
		UserID:         userID,
		ClockIn:        clockIn,
	}
}

func TestComputeAnomalies_ExtremeLongShift(t *testing.T) {
	clockIn := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	entries := []timeclock.TimeEntry{
		closedEntry("entry-1", "user-1", clockIn, 1000),
	}
	names := map[string]string{"user-1": "Jordan Mweni"}

	anomalies := ComputeAnomalies(entries, names, testNow)

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, report.AnomalyExtremeDuration, a.Type)
	assert.Equal(t, report.SeverityCritical, a.Severity)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, "Jordan Mweni", a.UserName)
	require.NotNil(t, a.MetricValue)
	assert.Equal(t, "17h", *a.MetricValue)
	require.NotNil(t, a.RelatedEntryID)
	assert.Equal(t, "entry-1", *a.RelatedEntryID)
	assert.True(t, a.Date.Equal(clockIn))
}

func TestComputeAnomalies_ExtremeShortShift(t *testing.T) {
	clockIn := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	entries := []timeclock.TimeEntry{
		closedEntry("entry-1", "user-1", clockIn, 30),
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	require.Len(t, anomalies, 1)
	assert.Equal(t, report.AnomalyExtremeDuration, anomalies[0].Type)
	assert.Equal(t, report.SeverityMedium, anomalies[0].Severity)
}

func TestComputeAnomalies_OpenEntryNotShort(t *testing.T) {
	// A still-open entry has no duration yet; it must not be flagged short.
	entries := []timeclock.TimeEntry{
		openEntry("entry-1", "user-1", testNow.Add(-10*time.Minute)),
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	assert.Empty(t, anomalies)
}

func TestComputeAnomalies_HabitualLateness(t *testing.T) {
	entries := []timeclock.TimeEntry{
		closedEntry("entry-1", "user-1", time.Date(2026, 3, 16, 9, 15, 0, 0, time.UTC), 480),
		closedEntry("entry-2", "user-1", time.Date(2026, 3, 17, 9, 20, 0, 0, time.UTC), 480),
		closedEntry("entry-3", "user-1", time.Date(2026, 3, 18, 9, 30, 0, 0, time.UTC), 150),
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, report.AnomalyHabitualLate, a.Type)
	assert.Equal(t, report.SeverityHigh, a.Severity)
	assert.Equal(t, "Unknown Employee", a.UserName)
	require.NotNil(t, a.MetricValue)
	assert.Equal(t, "3 incidents", *a.MetricValue)
	assert.True(t, a.Date.Equal(testNow))
	assert.Nil(t, a.RelatedEntryID)
}

func TestComputeAnomalies_TwoLateEntriesNotHabitual(t *testing.T) {
	entries := []timeclock.TimeEntry{
		closedEntry("entry-1", "user-1", time.Date(2026, 3, 16, 9, 15, 0, 0, time.UTC), 480),
		closedEntry("entry-2", "user-1", time.Date(2026, 3, 17, 9, 20, 0, 0, time.UTC), 480),
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	assert.Empty(t, anomalies)
}

func TestComputeAnomalies_LateEntriesOutsideWeekIgnored(t *testing.T) {
	// Three late clock-ins, but only two fall inside the trailing 7 days.
	entries := []timeclock.TimeEntry{
		closedEntry("entry-1", "user-1", time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), 480),
		closedEntry("entry-2", "user-1", time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC), 480),
		closedEntry("entry-3", "user-1", time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC), 480),
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	assert.Empty(t, anomalies)
}

func TestComputeAnomalies_PatternBreak(t *testing.T) {
	sunday := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	entries := []timeclock.TimeEntry{
		closedEntry("entry-sun", "user-1", sunday, 480),
	}
	// Eleven weekday shifts, all clocking in before 09:00.
	for i := 0; i < 11; i++ {
		day := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 2)
		}
		entries = append(entries, closedEntry(fmt.Sprintf("entry-%d", i), "user-1", day, 480))
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, report.AnomalyPatternBreak, a.Type)
	assert.Equal(t, report.SeverityLow, a.Severity)
	assert.True(t, a.Date.Equal(sunday))
	require.NotNil(t, a.RelatedEntryID)
	assert.Equal(t, "entry-sun", *a.RelatedEntryID)
}

func TestComputeAnomalies_TwoSundaysNoPatternBreak(t *testing.T) {
	entries := []timeclock.TimeEntry{
		closedEntry("entry-sun1", "user-1", time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC), 480),
		closedEntry("entry-sun2", "user-1", time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), 480),
	}
	for i := 0; i < 11; i++ {
		day := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 2)
		}
		entries = append(entries, closedEntry(fmt.Sprintf("entry-%d", i), "user-1", day, 480))
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	assert.Empty(t, anomalies)
}

func TestComputeAnomalies_SortedByDateDescending(t *testing.T) {
	entries := []timeclock.TimeEntry{
		closedEntry("entry-old", "user-1", time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 1100),
		closedEntry("entry-new", "user-2", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 1100),
	}

	anomalies := ComputeAnomalies(entries, nil, testNow)

	require.Len(t, anomalies, 2)
	assert.Equal(t, "user-2", anomalies[0].UserID)
	assert.Equal(t, "user-1", anomalies[1].UserID)
}

func TestComputeAnomalies_StableIDs(t *testing.T) {
	entries := []timeclock.TimeEntry{
		closedEntry("entry-1", "user-1", time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), 1000),
	}

	first := ComputeAnomalies(entries, nil, testNow)
	second := ComputeAnomalies(entries, nil, testNow)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}
