package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/workforceone/fieldops-backend-go/internal/domain/report"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
)

const (
	// extremeLongMinutes is the threshold above which a shift is almost
	// certainly a forgotten clock-out.
	extremeLongMinutes = 16 * 60

	// extremeShortMinutes flags shifts too short to be a real work session.
	extremeShortMinutes = 45

	// lateCutoffMinutes is 09:10 expressed as minutes past midnight.
	// Habitual lateness counts clock-ins after this mark.
	lateCutoffMinutes = 9*60 + 10

	habitualLateThreshold  = 3
	habitualLateWindowDays = 7

	patternBreakWeekdayMin = 10
)

const unknownEmployeeName = "Unknown Employee"

// ComputeAnomalies runs every detection rule over the window of entries and
// returns the combined findings sorted by date descending. It is a pure
// function of (entries, names, now): re-running with the same inputs yields
// the same output.
func ComputeAnomalies(entries []timeclock.TimeEntry, names map[string]string, now time.Time) []report.Anomaly {
	byUser := make(map[string][]timeclock.TimeEntry)
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	var anomalies []report.Anomaly
	for userID, userEntries := range byUser {
		userName := displayName(names, userID)
		anomalies = append(anomalies, detectExtremeDurations(userEntries, userName)...)
		if a := detectHabitualLateness(userEntries, userID, userName, now); a != nil {
			anomalies = append(anomalies, *a)
		}
		if a := detectPatternBreak(userEntries, userName); a != nil {
			anomalies = append(anomalies, *a)
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		if !anomalies[i].Date.Equal(anomalies[j].Date) {
			return anomalies[i].Date.After(anomalies[j].Date)
		}
		return anomalies[i].ID < anomalies[j].ID
	})

	return anomalies
}

// detectExtremeDurations emits one anomaly per entry whose fixed duration is
// implausibly long or implausibly short. Open entries are skipped: no
// clock-out means no duration to judge.
func detectExtremeDurations(entries []timeclock.TimeEntry, userName string) []report.Anomaly {
	var anomalies []report.Anomaly
	for _, e := range entries {
		if e.DurationMinutes == nil {
			continue
		}
		minutes := *e.DurationMinutes

		if minutes > extremeLongMinutes {
			hours := int(math.Round(float64(minutes) / 60))
			metric := fmt.Sprintf("%dh", hours)
			entryID := e.ID
			anomalies = append(anomalies, report.Anomaly{
				ID:             anomalyID(report.AnomalyExtremeDuration, e.ID),
				UserID:         e.UserID,
				UserName:       userName,
				Date:           e.ClockIn,
				Type:           report.AnomalyExtremeDuration,
				Severity:       report.SeverityCritical,
				Description:    fmt.Sprintf("Shift lasted about %d hours, likely a forgotten clock-out", hours),
				MetricValue:    &metric,
				RelatedEntryID: &entryID,
			})
			continue
		}

		if minutes < extremeShortMinutes && e.ClockOut != nil {
			metric := fmt.Sprintf("%dm", minutes)
			entryID := e.ID
			anomalies = append(anomalies, report.Anomaly{
				ID:             anomalyID(report.AnomalyExtremeDuration, e.ID),
				UserID:         e.UserID,
				UserName:       userName,
				Date:           e.ClockIn,
				Type:           report.AnomalyExtremeDuration,
				Severity:       report.SeverityMedium,
				Description:    fmt.Sprintf("Shift lasted only %d minutes", minutes),
				MetricValue:    &metric,
				RelatedEntryID: &entryID,
			})
		}
	}
	return anomalies
}

// detectHabitualLateness looks at the trailing 7 days only. Three or more
// clock-ins after 09:10 collapse into a single finding dated now.
func detectHabitualLateness(entries []timeclock.TimeEntry, userID, userName string, now time.Time) *report.Anomaly {
	since := now.AddDate(0, 0, -habitualLateWindowDays)

	lateCount := 0
	for _, e := range entries {
		if e.ClockIn.Before(since) {
			continue
		}
		minuteOfDay := e.ClockIn.Hour()*60 + e.ClockIn.Minute()
		if minuteOfDay > lateCutoffMinutes {
			lateCount++
		}
	}

	if lateCount < habitualLateThreshold {
		return nil
	}

	metric := fmt.Sprintf("%d incidents", lateCount)
	return &report.Anomaly{
		ID:          anomalyID(report.AnomalyHabitualLate, userID+":"+now.Format("2006-01-02")),
		UserID:      userID,
		UserName:    userName,
		Date:        now,
		Type:        report.AnomalyHabitualLate,
		Severity:    report.SeverityHigh,
		Description: fmt.Sprintf("Clocked in after 09:10 on %d days in the last week", lateCount),
		MetricValue: &metric,
	}
}

// detectPatternBreak flags a lone Sunday shift from someone who otherwise
// works a dense weekday schedule.
func detectPatternBreak(entries []timeclock.TimeEntry, userName string) *report.Anomaly {
	var sundays []timeclock.TimeEntry
	weekdayCount := 0

	for _, e := range entries {
		switch e.ClockIn.Weekday() {
		case time.Sunday:
			sundays = append(sundays, e)
		case time.Saturday:
			// Neither a Sunday nor a weekday for this rule.
		default:
			weekdayCount++
		}
	}

	if len(sundays) != 1 || weekdayCount <= patternBreakWeekdayMin {
		return nil
	}

	entry := sundays[0]
	entryID := entry.ID
	return &report.Anomaly{
		ID:             anomalyID(report.AnomalyPatternBreak, entry.ID),
		UserID:         entry.UserID,
		UserName:       userName,
		Date:           entry.ClockIn,
		Type:           report.AnomalyPatternBreak,
		Severity:       report.SeverityLow,
		Description:    "Worked a Sunday outside the usual weekday pattern",
		RelatedEntryID: &entryID,
	}
}

// anomalyID builds a stable display key so the dashboard can de-duplicate
// findings across recomputations.
func anomalyID(rule report.AnomalyType, key string) string {
	return fmt.Sprintf("%s:%s", rule, key)
}

func displayName(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return unknownEmployeeName
}
