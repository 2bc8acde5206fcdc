package report

import (
	"math"
	"sort"

	"github.com/workforceone/fieldops-backend-go/internal/domain/report"
	"github.com/workforceone/fieldops-backend-go/internal/domain/timeclock"
)

const (
	// workdayStartMinutes is the 09:00 baseline for late-arrival counting.
	workdayStartMinutes = 9 * 60

	// lateToleranceMinutes is the grace period past the baseline.
	lateToleranceMinutes = 5

	// earlyDepartureHour marks clock-outs before 17:00 as early.
	earlyDepartureHour = 17

	lateArrivalsCap = 20
	topWorkersCap   = 5
)

// ComputeSummary rolls the window of entries up into the dashboard summary.
// Pure function: no I/O, no clock reads.
func ComputeSummary(entries []timeclock.TimeEntry, names map[string]string) report.AttendanceSummary {
	summary := report.AttendanceSummary{
		LateArrivals: []report.LateArrival{},
		DailyHours:   []report.DailyHours{},
		TopWorkers:   []report.TopWorker{},
	}

	dailyByDate := make(map[string]*report.DailyHours)
	hoursByUser := make(map[string]float64)
	var totalHours float64

	for _, e := range entries {
		if e.ClockOut == nil {
			summary.MissingClockOut++
		} else if e.ClockOut.Hour() < earlyDepartureHour {
			summary.EarlyDepartures++
		}

		minuteOfDay := e.ClockIn.Hour()*60 + e.ClockIn.Minute()
		if minutesLate := minuteOfDay - workdayStartMinutes; minutesLate > lateToleranceMinutes {
			summary.LateArrivals = append(summary.LateArrivals, report.LateArrival{
				EntryID:     e.ID,
				UserID:      e.UserID,
				UserName:    displayName(names, e.UserID),
				ClockIn:     e.ClockIn,
				MinutesLate: minutesLate,
			})
		}

		var hours float64
		if e.DurationMinutes != nil {
			hours = float64(*e.DurationMinutes) / 60
		}
		totalHours += hours
		hoursByUser[e.UserID] += hours

		date := e.ClockIn.Format("2006-01-02")
		day, ok := dailyByDate[date]
		if !ok {
			day = &report.DailyHours{Date: date}
			dailyByDate[date] = day
		}
		day.TotalHours += hours
		day.EntryCount++
	}

	sort.Slice(summary.LateArrivals, func(i, j int) bool {
		return summary.LateArrivals[i].MinutesLate > summary.LateArrivals[j].MinutesLate
	})
	if len(summary.LateArrivals) > lateArrivalsCap {
		summary.LateArrivals = summary.LateArrivals[:lateArrivalsCap]
	}

	for _, day := range dailyByDate {
		day.TotalHours = roundHours(day.TotalHours)
		summary.DailyHours = append(summary.DailyHours, *day)
	}
	sort.Slice(summary.DailyHours, func(i, j int) bool {
		return summary.DailyHours[i].Date < summary.DailyHours[j].Date
	})

	for userID, hours := range hoursByUser {
		summary.TopWorkers = append(summary.TopWorkers, report.TopWorker{
			UserID:     userID,
			UserName:   displayName(names, userID),
			TotalHours: roundHours(hours),
		})
	}
	sort.Slice(summary.TopWorkers, func(i, j int) bool {
		if summary.TopWorkers[i].TotalHours != summary.TopWorkers[j].TotalHours {
			return summary.TopWorkers[i].TotalHours > summary.TopWorkers[j].TotalHours
		}
		return summary.TopWorkers[i].UserID < summary.TopWorkers[j].UserID
	})
	if len(summary.TopWorkers) > topWorkersCap {
		summary.TopWorkers = summary.TopWorkers[:topWorkersCap]
	}

	// Active days only: a window day with no entries does not dilute the average.
	if activeDays := len(dailyByDate); activeDays > 0 {
		summary.AvgHoursPerDay = roundHours(totalHours / float64(activeDays))
	}

	return summary
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
