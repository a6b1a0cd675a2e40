package report

import (
	"fmt"
	"sort"

	"driver-risk-service/internal/model"
)

// Summarize computes the batch-level KPIs: score totals, category split,
// accumulated time per time-based violation kind, and the daily risk series.
func Summarize(events []model.Event) model.FleetSummary {
	summary := model.FleetSummary{TotalEvents: len(events)}

	var idlingSeconds, speedingSeconds, greenBandSeconds int
	daily := make(map[string]float64)

	for _, e := range events {
		summary.TotalScore += e.Score
		switch e.Type.Category() {
		case model.CategoryEconomic:
			summary.EconomicScore += e.Score
		case model.CategorySafety:
			summary.SafetyScore += e.Score
		}
		switch e.Type {
		case model.ViolationIdling:
			idlingSeconds += e.DurationSeconds
		case model.ViolationSpeedExcess:
			speedingSeconds += e.DurationSeconds
		case model.ViolationGreenBand:
			greenBandSeconds += e.DurationSeconds
		}
		daily[e.OccurredAt.Format("2006-01-02")] += e.Score
	}

	if summary.TotalScore > 0 {
		summary.EconomicPct = summary.EconomicScore / summary.TotalScore * 100
		summary.SafetyPct = summary.SafetyScore / summary.TotalScore * 100
	}

	summary.IdlingTime = formatHoursMinutes(idlingSeconds)
	summary.SpeedingTime = formatHoursMinutes(speedingSeconds)
	summary.GreenBandTime = formatHoursMinutes(greenBandSeconds)

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	summary.Daily = make([]model.DailyScore, 0, len(dates))
	for _, date := range dates {
		point := model.DailyScore{Date: date, Score: daily[date]}
		summary.Daily = append(summary.Daily, point)
		if summary.WorstDay == nil || point.Score > summary.WorstDay.Score {
			worst := point
			summary.WorstDay = &worst
		}
	}

	return summary
}

// formatHoursMinutes renders an accumulated duration as HH:MM, the format
// used on the fleet KPI cards.
func formatHoursMinutes(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}
