package report

import (
	"math"
	"testing"
	"time"

	"driver-risk-service/internal/model"
)

func dayEvent(day int, t model.ViolationType, score float64, durationSeconds int) model.Event {
	return model.Event{
		Type:            t,
		Score:           score,
		DurationSeconds: durationSeconds,
		OccurredAt:      time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	events := []model.Event{
		dayEvent(15, model.ViolationSpeedExcess, 0.32, 20),
		dayEvent(15, model.ViolationIdling, 0.115, 1800),
		dayEvent(16, model.ViolationGreenBand, 0.0798, 360),
		dayEvent(16, model.ViolationHarshBraking, 0.1, 0),
		dayEvent(16, model.ViolationIdling, 0.1, 5400),
	}

	s := Summarize(events)

	if s.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", s.TotalEvents)
	}
	if math.Abs(s.TotalScore-0.7148) > 1e-9 {
		t.Errorf("TotalScore = %v, want 0.7148", s.TotalScore)
	}
	if math.Abs(s.EconomicScore+s.SafetyScore-s.TotalScore) > 1e-9 {
		t.Errorf("category scores sum to %v, want %v", s.EconomicScore+s.SafetyScore, s.TotalScore)
	}
	if math.Abs(s.EconomicPct+s.SafetyPct-100) > 1e-9 {
		t.Errorf("category percentages sum to %v, want 100", s.EconomicPct+s.SafetyPct)
	}

	if s.IdlingTime != "02:00" {
		t.Errorf("IdlingTime = %q, want 02:00 (7200s)", s.IdlingTime)
	}
	if s.SpeedingTime != "00:00" {
		t.Errorf("SpeedingTime = %q, want 00:00 (20s rounds down)", s.SpeedingTime)
	}
	if s.GreenBandTime != "00:06" {
		t.Errorf("GreenBandTime = %q, want 00:06", s.GreenBandTime)
	}

	if len(s.Daily) != 2 {
		t.Fatalf("got %d daily points, want 2", len(s.Daily))
	}
	if s.Daily[0].Date != "2024-03-15" || s.Daily[1].Date != "2024-03-16" {
		t.Errorf("daily dates = %q, %q, want chronological order", s.Daily[0].Date, s.Daily[1].Date)
	}
	if math.Abs(s.Daily[0].Score-0.435) > 1e-9 {
		t.Errorf("day one score = %v, want 0.435", s.Daily[0].Score)
	}

	if s.WorstDay == nil {
		t.Fatal("WorstDay = nil")
	}
	if s.WorstDay.Date != "2024-03-15" {
		t.Errorf("WorstDay = %q, want 2024-03-15", s.WorstDay.Date)
	}
}

func TestSummarizeEmptyBatch(t *testing.T) {
	s := Summarize(nil)
	if s.TotalEvents != 0 || s.TotalScore != 0 {
		t.Errorf("empty batch should have zero totals, got %d/%v", s.TotalEvents, s.TotalScore)
	}
	if s.EconomicPct != 0 || s.SafetyPct != 0 {
		t.Errorf("empty batch should have zero percentages")
	}
	if s.IdlingTime != "00:00" {
		t.Errorf("IdlingTime = %q, want 00:00", s.IdlingTime)
	}
	if s.WorstDay != nil {
		t.Errorf("WorstDay = %+v, want nil", s.WorstDay)
	}
	if len(s.Daily) != 0 {
		t.Errorf("Daily = %v, want empty", s.Daily)
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:00"},
		{60, "00:01"},
		{3600, "01:00"},
		{3661, "01:01"},
		{90000, "25:00"},
	}
	for _, tc := range cases {
		if got := formatHoursMinutes(tc.seconds); got != tc.want {
			t.Errorf("formatHoursMinutes(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
