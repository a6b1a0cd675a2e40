package model

// RankingRow is one aggregated summary per driver or vehicle identity.
// Per-type subtotals always carry all six types, zero when absent, so the
// row shape is stable for tabular presentation.
type RankingRow struct {
	Identity    string                    `json:"identity"`
	Total       float64                   `json:"total_score"`
	ByType      map[ViolationType]float64 `json:"by_type"`
	Economic    float64                   `json:"economic_score"`
	Safety      float64                   `json:"safety_score"`
	EconomicPct float64                   `json:"economic_pct"`
	SafetyPct   float64                   `json:"safety_pct"`
}

// DailyScore is one point of the fleet risk timeline.
type DailyScore struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// FleetSummary carries the batch-level KPIs shown alongside the rankings.
type FleetSummary struct {
	TotalScore    float64      `json:"total_score"`
	TotalEvents   int          `json:"total_events"`
	EconomicScore float64      `json:"economic_score"`
	SafetyScore   float64      `json:"safety_score"`
	EconomicPct   float64      `json:"economic_pct"`
	SafetyPct     float64      `json:"safety_pct"`
	IdlingTime    string       `json:"idling_time"`
	SpeedingTime  string       `json:"speeding_time"`
	GreenBandTime string       `json:"green_band_time"`
	Daily         []DailyScore `json:"daily_scores"`
	WorstDay      *DailyScore  `json:"worst_day,omitempty"`
}
