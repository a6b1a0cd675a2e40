package report

import (
	"driver-risk-service/internal/model"
)

// RankDrivers aggregates scored events into one ranking row per non-empty
// driver identity.
func RankDrivers(events []model.Event) []model.RankingRow {
	return rank(events, func(e model.Event) string { return e.Driver })
}

// RankVehicles aggregates scored events into one ranking row per non-empty
// vehicle identity.
func RankVehicles(events []model.Event) []model.RankingRow {
	return rank(events, func(e model.Event) string { return e.Vehicle })
}

// rank is a plain additive reduction, so it stays correct under any
// scheduling of its inputs. Rows come back in first-seen order; sorting for
// presentation is the caller's concern.
func rank(events []model.Event, identity func(model.Event) string) []model.RankingRow {
	index := make(map[string]int)
	rows := make([]model.RankingRow, 0)

	for _, e := range events {
		id := identity(e)
		if id == "" {
			continue
		}
		pos, ok := index[id]
		if !ok {
			pos = len(rows)
			index[id] = pos
			row := model.RankingRow{
				Identity: id,
				ByType:   make(map[model.ViolationType]float64, len(model.ViolationTypes)),
			}
			for _, t := range model.ViolationTypes {
				row.ByType[t] = 0
			}
			rows = append(rows, row)
		}

		row := &rows[pos]
		row.Total += e.Score
		row.ByType[e.Type] += e.Score
		switch e.Type.Category() {
		case model.CategoryEconomic:
			row.Economic += e.Score
		case model.CategorySafety:
			row.Safety += e.Score
		}
	}

	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].EconomicPct = rows[i].Economic / rows[i].Total * 100
			rows[i].SafetyPct = rows[i].Safety / rows[i].Total * 100
		}
	}
	return rows
}
