// Package types contains common types used across the application
package types

// percentScale converts a ratio to a percentage.
const percentScale = 100

// RankedCount is one display row of a ranked aggregate
type RankedCount struct {
	Rank    int     `json:"rank"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Value   float64 `json:"value"`   // metric the row is ranked by
	Percent float64 `json:"percent"` // Value as a percentage of the largest Value
}

// AssignRanks sets Rank and Percent on rows already sorted by Value descending.
// Equal values share a rank (1, 2, 2, 4). Percent is relative to the first row.
func AssignRanks(rows []RankedCount) []RankedCount {
	if len(rows) == 0 {
		return rows
	}
	maxValue := rows[0].Value
	for i := range rows {
		switch {
		case i == 0:
			rows[i].Rank = 1
		case rows[i].Value == rows[i-1].Value:
			rows[i].Rank = rows[i-1].Rank
		default:
			rows[i].Rank = i + 1
		}
		if maxValue > 0 {
			rows[i].Percent = rows[i].Value / maxValue * percentScale
		} else {
			rows[i].Percent = 0
		}
	}
	return rows
}
