package models

import (
	"sort"
	"time"
)

// DailyUsage holds one day's consumed gas volumes in liters
type DailyUsage struct {
	Oxygen  float64 `json:"oxygen"`
	Diluent float64 `json:"diluent"` // Only tracked in no-ambient mode
}

// Usage maps day-of-month to that day's consumed volumes.
// Days from different months share a bucket when their day-of-month matches.
type Usage map[int]DailyUsage

// Days returns the populated days in ascending order
func (u Usage) Days() []int {
	days := make([]int, 0, len(u))
	for day := range u {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Total sums every day's volumes
func (u Usage) Total() DailyUsage {
	var total DailyUsage
	for _, d := range u {
		total.Oxygen += d.Oxygen
		total.Diluent += d.Diluent
	}
	return total
}

// ArchivedDay is one day's totals as stored in the report archive
type ArchivedDay struct {
	ID        int       `json:"id"`
	ReportID  string    `json:"report_id"`
	Day       int       `json:"day"`
	Oxygen    float64   `json:"oxygen"`
	Diluent   float64   `json:"diluent"`
	Mode      Mode      `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
}
