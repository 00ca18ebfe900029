package calculator

import (
	"math"
	"time"

	"github.com/jgoulah/gascalc/pkg/models"
)

// Fraction of room air that is not oxygen
const ambientDiluent = 0.79

// Compute converts an ascending list of flow changes into per-day volumes.
// Each record stays active until the next one starts; the last record runs
// until local midnight of its own day. Intervals are split at local midnight
// so every chunk lands in the bucket of the day it was consumed on.
func Compute(records []models.FlowRecord, mode models.Mode) models.Usage {
	usage := make(models.Usage)
	if len(records) == 0 {
		return usage
	}

	for i, record := range records {
		var end time.Time
		if i+1 < len(records) {
			end = records[i+1].Timestamp
		} else {
			end = nextMidnight(record.Timestamp)
		}

		remaining := end.Sub(record.Timestamp)
		current := record.Timestamp

		for remaining > 0 {
			chunk := nextMidnight(current).Sub(current)
			if remaining < chunk {
				chunk = remaining
			}

			oxygen, diluent := volumes(record, mode, chunk.Minutes())

			day := current.Day()
			d := usage[day]
			d.Oxygen += oxygen
			d.Diluent += diluent
			usage[day] = d

			current = current.Add(chunk)
			remaining -= chunk
		}
	}

	// Round once, after accumulation
	for day, d := range usage {
		usage[day] = models.DailyUsage{
			Oxygen:  roundTenth(d.Oxygen),
			Diluent: roundTenth(d.Diluent),
		}
	}

	return usage
}

// volumes returns the oxygen and diluent liters consumed by record over minutes
func volumes(record models.FlowRecord, mode models.Mode, minutes float64) (oxygen, diluent float64) {
	fraction := float64(record.Fraction)

	switch {
	case !mode.Fraction:
		return record.Flow * minutes, 0
	case mode.NoAmbient:
		oxygen = fraction * 0.01 * record.Flow * minutes
		diluent = (100 - fraction) * 0.01 * record.Flow * minutes
		return oxygen, diluent
	default:
		// Only oxygen supplied above room air counts
		perMinute := (fraction - models.AmbientFraction) * 0.01 / ambientDiluent * record.Flow
		return math.Max(0, perMinute) * minutes, 0
	}
}

// nextMidnight returns the first instant of the day after t in t's location.
// Where a DST change skips 00:00, time.Date lands an hour early on t's own
// day, so step forward until the date changes.
func nextMidnight(t time.Time) time.Time {
	m := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
	for m.Day() == t.Day() || !m.After(t) {
		m = m.Add(time.Hour)
	}
	return m
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
