package entries

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jgoulah/gascalc/internal/calculator"
	"github.com/jgoulah/gascalc/pkg/models"
)

// Store holds flow records sorted by timestamp
type Store struct {
	mu      sync.RWMutex
	records []models.FlowRecord
	lastDay int // Day of the most recently accepted record, 0 when none

	loc   *time.Location
	year  int
	month time.Month
	now   func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithLocation sets the location record times are interpreted in
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMonth pins the year and month entries are placed in
func WithMonth(year int, month time.Month) Option {
	return func(s *Store) {
		s.year = year
		s.month = month
	}
}

// WithClock sets the clock used to pick the current month
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. Entries land in the current month unless WithMonth is given.
func NewStore(opts ...Option) *Store {
	s := &Store{
		loc: time.Local,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.year == 0 || s.month == 0 {
		now := s.now().In(s.loc)
		s.year, s.month = now.Year(), now.Month()
	}
	return s
}

// Add validates the raw form input and inserts the record.
// On failure the store is left unchanged and a *ValidationError is returned.
func (s *Store) Add(timestampText, flowText, fractionText string, fractionMode bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(timestampText) == "" || strings.TrimSpace(flowText) == "" {
		return invalid(MissingField, "timestamp and flow are required")
	}

	ts, err := ParseTimestamp(timestampText, s.lastDay, s.year, s.month, s.loc)
	if err != nil {
		return err
	}

	flow, err := parseFlow(flowText)
	if err != nil {
		return err
	}

	fraction := models.AmbientFraction
	if fractionMode {
		fraction, err = parseFraction(fractionText)
		if err != nil {
			return err
		}
	}

	s.records = append(s.records, models.FlowRecord{
		Timestamp: ts,
		Flow:      flow,
		Fraction:  fraction,
	})
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Timestamp.Before(s.records[j].Timestamp)
	})
	s.lastDay = ts.Day()

	return nil
}

func parseFlow(text string) (float64, error) {
	text = strings.TrimSpace(text)
	flow, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(flow) || math.IsInf(flow, 0) {
		return 0, invalid(InvalidFlow, fmt.Sprintf("%q is not a number", text))
	}
	if flow < 0 {
		return 0, invalid(InvalidFlow, fmt.Sprintf("flow %v is negative", flow))
	}
	return flow, nil
}

func parseFraction(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, invalid(InvalidFraction, "fraction is required in fraction mode")
	}
	fraction, err := strconv.Atoi(text)
	if err != nil {
		return 0, invalid(InvalidFraction, fmt.Sprintf("%q is not an integer", text))
	}
	if fraction < models.AmbientFraction || fraction > 100 {
		return 0, invalid(InvalidFraction, fmt.Sprintf("fraction %d must be between 21 and 100", fraction))
	}
	return fraction, nil
}

// Remove deletes the record at index. Out-of-range indexes are ignored.
func (s *Store) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(index)
}

// Take removes the record at index and returns it, for edit-by-reinsert
func (s *Store) Take(index int) (models.FlowRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(index)
}

func (s *Store) removeLocked(index int) (models.FlowRecord, bool) {
	if index < 0 || index >= len(s.records) {
		return models.FlowRecord{}, false
	}
	record := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)
	return record, true
}

// Get returns the record at index, or false when out of range
func (s *Store) Get(index int) (models.FlowRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.records) {
		return models.FlowRecord{}, false
	}
	return s.records[index], true
}

// Clear drops every record and forgets the last used day
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.lastDay = 0
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LastDay returns the day inherited by entries typed without one
func (s *Store) LastDay() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastDay == 0 {
		return 1
	}
	return s.lastDay
}

// Snapshot returns a copy of the records in timestamp order
func (s *Store) Snapshot() []models.FlowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FlowRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Usage computes per-day usage over a snapshot of the current records
func (s *Store) Usage(mode models.Mode) models.Usage {
	return calculator.Compute(s.Snapshot(), mode.Normalize())
}
