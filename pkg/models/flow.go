package models

import "time"

// AmbientFraction is the oxygen percentage of room air
const AmbientFraction = 21

// FlowRecord is one logged change of gas flow
type FlowRecord struct {
	Timestamp time.Time `json:"timestamp"` // Local wall-clock, minute resolution
	Flow      float64   `json:"flow"`      // L/min
	Fraction  int       `json:"fraction"`  // Inspired oxygen %, 21 outside fraction mode
}

// Mode selects which gas-fraction formula the calculator applies
type Mode struct {
	Fraction  bool `json:"fraction"`
	NoAmbient bool `json:"no_ambient"`
}

// Normalize drops NoAmbient when fraction mode is off, since it has no meaning there
func (m Mode) Normalize() Mode {
	if !m.Fraction {
		m.NoAmbient = false
	}
	return m
}

// TracksDiluent reports whether the diluent component is accumulated
func (m Mode) TracksDiluent() bool {
	return m.Fraction && m.NoAmbient
}

// String names the mode for display
func (m Mode) String() string {
	switch {
	case m.TracksDiluent():
		return "fraction, no ambient"
	case m.Fraction:
		return "fraction"
	default:
		return "plain"
	}
}
