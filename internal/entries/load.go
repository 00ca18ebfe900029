package entries

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseLine splits a "TIMESTAMP FLOW [FRACTION]" line.
// Blank lines and lines starting with # yield ok == false.
func ParseLine(line string) (timestamp, flow, fraction string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", "", false
	}
	fields := strings.Fields(line)
	timestamp = fields[0]
	if len(fields) > 1 {
		flow = fields[1]
	}
	if len(fields) > 2 {
		fraction = fields[2]
	}
	return timestamp, flow, fraction, true
}

// Load adds one record per line of r and returns how many were added.
// It stops at the first rejected line.
func (s *Store) Load(r io.Reader, fractionMode bool) (int, error) {
	scanner := bufio.NewScanner(r)
	added := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ts, flow, fraction, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := s.Add(ts, flow, fraction, fractionMode); err != nil {
			return added, fmt.Errorf("line %d: %w", lineNo, err)
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("reading entries: %w", err)
	}
	return added, nil
}
