package types

import "fmt"

// GapLevel is the traffic-light classification of a compliance shortfall
type GapLevel string

const (
	GapRed    GapLevel = "red"
	GapYellow GapLevel = "yellow"
	GapGreen  GapLevel = "green"
)

// AllGapLevels returns all valid gap levels
func AllGapLevels() []GapLevel {
	return []GapLevel{
		GapRed,
		GapYellow,
		GapGreen,
	}
}

// IsValid checks if the gap level is valid
func (g GapLevel) IsValid() bool {
	switch g {
	case GapRed, GapYellow, GapGreen:
		return true
	default:
		return false
	}
}

// String returns the string representation of the gap level
func (g GapLevel) String() string {
	return string(g)
}

// ParseGapLevel parses a string into a GapLevel
func ParseGapLevel(s string) (GapLevel, error) {
	level := GapLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid gap level: %s", s)
	}
	return level, nil
}
