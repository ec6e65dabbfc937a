package models

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultIntervalMinutes is used whenever an interval cannot be understood.
const DefaultIntervalMinutes = 24 * 60

var intervalRe = regexp.MustCompile(`^(\d+)\s*([a-z]*)$`)

var unitMinutes = map[string]int{
	"":        1,
	"m":       1,
	"min":     1,
	"mins":    1,
	"minute":  1,
	"minutes": 1,
	"h":       60,
	"hr":      60,
	"hrs":     60,
	"hour":    60,
	"hours":   60,
	"d":       24 * 60,
	"day":     24 * 60,
	"days":    24 * 60,
	"w":       7 * 24 * 60,
	"week":    7 * 24 * 60,
	"weeks":   7 * 24 * 60,
}

// ParseInterval converts a user-facing interval such as "2 hours" or "1 week"
// to minutes. Anything it cannot parse yields DefaultIntervalMinutes.
func ParseInterval(s string) int {
	m := intervalRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return DefaultIntervalMinutes
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return DefaultIntervalMinutes
	}

	mult, ok := unitMinutes[m[2]]
	if !ok {
		return DefaultIntervalMinutes
	}

	// guard against overflow from absurd inputs
	if n > (1<<31-1)/mult {
		return DefaultIntervalMinutes
	}

	return n * mult
}
