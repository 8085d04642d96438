package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	day           = 24 * time.Hour
	windowUnits   = map[string]time.Duration{
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      7 * day,
		"week":   7 * day,
		"weeks":  7 * day,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
)

// ParseWindow parses a watch history window such as "1w", "3mo" or "1y2mo"
// and returns it with a canonical label.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("timeutil: empty window")
	}
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid window value %q: %w", matches[1], err)
		}
		unit, ok := windowUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a window using year/month/week/day tokens.
func FormatWindow(d time.Duration) string {
	units := []struct {
		label string
		value time.Duration
	}{
		{"y", 365 * day},
		{"mo", 30 * day},
		{"w", 7 * day},
		{"d", day},
	}
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0d"
	}
	return b.String()
}
