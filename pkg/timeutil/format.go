// Package timeutil formats the dates and durations shown on cards, popups and
// in the CLI, and parses the history windows accepted by `filmdeck list`.
package timeutil

import (
	"fmt"
	"time"
)

// Runtime renders minutes as "1h 36m" or "54m".
func Runtime(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Year is the card's release year.
func Year(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006")
}

// ReleaseDate is the popup's long release date, e.g. "2 January 1995".
func ReleaseDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 January 2006")
}

// CommentDate describes when a comment was written relative to now.
func CommentDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 2*24*time.Hour:
		return "yesterday"
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
	return t.Format("2006/01/02 15:04")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "a " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
