package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/filmdeck/pkg/movie"
)

const width = len("11 12 13 14 15 16 17") // an example week

// History prints a month grid for then, highlighting days a movie was watched.
func (pp *PrettyPrint) History(then time.Time, movies ...movie.Movie) {
	pp.PrintMonthCount(then, WatchedPerDay(then, movies))
}

// HistorySince prints one grid per month from since through now.
func (pp *PrettyPrint) HistorySince(since, now time.Time, movies ...movie.Movie) {
	month := time.Date(since.Year(), since.Month(), 1, 1, 0, 0, 0, since.Location())
	for !month.After(now) {
		pp.History(month, movies...)
		month = NextMonth(month)
	}
}

// WatchedPerDay counts watched movies per day of then's month.
func WatchedPerDay(then time.Time, movies []movie.Movie) []int {
	count := make([]int, DaysIn(then))
	for _, m := range movies {
		w := m.UserDetails.WatchingDate
		if !m.UserDetails.AlreadyWatched || w == nil {
			continue
		}
		if w.Year() == then.Year() && w.Month() == then.Month() {
			count[w.Day()-1]++
		}
	}
	return count
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	_, _ = fmt.Fprint(out, strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(out, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
