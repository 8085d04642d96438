// Package printers writes the catalog to the terminal for the CLI commands.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/timeutil"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

// TitleWithCount prints title followed by count of noun, pluralized.
func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+noun)
	default:
		_, _ = c.Fprintln(pp.out(), " "+noun+"s")
	}
}

// Catalog prints one row per movie in the given order.
func (pp *PrettyPrint) Catalog(movies ...movie.Movie) {
	if len(movies) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{bold.Sprint("Title"), bold.Sprint("Rating"), bold.Sprint("Year"), bold.Sprint("Runtime"), bold.Sprint("Flags"), bold.Sprint("Comments")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, m := range movies {
		row := []interface{}{
			m.Info.Title,
			fmt.Sprintf("%.1f", m.Info.TotalRating),
			timeutil.Year(m.Info.Release.Date),
			timeutil.Runtime(m.Info.Runtime),
			Flags(m.UserDetails),
			len(m.Comments),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(m.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Flags renders the user details as a fixed width marker, e.g. "W·F".
func Flags(d movie.UserDetails) string {
	mark := func(on bool, c string) string {
		if on {
			return c
		}
		return "·"
	}
	return mark(d.Watchlist, "W") + mark(d.AlreadyWatched, "H") + mark(d.Favorite, "F")
}

// Movie prints the details of one movie and its comments.
func (pp *PrettyPrint) Movie(m movie.Movie, now time.Time) {
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Fprintln(pp.out(), m.Info.Title)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	tbl.AddRow(f.Sprint("Director"), m.Info.Director)
	tbl.AddRow(f.Sprint("Writers"), strings.Join(m.Info.Writers, ", "))
	tbl.AddRow(f.Sprint("Actors"), strings.Join(m.Info.Actors, ", "))
	tbl.AddRow(f.Sprint("Release"), timeutil.ReleaseDate(m.Info.Release.Date)+" ("+m.Info.Release.Country+")")
	tbl.AddRow(f.Sprint("Runtime"), timeutil.Runtime(m.Info.Runtime))
	tbl.AddRow(f.Sprint("Genre"), strings.Join(m.Info.Genre, ", "))
	tbl.AddRow(f.Sprint("Flags"), Flags(m.UserDetails))
	tbl.AddRow(f.Sprint("About"), m.Info.Description)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	pp.NewLine()
	pp.TitleWithCount("Comments", len(m.Comments), "comment")
	for _, c := range m.Comments {
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", c.Emotion.Glyph(), c.Text)
		_, _ = f.Fprintf(pp.out(), "   %s · %s · %s\n", c.ID, c.Author, timeutil.CommentDate(c.Date, now))
	}
}
