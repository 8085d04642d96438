package presenter

import (
	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/view"
)

// Rank names the viewer by how many movies they have watched.
func Rank(watched int) string {
	switch {
	case watched <= 0:
		return ""
	case watched <= 10:
		return "Novice"
	case watched <= 20:
		return "Fan"
	default:
		return "Movie Buff"
	}
}

// Stats keeps the profile rank in the header and the catalog size in the
// footer up to date.
type Stats struct {
	header render.View
	footer render.View
	movies *model.MovieModel
	log    hclog.Logger

	profile *view.Profile
	stats   *view.Stats
}

func NewStats(header, footer render.View, movies *model.MovieModel, log hclog.Logger) *Stats {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	p := &Stats{header: header, footer: footer, movies: movies, log: log.Named("stats")}
	movies.AddObserver(func(model.UpdateKind, any) { p.Init() })
	return p
}

// Init redraws both views.
func (p *Stats) Init() {
	list := p.movies.Movies()
	watched := len(movie.Filters[movie.FilterHistory](list))

	prevProfile, prevStats := p.profile, p.stats
	p.profile = view.NewProfile(Rank(watched))
	p.stats = view.NewStats(len(list))
	p.swap(p.profile, prevProfile, p.header)
	p.swap(p.stats, prevStats, p.footer)
}

func (p *Stats) swap(next, prev, container render.View) {
	render.Remove(prev)
	if err := render.Render(next, container, render.BeforeEnd); err != nil {
		p.log.Error("mount stats", "error", err)
	}
}
