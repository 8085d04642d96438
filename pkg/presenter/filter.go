package presenter

import (
	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/render"
	"tableflip.dev/filmdeck/pkg/view"
)

// Filter renders the navigation bar and feeds filter changes to the filter
// model.
type Filter struct {
	container render.View
	filters   *model.FilterModel
	movies    *model.MovieModel
	log       hclog.Logger

	view *view.Filter
}

// NewFilter subscribes to both models; every event redraws the counts.
func NewFilter(container render.View, filters *model.FilterModel, movies *model.MovieModel, log hclog.Logger) *Filter {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	p := &Filter{container: container, filters: filters, movies: movies, log: log.Named("filter")}
	filters.AddObserver(func(model.UpdateKind, any) { p.Init() })
	movies.AddObserver(func(model.UpdateKind, any) { p.Init() })
	return p
}

// Init draws the navigation, replacing the previous one in place.
func (p *Filter) Init() {
	prev := p.view
	p.view = view.NewFilter(p.filters.Filter(), movie.Counts(p.movies.Movies()))
	p.view.SetFilterTypeChangeHandler(p.handleFilterTypeChange)

	if prev == nil || !prev.HasElement() || !prev.Element().Attached() {
		if err := render.Render(p.view, p.container, render.AfterBegin); err != nil {
			p.log.Error("mount filter", "error", err)
		}
		return
	}
	if err := render.Replace(p.view, prev); err != nil {
		p.log.Error("replace filter", "error", err)
	}
	render.Remove(prev)
}

func (p *Filter) handleFilterTypeChange(f movie.FilterType) {
	if p.filters.Filter() == f {
		return
	}
	p.log.Debug("filter changed", "filter", f)
	p.filters.SetFilter(model.Major, f)
}
