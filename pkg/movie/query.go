package movie

import (
	"fmt"
	"sort"
	"strings"
)

// SortType selects the ordering of the visible catalog.
type SortType string

const (
	SortDefault SortType = "default"
	SortDate    SortType = "date"
	SortRating  SortType = "rating"
)

// SortTypes lists sort types in control order.
func SortTypes() []SortType {
	return []SortType{SortDefault, SortDate, SortRating}
}

// ParseSortType resolves a sort type by name; empty means default.
func ParseSortType(s string) (SortType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortDefault, nil
	}
	for _, t := range SortTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("movie: unknown sort type %q", s)
}

// Next cycles to the following sort type.
func (s SortType) Next() SortType {
	types := SortTypes()
	for i, t := range types {
		if t == s {
			return types[(i+1)%len(types)]
		}
	}
	return SortDefault
}

// FilterType selects which movies are visible.
type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterWatchlist FilterType = "watchlist"
	FilterHistory   FilterType = "history"
	FilterFavorites FilterType = "favorites"
)

// FilterTypes lists filters in navigation order.
func FilterTypes() []FilterType {
	return []FilterType{FilterAll, FilterWatchlist, FilterHistory, FilterFavorites}
}

// ParseFilterType resolves a filter by name; empty means all.
func ParseFilterType(s string) (FilterType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, t := range FilterTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("movie: unknown filter %q", s)
}

// Label is the navigation caption for the filter.
func (f FilterType) Label() string {
	switch f {
	case FilterWatchlist:
		return "Watchlist"
	case FilterHistory:
		return "History"
	case FilterFavorites:
		return "Favorites"
	default:
		return "All movies"
	}
}

// Predicate filters a movie list, returning a new slice.
type Predicate func([]Movie) []Movie

func keep(fn func(Movie) bool) Predicate {
	return func(list []Movie) []Movie {
		out := make([]Movie, 0, len(list))
		for _, m := range list {
			if fn(m) {
				out = append(out, m)
			}
		}
		return out
	}
}

// Filters maps every filter type to its predicate.
var Filters = map[FilterType]Predicate{
	FilterAll:       keep(func(Movie) bool { return true }),
	FilterWatchlist: keep(func(m Movie) bool { return m.UserDetails.Watchlist }),
	FilterHistory:   keep(func(m Movie) bool { return m.UserDetails.AlreadyWatched }),
	FilterFavorites: keep(func(m Movie) bool { return m.UserDetails.Favorite }),
}

// ByRating orders higher total rating first.
func ByRating(a, b Movie) bool {
	return a.Info.TotalRating > b.Info.TotalRating
}

// ByDate orders the most recent release first.
func ByDate(a, b Movie) bool {
	return a.Info.Release.Date.After(b.Info.Release.Date)
}

// Sort orders list in place by the given sort type. Equal elements keep their
// relative order; SortDefault leaves the list untouched.
func Sort(list []Movie, s SortType) {
	var less func(a, b Movie) bool
	switch s {
	case SortRating:
		less = ByRating
	case SortDate:
		less = ByDate
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		return less(list[i], list[j])
	})
}

// Query is the current view configuration used to derive the visible list.
type Query struct {
	Filter FilterType
	Sort   SortType
}

// Derive applies q's filter predicate and then its sort to movies. The input
// is never modified.
func Derive(movies []Movie, q Query) []Movie {
	pred, ok := Filters[q.Filter]
	if !ok {
		pred = Filters[FilterAll]
	}
	out := pred(movies)
	Sort(out, q.Sort)
	return out
}

// Counts returns the number of movies matching each filter.
func Counts(movies []Movie) map[FilterType]int {
	counts := make(map[FilterType]int, len(Filters))
	for kind, pred := range Filters {
		counts[kind] = len(pred(movies))
	}
	return counts
}
