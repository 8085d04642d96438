// Package movie holds the catalog entry types and the pure read-model
// derivation (filtering and sorting) shared by the CLI and the TUI.
package movie

import (
	"fmt"
	"strings"
	"time"
)

// Emotion tags a comment with one of a fixed set of reactions.
type Emotion string

const (
	EmotionSmile    Emotion = "smile"
	EmotionSleeping Emotion = "sleeping"
	EmotionPuke     Emotion = "puke"
	EmotionAngry    Emotion = "angry"
)

// Emotions lists the valid emotions in picker order.
func Emotions() []Emotion {
	return []Emotion{EmotionSmile, EmotionSleeping, EmotionPuke, EmotionAngry}
}

// ParseEmotion resolves a user supplied emotion name.
func ParseEmotion(s string) (Emotion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range Emotions() {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("movie: unknown emotion %q", s)
}

// Glyph returns a short terminal symbol for the emotion.
func (e Emotion) Glyph() string {
	switch e {
	case EmotionSmile:
		return ":)"
	case EmotionSleeping:
		return "zZ"
	case EmotionPuke:
		return ":P"
	case EmotionAngry:
		return ">:("
	default:
		return "  "
	}
}

// Comment is a user comment attached to a movie.
type Comment struct {
	ID      string    `json:"id" yaml:"id"`
	Author  string    `json:"author" yaml:"author"`
	Text    string    `json:"comment" yaml:"comment"`
	Emotion Emotion   `json:"emotion" yaml:"emotion"`
	Date    time.Time `json:"date" yaml:"date"`
}

// Release describes where and when a film premiered.
type Release struct {
	Date    time.Time `json:"date" yaml:"date"`
	Country string    `json:"release_country" yaml:"release_country"`
}

// FilmInfo carries the display attributes of a movie.
type FilmInfo struct {
	Title            string   `json:"title" yaml:"title"`
	AlternativeTitle string   `json:"alternative_title,omitempty" yaml:"alternative_title,omitempty"`
	TotalRating      float64  `json:"total_rating" yaml:"total_rating"`
	Poster           string   `json:"poster,omitempty" yaml:"poster,omitempty"`
	AgeRating        int      `json:"age_rating" yaml:"age_rating"`
	Director         string   `json:"director,omitempty" yaml:"director,omitempty"`
	Writers          []string `json:"writers,omitempty" yaml:"writers,omitempty"`
	Actors           []string `json:"actors,omitempty" yaml:"actors,omitempty"`
	Release          Release  `json:"release" yaml:"release"`
	Runtime          int      `json:"runtime" yaml:"runtime"`
	Genre            []string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// UserDetails are the per-user interaction flags.
type UserDetails struct {
	Watchlist      bool       `json:"watchlist" yaml:"watchlist"`
	AlreadyWatched bool       `json:"already_watched" yaml:"already_watched"`
	WatchingDate   *time.Time `json:"watching_date,omitempty" yaml:"watching_date,omitempty"`
	Favorite       bool       `json:"favorite" yaml:"favorite"`
}

// Movie is a catalog entry.
type Movie struct {
	ID          string      `json:"id" yaml:"id"`
	Info        FilmInfo    `json:"film_info" yaml:"film_info"`
	Comments    []Comment   `json:"comments" yaml:"comments"`
	UserDetails UserDetails `json:"user_details" yaml:"user_details"`
}

// Flag names one of the boolean user details.
type Flag string

const (
	FlagWatchlist Flag = "watchlist"
	FlagWatched   Flag = "watched"
	FlagFavorite  Flag = "favorite"
)

// Clone returns a deep copy of m so callers can hold snapshots the model will
// not mutate.
func (m Movie) Clone() Movie {
	out := m
	out.Info.Writers = cloneStrings(m.Info.Writers)
	out.Info.Actors = cloneStrings(m.Info.Actors)
	out.Info.Genre = cloneStrings(m.Info.Genre)
	if m.Comments != nil {
		out.Comments = make([]Comment, len(m.Comments))
		copy(out.Comments, m.Comments)
	}
	if m.UserDetails.WatchingDate != nil {
		d := *m.UserDetails.WatchingDate
		out.UserDetails.WatchingDate = &d
	}
	return out
}

// cloneStrings keeps nil and empty distinct so clones compare equal to the
// original under reflect.DeepEqual.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Toggled returns a copy of m with exactly the named flag flipped.
func (m Movie) Toggled(f Flag) Movie {
	out := m.Clone()
	switch f {
	case FlagWatchlist:
		out.UserDetails.Watchlist = !m.UserDetails.Watchlist
	case FlagWatched:
		out.UserDetails.AlreadyWatched = !m.UserDetails.AlreadyWatched
	case FlagFavorite:
		out.UserDetails.Favorite = !m.UserDetails.Favorite
	}
	return out
}

// HasFlag reports the current value of the named flag.
func (m Movie) HasFlag(f Flag) bool {
	switch f {
	case FlagWatchlist:
		return m.UserDetails.Watchlist
	case FlagWatched:
		return m.UserDetails.AlreadyWatched
	case FlagFavorite:
		return m.UserDetails.Favorite
	}
	return false
}

// CommentIndex returns the position of the comment with the given id or -1.
func (m Movie) CommentIndex(id string) int {
	for i, c := range m.Comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the movie with the given id from list.
func Find(list []Movie, id string) (Movie, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Movie{}, false
}

// CloneAll deep copies a movie list.
func CloneAll(list []Movie) []Movie {
	if list == nil {
		return nil
	}
	out := make([]Movie, len(list))
	for i, m := range list {
		out[i] = m.Clone()
	}
	return out
}
