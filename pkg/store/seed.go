package store

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/filmdeck/pkg/movie"
)

var (
	seedTitles = []string{
		"The Dance of Life", "Sagebrush Trail", "The Man with the Golden Arm",
		"Santa Claus Conquers the Martians", "Popeye the Sailor Meets Sindbad",
		"The Great Flamarion", "Made for Each Other", "The Sky Is Red",
	}
	seedGenres = [][]string{
		{"Musical"}, {"Western"}, {"Drama"}, {"Comedy"}, {"Cartoon"},
		{"Mystery", "Film-Noir"}, {"Comedy", "Drama"}, {"Drama", "War"},
	}
	seedDirectors = []string{"Anthony Mann", "John Cromwell", "Otto Preminger", "Nicholas Webster"}
	seedWriters   = []string{"Anne Wigton", "Heinz Herald", "Richard Weil", "Takeshi Kitano"}
	seedActors    = []string{"Erich von Stroheim", "Mary Beth Hughes", "Dan Duryea", "Morgan Freeman", "Leonardo DiCaprio"}
	seedCountries = []string{"USA", "Finland", "Italy", "Japan"}
	seedAuthors   = []string{"Ilya O'Reilly", "Tim Macoveev", "John Doe", "Kate Ross"}
	seedTexts     = []string{
		"Interesting setting and a good cast",
		"Booooooooooring",
		"Very very old. Meh",
		"Almost two hours? Seriously?",
	}
)

// Sample builds a deterministic catalog of n movies relative to now.
func Sample(n int, now time.Time) []movie.Movie {
	out := make([]movie.Movie, 0, n)
	for i := 0; i < n; i++ {
		title := seedTitles[i%len(seedTitles)]
		if i >= len(seedTitles) {
			title = fmt.Sprintf("%s %d", title, i/len(seedTitles)+1)
		}
		released := time.Date(1929+(i*7)%60, time.Month(i%12+1), i%27+1, 0, 0, 0, 0, time.UTC)
		m := movie.Movie{
			ID: fmt.Sprintf("%d", i),
			Info: movie.FilmInfo{
				Title:            title,
				AlternativeTitle: title,
				TotalRating:      float64((i*37)%90)/10 + 1,
				Poster:           fmt.Sprintf("images/posters/%d.jpg", i%7),
				AgeRating:        []int{0, 6, 12, 16, 18}[i%5],
				Director:         seedDirectors[i%len(seedDirectors)],
				Writers:          []string{seedWriters[i%len(seedWriters)], seedWriters[(i+1)%len(seedWriters)]},
				Actors:           []string{seedActors[i%len(seedActors)], seedActors[(i+2)%len(seedActors)]},
				Release:          movie.Release{Date: released, Country: seedCountries[i%len(seedCountries)]},
				Runtime:          60 + (i*13)%90,
				Genre:            seedGenres[i%len(seedGenres)],
				Description:      fmt.Sprintf("%s is a %s picture directed by %s.", title, seedGenres[i%len(seedGenres)][0], seedDirectors[i%len(seedDirectors)]),
			},
			UserDetails: movie.UserDetails{
				Watchlist:      i%3 == 0,
				AlreadyWatched: i%4 == 0,
				Favorite:       i%5 == 0,
			},
		}
		if m.UserDetails.AlreadyWatched {
			watched := now.AddDate(0, 0, -i)
			m.UserDetails.WatchingDate = &watched
		}
		for c := 0; c < i%4; c++ {
			m.Comments = append(m.Comments, movie.Comment{
				ID:      fmt.Sprintf("%d-%d", i, c),
				Author:  seedAuthors[(i+c)%len(seedAuthors)],
				Text:    seedTexts[(i+c)%len(seedTexts)],
				Emotion: movie.Emotions()[(i+c)%len(movie.Emotions())],
				Date:    now.Add(-time.Duration(i*24+c) * time.Hour),
			})
		}
		out = append(out, m)
	}
	return out
}

// Seed writes a sample catalog of n movies.
func Seed(p Persistence, n int, now time.Time) error {
	for _, m := range Sample(n, now) {
		if err := p.Store(m); err != nil {
			return fmt.Errorf("store: seed %q: %w", m.ID, err)
		}
	}
	return nil
}

// Import reads a YAML (or JSON) list of movies from r and stores each one.
// It returns the number of movies written.
func Import(p Persistence, r io.Reader) (int, error) {
	var list []movie.Movie
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("store: decode catalog: %w", err)
	}
	for i, m := range list {
		if m.ID == "" {
			return i, fmt.Errorf("store: movie at position %d has no id", i)
		}
		if err := p.Store(m); err != nil {
			return i, fmt.Errorf("store: import %q: %w", m.ID, err)
		}
	}
	return len(list), nil
}
