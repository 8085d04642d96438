// Package snake walks the user through command input with terminal prompts.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/filmdeck/pkg/movie"
)

// Prompter reads answers from In and draws prompts on Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// PromptMovie picks a movie from the catalog with a searchable list.
func (p Prompter) PromptMovie(movies []movie.Movie) (movie.Movie, error) {
	if len(movies) == 0 {
		return movie.Movie{}, errors.New("the catalog is empty")
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Info.Title | bold }} {{ .ID | faint }}",
		Inactive: "   {{ .Info.Title }} {{ .ID | faint }}",
		Selected: "{{ .Info.Title | bold }}",
		Details: `
--------- Details ----------
{{ .Info.Description }}
`,
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Movie",
		Items:     movies,
		Templates: templates,
		Size:      10,
		Searcher:  movieSearcher(movies),
		Stdin:     io.NopCloser(p.In),
		Stdout:    NopCloser(p.Out),
	}
	i, _, err := prompt.Run()
	if err != nil {
		return movie.Movie{}, err
	}
	return movies[i], nil
}

// PromptComment asks for comment text and then an emotion.
func (p Prompter) PromptComment(title string) (string, movie.Emotion, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	text, err := (&promptui.Prompt{
		Label:     "Comment on " + title,
		Templates: templates,
		Validate:  validateComment,
		Stdin:     io.NopCloser(p.In),
		Stdout:    NopCloser(p.Out),
	}).Run()
	if err != nil {
		return "", "", err
	}

	emotions := movie.Emotions()
	choice := &promptui.Select{
		HideHelp: true,
		Label:    "Emotion",
		Items:    emotionItems(emotions),
		Size:     len(emotions),
		Stdin:    io.NopCloser(p.In),
		Stdout:   NopCloser(p.Out),
	}
	i, _, err := choice.Run()
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(text), emotions[i], nil
}

func validateComment(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

func movieSearcher(movies []movie.Movie) func(input string, index int) bool {
	return func(input string, index int) bool {
		m := movies[index]
		name := strings.ReplaceAll(strings.ToLower(m.Info.Title+m.Info.AlternativeTitle), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input) || m.ID == input
	}
}

func emotionItems(emotions []movie.Emotion) []string {
	items := make([]string, 0, len(emotions))
	for _, e := range emotions {
		items = append(items, e.Glyph()+" "+string(e))
	}
	return items
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
