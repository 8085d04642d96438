package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/filmdeck/pkg/commands/options"
	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/movie"
	"tableflip.dev/filmdeck/pkg/runner/edit"
	"tableflip.dev/filmdeck/pkg/snake"
	"tableflip.dev/filmdeck/pkg/store"
)

func addComment(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "comment",
		Aliases:   []string{"comments"},
		Short:     "Add or delete comments on a movie.",
		ValidArgs: []string{},
		Run: func(cmd *cobra.Command, args []string) {
			// a sub-command is required.
			_ = cmd.Help()
		},
	}

	addCommentAdd(cmd)
	addCommentDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addCommentAdd(topLevel *cobra.Command) {
	co := &options.CommentOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add ID TEXT...",
		Short: "Add a comment",
		Example: `
filmdeck comment add 3 a bit long but worth it --emotion sleeping
filmdeck comment add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			if len(args) < 2 {
				return errors.New("requires a movie id and comment text")
			}
			co.Text = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: movieArgCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, p, err := load()
			if err != nil {
				return err
			}
			s := edit.AddComment{Base: editBase(cfg, p)}
			if i.Interactive {
				if err := promptComment(cmd, p, args, &s); err != nil {
					return err
				}
				return s.Do(context.Background())
			}
			emotion, err := movie.ParseEmotion(co.Emotion)
			if err != nil {
				return err
			}
			s.ID = args[0]
			s.Text = co.Text
			s.Emotion = emotion
			return s.Do(context.Background())
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddEmotionArg(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("emotion", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return emotionCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	topLevel.AddCommand(cmd)
}

// promptComment fills in the movie, text and emotion from terminal prompts.
func promptComment(cmd *cobra.Command, p store.Persistence, args []string, s *edit.AddComment) error {
	all, err := p.Movies(context.Background())
	if err != nil {
		return err
	}
	prompter := snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	var m movie.Movie
	if len(args) == 1 {
		found, ok := movie.Find(all, args[0])
		if !ok {
			return fmt.Errorf("%w: %s", model.ErrUnknownMovie, args[0])
		}
		m = found
	} else if m, err = prompter.PromptMovie(all); err != nil {
		return err
	}
	text, emotion, err := prompter.PromptComment(m.Info.Title)
	if err != nil {
		return err
	}
	s.ID, s.Text, s.Emotion = m.ID, text, emotion
	return nil
}

func addCommentDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete ID COMMENT_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a comment",
		Example: `
filmdeck list --show-id
filmdeck comment delete 3 6f1c2a9e-1b7d-4a47-9c55-0d2f1e7b8a10
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: movieArgCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, p, err := load()
			if err != nil {
				return err
			}
			s := edit.DeleteComment{
				Base:      editBase(cfg, p),
				ID:        args[0],
				CommentID: args[1],
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
