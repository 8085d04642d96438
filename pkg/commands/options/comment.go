package options

import (
	"github.com/spf13/cobra"
)

// CommentOptions
type CommentOptions struct {
	Text    string
	Emotion string
}

func AddEmotionArg(cmd *cobra.Command, o *CommentOptions) {
	cmd.Flags().StringVarP(&o.Emotion, "emotion", "e", "smile",
		"Comment emotion. One of 'smile', 'sleeping', 'puke' or 'angry'.")
}
