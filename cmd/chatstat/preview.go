package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/render"
)

// hitFromFlags resolves --hit / --line to a message seq. --line wins when both
// are given.
func hitFromFlags(db *index.DB, id string, hit, line int) (int, error) {
	if line <= 0 {
		return hit, nil
	}
	seq, err := db.SeqForLine(id, line)
	if err != nil {
		return -1, fmt.Errorf("resolve line %d: %w", line, err)
	}
	return seq, nil
}

func previewCmd() *cobra.Command {
	var hit, line, context, width int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <transcript>",
		Short: "Preview a transcript with context around a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, id, err := openImported(args[0], "")
			if err != nil {
				return err
			}
			defer db.Close()

			hitSeq, err := hitFromFlags(db, id, hit, line)
			if err != nil {
				return err
			}

			if width == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			out, _, err := render.RenderTranscript(db, id, render.Options{
				HitSeq:  hitSeq,
				Context: context,
				Width:   width,
				Query:   query,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hit, "hit", -1, "Message seq to highlight")
	cmd.Flags().IntVar(&line, "line", 0, "Transcript line to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = terminal width)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
