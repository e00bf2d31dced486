package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSender(sender string) string {
	if sender == parse.GroupNotification {
		return sColorDim + sender + sColorReset
	}
	return sColorBlue + sender + sColorReset
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func plainSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	return strings.ReplaceAll(snippet, "<<<", "")
}

// openImported opens dbPath (in-memory when empty) and imports the transcript
// at path into it, returning the transcript id.
func openImported(path, dbPath string) (*index.DB, string, error) {
	if dbPath == "" {
		dbPath = index.MemoryPath
	}
	db, err := index.OpenDB(dbPath)
	if err != nil {
		return nil, "", err
	}
	id, stats, err := index.ImportFile(db, path)
	if err != nil {
		db.Close()
		return nil, "", err
	}
	log.WithFields(logrus.Fields{
		"db":         dbPath,
		"transcript": id,
		"stats":      stats.String(),
	}).Debug("transcript imported")
	return db, id, nil
}

func searchCmd() *cobra.Command {
	var sender, since, dbPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <transcript> <query>",
		Short: "Full-text search over the messages of a transcript",
		Long: `Search message bodies using FTS5 (substring match for CJK queries).
Output is TSV for fzf integration:
  line, seq, timestamp, sender, snippet

Recommended shell function (add to .zshrc):
  chatf() {
    f="$1"; shift
    chatstat search "$f" "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview "chatstat preview $f --line {1} --context 5 --query {q}" \
      --preview-window=right:60%:wrap \
      --bind "enter:execute(chatstat open $f --line {1})"
  }`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, id, err := openImported(args[0], dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := search.Search(db, search.Options{
				Query:        args[1],
				TranscriptID: id,
				Sender:       sender,
				Since:        since,
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				if !color {
					fmt.Printf("%d\t%d\t%s\t%s\t%s\n", r.LineNumber, r.Seq, r.Ts, r.Sender, plainSnippet(snippet))
					continue
				}
				// line and seq stay plain for fzf {1} {2}
				fmt.Printf("%d\t%d\t%s%s%s\t%s\t%s\n",
					r.LineNumber,
					r.Seq,
					sColorDim, r.Ts, sColorReset,
					colorizeSender(r.Sender),
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Filter by sender")
	cmd.Flags().StringVar(&since, "since", "", "Only messages on or after date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Import into this sqlite file instead of memory")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
