package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/render"
	"github.com/Zuo-Peng/chatstat/internal/report"
)

func statsCmd() *cobra.Command {
	var user, span, granularity, output string
	var all bool
	var width int

	cmd := &cobra.Command{
		Use:   "stats [transcript]",
		Short: "Show statistics for a transcript, overall or for one user",
		Long: `Parses an exported chat and prints message, word, media and link counts,
the busiest users, most common words, emoji usage, timelines, activity maps and
the message length distribution.

Without a transcript argument the newest export in exports_dir is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := loadTranscript(args)
			if err != nil {
				return err
			}
			sw, err := loadStopWords()
			if err != nil {
				return err
			}

			opts := report.Options{
				StopWords:   sw,
				Span:        analytics.Span(span),
				Granularity: analytics.Granularity(granularity),
			}

			var reps []*report.Report
			if all {
				reps, err = report.BuildAll(cmd.Context(), records, opts)
			} else {
				var rep *report.Report
				rep, err = report.Build(cmd.Context(), records, user, opts)
				reps = []*report.Report{rep}
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = cfg.Output
			}
			var v any = reps[0]
			if all {
				v = reps
			}
			if ok, err := writeStructured(os.Stdout, output, v); ok {
				return err
			}

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if width == 0 && isTTY {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}
			for i, rep := range reps {
				if i > 0 {
					fmt.Println()
				}
				fmt.Print(render.RenderReport(rep, render.ReportOptions{Width: width, Color: isTTY}))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", parse.Overall, "Restrict statistics to one sender")
	cmd.Flags().BoolVar(&all, "all", false, "Report Overall and every sender")
	cmd.Flags().StringVar(&span, "span", string(analytics.SpanYearMonth), "Timeline span (year-month/year)")
	cmd.Flags().StringVar(&granularity, "granularity", string(analytics.Daily), "Message count bucket (daily/weekly/monthly)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (text/json/yaml), default from config")
	cmd.Flags().IntVar(&width, "width", 0, "Report width in columns (0 = terminal width)")

	return cmd
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users [transcript]",
		Short: "List the senders of a transcript, Overall first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := loadTranscript(args)
			if err != nil {
				return err
			}
			users := parse.UserList(records)
			if ok, err := writeStructured(os.Stdout, cfg.Output, users); ok {
				return err
			}
			for _, u := range users {
				fmt.Println(u)
			}
			return nil
		},
	}
}

func wordcloudCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "wordcloud [transcript]",
		Short: "Print the stop-word filtered text for a word cloud renderer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, records, err := loadTranscript(args)
			if err != nil {
				return err
			}
			sw, err := loadStopWords()
			if err != nil {
				return err
			}
			fmt.Println(analytics.WordCloudText(analytics.Scope(records, user), sw))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", parse.Overall, "Restrict to one sender")
	return cmd
}
