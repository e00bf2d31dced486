package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/report"
	"github.com/Zuo-Peng/chatstat/internal/tui"
)

func browseCmd() *cobra.Command {
	var span, granularity string

	cmd := &cobra.Command{
		Use:   "browse [transcript]",
		Short: "Browse per-user reports interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("browse needs a terminal; use 'chatstat stats --all' for piped output")
			}

			path, records, err := loadTranscript(args)
			if err != nil {
				return err
			}
			sw, err := loadStopWords()
			if err != nil {
				return err
			}

			return tui.Run(records, report.Options{
				StopWords:   sw,
				Span:        analytics.Span(span),
				Granularity: analytics.Granularity(granularity),
			}, filepath.Base(path))
		},
	}

	cmd.Flags().StringVar(&span, "span", string(analytics.SpanYearMonth), "Timeline span (year-month/year)")
	cmd.Flags().StringVar(&granularity, "granularity", string(analytics.Daily), "Message count bucket (daily/weekly/monthly)")

	return cmd
}
