package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/open"
)

func openCmd() *cobra.Command {
	var hit, line int

	cmd := &cobra.Command{
		Use:   "open <transcript>",
		Short: "Open the transcript in $EDITOR at a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if line > 0 || hit < 0 {
				return open.OpenAtLine(args[0], line)
			}

			db, id, err := openImported(args[0], "")
			if err != nil {
				return err
			}
			defer db.Close()

			msgs, hitIdx, _, _, err := db.GetMessagesWindow(id, hit, 0)
			if err != nil {
				return err
			}
			target := 0
			if hitIdx >= 0 {
				target = msgs[hitIdx].LineNumber
			}
			return open.OpenAtLine(args[0], target)
		},
	}

	cmd.Flags().IntVar(&hit, "hit", -1, "Message seq to jump to")
	cmd.Flags().IntVar(&line, "line", 0, "Line to jump to")

	return cmd
}
