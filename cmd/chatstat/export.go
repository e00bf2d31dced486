package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

func exportCmd() *cobra.Command {
	var dbPath string
	var prune bool

	cmd := &cobra.Command{
		Use:   "export <transcript>...",
		Short: "Export parsed transcripts to a sqlite database with full-text index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.DBPath
			}

			db, err := index.OpenDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			var total index.Stats
			for _, path := range args {
				id, stats, err := index.ImportFile(db, path)
				if err != nil {
					return err
				}
				log.WithFields(logrus.Fields{
					"path":       path,
					"transcript": id,
					"messages":   stats.Messages,
					"skipped":    stats.Skipped > 0,
				}).Info("exported")
				total.Imported += stats.Imported
				total.Skipped += stats.Skipped
				total.Messages += stats.Messages
			}

			if prune {
				n, err := index.Prune(db)
				if err != nil {
					return fmt.Errorf("prune: %w", err)
				}
				total.Pruned = n
			}

			fmt.Printf("Export complete (%s): %s\n", dbPath, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default from config)")
	cmd.Flags().BoolVar(&prune, "prune", false, "Remove transcripts whose file no longer exists")

	return cmd
}
